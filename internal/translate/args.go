package translate

// TranslateTextArgs contains parameters for translation
type TranslateTextArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Text plus target language, e.g. 'Hello world in Spanish'"`
}

// TranslateTextResult is the result of a translation
type TranslateTextResult struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	TargetName string `json:"target_name"`
	TargetCode string `json:"target_code"`
}
