package dictionary

// LookupWordArgs contains parameters for a dictionary lookup
type LookupWordArgs struct {
	Word string `json:"word" jsonschema:"required" jsonschema_description:"English word to define, e.g. 'serendipity'"`
}

// LookupWordResult is the result of a dictionary lookup
type LookupWordResult struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic,omitempty"`
	Meanings []Meaning `json:"meanings"`
}
