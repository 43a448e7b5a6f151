package qr

// GenerateArgs contains parameters for QR code generation
type GenerateArgs struct {
	Text string `json:"text" jsonschema:"required" jsonschema_description:"Text or URL to encode, e.g. 'https://www.example.com'"`
}

// GenerateResult is the result of QR code generation
type GenerateResult struct {
	IsImage    bool   `json:"is_image"`
	Base64Data string `json:"base64_data"`
	MimeType   string `json:"mime_type"`
	Message    string `json:"message"`
}
