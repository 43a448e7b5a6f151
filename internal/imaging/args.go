package imaging

// ConvertArgs contains parameters for image conversion
type ConvertArgs struct {
	Base64Data string `json:"base64_data" jsonschema:"required" jsonschema_description:"Base64-encoded source image (PNG, JPEG, GIF, BMP, TIFF, or WebP)"`
	Format     string `json:"format" jsonschema:"required" jsonschema_description:"Target format as free text, e.g. 'to jpg', 'png format', or 'tiff'"`
}

// ConvertResult is the result of an image conversion
type ConvertResult struct {
	IsImage        bool    `json:"is_image"`
	Base64Data     string  `json:"base64_data"`
	MimeType       string  `json:"mime_type"`
	OriginalFormat string  `json:"original_format"`
	TargetFormat   string  `json:"target_format"`
	ImageSize      string  `json:"image_size"`
	OriginalKB     float64 `json:"original_size_kb"`
	ConvertedKB    float64 `json:"converted_size_kb"`
	CompressionPct float64 `json:"compression_ratio"`
	Message        string  `json:"message"`
}
