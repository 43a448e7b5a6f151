// Package qr encodes text into PNG QR codes for web display.
package qr

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
	"github.com/deskfit/deskfit-mcp-server/metrics"
)

const (
	// ImageSize is the rendered PNG edge length in pixels
	ImageSize = 256

	// MimeType of the generated image
	MimeType = "image/png"
)

// Code is one generated QR code
type Code struct {
	Text       string `json:"text"`
	Base64Data string `json:"base64_data"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int    `json:"size_bytes"`
}

// Generate encodes text as a PNG QR code with medium error correction.
// Surrounding quotes and whitespace are stripped before encoding.
func Generate(text string) (*Code, error) {
	clean := strings.TrimSpace(text)
	clean = strings.Trim(clean, `'"`)
	if clean == "" {
		return nil, apperrors.NewValidationError("text", text, "provide the text or URL to encode")
	}

	png, err := qrcode.Encode(clean, qrcode.Medium, ImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	metrics.RecordPayload("qr_generate", len(png))

	return &Code{
		Text:       clean,
		Base64Data: base64.StdEncoding.EncodeToString(png),
		MimeType:   MimeType,
		SizeBytes:  len(png),
	}, nil
}
