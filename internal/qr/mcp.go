package qr

import (
	"context"
	"fmt"
)

// MCP Tool wrapper methods
// These methods wrap the generator with Args/Result types for MCP integration.

// GenerateMCP is the MCP wrapper for QR code generation
func GenerateMCP(_ context.Context, args GenerateArgs) (GenerateResult, error) {
	code, err := Generate(args.Text)
	if err != nil {
		return GenerateResult{}, err
	}

	return GenerateResult{
		IsImage:    true,
		Base64Data: code.Base64Data,
		MimeType:   code.MimeType,
		Message:    fmt.Sprintf("QR code generated for: %s", code.Text),
	}, nil
}
