package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
	"github.com/deskfit/deskfit-mcp-server/metrics"
)

// mimeTypes for the encodable formats.
var mimeTypes = map[string]string{
	"JPEG": "image/jpeg",
	"PNG":  "image/png",
	"GIF":  "image/gif",
	"BMP":  "image/bmp",
	"TIFF": "image/tiff",
}

// MCP Tool wrapper methods
// These methods wrap the converter with Args/Result types for MCP integration.

// ConvertMCP is the MCP wrapper for image conversion
func ConvertMCP(_ context.Context, args ConvertArgs) (ConvertResult, error) {
	format, ok := ExtractFormat(args.Format)
	if !ok {
		return ConvertResult{}, apperrors.NewValidationError("format", args.Format,
			fmt.Sprintf("could not detect a target format, supported: %s", strings.Join(SaveFormats, ", ")))
	}

	raw, err := base64.StdEncoding.DecodeString(args.Base64Data)
	if err != nil {
		return ConvertResult{}, apperrors.NewValidationError("base64_data", "", "invalid base64 image data")
	}

	conv, err := Convert(raw, format)
	if err != nil {
		return ConvertResult{}, err
	}
	metrics.RecordPayload("image_convert", conv.ConvertedBytes)

	return ConvertResult{
		IsImage:        true,
		Base64Data:     base64.StdEncoding.EncodeToString(conv.Data),
		MimeType:       mimeTypes[conv.TargetFormat],
		OriginalFormat: conv.OriginalFormat,
		TargetFormat:   conv.TargetFormat,
		ImageSize:      fmt.Sprintf("%dx%d", conv.Width, conv.Height),
		OriginalKB:     roundKB(conv.OriginalBytes),
		ConvertedKB:    roundKB(conv.ConvertedBytes),
		CompressionPct: math.Round(conv.CompressionPct*100) / 100,
		Message: fmt.Sprintf("Converted %s to %s (%dx%d)",
			conv.OriginalFormat, conv.TargetFormat, conv.Width, conv.Height),
	}, nil
}

func roundKB(n int) float64 {
	return math.Round(float64(n)/1024*100) / 100
}
