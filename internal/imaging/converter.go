// Package imaging converts images between raster formats. Decoding
// covers PNG, JPEG, GIF, BMP, TIFF, and WebP; encoding covers all of
// those except WebP.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"regexp"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// SaveFormats lists the formats Convert can encode to.
var SaveFormats = []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "tif"}

// formatAliases normalizes extension spellings to codec names.
var formatAliases = map[string]string{
	"jpg": "jpeg",
	"tif": "tiff",
}

var (
	toFormatRe     = regexp.MustCompile(`to\s+(` + formatPattern() + `)`)
	formatSuffixRe = regexp.MustCompile(`(` + formatPattern() + `)\s+format`)
	bareFormatRe   = regexp.MustCompile(`\b(` + formatPattern() + `)\b`)
)

func formatPattern() string {
	return strings.Join(SaveFormats, "|")
}

// Conversion reports one completed format conversion
type Conversion struct {
	OriginalFormat string  `json:"original_format"`
	TargetFormat   string  `json:"target_format"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	OriginalBytes  int     `json:"original_bytes"`
	ConvertedBytes int     `json:"converted_bytes"`
	CompressionPct float64 `json:"compression_pct"`
	Data           []byte  `json:"-"`
}

// ExtractFormat pulls a target format out of free text. It tries
// "to <fmt>" first, then "<fmt> format", then a bare format token.
func ExtractFormat(input string) (string, bool) {
	lower := strings.ToLower(input)
	for _, re := range []*regexp.Regexp{toFormatRe, formatSuffixRe, bareFormatRe} {
		if m := re.FindStringSubmatch(lower); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Convert decodes imageBytes and re-encodes them in the target format.
func Convert(imageBytes []byte, format string) (*Conversion, error) {
	if len(imageBytes) == 0 {
		return nil, apperrors.NewValidationError("image", "", "image data is required")
	}

	normalized := strings.ToLower(strings.TrimSpace(format))
	if alias, ok := formatAliases[normalized]; ok {
		normalized = alias
	}
	if !encodable(normalized) {
		return nil, apperrors.NewValidationError("format", format,
			fmt.Sprintf("supported formats: %s", strings.Join(SaveFormats, ", ")))
	}

	img, sourceFormat, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// JPEG and BMP carry no alpha channel.
	if normalized == "jpeg" || normalized == "bmp" {
		img = flattenAlpha(img)
	}

	var buf bytes.Buffer
	switch normalized {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.LZW})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", normalized, err)
	}

	bounds := img.Bounds()
	return &Conversion{
		OriginalFormat: strings.ToUpper(sourceFormat),
		TargetFormat:   strings.ToUpper(normalized),
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		OriginalBytes:  len(imageBytes),
		ConvertedBytes: buf.Len(),
		CompressionPct: float64(buf.Len()) / float64(len(imageBytes)) * 100,
		Data:           buf.Bytes(),
	}, nil
}

func encodable(format string) bool {
	switch format {
	case "jpeg", "png", "gif", "bmp", "tiff":
		return true
	}
	return false
}

// flattenAlpha composites the image onto a white background.
func flattenAlpha(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
