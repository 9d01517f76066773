package barcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	bar "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

const (
	defaultWidth  = 300
	defaultHeight = 80
)

// Generator renders barcode values as Code 128 PNG images
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a barcode generator with default card dimensions
func NewGenerator() *Generator {
	return &Generator{width: defaultWidth, height: defaultHeight}
}

// PNG encodes the given value as a Code 128 barcode PNG
func (g *Generator) PNG(value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("barcode value is empty")
	}

	code, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode barcode %q: %w", value, err)
	}

	scaled, err := bar.Scale(code, g.width, g.height)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode %q: %w", value, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to render barcode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI encodes the given value as a base64 PNG data URI suitable for
// embedding in printable HTML
func (g *Generator) DataURI(value string) (string, error) {
	data, err := g.PNG(value)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
