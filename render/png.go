package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/openclaw/qrgen/qr"
)

// PNG encodes img as a PNG file.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DisplayPNG renders sym into a size×size display frame and encodes it.
func DisplayPNG(sym *qr.Symbol, size, border int) ([]byte, error) {
	return PNG(Display(sym, size, border))
}

// DataURI returns data as a base64 PNG data URI for an <img> src.
func DataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
