package render_test

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/qrgen/qr"
	"github.com/openclaw/qrgen/render"
)

func encode(t *testing.T, text string) *qr.Symbol {
	t.Helper()
	sym, err := qr.Encode(text, qr.Medium)
	require.NoError(t, err)
	return sym
}

func TestRaster(t *testing.T) {
	t.Parallel()

	sym := encode(t, "HELLO")
	img := render.Raster(sym, 3, 4)

	side := (21 + 8) * 3
	assert.Equal(t, side, img.Bounds().Dx())
	assert.Equal(t, side, img.Bounds().Dy())
	assert.Len(t, img.Pix, side*side*3)

	// Quiet zone is white, the finder corner black.
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.At(12, 12))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.At(14, 14))

	for y := 0; y < sym.Size; y++ {
		for x := 0; x < sym.Size; x++ {
			want := color.RGBA{255, 255, 255, 255}
			if sym.Dark(x, y) {
				want = color.RGBA{0, 0, 0, 255}
			}
			assert.Equal(t, want, img.At((x+4)*3+1, (y+4)*3+1), "module %d,%d", x, y)
		}
	}
}

func TestRGBOutOfBounds(t *testing.T) {
	t.Parallel()

	img := render.NewRGB(2, 2)
	img.Set(5, 5, color.White)
	img.Set(1, 1, color.White)
	assert.Equal(t, color.RGBA{}, img.At(-1, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.At(1, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.At(0, 0))
}

func TestScaleNearestNeighbour(t *testing.T) {
	t.Parallel()

	src := render.NewRGB(2, 2)
	src.Set(1, 0, color.White)
	src.Set(0, 1, color.White)

	dst := render.Scale(src, 4)
	require.Equal(t, 4, dst.Bounds().Dx())
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	assert.Equal(t, black, dst.At(0, 0))
	assert.Equal(t, black, dst.At(1, 1))
	assert.Equal(t, white, dst.At(2, 0))
	assert.Equal(t, white, dst.At(3, 1))
	assert.Equal(t, white, dst.At(0, 3))
	assert.Equal(t, black, dst.At(3, 3))
}

func TestDisplayPNGDecodes(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"HELLO", "https://example.com/render", strings.Repeat("long payload ", 20)} {
		sym := encode(t, text)
		data, err := render.DisplayPNG(sym, 300, 4)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 300, img.Bounds().Dy())

		bmp, err := gozxing.NewBinaryBitmapFromImage(img)
		require.NoError(t, err)
		result, err := gozxingqr.NewQRCodeReader().Decode(bmp, nil)
		require.NoError(t, err)
		assert.Equal(t, text, result.GetText())
	}
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri := render.DataURI([]byte{0x89, 'P', 'N', 'G'})
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw)
}

func TestSVG(t *testing.T) {
	t.Parallel()

	sym := encode(t, "HELLO")
	svg := render.SVG(sym, 256, 4)

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 29 29" width="256" height="256"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	// Top row of the symbol starts with the seven-module finder edge.
	assert.Contains(t, svg, `<rect x="4" y="4" width="7" height="1" fill="#000"/>`)

	dark := 0
	for y := 0; y < sym.Size; y++ {
		for x := 0; x < sym.Size; x++ {
			if sym.Dark(x, y) {
				dark++
			}
		}
	}
	width := 0
	for _, part := range strings.Split(svg, `width="`)[3:] {
		n := 0
		for _, c := range part {
			if c < '0' || c > '9' {
				break
			}
			n = n*10 + int(c-'0')
		}
		width += n
	}
	assert.Equal(t, dark, width)
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	sym := encode(t, "HELLO")
	out := render.Terminal(sym, 1, false)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	// 23 module rows, two per line.
	assert.Len(t, lines, 12)
	for _, line := range lines {
		assert.Equal(t, render.TerminalWidth(sym, 1), len([]rune(line)))
	}
	// Quiet zone row on top, finder edge below it.
	assert.True(t, strings.HasPrefix(lines[0], " ▄▄▄▄▄▄▄ "))

	inverted := render.Terminal(sym, 1, true)
	assert.True(t, strings.HasPrefix(inverted, "█▀▀▀▀▀▀▀█"))
}
