// Package render turns QR symbols into images and text: an RGB raster
// scaled for display, PNG and SVG files, and half-block terminal art.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/openclaw/qrgen/qr"
)

// RGB is an 8-bit-per-channel, three channel raster.
type RGB struct {
	Pix    []byte // R, G, B per pixel, row-major
	Stride int
	Rect   image.Rectangle
}

var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// NewRGB returns a w×h raster, initially black.
func NewRGB(w, h int) *RGB {
	return &RGB{Pix: make([]byte, 3*w*h), Stride: 3 * w, Rect: image.Rect(0, 0, w, h)}
}

func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.offset(x, y)
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xff}
}

func (p *RGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.offset(x, y)
	r, g, b, _ := c.RGBA()
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = byte(r>>8), byte(g>>8), byte(b>>8)
}

func (p *RGB) offset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB) fill(x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := p.offset(x, y)
			p.Pix[i], p.Pix[i+1], p.Pix[i+2] = c.R, c.G, c.B
		}
	}
}

// Raster draws each module as a moduleSize×moduleSize block, dark modules
// black and light modules white, with border light modules of quiet zone on
// every side.
func Raster(sym *qr.Symbol, moduleSize, border int) *RGB {
	moduleSize = max(moduleSize, 1)
	border = max(border, 0)
	n := sym.Size + 2*border
	img := NewRGB(n*moduleSize, n*moduleSize)
	for my := 0; my < n; my++ {
		for mx := 0; mx < n; mx++ {
			c := white
			if sym.Dark(mx-border, my-border) {
				c = black
			}
			img.fill(mx*moduleSize, my*moduleSize, (mx+1)*moduleSize, (my+1)*moduleSize, c)
		}
	}
	return img
}

// Scale resamples src to size×size with nearest-neighbour sampling, so
// module edges stay sharp and the output is deterministic.
func Scale(src image.Image, size int) *RGB {
	dst := NewRGB(size, size)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Display renders sym at one pixel per module and scales it to the
// size×size display frame.
func Display(sym *qr.Symbol, size, border int) *RGB {
	return Scale(Raster(sym, 1, border), size)
}
