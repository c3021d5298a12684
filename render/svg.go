package render

import (
	"fmt"
	"strings"

	"github.com/openclaw/qrgen/qr"
)

// SVG produces a self-contained SVG document for sym, size pixels wide,
// with a white background and one black rect per horizontal run of dark
// modules.
func SVG(sym *qr.Symbol, size, border int) string {
	border = max(border, 0)
	n := sym.Size + 2*border

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" shape-rendering="crispEdges">`,
		n, n, size, size)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="#fff"/>`, n, n)

	for y := 0; y < sym.Size; y++ {
		for x := 0; x < sym.Size; {
			if !sym.Dark(x, y) {
				x++
				continue
			}
			start := x
			for x < sym.Size && sym.Dark(x, y) {
				x++
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="1" fill="#000"/>`, start+border, y+border, x-start)
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}
