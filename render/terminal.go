package render

import (
	"strings"

	"github.com/openclaw/qrgen/qr"
)

// Terminal draws sym as text using half-block characters, two module rows
// per line. By default dark modules are drawn as filled cells, which suits
// dark-on-light terminals; invert swaps them for light-on-dark terminals.
func Terminal(sym *qr.Symbol, border int, invert bool) string {
	border = max(border, 0)
	n := sym.Size + 2*border
	dark := func(x, y int) bool {
		return sym.Dark(x-border, y-border) != invert
	}

	var sb strings.Builder
	for y := 0; y < n; y += 2 {
		for x := 0; x < n; x++ {
			upper := dark(x, y)
			lower := y+1 < n && dark(x, y+1)
			switch {
			case upper && lower:
				sb.WriteString("█")
			case upper:
				sb.WriteString("▀")
			case lower:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TerminalWidth is the number of columns Terminal output occupies.
func TerminalWidth(sym *qr.Symbol, border int) int {
	return sym.Size + 2*max(border, 0)
}
