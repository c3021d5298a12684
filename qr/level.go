package qr

import (
	"fmt"
	"strings"
)

// Level is the error correction level of a symbol.
type Level int

const (
	Low      Level = iota // recovers ~7% of codewords
	Medium                // ~15%
	Quartile              // ~25%
	High                  // ~30%
)

func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// formatBits returns the two level bits used in format information.
// They are not in level order: L=01, M=00, Q=11, H=10.
func (l Level) formatBits() int {
	switch l {
	case Low:
		return 1
	case Medium:
		return 0
	case Quartile:
		return 3
	default:
		return 2
	}
}

func (l Level) valid() bool {
	return l >= Low && l <= High
}

// ParseLevel accepts a single letter (L, M, Q, H) or the full level name,
// case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "m", "medium":
		return Medium, nil
	case "q", "quartile":
		return Quartile, nil
	case "h", "high":
		return High, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}
