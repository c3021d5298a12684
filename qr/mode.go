package qr

import (
	"fmt"
	"strings"
)

// Mode is a data encoding mode. Each mode can represent every payload the
// previous one can: Numeric < Alphanumeric < Byte.
type Mode int

const (
	ModeAuto Mode = iota
	ModeNumeric
	ModeAlphanumeric
	ModeByte
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeNumeric:
		return "numeric"
	case ModeAlphanumeric:
		return "alphanumeric"
	case ModeByte:
		return "byte"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

func (m Mode) indicator() uint32 {
	switch m {
	case ModeNumeric:
		return 0x1
	case ModeAlphanumeric:
		return 0x2
	default:
		return 0x4
	}
}

// countBits is the width of the character count field for m at version.
func (m Mode) countBits(version int) int {
	i := 0
	switch {
	case version >= 27:
		i = 2
	case version >= 10:
		i = 1
	}
	switch m {
	case ModeNumeric:
		return [3]int{10, 12, 14}[i]
	case ModeAlphanumeric:
		return [3]int{9, 11, 13}[i]
	default:
		return [3]int{8, 16, 16}[i]
	}
}

// dataBits is the number of bits the packed payload of n characters takes.
func (m Mode) dataBits(n int) int {
	switch m {
	case ModeNumeric:
		return n/3*10 + [3]int{0, 4, 7}[n%3]
	case ModeAlphanumeric:
		return n/2*11 + n%2*6
	default:
		return n * 8
	}
}

func isNumeric(c byte) bool { return c >= '0' && c <= '9' }

func isAlphanumeric(c byte) bool { return strings.IndexByte(alphanumericCharset, c) >= 0 }

// classify returns the most compact mode able to represent data.
func classify(data []byte) Mode {
	mode := ModeNumeric
	for _, c := range data {
		if isNumeric(c) {
			continue
		}
		if isAlphanumeric(c) {
			mode = ModeAlphanumeric
			continue
		}
		return ModeByte
	}
	return mode
}

// validate reports the first byte of data m cannot represent.
func (m Mode) validate(data []byte) error {
	var ok func(byte) bool
	switch m {
	case ModeNumeric:
		ok = isNumeric
	case ModeAlphanumeric:
		ok = isAlphanumeric
	case ModeByte:
		return nil
	default:
		return fmt.Errorf("%w: mode %s", errInvalidOption, m)
	}
	for i, c := range data {
		if !ok(c) {
			return fmt.Errorf("%w: %q at offset %d in %s mode", ErrInvalidCharacter, c, i, m)
		}
	}
	return nil
}

// pack appends the packed payload (without header) to b.
func (m Mode) pack(b *bitBuffer, data []byte) {
	switch m {
	case ModeNumeric:
		for i := 0; i < len(data); i += 3 {
			n := min(3, len(data)-i)
			v := uint32(0)
			for _, c := range data[i : i+n] {
				v = v*10 + uint32(c-'0')
			}
			b.appendBits(v, n*3+1)
		}
	case ModeAlphanumeric:
		for i := 0; i+1 < len(data); i += 2 {
			v := uint32(strings.IndexByte(alphanumericCharset, data[i]))*45 +
				uint32(strings.IndexByte(alphanumericCharset, data[i+1]))
			b.appendBits(v, 11)
		}
		if len(data)%2 == 1 {
			b.appendBits(uint32(strings.IndexByte(alphanumericCharset, data[len(data)-1])), 6)
		}
	default:
		for _, c := range data {
			b.appendBits(uint32(c), 8)
		}
	}
}
