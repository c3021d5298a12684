// Package qr encodes text into QR Code Model 2 symbols (ISO/IEC 18004),
// versions 1 through 40, at all four error correction levels.
//
// The payload is encoded as a single segment in the most compact of the
// numeric, alphanumeric and byte modes, in the smallest version that holds
// it. The data mask is chosen by the standard penalty rules.
//
//	sym, err := qr.Encode("HELLO", qr.Medium)
//	if err != nil {
//		return err
//	}
//	for y := 0; y < sym.Size; y++ {
//		for x := 0; x < sym.Size; x++ {
//			_ = sym.Dark(x, y)
//		}
//	}
package qr

import "fmt"

type options struct {
	minVersion int
	maxVersion int
	mask       int // -1 selects automatically
	mode       Mode
	boost      bool
}

// Option adjusts how a payload is encoded.
type Option func(*options)

// WithVersionRange limits the versions considered to [min, max].
func WithVersionRange(min, max int) Option {
	return func(o *options) {
		o.minVersion, o.maxVersion = min, max
	}
}

// WithMask forces data mask m (0-7) instead of choosing the lowest penalty.
func WithMask(m int) Option {
	return func(o *options) { o.mask = m }
}

// WithMode forces the encoding mode. A payload the mode cannot represent
// fails with ErrInvalidCharacter.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithBoostLevel raises the error correction level as far as possible
// without growing the symbol.
func WithBoostLevel() Option {
	return func(o *options) { o.boost = true }
}

// Encode encodes text at the given error correction level.
func Encode(text string, level Level) (*Symbol, error) {
	return EncodeBytes([]byte(text), level)
}

// EncodeBytes encodes data at the given error correction level.
func EncodeBytes(data []byte, level Level, opts ...Option) (*Symbol, error) {
	o := options{minVersion: MinVersion, maxVersion: MaxVersion, mask: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.check(level); err != nil {
		return nil, err
	}

	mode := o.mode
	if mode == ModeAuto {
		mode = classify(data)
	} else if err := mode.validate(data); err != nil {
		return nil, err
	}

	version, used := 0, 0
	for v := o.minVersion; v <= o.maxVersion; v++ {
		bits, ok := segmentBits(mode, len(data), v)
		if ok && bits <= dataCodewords(v, level)*8 {
			version, used = v, bits
			break
		}
	}
	if version == 0 {
		bits, _ := segmentBits(mode, len(data), o.maxVersion)
		return nil, fmt.Errorf("%w: %d bytes in %s mode need %d bits, version %d-%s holds %d",
			ErrDataTooLong, len(data), mode, bits, o.maxVersion, level, dataCodewords(o.maxVersion, level)*8)
	}

	if o.boost {
		for l := level + 1; l <= High; l++ {
			if used <= dataCodewords(version, l)*8 {
				level = l
			}
		}
	}

	codewords := addECC(dataStream(mode, data, version, level), version, level)

	m := newMatrix(version)
	m.drawFunctionPatterns(version)
	m.drawCodewords(codewords)

	mask := o.mask
	if mask < 0 {
		mask = m.chooseMask(level)
	}
	m.applyMask(mask)
	m.drawFormatBits(level, mask)

	return &Symbol{
		Version: version,
		Size:    m.size,
		Level:   level,
		Mode:    mode,
		Mask:    mask,
		dark:    m.dark,
	}, nil
}

func (o options) check(level Level) error {
	switch {
	case !level.valid():
		return fmt.Errorf("%w: level %s", errInvalidOption, level)
	case o.minVersion < MinVersion || o.maxVersion > MaxVersion || o.minVersion > o.maxVersion:
		return fmt.Errorf("%w: version range %d-%d", errInvalidOption, o.minVersion, o.maxVersion)
	case o.mask < -1 || o.mask > 7:
		return fmt.Errorf("%w: mask %d", errInvalidOption, o.mask)
	case o.mode < ModeAuto || o.mode > ModeByte:
		return fmt.Errorf("%w: mode %s", errInvalidOption, o.mode)
	}
	return nil
}

// segmentBits is the length of a single segment of n characters at
// version, header included. ok is false when n overflows the count field.
func segmentBits(mode Mode, n, version int) (bits int, ok bool) {
	cc := mode.countBits(version)
	return 4 + cc + mode.dataBits(n), n < 1<<uint(cc)
}

// dataStream builds the data codewords: segment header and payload, the
// terminator, zero bits to a byte boundary and alternating pad bytes.
func dataStream(mode Mode, data []byte, version int, level Level) []byte {
	capacity := dataCodewords(version, level) * 8

	var b bitBuffer
	b.appendBits(mode.indicator(), 4)
	b.appendBits(uint32(len(data)), mode.countBits(version))
	mode.pack(&b, data)

	b.appendBits(0, min(4, capacity-b.len()))
	b.appendBits(0, (8-b.len()%8)%8)
	for pad := uint32(0xEC); b.len() < capacity; pad ^= 0xEC ^ 0x11 {
		b.appendBits(pad, 8)
	}
	return b.bytes()
}

// addECC splits data into blocks, appends Reed-Solomon codewords to each
// and interleaves the result. Short blocks come first; long blocks carry
// one extra data codeword.
func addECC(data []byte, version int, level Level) []byte {
	numBlocks := eccBlocks[level][version]
	eccLen := eccCodewordsPerBlock[level][version]
	raw := rawDataModules(version) / 8
	numShort := numBlocks - raw%numBlocks
	shortLen := raw / numBlocks

	gen := rsGenerator(eccLen)
	blocks := make([][]byte, numBlocks)
	for i, k := 0, 0; i < numBlocks; i++ {
		n := shortLen - eccLen
		if i >= numShort {
			n++
		}
		dat := data[k : k+n]
		k += n
		block := make([]byte, 0, shortLen+1)
		block = append(block, dat...)
		if i < numShort {
			block = append(block, 0)
		}
		blocks[i] = append(block, rsRemainder(dat, gen)...)
	}

	out := make([]byte, 0, raw)
	for i := range blocks[0] {
		for j, block := range blocks {
			// Skip the placeholder byte in short blocks.
			if i != shortLen-eccLen || j >= numShort {
				out = append(out, block[i])
			}
		}
	}
	return out
}
