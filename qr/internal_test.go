package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// "HELLO WORLD" at 1-M, the worked example from the standard's annex.
var (
	helloWorldData = []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	helloWorldECC  = []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
)

func TestDataStreamHelloWorld(t *testing.T) {
	t.Parallel()

	data := []byte("HELLO WORLD")
	require.Equal(t, ModeAlphanumeric, classify(data))
	assert.Equal(t, helloWorldData, dataStream(ModeAlphanumeric, data, 1, Medium))
}

func TestReedSolomonHelloWorld(t *testing.T) {
	t.Parallel()

	assert.Equal(t, helloWorldECC, rsRemainder(helloWorldData, rsGenerator(10)))
}

func TestAddECCSingleBlock(t *testing.T) {
	t.Parallel()

	got := addECC(helloWorldData, 1, Medium)
	want := append(append([]byte{}, helloWorldData...), helloWorldECC...)
	assert.Equal(t, want, got)
}

func TestAddECCInterleavesBlocks(t *testing.T) {
	t.Parallel()

	// 5-Q: two blocks of 15 data codewords, two of 16, 18 ecc each.
	n := dataCodewords(5, Quartile)
	require.Equal(t, 62, n)
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}

	out := addECC(data, 5, Quartile)
	require.Len(t, out, rawDataModules(5)/8)

	// First column takes the first codeword of each block.
	assert.Equal(t, []byte{0, 15, 30, 46}, out[:4])
	// The 16th data column only exists in the long blocks.
	assert.Equal(t, []byte{14, 29, 44, 60, 45, 61}, out[56:62])
}

func TestGFMul(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0), gfMul(0, 7))
	assert.Equal(t, byte(7), gfMul(1, 7))
	assert.Equal(t, byte(0x1D), gfMul(0x80, 0x02))
	for a := 1; a < 256; a++ {
		inv := gfExp[255-int(gfLog[a])]
		assert.Equal(t, byte(1), gfMul(byte(a), inv), "a=%d", a)
	}
}

func TestRSGeneratorDegree7(t *testing.T) {
	t.Parallel()

	// g(x) = x^7 + α^87x^6 + α^229x^5 + α^146x^4 + α^149x^3 + α^238x^2 + α^102x + α^21
	want := []byte{gfExp[87], gfExp[229], gfExp[146], gfExp[149], gfExp[238], gfExp[102], gfExp[21]}
	assert.Equal(t, want, rsGenerator(7))
}

func TestFormatBits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0x5412, formatBits(Medium, 0))
	assert.Equal(t, 0x77C4, formatBits(Low, 0))
	assert.Equal(t, 0x1689, formatBits(High, 0))
	assert.Equal(t, 0x355F, formatBits(Quartile, 0))
}

func TestVersionBits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0x07C94, versionBits(7))
	assert.Equal(t, 0x085BC, versionBits(8))
	assert.Equal(t, 0x28C69, versionBits(40))
}

func TestRawDataModules(t *testing.T) {
	t.Parallel()

	tests := map[int]int{1: 208, 2: 359, 7: 1568, 40: 29648}
	for v, want := range tests {
		assert.Equal(t, want, rawDataModules(v), "version %d", v)
	}
}

func TestAlignmentPositions(t *testing.T) {
	t.Parallel()

	assert.Nil(t, alignmentPositions(1))
	assert.Equal(t, []int{6, 18}, alignmentPositions(2))
	assert.Equal(t, []int{6, 22, 38}, alignmentPositions(7))
	assert.Equal(t, []int{6, 34, 60, 86, 112, 138}, alignmentPositions(32))
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, alignmentPositions(40))
}

func TestFunctionModulesLeaveRawDataCapacity(t *testing.T) {
	t.Parallel()

	for v := MinVersion; v <= MaxVersion; v++ {
		m := newMatrix(v)
		m.drawFunctionPatterns(v)
		free := 0
		for _, f := range m.function {
			if !f {
				free++
			}
		}
		assert.Equal(t, rawDataModules(v), free, "version %d", v)
	}
}

func TestMaskIsInvolution(t *testing.T) {
	t.Parallel()

	m := newMatrix(3)
	m.drawFunctionPatterns(3)
	m.drawCodewords(addECC(dataStream(ModeByte, []byte("involution"), 3, Low), 3, Low))
	before := append([]bool(nil), m.dark...)
	for mask := range maskFuncs {
		m.applyMask(mask)
		m.applyMask(mask)
		assert.Equal(t, before, m.dark, "mask %d", mask)
	}
}

func TestNumericPacking(t *testing.T) {
	t.Parallel()

	// "01234567" packs as 012 345 67 -> 10 + 10 + 7 bits.
	var b bitBuffer
	ModeNumeric.pack(&b, []byte("01234567"))
	assert.Equal(t, 27, b.len())
	assert.Equal(t, 27, ModeNumeric.dataBits(8))
	assert.Equal(t, []byte{0b00000011, 0b00010101, 0b10011000, 0b01100000}, b.bytes())
}
