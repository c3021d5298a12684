package qr

// matrix is the working grid of a symbol under construction. Function
// modules (finder, timing, alignment, format and version areas) are
// flagged so data placement and masking leave them alone.
type matrix struct {
	size     int
	dark     []bool // y*size + x
	function []bool
}

func newMatrix(version int) *matrix {
	size := SizeOf(version)
	return &matrix{
		size:     size,
		dark:     make([]bool, size*size),
		function: make([]bool, size*size),
	}
}

func (m *matrix) get(x, y int) bool { return m.dark[y*m.size+x] }

func (m *matrix) setFunction(x, y int, dark bool) {
	m.dark[y*m.size+x] = dark
	m.function[y*m.size+x] = true
}

// drawFunctionPatterns places every pattern that does not depend on the
// payload. Format bits are drawn with a placeholder so the area is
// reserved; they are redrawn once the mask is known.
func (m *matrix) drawFunctionPatterns(version int) {
	for i := 0; i < m.size; i++ {
		m.setFunction(6, i, i%2 == 0)
		m.setFunction(i, 6, i%2 == 0)
	}

	m.drawFinder(3, 3)
	m.drawFinder(m.size-4, 3)
	m.drawFinder(3, m.size-4)

	pos := alignmentPositions(version)
	last := len(pos) - 1
	for i := range pos {
		for j := range pos {
			// Corners already hold finder patterns.
			if (i == 0 && j == 0) || (i == 0 && j == last) || (i == last && j == 0) {
				continue
			}
			m.drawAlignment(pos[i], pos[j])
		}
	}

	m.drawFormatBits(Medium, 0)
	m.drawVersionBits(version)
}

// drawFinder draws a finder pattern centred at (cx, cy) together with its
// light separator.
func (m *matrix) drawFinder(cx, cy int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || x >= m.size || y < 0 || y >= m.size {
				continue
			}
			d := max(abs(dx), abs(dy))
			m.setFunction(x, y, d != 2 && d != 4)
		}
	}
}

func (m *matrix) drawAlignment(cx, cy int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			m.setFunction(cx+dx, cy+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// formatBits returns the 15-bit format word for level and mask: five data
// bits, a BCH(15,5) remainder, XORed with 0x5412.
func formatBits(level Level, mask int) int {
	data := level.formatBits()<<3 | mask
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ (rem>>9)*0x537
	}
	return (data<<10 | rem) ^ 0x5412
}

// versionBits returns the 18-bit version word: six data bits followed by a
// BCH(18,6) remainder.
func versionBits(version int) int {
	rem := version
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ (rem>>11)*0x1F25
	}
	return version<<12 | rem
}

func (m *matrix) drawFormatBits(level Level, mask int) {
	bits := formatBits(level, mask)
	bit := func(i int) bool { return bits>>uint(i)&1 != 0 }

	// Around the top-left finder.
	for i := 0; i <= 5; i++ {
		m.setFunction(8, i, bit(i))
	}
	m.setFunction(8, 7, bit(6))
	m.setFunction(8, 8, bit(7))
	m.setFunction(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		m.setFunction(14-i, 8, bit(i))
	}

	// Split between the other two finders.
	for i := 0; i < 8; i++ {
		m.setFunction(m.size-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		m.setFunction(8, m.size-15+i, bit(i))
	}
	m.setFunction(8, m.size-8, true)
}

func (m *matrix) drawVersionBits(version int) {
	if version < 7 {
		return
	}
	bits := versionBits(version)
	for i := 0; i < 18; i++ {
		dark := bits>>uint(i)&1 != 0
		a, b := m.size-11+i%3, i/3
		m.setFunction(a, b, dark)
		m.setFunction(b, a, dark)
	}
}

// drawCodewords streams the codeword bits into the non-function modules in
// the standard zigzag order: column pairs from the right edge, alternating
// upward and downward, skipping the vertical timing column. Modules left
// over after the last bit stay light.
func (m *matrix) drawCodewords(codewords []byte) {
	i, total := 0, len(codewords)*8
	for right := m.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < m.size; vert++ {
			y := vert
			if upward {
				y = m.size - 1 - vert
			}
			for j := 0; j < 2; j++ {
				x := right - j
				if m.function[y*m.size+x] || i >= total {
					continue
				}
				m.dark[y*m.size+x] = codewords[i>>3]>>uint(7-i&7)&1 != 0
				i++
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
