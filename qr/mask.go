package qr

// maskFuncs are the eight data mask conditions; a module at column x,
// row y is inverted when the condition holds.
var maskFuncs = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// applyMask XORs mask into every non-function module. Applying the same
// mask twice restores the grid.
func (m *matrix) applyMask(mask int) {
	f := maskFuncs[mask]
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			i := y*m.size + x
			if !m.function[i] && f(x, y) {
				m.dark[i] = !m.dark[i]
			}
		}
	}
}

// chooseMask tries every mask and returns the one with the lowest penalty,
// preferring the lowest index on ties. The matrix is left unmasked.
func (m *matrix) chooseMask(level Level) int {
	best, bestScore := 0, -1
	for mask := range maskFuncs {
		m.applyMask(mask)
		m.drawFormatBits(level, mask)
		if score := Penalty(m.grid()); bestScore < 0 || score < bestScore {
			best, bestScore = mask, score
		}
		m.applyMask(mask)
	}
	return best
}

// grid returns the matrix as rows of modules, [y][x].
func (m *matrix) grid() [][]bool {
	g := make([][]bool, m.size)
	for y := range g {
		g[y] = m.dark[y*m.size : (y+1)*m.size]
	}
	return g
}
