package qr

// Symbol is an encoded QR code.
type Symbol struct {
	Version int
	Size    int   // modules per side, 4*Version+17
	Level   Level // level actually encoded, may exceed the requested one when boosted
	Mode    Mode
	Mask    int

	dark []bool // y*Size + x
}

// Dark reports whether the module at column x, row y is dark. Coordinates
// outside the symbol are light.
func (s *Symbol) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Size || y >= s.Size {
		return false
	}
	return s.dark[y*s.Size+x]
}

// Modules returns a copy of the grid indexed [x][y].
func (s *Symbol) Modules() [][]bool {
	out := make([][]bool, s.Size)
	for x := range out {
		out[x] = make([]bool, s.Size)
		for y := range out[x] {
			out[x][y] = s.dark[y*s.Size+x]
		}
	}
	return out
}
