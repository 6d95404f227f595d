package core

// Cell states stored in the grid buffer.
const (
	Dead    uint8 = 0
	Alive   uint8 = 1
	Blocked uint8 = 2
)

// Size describes the interior dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Padded returns the dimensions including the one-cell border ring.
func (s Size) Padded() Size { return Size{W: s.W + 2, H: s.H + 2} }

// Cells returns the number of buffer entries for a padded grid of this size.
func (s Size) Cells() int {
	p := s.Padded()
	return p.W * p.H
}
