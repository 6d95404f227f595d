package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUninitialized is returned when a grid is used before allocation.
	ErrUninitialized = errors.New("grid not initialized")
	// ErrOutOfRange is returned for coordinates outside the interior.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrLengthMismatch is returned when a replacement buffer has the wrong length.
	ErrLengthMismatch = errors.New("buffer length mismatch")
	// ErrInvalidSize is returned when a grid is requested with a non-positive dimension.
	ErrInvalidSize = errors.New("invalid grid size")
	// ErrInvalidState is returned for cell values other than Dead, Alive and Blocked.
	ErrInvalidState = errors.New("invalid cell state")
)

// Grid stores tri-state cells in a row-major buffer surrounded by a one-cell
// ring of dead padding, so neighbour reads of interior cells never leave the
// buffer. W and H are the interior dimensions.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates an empty grid with the given interior dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Grid{W: w, H: h, data: make([]uint8, (w+2)*(h+2))}, nil
}

// Initialized reports whether the grid has a backing buffer.
func (g *Grid) Initialized() bool { return g != nil && g.data != nil }

// Size returns the interior dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// PaddedW is the buffer row stride.
func (g *Grid) PaddedW() int { return g.W + 2 }

// PaddedH is the number of buffer rows.
func (g *Grid) PaddedH() int { return g.H + 2 }

// Index returns the buffer index of interior coordinate (x, y). It does not
// check bounds.
func (g *Grid) Index(x, y int) int { return (y+1)*(g.W+2) + (x + 1) }

// InBounds reports whether (x, y) addresses an interior cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *Grid) check(x, y int) error {
	if !g.Initialized() {
		return ErrUninitialized
	}
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfRange, x, y, g.W, g.H)
	}
	return nil
}

// Get returns the state of interior cell (x, y).
func (g *Grid) Get(x, y int) (uint8, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	return g.data[g.Index(x, y)], nil
}

// Set writes the state of interior cell (x, y).
func (g *Grid) Set(x, y int, v uint8) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	if v > Blocked {
		return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidState, v, x, y)
	}
	g.data[g.Index(x, y)] = v
	return nil
}

// Raw exposes the padded buffer. Callers outside the owning component must
// treat it as read-only.
func (g *Grid) Raw() []uint8 {
	if g == nil {
		return nil
	}
	return g.data
}

// ReplaceBuffer copies buf into the grid. buf must have exactly
// PaddedW*PaddedH entries and every interior entry must be Dead, Alive or
// Blocked; otherwise the grid is left untouched. Padding entries in buf are
// ignored and stay zero.
func (g *Grid) ReplaceBuffer(buf []uint8) error {
	if !g.Initialized() {
		return ErrUninitialized
	}
	if len(buf) != len(g.data) {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(buf), len(g.data))
	}
	pw := g.W + 2
	for y := 1; y <= g.H; y++ {
		for x := 1; x <= g.W; x++ {
			if v := buf[y*pw+x]; v > Blocked {
				return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidState, v, x-1, y-1)
			}
		}
	}
	copy(g.data, buf)
	g.clearPadding()
	return nil
}

func (g *Grid) clearPadding() {
	pw := g.W + 2
	last := (g.H + 1) * pw
	for x := 0; x < pw; x++ {
		g.data[x] = 0
		g.data[last+x] = 0
	}
	for y := 1; y <= g.H; y++ {
		g.data[y*pw] = 0
		g.data[y*pw+pw-1] = 0
	}
}

// ClearInterior sets every interior cell to v.
func (g *Grid) ClearInterior(v uint8) {
	if !g.Initialized() {
		return
	}
	pw := g.W + 2
	for y := 1; y <= g.H; y++ {
		row := g.data[y*pw+1 : y*pw+1+g.W]
		for i := range row {
			row[i] = v
		}
	}
}

// Count returns the number of interior cells holding v.
func (g *Grid) Count(v uint8) int {
	if !g.Initialized() {
		return 0
	}
	pw := g.W + 2
	n := 0
	for y := 1; y <= g.H; y++ {
		for _, c := range g.data[y*pw+1 : y*pw+1+g.W] {
			if c == v {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	if !g.Initialized() {
		return &Grid{}
	}
	c := &Grid{W: g.W, H: g.H, data: make([]uint8, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Equal reports whether both grids have the same size and buffer contents.
func (g *Grid) Equal(o *Grid) bool {
	if !g.Initialized() || !o.Initialized() {
		return g.Initialized() == o.Initialized()
	}
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// PaddingClear reports whether every border cell is zero.
func (g *Grid) PaddingClear() bool {
	if !g.Initialized() {
		return true
	}
	pw := g.W + 2
	last := (g.H + 1) * pw
	for x := 0; x < pw; x++ {
		if g.data[x] != 0 || g.data[last+x] != 0 {
			return false
		}
	}
	for y := 1; y <= g.H; y++ {
		if g.data[y*pw] != 0 || g.data[y*pw+pw-1] != 0 {
			return false
		}
	}
	return true
}

// Wrap is the grid-owning constructor used by step implementations that have
// produced a full padded buffer. buf must have (w+2)*(h+2) entries.
func Wrap(w, h int, buf []uint8) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if len(buf) != (w+2)*(h+2) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(buf), (w+2)*(h+2))
	}
	return &Grid{W: w, H: h, data: buf}, nil
}
