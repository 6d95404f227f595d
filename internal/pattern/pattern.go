// Package pattern fills the interior of a grid with procedural start states.
//
// Generators never touch the padding ring. Geometry that extends past the
// interior is clipped, and a generator whose size parameters are not positive
// leaves the grid unchanged. Generators that draw random numbers are
// reproducible when Params.Seed is set.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"padlife/internal/core"
)

// ErrUnknownPattern is returned by Apply for a Kind without a generator.
var ErrUnknownPattern = errors.New("unknown pattern")

// Kind names a pattern generator.
type Kind int

const (
	Square Kind = iota
	Circle
	Plus
	Cross
	Border
	Checkerboard
	RandomNoise
	PerlinIslands
	RoomsAndCorridors
	Diagonal
	SymmetricHalf
	CircleRingGrid
	RadialSpokes
	Stripe
)

var kindNames = [...]string{
	Square:            "Square",
	Circle:            "Circle",
	Plus:              "Plus",
	Cross:             "Cross",
	Border:            "Border",
	Checkerboard:      "Checkerboard",
	RandomNoise:       "RandomNoise",
	PerlinIslands:     "PerlinIslands",
	RoomsAndCorridors: "RoomsAndCorridors",
	Diagonal:          "Diagonal",
	SymmetricHalf:     "SymmetricHalf",
	CircleRingGrid:    "CircleRingGrid",
	RadialSpokes:      "RadialSpokes",
	Stripe:            "Stripe",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every pattern in selection order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind looks a pattern up by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

// Params configures a generator. Each generator reads only the fields it
// documents; the rest are ignored.
type Params struct {
	// Size is the primary extent: side, radius, arm length or cell size.
	Size int
	// Thickness is the width of lines, bars, rings and stripes.
	Thickness int
	// Spacing is the repeat period of stripes, bands and ring lattices.
	Spacing int
	// Probability is the chance a cell is filled by noise generators.
	Probability float64
	// Scale is the noise frequency for PerlinIslands.
	Scale float64
	// Threshold is the noise level above which PerlinIslands fills a cell.
	Threshold float64

	RoomCount     int
	RoomMin       int
	RoomMax       int
	CorridorWidth int

	// Spokes is the number of rays drawn by RadialSpokes.
	Spokes int

	// Seed makes random generators reproducible. Nil draws from the
	// process-wide source.
	Seed *uint64

	FillValue  uint8
	EmptyValue uint8
	ClearFirst bool
}

// Seeded returns a copy of p with Seed set.
func (p Params) Seeded(seed uint64) Params {
	p.Seed = &seed
	return p
}

// Defaults returns the documented parameters of kind for a w by h interior.
func Defaults(kind Kind, w, h int) Params {
	short := min(w, h)
	p := Params{
		FillValue:  core.Alive,
		EmptyValue: core.Dead,
		ClearFirst: true,
		Thickness:  1,
	}
	switch kind {
	case Square:
		p.Size = max(w/2, 1)
	case Circle:
		p.Size = max(short/3, 1)
	case Plus, Cross:
		p.Size = max(short/3, 1)
		p.Thickness = max(short/16, 1)
	case Border:
		p.Thickness = max(short/16, 1)
	case Checkerboard:
		p.Size = max(short/16, 1)
	case RandomNoise:
		p.Probability = 0.2
	case PerlinIslands:
		p.Scale = 0.08
		p.Threshold = 0.1
	case RoomsAndCorridors:
		p.RoomCount = 8
		p.RoomMin = max(short/12, 2)
		p.RoomMax = max(short/6, 3)
		p.CorridorWidth = 1
	case Diagonal:
		p.Thickness = 2
		p.Spacing = max(short/4, 4)
	case SymmetricHalf:
		p.Probability = 0.3
	case CircleRingGrid:
		p.Size = max(short/10, 2)
		p.Thickness = 1
		p.Spacing = max(short/4, 5)
	case RadialSpokes:
		p.Size = max(short/2-1, 1)
		p.Spokes = 8
	case Stripe:
		p.Thickness = 1
		p.Spacing = 3
	}
	return p
}

type generator func(c *canvas, p Params)

var generators = map[Kind]generator{
	Square:            square,
	Circle:            circle,
	Plus:              plus,
	Cross:             cross,
	Border:            border,
	Checkerboard:      checkerboard,
	RandomNoise:       randomNoise,
	PerlinIslands:     perlinIslands,
	RoomsAndCorridors: roomsAndCorridors,
	Diagonal:          diagonal,
	SymmetricHalf:     symmetricHalf,
	CircleRingGrid:    circleRingGrid,
	RadialSpokes:      radialSpokes,
	Stripe:            stripe,
}

// Apply runs the generator for kind on g. An uninitialized grid is left
// alone and is not an error.
func Apply(g *core.Grid, kind Kind, p Params) error {
	gen, ok := generators[kind]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownPattern, kind)
	}
	if !g.Initialized() {
		return nil
	}
	if !Valid(kind, p) {
		return nil
	}
	c := newCanvas(g, p)
	if p.ClearFirst {
		g.ClearInterior(p.EmptyValue)
	}
	gen(c, p)
	return nil
}

// Valid reports whether the size parameters kind depends on are positive.
// Apply leaves the grid untouched when they are not.
func Valid(kind Kind, p Params) bool {
	switch kind {
	case Square, Circle, Checkerboard:
		return p.Size > 0
	case Plus, Cross, CircleRingGrid:
		return p.Size > 0 && p.Thickness > 0
	case Border, Diagonal:
		return p.Thickness > 0
	case Stripe:
		return p.Thickness > 0 && p.Spacing > 0
	case RadialSpokes:
		return p.Size > 0 && p.Spokes > 0 && p.Thickness > 0
	case RoomsAndCorridors:
		return p.RoomCount > 0 && p.RoomMin > 0 && p.CorridorWidth > 0
	case PerlinIslands:
		return p.Scale > 0
	}
	return true
}
