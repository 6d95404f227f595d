package pattern

import (
	"errors"
	"slices"
	"testing"

	"padlife/internal/core"
)

func newGrid(t *testing.T, w, h int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestAllKindsKeepPaddingClear(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 7}, {9, 3}, {25, 25}, {64, 40}}
	for _, kind := range Kinds() {
		for _, sz := range sizes {
			g := newGrid(t, sz[0], sz[1])
			p := Defaults(kind, sz[0], sz[1]).Seeded(1)
			if err := Apply(g, kind, p); err != nil {
				t.Fatalf("%v %v: %v", kind, sz, err)
			}
			if !g.PaddingClear() {
				t.Fatalf("%v on %dx%d wrote into padding", kind, sz[0], sz[1])
			}
		}
	}
}

func TestSeededGeneratorsAreDeterministic(t *testing.T) {
	for _, kind := range Kinds() {
		p := Defaults(kind, 48, 32).Seeded(4242)
		a := newGrid(t, 48, 32)
		b := newGrid(t, 48, 32)
		if err := Apply(a, kind, p); err != nil {
			t.Fatal(err)
		}
		if err := Apply(b, kind, p); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(a.Raw(), b.Raw()) {
			t.Fatalf("%v: same seed produced different grids", kind)
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	for _, kind := range []Kind{RandomNoise, PerlinIslands, RoomsAndCorridors, SymmetricHalf} {
		a := newGrid(t, 64, 64)
		b := newGrid(t, 64, 64)
		_ = Apply(a, kind, Defaults(kind, 64, 64).Seeded(1))
		_ = Apply(b, kind, Defaults(kind, 64, 64).Seeded(2))
		if a.Equal(b) {
			t.Fatalf("%v: seeds 1 and 2 produced identical grids", kind)
		}
	}
}

func TestDegenerateParamsAreNoOps(t *testing.T) {
	cases := []struct {
		kind Kind
		mod  func(*Params)
	}{
		{Square, func(p *Params) { p.Size = 0 }},
		{Circle, func(p *Params) { p.Size = -4 }},
		{Plus, func(p *Params) { p.Thickness = 0 }},
		{Cross, func(p *Params) { p.Size = 0 }},
		{Border, func(p *Params) { p.Thickness = -1 }},
		{Checkerboard, func(p *Params) { p.Size = 0 }},
		{Stripe, func(p *Params) { p.Spacing = 0 }},
		{RadialSpokes, func(p *Params) { p.Spokes = 0 }},
		{RoomsAndCorridors, func(p *Params) { p.RoomCount = 0 }},
		{PerlinIslands, func(p *Params) { p.Scale = 0 }},
		{CircleRingGrid, func(p *Params) { p.Thickness = 0 }},
	}
	for _, tc := range cases {
		g := newGrid(t, 10, 10)
		_ = g.Set(3, 3, core.Blocked)
		before := slices.Clone(g.Raw())
		p := Defaults(tc.kind, 10, 10)
		tc.mod(&p)
		if Valid(tc.kind, p) {
			t.Fatalf("%v: params should be reported invalid", tc.kind)
		}
		if err := Apply(g, tc.kind, p); err != nil {
			t.Fatalf("%v: %v", tc.kind, err)
		}
		if !slices.Equal(before, g.Raw()) {
			t.Fatalf("%v: degenerate params modified the grid", tc.kind)
		}
	}
}

func TestApplyUninitializedIsNoOp(t *testing.T) {
	var g core.Grid
	if err := Apply(&g, Square, Defaults(Square, 5, 5)); err != nil {
		t.Fatalf("uninitialized grid: %v", err)
	}
	if err := Apply(nil, Circle, Defaults(Circle, 5, 5)); err != nil {
		t.Fatalf("nil grid: %v", err)
	}
}

func TestApplyUnknownKind(t *testing.T) {
	g := newGrid(t, 4, 4)
	if err := Apply(g, Kind(99), Params{}); !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("err=%v, want ErrUnknownPattern", err)
	}
}

func TestSquareCentered(t *testing.T) {
	g := newGrid(t, 7, 7)
	p := Defaults(Square, 7, 7)
	p.Size = 3
	if err := Apply(g, Square, p); err != nil {
		t.Fatal(err)
	}
	if got := g.Count(core.Alive); got != 9 {
		t.Fatalf("alive=%d, want 9", got)
	}
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			if v, _ := g.Get(x, y); v != core.Alive {
				t.Fatalf("(%d,%d) not filled", x, y)
			}
		}
	}
}

func TestSquareClampsToInterior(t *testing.T) {
	g := newGrid(t, 5, 4)
	p := Defaults(Square, 5, 4)
	p.Size = 100
	_ = Apply(g, Square, p)
	if got := g.Count(core.Alive); got != 20 {
		t.Fatalf("oversized square filled %d cells, want 20", got)
	}
}

func TestBorderThickness(t *testing.T) {
	g := newGrid(t, 10, 8)
	p := Defaults(Border, 10, 8)
	p.Thickness = 2
	_ = Apply(g, Border, p)
	if got, want := g.Count(core.Alive), 10*8-6*4; got != want {
		t.Fatalf("border cells %d, want %d", got, want)
	}
}

func TestCheckerboardAlternates(t *testing.T) {
	g := newGrid(t, 6, 6)
	p := Defaults(Checkerboard, 6, 6)
	p.Size = 2
	p.EmptyValue = core.Blocked
	_ = Apply(g, Checkerboard, p)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := core.Alive
			if (x/2+y/2)%2 == 1 {
				want = core.Blocked
			}
			if v, _ := g.Get(x, y); v != want {
				t.Fatalf("(%d,%d)=%d, want %d", x, y, v, want)
			}
		}
	}
}

func TestStripePeriod(t *testing.T) {
	g := newGrid(t, 9, 2)
	p := Defaults(Stripe, 9, 2)
	p.Thickness = 1
	p.Spacing = 3
	_ = Apply(g, Stripe, p)
	for x := 0; x < 9; x++ {
		v, _ := g.Get(x, 1)
		if (x%3 == 0) != (v == core.Alive) {
			t.Fatalf("column %d state %d", x, v)
		}
	}
}

func TestCircleIsSymmetric(t *testing.T) {
	g := newGrid(t, 21, 21)
	_ = Apply(g, Circle, Defaults(Circle, 21, 21))
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			a, _ := g.Get(x, y)
			b, _ := g.Get(20-x, y)
			c, _ := g.Get(x, 20-y)
			if a != b || a != c {
				t.Fatalf("circle not symmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestSymmetricHalfMirrors(t *testing.T) {
	g := newGrid(t, 15, 9)
	_ = Apply(g, SymmetricHalf, Defaults(SymmetricHalf, 15, 9).Seeded(8))
	for y := 0; y < 9; y++ {
		for x := 0; x < 15; x++ {
			a, _ := g.Get(x, y)
			b, _ := g.Get(14-x, y)
			if a != b {
				t.Fatalf("row %d not mirrored at column %d", y, x)
			}
		}
	}
}

func TestRadialSpokesReachCenter(t *testing.T) {
	g := newGrid(t, 31, 31)
	_ = Apply(g, RadialSpokes, Defaults(RadialSpokes, 31, 31))
	if v, _ := g.Get(15, 15); v != core.Alive {
		t.Fatal("spokes must pass through the centre")
	}
	if v, _ := g.Get(29, 15); v != core.Alive {
		t.Fatal("spoke at angle zero must extend to the right")
	}
}

func TestFillValueBlocked(t *testing.T) {
	g := newGrid(t, 12, 12)
	p := Defaults(Border, 12, 12)
	p.FillValue = core.Blocked
	_ = Apply(g, Border, p)
	if g.Count(core.Blocked) == 0 || g.Count(core.Alive) != 0 {
		t.Fatal("border should be painted with the blocked state only")
	}
}

func TestClearFirstFalseKeepsCells(t *testing.T) {
	g := newGrid(t, 9, 9)
	_ = g.Set(0, 0, core.Blocked)
	p := Defaults(Square, 9, 9)
	p.Size = 1
	p.ClearFirst = false
	_ = Apply(g, Square, p)
	if v, _ := g.Get(0, 0); v != core.Blocked {
		t.Fatal("ClearFirst=false must keep existing cells")
	}
	p.ClearFirst = true
	_ = Apply(g, Square, p)
	if v, _ := g.Get(0, 0); v != core.Dead {
		t.Fatal("ClearFirst=true must clear existing cells")
	}
}

func TestSpanningEdgesConnectAllRooms(t *testing.T) {
	rooms := []room{
		{x0: 1, y0: 1, x1: 2, y1: 2},
		{x0: 20, y0: 1, x1: 21, y1: 2},
		{x0: 1, y0: 20, x1: 2, y1: 21},
		{x0: 10, y0: 10, x1: 11, y1: 11},
	}
	edges := spanningEdges(rooms)
	if len(edges) != len(rooms)-1 {
		t.Fatalf("edges=%d, want %d", len(edges), len(rooms)-1)
	}
	// Room 3 is nearest to room 0, so Prim attaches it first.
	if edges[0] != [2]int{0, 3} {
		t.Fatalf("first edge %v, want [0 3]", edges[0])
	}
	seen := map[int]bool{0: true}
	for _, e := range edges {
		if !seen[e[0]] {
			t.Fatalf("edge %v starts outside the tree", e)
		}
		seen[e[1]] = true
	}
	if len(seen) != len(rooms) {
		t.Fatal("not every room was connected")
	}
}

// Corridors must connect every room: a flood fill from the first room's
// centre reaches all filled cells.
func TestRoomsAndCorridorsConnected(t *testing.T) {
	const w, h = 60, 40
	g := newGrid(t, w, h)
	p := Defaults(RoomsAndCorridors, w, h).Seeded(77)
	if err := Apply(g, RoomsAndCorridors, p); err != nil {
		t.Fatal(err)
	}
	c := newCanvas(g, p)
	rooms := placeRooms(c, p, core.NewRNG(77))
	sx, sy := rooms[0].center()

	filled := g.Count(core.Alive)
	visited := map[[2]int]bool{}
	stack := [][2]int{{sx - 1, sy - 1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		if v, err := g.Get(cur[0], cur[1]); err != nil || v != core.Alive {
			continue
		}
		visited[cur] = true
		stack = append(stack, [2]int{cur[0] + 1, cur[1]}, [2]int{cur[0] - 1, cur[1]}, [2]int{cur[0], cur[1] + 1}, [2]int{cur[0], cur[1] - 1})
	}
	if len(visited) != filled {
		t.Fatalf("flood fill reached %d of %d filled cells", len(visited), filled)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("perlinislands"); err != nil || k != PerlinIslands {
		t.Fatalf("case-insensitive parse failed: %v %v", k, err)
	}
	if _, err := ParseKind("spiral"); !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("err=%v", err)
	}
}

// rows renders the interior with '#' for filled cells and '.' otherwise.
func rows(g *core.Grid) []string {
	out := make([]string, g.H)
	for y := 0; y < g.H; y++ {
		b := make([]byte, g.W)
		for x := 0; x < g.W; x++ {
			b[x] = '.'
			if v, _ := g.Get(x, y); v == core.Alive {
				b[x] = '#'
			}
		}
		out[y] = string(b)
	}
	return out
}

func TestGeometricShapes(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		w, h int
		set  func(p *Params)
		want []string
	}{
		{"plus thin", Plus, 9, 9, func(p *Params) { p.Size, p.Thickness = 2, 1 }, []string{
			".........",
			".........",
			"....#....",
			"....#....",
			"..#####..",
			"....#....",
			"....#....",
			".........",
			".........",
		}},
		{"plus thick", Plus, 9, 9, func(p *Params) { p.Size, p.Thickness = 3, 2 }, []string{
			".........",
			"....##...",
			"....##...",
			"....##...",
			".#######.",
			".#######.",
			"....##...",
			"....##...",
			".........",
		}},
		{"cross", Cross, 9, 9, func(p *Params) { p.Size, p.Thickness = 2, 1 }, []string{
			".........",
			".........",
			"..#...#..",
			"...#.#...",
			"....#....",
			"...#.#...",
			"..#...#..",
			".........",
			".........",
		}},
		{"diagonal single band", Diagonal, 6, 6, func(p *Params) { p.Thickness, p.Spacing = 2, 0 }, []string{
			"##....",
			"###...",
			".###..",
			"..###.",
			"...###",
			"....##",
		}},
		{"diagonal repeating", Diagonal, 6, 6, func(p *Params) { p.Thickness, p.Spacing = 1, 3 }, []string{
			"#..#..",
			".#..#.",
			"..#..#",
			"#..#..",
			".#..#.",
			"..#..#",
		}},
		{"ring", CircleRingGrid, 9, 9, func(p *Params) { p.Size, p.Thickness, p.Spacing = 2, 1, 0 }, []string{
			".........",
			".........",
			"....#....",
			"...#.#...",
			"..#...#..",
			"...#.#...",
			"....#....",
			".........",
			".........",
		}},
	}
	for _, tc := range cases {
		g := newGrid(t, tc.w, tc.h)
		p := Defaults(tc.kind, tc.w, tc.h)
		tc.set(&p)
		if err := Apply(g, tc.kind, p); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got := rows(g); !slices.Equal(got, tc.want) {
			t.Fatalf("%s:\ngot  %q\nwant %q", tc.name, got, tc.want)
		}
	}
}

func TestCircleRingGridLattice(t *testing.T) {
	g := newGrid(t, 11, 11)
	p := Defaults(CircleRingGrid, 11, 11)
	p.Size, p.Thickness, p.Spacing = 1, 1, 5
	_ = Apply(g, CircleRingGrid, p)

	// Disks of radius 1 at every multiple of 5 from the centre: one whole,
	// four cut by an edge, four cut by a corner.
	if n := g.Count(core.Alive); n != 5+4*4+4*3 {
		t.Fatalf("alive = %d, want 33", n)
	}
	for _, c := range [][2]int{{0, 0}, {5, 5}, {10, 10}, {5, 0}, {1, 0}, {0, 1}, {6, 5}} {
		if v, _ := g.Get(c[0], c[1]); v != core.Alive {
			t.Fatalf("cell %v should be on a lattice disk", c)
		}
	}
	for _, c := range [][2]int{{2, 2}, {3, 5}, {7, 5}, {2, 0}} {
		if v, _ := g.Get(c[0], c[1]); v != core.Dead {
			t.Fatalf("cell %v should be between lattice disks", c)
		}
	}
}

func TestDiagonalWideSpacingMatchesSingleBand(t *testing.T) {
	single := newGrid(t, 12, 7)
	wide := newGrid(t, 12, 7)
	p := Defaults(Diagonal, 12, 7)
	p.Thickness = 2
	p.Spacing = 0
	_ = Apply(single, Diagonal, p)
	p.Spacing = 100
	_ = Apply(wide, Diagonal, p)
	if !single.Equal(wide) {
		t.Fatalf("spacing wider than the grid changed the band:\n%q\n%q", rows(single), rows(wide))
	}
}

func TestOversizedParamsClamp(t *testing.T) {
	for _, size := range []int{1000, 1 << 32, 3037000500} {
		g := newGrid(t, 9, 9)
		p := Defaults(Circle, 9, 9)
		p.Size = size
		_ = Apply(g, Circle, p)
		if n := g.Count(core.Alive); n != 81 {
			t.Fatalf("circle of radius %d filled %d cells, want 81", size, n)
		}
	}

	g := newGrid(t, 9, 9)
	p := Defaults(CircleRingGrid, 9, 9)
	p.Size, p.Thickness, p.Spacing = 1<<32, 1<<32, 0
	_ = Apply(g, CircleRingGrid, p)
	if n := g.Count(core.Alive); n != 81 {
		t.Fatalf("solid ring filled %d cells, want 81", n)
	}
	p.Thickness = 1
	_ = Apply(g, CircleRingGrid, p)
	if n := g.Count(core.Alive); n != 0 {
		t.Fatalf("ring outside the grid filled %d cells", n)
	}

	huge := newGrid(t, 9, 9)
	edge := newGrid(t, 9, 9)
	p = Defaults(RadialSpokes, 9, 9)
	p.Size = 1 << 40
	_ = Apply(huge, RadialSpokes, p)
	p.Size = 9 + 9
	_ = Apply(edge, RadialSpokes, p)
	if !huge.Equal(edge) || huge.Count(core.Alive) == 0 {
		t.Fatalf("long spokes differ from spokes reaching the corners:\n%q\n%q", rows(huge), rows(edge))
	}
}
