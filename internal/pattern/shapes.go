package pattern

import (
	"math"

	"padlife/internal/core"
)

// canvas paints into a grid buffer using padded coordinates, where the
// interior spans 1..w and 1..h. Writes outside the interior are dropped.
type canvas struct {
	data        []uint8
	w, h, pw    int
	cx, cy      int
	fill, empty uint8
}

func newCanvas(g *core.Grid, p Params) *canvas {
	return &canvas{
		data:  g.Raw(),
		w:     g.W,
		h:     g.H,
		pw:    g.PaddedW(),
		cx:    (g.W + 1) / 2,
		cy:    (g.H + 1) / 2,
		fill:  p.FillValue,
		empty: p.EmptyValue,
	}
}

func (c *canvas) set(px, py int, v uint8) {
	if px < 1 || px > c.w || py < 1 || py > c.h {
		return
	}
	c.data[py*c.pw+px] = v
}

// rect fills the inclusive rectangle (x0,y0)-(x1,y1) clipped to the interior.
func (c *canvas) rect(x0, y0, x1, y1 int, v uint8) {
	x0, x1 = max(x0, 1), min(x1, c.w)
	y0, y1 = max(y0, 1), min(y1, c.h)
	for py := y0; py <= y1; py++ {
		row := c.data[py*c.pw:]
		for px := x0; px <= x1; px++ {
			row[px] = v
		}
	}
}

// each calls fn for every interior cell with its offset from the centre.
func (c *canvas) each(fn func(px, py, dx, dy int)) {
	for py := 1; py <= c.h; py++ {
		for px := 1; px <= c.w; px++ {
			fn(px, py, px-c.cx, py-c.cy)
		}
	}
}

// brush stamps a t by t square roughly centred on (px, py).
func (c *canvas) brush(px, py, t int) {
	lo := -(t - 1) / 2
	c.rect(px+lo, py+lo, px+lo+t-1, py+lo+t-1, c.fill)
}

// line plots a Bresenham line from (x0,y0) to (x1,y1) with a square brush.
func (c *canvas) line(x0, y0, x1, y1, t int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.brush(x0, y0, t)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// reach returns n limited to the largest distance from the centre that can
// still land on an interior cell. Larger radii and lengths draw the same
// cells.
func (c *canvas) reach(n int) int {
	return min(n, c.w+c.h)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mod is the non-negative remainder of a/m.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// band reports whether offset d falls inside a line of thickness t centred
// on zero.
func band(d, t int) bool {
	return d >= -(t-1)/2 && d <= t/2
}

func square(c *canvas, p Params) {
	x0 := c.cx - p.Size/2
	y0 := c.cy - p.Size/2
	c.rect(x0, y0, x0+p.Size-1, y0+p.Size-1, c.fill)
}

func circle(c *canvas, p Params) {
	r := c.reach(p.Size)
	r2 := r * r
	c.each(func(px, py, dx, dy int) {
		if dx*dx+dy*dy <= r2 {
			c.set(px, py, c.fill)
		}
	})
}

func plus(c *canvas, p Params) {
	c.each(func(px, py, dx, dy int) {
		if (abs(dx) <= p.Size && band(dy, p.Thickness)) || (abs(dy) <= p.Size && band(dx, p.Thickness)) {
			c.set(px, py, c.fill)
		}
	})
}

func cross(c *canvas, p Params) {
	c.each(func(px, py, dx, dy int) {
		if abs(dx) > p.Size || abs(dy) > p.Size {
			return
		}
		if band(dx-dy, p.Thickness) || band(dx+dy, p.Thickness) {
			c.set(px, py, c.fill)
		}
	})
}

func border(c *canvas, p Params) {
	t := p.Thickness
	c.each(func(px, py, _, _ int) {
		x, y := px-1, py-1
		if x < t || x >= c.w-t || y < t || y >= c.h-t {
			c.set(px, py, c.fill)
		}
	})
}

func checkerboard(c *canvas, p Params) {
	c.each(func(px, py, _, _ int) {
		if ((px-1)/p.Size+(py-1)/p.Size)%2 == 0 {
			c.set(px, py, c.fill)
			return
		}
		c.set(px, py, c.empty)
	})
}

func stripe(c *canvas, p Params) {
	c.each(func(px, py, _, _ int) {
		if (px-1)%p.Spacing < p.Thickness {
			c.set(px, py, c.fill)
		}
	})
}

func diagonal(c *canvas, p Params) {
	c.each(func(px, py, _, _ int) {
		d := px - py
		if p.Spacing > 0 {
			d = mod(d+p.Spacing/2, p.Spacing) - p.Spacing/2
		}
		if abs(d) < p.Thickness {
			c.set(px, py, c.fill)
		}
	})
}

func circleRingGrid(c *canvas, p Params) {
	r := c.reach(p.Size)
	inner := c.reach(p.Size - p.Thickness)
	c.each(func(px, py, dx, dy int) {
		if p.Spacing > 0 {
			dx = mod(dx+p.Spacing/2, p.Spacing) - p.Spacing/2
			dy = mod(dy+p.Spacing/2, p.Spacing) - p.Spacing/2
		}
		d2 := dx*dx + dy*dy
		if d2 <= r*r && (inner <= 0 || d2 > inner*inner) {
			c.set(px, py, c.fill)
		}
	})
}

func radialSpokes(c *canvas, p Params) {
	size := float64(c.reach(p.Size))
	for k := 0; k < p.Spokes; k++ {
		a := 2 * math.Pi * float64(k) / float64(p.Spokes)
		ex := c.cx + int(math.Round(size*math.Cos(a)))
		ey := c.cy + int(math.Round(size*math.Sin(a)))
		c.line(c.cx, c.cy, ex, ey, p.Thickness)
	}
}

func symmetricHalf(c *canvas, p Params) {
	rng := core.NewRNGFrom(p.Seed)
	half := (c.w + 1) / 2
	for py := 1; py <= c.h; py++ {
		for x := 0; x < half; x++ {
			if rng.Chance(p.Probability) {
				c.set(x+1, py, c.fill)
				c.set(c.w-x, py, c.fill)
			}
		}
	}
}
