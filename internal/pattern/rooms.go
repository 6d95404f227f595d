package pattern

import "padlife/internal/core"

type room struct {
	x0, y0, x1, y1 int
}

func (r room) center() (int, int) {
	return (r.x0 + r.x1) / 2, (r.y0 + r.y1) / 2
}

func dist2(a, b room) int {
	ax, ay := a.center()
	bx, by := b.center()
	dx, dy := ax-bx, ay-by
	return dx*dx + dy*dy
}

// placeRooms draws RoomCount rectangles with sides in [RoomMin, RoomMax],
// clamped so each fits inside the interior.
func placeRooms(c *canvas, p Params, rng *core.RNG) []room {
	lo := p.RoomMin
	hi := max(p.RoomMax, lo)
	rooms := make([]room, 0, p.RoomCount)
	for i := 0; i < p.RoomCount; i++ {
		rw := min(rng.IntRange(lo, hi), c.w)
		rh := min(rng.IntRange(lo, hi), c.h)
		x0 := 1 + rng.IntRange(0, c.w-rw)
		y0 := 1 + rng.IntRange(0, c.h-rh)
		rooms = append(rooms, room{x0: x0, y0: y0, x1: x0 + rw - 1, y1: y0 + rh - 1})
	}
	return rooms
}

// spanningEdges connects rooms with Prim's algorithm over squared centre
// distance, growing from room 0. Ties go to the lowest indices.
func spanningEdges(rooms []room) [][2]int {
	n := len(rooms)
	if n < 2 {
		return nil
	}
	inTree := make([]bool, n)
	inTree[0] = true
	edges := make([][2]int, 0, n-1)
	for len(edges) < n-1 {
		best, from, to := -1, -1, -1
		for i := 0; i < n; i++ {
			if !inTree[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if inTree[j] {
					continue
				}
				if d := dist2(rooms[i], rooms[j]); best < 0 || d < best {
					best, from, to = d, i, j
				}
			}
		}
		inTree[to] = true
		edges = append(edges, [2]int{from, to})
	}
	return edges
}

// corridor draws an L-shaped path: along x at a's row, then along y at b's
// column.
func (c *canvas) corridor(a, b room, width int) {
	ax, ay := a.center()
	bx, by := b.center()
	lo := -(width - 1) / 2
	c.rect(min(ax, bx), ay+lo, max(ax, bx), ay+lo+width-1, c.fill)
	c.rect(bx+lo, min(ay, by), bx+lo+width-1, max(ay, by), c.fill)
}

func roomsAndCorridors(c *canvas, p Params) {
	rng := core.NewRNGFrom(p.Seed)
	rooms := placeRooms(c, p, rng)
	for _, r := range rooms {
		c.rect(r.x0, r.y0, r.x1, r.y1, c.fill)
	}
	for _, e := range spanningEdges(rooms) {
		c.corridor(rooms[e[0]], rooms[e[1]], p.CorridorWidth)
	}
}
