// Package life implements Conway's Game of Life on padded tri-state grids.
//
// Live cells (core.Alive) follow the B3/S23 rule. Blocked cells (core.Blocked)
// never change and never count as live neighbours. The padding ring of the
// grid is read as dead and is never written.
package life

import "padlife/internal/core"

// aliveOf maps a cell state to its contribution to a neighbour sum.
var aliveOf = [256]uint8{core.Alive: 1}

// Next returns the next state of a cell given its live neighbour count.
func Next(state uint8, neighbors int) uint8 {
	switch state {
	case core.Alive:
		if neighbors == 2 || neighbors == 3 {
			return core.Alive
		}
		return core.Dead
	case core.Blocked:
		return core.Blocked
	default:
		if neighbors == 3 {
			return core.Alive
		}
		return core.Dead
	}
}

// StepNaive computes the next generation by reading all eight neighbours of
// every interior cell. It is the reference the optimized path is checked
// against.
func StepNaive(src *core.Grid) (*core.Grid, error) {
	if !src.Initialized() {
		return nil, core.ErrUninitialized
	}
	w, h := src.W, src.H
	pw := w + 2
	cur := src.Raw()
	next := make([]uint8, len(cur))
	offsets := [8]int{-pw - 1, -pw, -pw + 1, -1, 1, pw - 1, pw, pw + 1}
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			i := y*pw + x
			neighbors := 0
			for _, d := range offsets {
				neighbors += int(aliveOf[cur[i+d]])
			}
			next[i] = Next(cur[i], neighbors)
		}
	}
	return core.Wrap(w, h, next)
}

// Step computes the next generation into a freshly allocated grid using
// sliding-window neighbour sums. src is not modified.
func Step(src *core.Grid) (*core.Grid, error) {
	if !src.Initialized() {
		return nil, core.ErrUninitialized
	}
	dst, err := core.NewGrid(src.W, src.H)
	if err != nil {
		return nil, err
	}
	if err := StepInto(src, dst, nil); err != nil {
		return nil, err
	}
	return dst, nil
}

// ScratchSize is the number of entries StepInto needs in its scratch buffer
// for a grid of interior height h and width w.
func ScratchSize(w, h int) int { return (w + 2) * (h + 2) }

// StepInto writes the next generation of src into dst's interior. dst must
// have the same size as src, a zeroed padding ring, and must not share its
// buffer with src. scratch may be nil or at least ScratchSize(w, h) long.
func StepInto(src, dst *core.Grid, scratch []uint8) error {
	if !src.Initialized() || !dst.Initialized() {
		return core.ErrUninitialized
	}
	if src.W != dst.W || src.H != dst.H {
		return core.ErrLengthMismatch
	}
	need := ScratchSize(src.W, src.H)
	if len(scratch) < need {
		scratch = make([]uint8, need)
	}
	stepBand(src.Raw(), dst.Raw(), scratch[:need], src.W, src.H, 1, src.H)
	return nil
}

// stepBand computes rows lo..hi (1-based, inclusive) of the next generation.
//
// hsum holds horizontal three-cell sums for rows lo-1..hi+1 laid out with the
// padded row stride: local row r is global row lo-1+r. Rows outside the
// interior contribute zero.
func stepBand(cur, next, hsum []uint8, w, h, lo, hi int) {
	pw := w + 2
	rows := hi - lo + 1

	// Horizontal pass: seed each row with three reads, then slide.
	for r := 0; r < rows+2; r++ {
		gy := lo - 1 + r
		out := hsum[r*pw : r*pw+pw]
		if gy < 1 || gy > h {
			for x := range out {
				out[x] = 0
			}
			continue
		}
		i := gy*pw + 1
		sum := int(aliveOf[cur[i-1]]) + int(aliveOf[cur[i]]) + int(aliveOf[cur[i+1]])
		out[1] = uint8(sum)
		for x := 2; x <= w; x++ {
			i++
			sum += int(aliveOf[cur[i+1]]) - int(aliveOf[cur[i-2]])
			out[x] = uint8(sum)
		}
	}

	// Vertical pass: slide three hsum rows down each column and apply the
	// rule with the centre cell removed from the 3x3 total.
	for x := 1; x <= w; x++ {
		sum := int(hsum[x]) + int(hsum[pw+x]) + int(hsum[2*pw+x])
		for r := 1; r <= rows; r++ {
			i := (lo-1+r)*pw + x
			c := cur[i]
			next[i] = Next(c, sum-int(aliveOf[c]))
			if r < rows {
				sum += int(hsum[(r+2)*pw+x]) - int(hsum[(r-1)*pw+x])
			}
		}
	}
}
