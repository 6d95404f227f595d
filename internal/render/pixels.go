package render

import (
	"image/color"

	"padlife/internal/core"
)

// DefaultPalette colours dead, alive and blocked cells.
var DefaultPalette = []color.RGBA{
	core.Dead:    {R: 12, G: 12, B: 16, A: 255},
	core.Alive:   {R: 235, G: 235, B: 220, A: 255},
	core.Blocked: {R: 150, G: 60, B: 50, A: 255},
}

// fillPaddedRGBA converts the interior of a padded cell buffer into RGBA
// pixels in buf, one pixel per interior cell. States past the end of the
// palette use its last colour. An empty palette clears buf to transparent
// black.
func fillPaddedRGBA(buf []byte, cells []uint8, w, h int, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range buf[:4*w*h] {
			buf[i] = 0
		}
		return
	}

	last := len(palette) - 1
	pw := w + 2
	for y := 0; y < h; y++ {
		row := cells[(y+1)*pw+1 : (y+1)*pw+1+w]
		for x, c := range row {
			idx := int(c)
			if idx > last {
				idx = last
			}
			base := (y*w + x) * 4
			col := palette[idx]
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// Pixels returns the RGBA pixels of g's interior.
func Pixels(g *core.Grid, palette []color.RGBA) []byte {
	if !g.Initialized() {
		return nil
	}
	buf := make([]byte, 4*g.W*g.H)
	fillPaddedRGBA(buf, g.Raw(), g.W, g.H, palette)
	return buf
}
