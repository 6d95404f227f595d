//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"padlife/internal/core"
)

// GridPainter uploads a padded grid's interior into a single image.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a grid with a w*h interior.
func NewGridPainter(w, h int, palette []color.RGBA) *GridPainter {
	if palette == nil {
		palette = DefaultPalette
	}
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h), palette: palette}
}

// Upload refreshes the painter image from g. Grids of another size are
// ignored.
func (gp *GridPainter) Upload(g *core.Grid) {
	if !g.Initialized() || g.W != gp.w || g.H != gp.h {
		return
	}
	fillPaddedRGBA(gp.buf, g.Raw(), gp.w, gp.h, gp.palette)
	gp.img.WritePixels(gp.buf)
}

// Draw draws the last uploaded image scaled onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
