package render

import (
	"image/color"
	"testing"

	"padlife/internal/core"
)

func TestPixelsSkipsPadding(t *testing.T) {
	g, _ := core.NewGrid(3, 2)
	_ = g.Set(0, 0, core.Alive)
	_ = g.Set(2, 1, core.Blocked)

	buf := Pixels(g, DefaultPalette)
	if len(buf) != 4*3*2 {
		t.Fatalf("pixel buffer length %d", len(buf))
	}
	at := func(x, y int) color.RGBA {
		i := (y*3 + x) * 4
		return color.RGBA{R: buf[i], G: buf[i+1], B: buf[i+2], A: buf[i+3]}
	}
	if at(0, 0) != DefaultPalette[core.Alive] {
		t.Fatalf("alive pixel %v", at(0, 0))
	}
	if at(2, 1) != DefaultPalette[core.Blocked] {
		t.Fatalf("blocked pixel %v", at(2, 1))
	}
	if at(1, 0) != DefaultPalette[core.Dead] {
		t.Fatalf("dead pixel %v", at(1, 0))
	}
}

func TestPixelsClampsToPalette(t *testing.T) {
	g, _ := core.NewGrid(1, 1)
	_ = g.Set(0, 0, core.Blocked)
	two := []color.RGBA{{A: 255}, {R: 9, A: 255}}
	buf := Pixels(g, two)
	if buf[0] != 9 {
		t.Fatalf("state past palette end should use last colour, got R=%d", buf[0])
	}
}

func TestPixelsEmptyPalette(t *testing.T) {
	g, _ := core.NewGrid(2, 2)
	g.ClearInterior(core.Alive)
	for i, b := range Pixels(g, nil) {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestPixelsUninitialized(t *testing.T) {
	if Pixels(&core.Grid{}, DefaultPalette) != nil {
		t.Fatal("uninitialized grid should produce no pixels")
	}
}
