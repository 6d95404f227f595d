package pattern

import (
	perlin "github.com/aquilax/go-perlin"

	"padlife/internal/core"
)

const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

func randomNoise(c *canvas, p Params) {
	rng := core.NewRNGFrom(p.Seed)
	c.each(func(px, py, _, _ int) {
		if rng.Chance(p.Probability) {
			c.set(px, py, c.fill)
		}
	})
}

func perlinIslands(c *canvas, p Params) {
	rng := core.NewRNGFrom(p.Seed)
	gen := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, rng.Source().Int64())
	c.each(func(px, py, _, _ int) {
		// Offset by half a cell: gradient noise is zero on lattice points.
		n := gen.Noise2D((float64(px)+0.5)*p.Scale, (float64(py)+0.5)*p.Scale)
		if n > p.Threshold {
			c.set(px, py, c.fill)
		}
	})
}
