package app

import (
	"flag"
	"strconv"

	"padlife/internal/sim"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Width   int
	Height  int
	Pattern string
	Scale   int
	TPS     float64
	Seed    int64
	Mode    string
	Workers int
	Run     bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := sim.DefaultConfig()
	return &Config{
		Width:   128,
		Height:  96,
		Pattern: d.Pattern.String(),
		Scale:   6,
		TPS:     d.TicksPerSecond,
		Seed:    -1,
		Mode:    d.Mode.String(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "start pattern")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Float64Var(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random patterns; negative draws a fresh one each time")
	fs.StringVar(&c.Mode, "mode", c.Mode, "step implementation: optimized, naive or parallel")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker goroutines for the parallel mode, 0 for one per CPU")
	fs.BoolVar(&c.Run, "run", c.Run, "start ticking immediately")
}

// SimConfig converts the flags into a simulation configuration. Invalid
// values fall back to the simulation defaults.
func (c *Config) SimConfig() sim.Config {
	m := map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"tps":     strconv.FormatFloat(c.TPS, 'f', -1, 64),
		"pattern": c.Pattern,
		"mode":    c.Mode,
		"workers": strconv.Itoa(c.Workers),
	}
	if c.Seed >= 0 {
		m["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return sim.FromMap(m)
}
