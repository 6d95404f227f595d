package sim

import (
	"log"
	"strconv"

	"padlife/internal/life"
	"padlife/internal/pattern"
)

// Config controls grid dimensions, tick rate and the start pattern.
type Config struct {
	Width  int
	Height int

	TicksPerSecond float64
	// MaxCatchUp caps ticks fired per Advance call; zero is unlimited.
	MaxCatchUp int

	Pattern pattern.Kind
	// Seed is passed to random patterns when Seeded is set. Otherwise each
	// pattern draws from the process-wide source.
	Seed   uint64
	Seeded bool

	Mode    life.Mode
	Workers int

	// Logger receives pattern changes and observer failures. Nil discards.
	Logger *log.Logger
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:          25,
		Height:         25,
		TicksPerSecond: 10,
		Pattern:        pattern.Square,
		Mode:           life.ModeOptimized,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.TicksPerSecond = parsed
		}
	}
	if v, ok := cfg["catch_up"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxCatchUp = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if parsed, err := pattern.ParseKind(v); err == nil {
			c.Pattern = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
			c.Seeded = true
		}
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, err := life.ParseMode(v); err == nil {
			c.Mode = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	return c
}
