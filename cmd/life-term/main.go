package main

import (
	"log"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"padlife/internal/life"
	"padlife/internal/pattern"
	"padlife/internal/sim"
	"padlife/internal/term"
)

func main() {
	cfg := sim.DefaultConfig()
	cfg.Width, cfg.Height = 60, 30
	patternName := cfg.Pattern.String()
	modeName := cfg.Mode.String()
	seed := -1
	frame := 50 * time.Millisecond
	run := false

	names := make([]string, 0, len(pattern.Kinds()))
	for _, k := range pattern.Kinds() {
		names = append(names, k.String())
	}

	flaggy.SetName("life-term")
	flaggy.SetDescription("Terminal viewer for the padded Game of Life")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&cfg.Width, "x", "width", "Width of the field in cells")
	flaggy.Int(&cfg.Height, "y", "height", "Height of the field in cells")
	flaggy.Float64(&cfg.TicksPerSecond, "t", "tps", "Ticks per second")
	flaggy.String(&patternName, "p", "pattern", "Start pattern ["+strings.Join(names, "|")+"]")
	flaggy.String(&modeName, "m", "mode", "Step implementation [optimized|naive|parallel]")
	flaggy.Int(&cfg.Workers, "w", "workers", "Workers for the parallel mode, 0 for one per CPU")
	flaggy.Int(&seed, "s", "seed", "Seed for random patterns, negative for a fresh one")
	flaggy.Duration(&frame, "f", "frame", "Redraw interval, for example 50ms")
	flaggy.Bool(&run, "r", "run", "Start ticking immediately")
	flaggy.Parse()

	kind, err := pattern.ParseKind(patternName)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	cfg.Pattern = kind
	mode, err := life.ParseMode(modeName)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	cfg.Mode = mode
	if seed >= 0 {
		cfg.Seed, cfg.Seeded = uint64(seed), true
	}
	// Logger stays nil: gocui owns the terminal while the viewer runs.

	s, err := sim.New(cfg)
	if err != nil {
		log.Fatalf("create simulation: %v", err)
	}
	if run {
		s.Start()
	}

	v, err := term.New(s, frame)
	if err != nil {
		log.Fatal(err)
	}
	if err := v.Run(); err != nil {
		log.Fatal(err)
	}
}
