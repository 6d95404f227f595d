//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"padlife/internal/app"
	"padlife/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	simCfg := cfg.SimConfig()
	simCfg.Logger = log.Default()
	s, err := sim.New(simCfg)
	if err != nil {
		log.Fatalf("create simulation: %v", err)
	}
	if cfg.Run {
		s.Start()
	}

	game := app.New(s, cfg.Scale)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("padlife — " + simCfg.Pattern.String())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
