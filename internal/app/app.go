//go:build ebiten

package app

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"padlife/internal/bus"
	"padlife/internal/core"
	"padlife/internal/pattern"
	"padlife/internal/render"
	"padlife/internal/sim"
	"padlife/internal/ui"
)

const hudWidth = 240

// Game adapts a Simulation to the ebiten.Game interface.
type Game struct {
	sim     *sim.Simulation
	painter *render.GridPainter
	hud     *ui.HUD
	clock   *core.FixedStep

	pending *core.Grid
	scale   int
}

// New constructs a Game for the provided simulation.
func New(s *sim.Simulation, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := s.Grid().Size()
	g := &Game{
		sim:     s,
		painter: render.NewGridPainter(size.W, size.H, render.DefaultPalette),
		hud:     ui.NewHUD(s, hudWidth),
		clock:   core.NewFixedStep(nil),
		pending: s.Grid(),
		scale:   scale,
	}
	s.Subscribe(func(snap bus.Snapshot) error {
		g.pending = snap.Grid
		return nil
	})
	return g
}

// Update handles per-frame input and advances the simulation by the wall
// clock time since the previous frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.sim.Running() {
			g.sim.Stop()
		} else {
			g.sim.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.report(g.sim.StepOnce())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.report(g.sim.ChangePattern(g.sim.Stats().Pattern))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.report(g.sim.ChangePattern(nextPattern(g.sim.Stats().Pattern, 1)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.sim.SetRate(g.sim.Rate() * 1.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.sim.SetRate(g.sim.Rate() / 1.5)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		size := g.sim.Grid().Size()
		if x, y := mx/g.scale, my/g.scale; x < size.W && y < size.H {
			g.report(g.sim.ToggleCell(x, y))
		}
	}

	size := g.sim.Grid().Size()
	g.hud.Update(size.W * g.scale)

	_, err := g.sim.Advance(g.clock.Delta())
	g.report(err)
	return nil
}

func (g *Game) report(err error) {
	if err != nil && !errors.Is(err, core.ErrOutOfRange) {
		log.Printf("padlife: %v", err)
	}
}

// Draw renders the latest published grid and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.pending != nil {
		g.painter.Upload(g.pending)
		g.pending = nil
	}
	g.painter.Draw(screen, g.scale)
	size := g.sim.Grid().Size()
	g.hud.Draw(screen, size.W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Grid().Size()
	return s.W*g.scale + hudWidth, s.H * g.scale
}

func nextPattern(k pattern.Kind, dir int) pattern.Kind {
	n := len(pattern.Kinds())
	return pattern.Kind(((int(k)+dir)%n + n) % n)
}
