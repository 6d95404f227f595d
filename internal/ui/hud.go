//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"padlife/internal/pattern"
	"padlife/internal/sim"
	"padlife/internal/stats"
)

// statsRefreshFrames is how many updates pass between stats collections.
// Collection reads process memory, which is too slow to do every frame.
const statsRefreshFrames = 30

// HUD renders the control and statistics panel to the right of the grid.
type HUD struct {
	sim        *sim.Simulation
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []hudControlState
	report       stats.Report
	frames       int
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(s *sim.Simulation, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: s, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.controls = []hudControlState{
		{
			label: "Run",
			value: func() string {
				if s.Running() {
					return "on"
				}
				return "off"
			},
			dec:    s.Stop,
			inc:    s.Start,
			canDec: s.Running,
			canInc: func() bool { return !s.Running() },
		},
		{
			label: "Rate",
			value: func() string { return fmt.Sprintf("%.1f", s.Rate()) },
			dec:   func() { s.SetRate(s.Rate() / 1.5) },
			inc:   func() { s.SetRate(s.Rate() * 1.5) },
		},
		{
			label: "Pattern",
			value: func() string { return s.Stats().Pattern.String() },
			dec:   func() { h.cyclePattern(-1) },
			inc:   func() { h.cyclePattern(1) },
		},
	}
	h.layoutControls()
	h.report = stats.Collect(s)
	return h
}

func (h *HUD) cyclePattern(dir int) {
	n := len(pattern.Kinds())
	k := pattern.Kind(((int(h.sim.Stats().Pattern)+dir)%n + n) % n)
	if err := h.sim.ChangePattern(k); err != nil {
		log.Printf("hud: change pattern: %v", err)
	}
}

// Update refreshes the cached statistics and handles HUD clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.frames++
	if h.frames%statsRefreshFrames == 0 {
		h.report = stats.Collect(h.sim)
	} else {
		h.report.Stats = h.sim.Stats()
	}
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	size := h.sim.Grid().Size()
	height := size.H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawStats()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if pointInRect(px, my, state.minusRect) && state.enabled(-1) {
			state.dec()
			return
		}
		if pointInRect(px, my, state.plusRect) && state.enabled(1) {
			state.inc()
			return
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, "Controls", face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		value := state.value()
		bounds := text.BoundString(face, value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		h.drawButton(state.minusRect, "-", state.enabled(-1))
		h.drawButton(state.plusRect, "+", state.enabled(1))
	}
}

func (h *HUD) drawStats() {
	face := basicfont.Face7x13
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing
	text.Draw(h.panel, "Stats", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, line := range h.report.Lines() {
		y += statsLineHeight
		text.Draw(h.panel, line.Label, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		bounds := text.BoundString(face, line.Value)
		text.Draw(h.panel, line.Value, face, h.width-panelPadding-bounds.Dx(), y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	label  string
	value  func() string
	dec    func()
	inc    func()
	canDec func() bool
	canInc func() bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func (s *hudControlState) enabled(direction int) bool {
	if direction < 0 {
		return s.canDec == nil || s.canDec()
	}
	return s.canInc == nil || s.canInc()
}

const (
	panelPadding    = 12
	lineHeight      = 36
	buttonSize      = 24
	buttonGap       = 6
	headerBaseline  = 18
	labelBaseline   = 24
	infoSpacing     = 24
	statsLineHeight = 16
	controlsTop     = panelPadding + headerBaseline + 14
)
