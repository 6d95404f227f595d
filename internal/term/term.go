// Package term is a terminal viewer for a Simulation built on gocui.
package term

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"padlife/internal/core"
	"padlife/internal/pattern"
	"padlife/internal/sim"
	"padlife/internal/stats"
)

const (
	leftColumnWidth = 30
	minWindowHeight = 20
	// statsEvery is the number of frames between process memory samples.
	statsEvery = 20
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// Fillers are the strings drawn for each cell state.
type Fillers struct {
	Alive   string
	Dead    string
	Blocked string
}

// DefaultFillers draws alive cells as green blocks and blocked cells as
// yellow shading.
var DefaultFillers = Fillers{
	Alive:   aurora.Green("█").BgBrightGreen().String(),
	Dead:    "░",
	Blocked: aurora.Yellow("▓").String(),
}

// Viewer renders a Simulation into a gocui screen and drives it from a
// frame ticker. All simulation calls happen on the gocui main loop.
type Viewer struct {
	sim     *sim.Simulation
	g       *gocui.Gui
	k       []keyBinding
	fillers Fillers
	frame   time.Duration
	clock   *core.FixedStep

	report  stats.Report
	frames  int
	lastErr error
	done    chan struct{}
}

// New creates the terminal UI. frame is the redraw interval; the
// simulation advances by wall clock time on every frame.
func New(s *sim.Simulation, frame time.Duration) (*Viewer, error) {
	if frame <= 0 {
		frame = 50 * time.Millisecond
	}
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	t := &Viewer{
		sim:     s,
		g:       g,
		fillers: DefaultFillers,
		frame:   frame,
		clock:   core.NewFixedStep(nil),
		report:  stats.Collect(s),
		done:    make(chan struct{}),
	}
	g.Mouse = true
	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'n', "N", "Step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'p', "P", "Next pattern", t.cmdNextPattern, ""},
		{'c', "C", "Regenerate", t.cmdRegenerate, ""},
		{'+', "+", "Faster", t.cmdFaster, ""},
		{'-', "-", "Slower", t.cmdSlower, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdMouseClick, "field"},
	}
	g.SetManagerFunc(t.layout)
	for _, kb := range t.k {
		h := kb.handler
		if err := g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			g.Close()
			return nil, fmt.Errorf("term: bind %s: %w", kb.name, err)
		}
	}
	return t, nil
}

// Run blocks in the gocui main loop until the user quits.
func (t *Viewer) Run() error {
	go t.tickLoop()
	err := t.g.MainLoop()
	close(t.done)
	t.g.Close()
	if err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func (t *Viewer) tickLoop() {
	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.g.Update(func(*gocui.Gui) error {
				if _, err := t.sim.Advance(t.clock.Delta()); err != nil {
					t.lastErr = err
				}
				t.frames++
				if t.frames%statsEvery == 0 {
					t.report = stats.Collect(t.sim)
				} else {
					t.report.Stats = t.sim.Stats()
				}
				return nil
			})
		}
	}
}

func (t *Viewer) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "padlife"); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
	}
	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/3+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
	}
	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
	}
	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		_, _ = fmt.Fprintln(v, helpLine(t.k))
	}

	t.renderConfiguration()
	t.renderStatus()
	t.renderField()
	return nil
}

func (t *Viewer) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *Viewer) renderField() {
	v, err := t.g.View("field")
	if err != nil {
		return
	}
	v.Clear()
	maxW, maxH := v.Size()
	_, _ = fmt.Fprint(v, renderRows(t.sim.Grid(), maxW, maxH, t.fillers))
}

func (t *Viewer) renderConfiguration() {
	v, err := t.g.View("configuration")
	if err != nil {
		return
	}
	v.Clear()
	c := t.sim.Config()
	_, _ = fmt.Fprintln(v, prop("Dimension", "%v x %v", c.Width, c.Height))
	_, _ = fmt.Fprintln(v, prop("Mode", "%v", c.Mode))
	if c.Seeded {
		_, _ = fmt.Fprintln(v, prop("Seed", "%v", c.Seed))
	} else {
		_, _ = fmt.Fprintln(v, prop("Seed", "random"))
	}
}

func (t *Viewer) renderStatus() {
	v, err := t.g.View("status")
	if err != nil {
		return
	}
	v.Clear()
	for _, line := range t.report.Lines() {
		value := line.Value
		if line.Label == "State" {
			value = runningState(t.report.Running)
		}
		_, _ = fmt.Fprintln(v, prop(line.Label, "%s", value))
	}
	if t.lastErr != nil {
		_, _ = fmt.Fprintln(v, aurora.Red(t.lastErr.Error()).String())
	}
}

func runningState(running bool) string {
	if running {
		return aurora.Colorize("running", aurora.CyanFg).String()
	}
	return aurora.Colorize("paused", aurora.BlueFg).String()
}

func prop(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func helpLine(k []keyBinding) string {
	var b bytes.Buffer
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}

// renderRows draws the logical interior of g, cropped to maxW x maxH
// characters. When the grid is cropped vertically the last line is replaced
// by a warning.
func renderRows(g *core.Grid, maxW, maxH int, f Fillers) string {
	if g == nil || !g.Initialized() || maxW <= 0 || maxH <= 0 {
		return ""
	}
	size := g.Size()
	crop := size.W > maxW || size.H > maxH
	var b bytes.Buffer
	for y := 0; y < size.H && y < maxH; y++ {
		if y != 0 {
			b.WriteByte('\n')
		}
		if crop && y == maxH-1 {
			b.WriteString(aurora.Red("The field is larger than the viewing area").BgBlack().String())
			break
		}
		for x := 0; x < size.W && x < maxW; x++ {
			v, _ := g.Get(x, y)
			switch v {
			case core.Alive:
				b.WriteString(f.Alive)
			case core.Blocked:
				b.WriteString(f.Blocked)
			default:
				b.WriteString(f.Dead)
			}
		}
	}
	return b.String()
}

func (t *Viewer) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *Viewer) cmdStep(_ *gocui.View) error {
	t.lastErr = t.sim.StepOnce()
	return nil
}

func (t *Viewer) cmdRun(_ *gocui.View) error {
	t.sim.Start()
	return nil
}

func (t *Viewer) cmdStop(_ *gocui.View) error {
	t.sim.Stop()
	return nil
}

func (t *Viewer) cmdNextPattern(_ *gocui.View) error {
	kinds := pattern.Kinds()
	next := kinds[(int(t.sim.Stats().Pattern)+1)%len(kinds)]
	t.lastErr = t.sim.ChangePattern(next)
	return nil
}

func (t *Viewer) cmdRegenerate(_ *gocui.View) error {
	t.lastErr = t.sim.ChangePattern(t.sim.Stats().Pattern)
	return nil
}

func (t *Viewer) cmdFaster(_ *gocui.View) error {
	t.sim.SetRate(t.sim.Rate() * 1.5)
	return nil
}

func (t *Viewer) cmdSlower(_ *gocui.View) error {
	t.sim.SetRate(t.sim.Rate() / 1.5)
	return nil
}

func (t *Viewer) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	err := t.sim.ToggleCell(cx+ox, cy+oy)
	if err != nil && !errors.Is(err, core.ErrOutOfRange) {
		t.lastErr = err
	}
	return nil
}
