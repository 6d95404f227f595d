// Package sim owns a Game of Life grid and drives it: pattern selection,
// fixed-rate stepping and snapshot publication.
//
// A Simulation has a single writer. Every mutation builds a new grid, swaps
// it in and publishes it, so readers holding an older snapshot never see it
// change.
package sim

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"padlife/internal/bus"
	"padlife/internal/core"
	"padlife/internal/life"
	"padlife/internal/pattern"
)

// Stats summarises the simulation state for display.
type Stats struct {
	Width, Height int
	Tick          uint64
	Generation    uint64
	Alive         int
	Blocked       int
	Rate          float64
	Running       bool
	Pattern       pattern.Kind
	LastStep      time.Duration
	LastPattern   time.Duration
}

// Simulation ties a grid to a pattern library, a step engine, a tick
// scheduler and an update bus.
type Simulation struct {
	cfg    Config
	engine *life.Engine
	sched  *core.Scheduler
	bus    *bus.Bus
	logger *log.Logger

	mu      sync.RWMutex
	grid    *core.Grid
	version uint64
	reason  bus.Reason
	stats   Stats

	tickErrs []error
}

// New allocates the grid, applies cfg.Pattern and publishes the result to
// observers, which stay subscribed.
func New(cfg Config, observers ...bus.Observer) (*Simulation, error) {
	g, err := core.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Simulation{
		cfg:    cfg,
		engine: life.NewEngine(cfg.Mode, cfg.Workers),
		bus:    bus.New(),
		logger: logger,
		grid:   g,
	}
	s.sched = core.NewScheduler(cfg.TicksPerSecond, s.onTick)
	s.sched.MaxCatchUp = cfg.MaxCatchUp
	for _, o := range observers {
		s.bus.Subscribe(o)
	}
	s.stats.Width, s.stats.Height = cfg.Width, cfg.Height

	start := time.Now()
	if err := pattern.Apply(g, cfg.Pattern, s.defaults(cfg.Pattern)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.stats.Pattern = cfg.Pattern
	s.stats.LastPattern = time.Since(start)
	s.mu.Unlock()
	// Observer failures are logged by swap and do not fail construction.
	_ = s.swap(g, bus.Created)
	return s, nil
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Bus exposes the update bus.
func (s *Simulation) Bus() *bus.Bus { return s.bus }

// Subscribe registers an observer for grid updates. The current snapshot is
// not replayed.
func (s *Simulation) Subscribe(fn bus.Observer) bus.Handle { return s.bus.Subscribe(fn) }

// Unsubscribe removes an observer.
func (s *Simulation) Unsubscribe(h bus.Handle) bool { return s.bus.Unsubscribe(h) }

// Grid returns the current snapshot. Callers must not modify it.
func (s *Simulation) Grid() *core.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

// Snapshot returns the current grid with its version and origin.
func (s *Simulation) Snapshot() bus.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bus.Snapshot{Version: s.version, Reason: s.reason, Tick: s.sched.TickCount(), Grid: s.grid}
}

// swap installs g as the current grid and notifies observers.
func (s *Simulation) swap(g *core.Grid, reason bus.Reason) error {
	s.mu.Lock()
	s.grid = g
	s.version++
	s.reason = reason
	s.stats.Alive = g.Count(core.Alive)
	s.stats.Blocked = g.Count(core.Blocked)
	snap := bus.Snapshot{Version: s.version, Reason: reason, Tick: s.sched.TickCount(), Grid: g}
	s.mu.Unlock()

	if err := s.bus.Publish(snap); err != nil {
		s.logger.Printf("publish %s v%d: %v", reason, snap.Version, err)
		return err
	}
	return nil
}

func (s *Simulation) defaults(kind pattern.Kind) pattern.Params {
	p := pattern.Defaults(kind, s.cfg.Width, s.cfg.Height)
	if s.cfg.Seeded {
		p = p.Seeded(s.cfg.Seed)
	}
	return p
}

// ChangePattern regenerates the grid from kind's default parameters.
func (s *Simulation) ChangePattern(kind pattern.Kind) error {
	return s.ApplyPattern(kind, s.defaults(kind))
}

// ApplyPattern runs a generator over a copy of the current grid and
// publishes the result. Parameters the generator ignores leave the grid,
// the current pattern and the version unchanged.
func (s *Simulation) ApplyPattern(kind pattern.Kind, p pattern.Params) error {
	start := time.Now()
	g := s.Grid().Clone()
	if err := pattern.Apply(g, kind, p); err != nil {
		return err
	}
	if !pattern.Valid(kind, p) {
		s.logger.Printf("pattern %s: degenerate parameters, grid unchanged", kind)
		return nil
	}
	elapsed := time.Since(start)
	s.mu.Lock()
	s.stats.Pattern = kind
	s.stats.LastPattern = elapsed
	s.mu.Unlock()
	s.logger.Printf("pattern %s applied in %v", kind, elapsed)
	return s.swap(g, bus.PatternApplied)
}

// ReplaceBuffer installs a full padded buffer as the new grid. The previous
// snapshot is untouched when buf has the wrong length.
func (s *Simulation) ReplaceBuffer(buf []uint8) error {
	g, err := core.NewGrid(s.cfg.Width, s.cfg.Height)
	if err != nil {
		return err
	}
	if err := g.ReplaceBuffer(buf); err != nil {
		return err
	}
	return s.swap(g, bus.BufferReplaced)
}

// SetCell writes one interior cell and publishes the edited grid.
func (s *Simulation) SetCell(x, y int, v uint8) error {
	g := s.Grid().Clone()
	if err := g.Set(x, y, v); err != nil {
		return err
	}
	return s.swap(g, bus.BufferReplaced)
}

// ToggleCell flips a cell between dead and alive. Blocked cells are left as
// they are.
func (s *Simulation) ToggleCell(x, y int) error {
	v, err := s.Grid().Get(x, y)
	if err != nil {
		return err
	}
	switch v {
	case core.Dead:
		return s.SetCell(x, y, core.Alive)
	case core.Alive:
		return s.SetCell(x, y, core.Dead)
	}
	return nil
}

// Start begins fixed-rate stepping.
func (s *Simulation) Start() { s.sched.Start() }

// Stop pauses stepping; time advances are ignored until Start.
func (s *Simulation) Stop() { s.sched.Stop() }

// Running reports whether the scheduler is running.
func (s *Simulation) Running() bool { return s.sched.Running() }

// SetRate changes the tick rate. Rates below core.MinTicksPerSecond clamp.
func (s *Simulation) SetRate(tps float64) { s.sched.SetRate(tps) }

// Rate returns the effective tick rate.
func (s *Simulation) Rate() float64 { return s.sched.Rate() }

// SetSpeed maps a 0..1 slider position onto 0..100 ticks per second.
func (s *Simulation) SetSpeed(slider float64) { s.sched.SetRate(slider * 100) }

// TickCount returns the number of scheduled ticks fired so far.
func (s *Simulation) TickCount() uint64 { return s.sched.TickCount() }

// Advance feeds dt into the scheduler, stepping the grid once per elapsed
// tick interval. It returns the number of ticks fired and any step or
// observer errors raised along the way.
func (s *Simulation) Advance(dt time.Duration) (int, error) {
	fired := s.sched.Advance(dt)
	errs := s.tickErrs
	s.tickErrs = nil
	return fired, errors.Join(errs...)
}

// StepOnce advances one generation outside the scheduler. The tick count is
// not incremented.
func (s *Simulation) StepOnce() error {
	return s.step(bus.Ticked)
}

func (s *Simulation) onTick() {
	if err := s.step(bus.Ticked); err != nil {
		s.tickErrs = append(s.tickErrs, err)
	}
}

func (s *Simulation) step(reason bus.Reason) error {
	start := time.Now()
	next, err := s.engine.Step(context.Background(), s.Grid())
	if err != nil {
		s.logger.Printf("step: %v", err)
		return err
	}
	elapsed := time.Since(start)
	s.mu.Lock()
	s.stats.Generation++
	s.stats.LastStep = elapsed
	s.mu.Unlock()
	return s.swap(next, reason)
}

// Stats returns a copy of the current statistics.
func (s *Simulation) Stats() Stats {
	s.mu.RLock()
	st := s.stats
	s.mu.RUnlock()
	st.Tick = s.sched.TickCount()
	st.Rate = s.sched.Rate()
	st.Running = s.sched.Running()
	return st
}
