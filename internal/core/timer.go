package core

import (
	"math"
	"time"
)

// MinTicksPerSecond is the lowest rate a Scheduler accepts. Lower or
// non-positive rates are clamped to it.
const MinTicksPerSecond = 0.1

// SchedulerState is the run state of a Scheduler.
type SchedulerState int

const (
	Stopped SchedulerState = iota
	Running
)

func (s SchedulerState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Scheduler fires a tick callback at a fixed rate from externally supplied
// time deltas. Leftover time after each tick stays in the accumulator so
// irregular frame timing does not drift the tick rate.
type Scheduler struct {
	tps         float64
	step        time.Duration
	accumulator time.Duration
	state       SchedulerState
	ticks       uint64
	onTick      func()

	// MaxCatchUp limits how many ticks a single Advance may fire. Zero means
	// unlimited. Time beyond the limit stays accumulated.
	MaxCatchUp int
}

// NewScheduler constructs a stopped Scheduler targeting tps ticks per second.
func NewScheduler(tps float64, onTick func()) *Scheduler {
	s := &Scheduler{onTick: onTick}
	s.SetRate(tps)
	return s
}

// SetRate changes the tick rate. The new interval applies from the next
// accumulator comparison; time already accumulated is kept as is.
func (s *Scheduler) SetRate(tps float64) {
	if !(tps >= MinTicksPerSecond) {
		tps = MinTicksPerSecond
	}
	s.tps = tps
	s.step = time.Duration(math.Round(float64(time.Second) / tps))
	if s.step <= 0 {
		s.step = 1
	}
}

// Rate returns the configured ticks per second.
func (s *Scheduler) Rate() float64 { return s.tps }

// Interval returns the duration of one tick.
func (s *Scheduler) Interval() time.Duration { return s.step }

// Start resumes tick processing.
func (s *Scheduler) Start() { s.state = Running }

// Stop pauses tick processing. Advances while stopped are ignored.
func (s *Scheduler) Stop() { s.state = Stopped }

// State reports whether the scheduler is running.
func (s *Scheduler) State() SchedulerState { return s.state }

// Running is shorthand for State() == Running.
func (s *Scheduler) Running() bool { return s.state == Running }

// TickCount returns the number of ticks fired since construction.
func (s *Scheduler) TickCount() uint64 { return s.ticks }

// Pending returns the time accumulated toward the next tick.
func (s *Scheduler) Pending() time.Duration { return s.accumulator }

// Advance adds dt to the accumulator and fires one tick per whole interval
// it holds. It returns the number of ticks fired.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.state != Running || dt <= 0 {
		return 0
	}
	s.accumulator += dt
	fired := 0
	for s.accumulator >= s.step {
		if s.MaxCatchUp > 0 && fired >= s.MaxCatchUp {
			break
		}
		s.accumulator -= s.step
		s.ticks++
		fired++
		if s.onTick != nil {
			s.onTick()
		}
	}
	return fired
}

// FixedStep measures wall-clock time between frames for feeding a
// Scheduler, one call per frame.
type FixedStep struct {
	now  func() time.Time
	last time.Time
}

// NewFixedStep returns a FixedStep reading clock. A nil clock uses time.Now.
func NewFixedStep(clock func() time.Time) *FixedStep {
	if clock == nil {
		clock = time.Now
	}
	return &FixedStep{now: clock}
}

// Delta returns the time since the previous call. The first call returns
// zero.
func (f *FixedStep) Delta() time.Duration {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	return delta
}
