// Package stats formats simulation statistics for the viewers and the
// benchmark runner.
package stats

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"padlife/internal/sim"
)

// Line is one labelled statistic.
type Line struct {
	Label string
	Value string
}

// Report is a point-in-time view of a simulation and the hosting process.
type Report struct {
	sim.Stats
	// RSS is the resident set size of this process in bytes, zero when it
	// could not be read.
	RSS uint64
}

// ProcessRSS returns the resident set size of the current process.
func ProcessRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

// Collect reads s and the process memory usage.
func Collect(s *sim.Simulation) Report {
	r := Report{Stats: s.Stats()}
	if rss, err := ProcessRSS(); err == nil {
		r.RSS = rss
	}
	return r
}

// Lines renders the report in display order.
func (r Report) Lines() []Line {
	state := "stopped"
	if r.Running {
		state = "running"
	}
	lines := []Line{
		{"Grid", fmt.Sprintf("%d x %d", r.Width, r.Height)},
		{"Pattern", r.Pattern.String()},
		{"State", state},
		{"Rate", fmt.Sprintf("%.1f tps", r.Rate)},
		{"Tick", fmt.Sprintf("%d", r.Tick)},
		{"Generation", fmt.Sprintf("%d", r.Generation)},
		{"Alive", fmt.Sprintf("%d", r.Alive)},
		{"Blocked", fmt.Sprintf("%d", r.Blocked)},
		{"Sim calc", r.LastStep.Round(time.Microsecond).String()},
		{"Grid create", r.LastPattern.Round(time.Microsecond).String()},
	}
	if r.RSS > 0 {
		lines = append(lines, Line{"Memory", FormatBytes(r.RSS)})
	}
	return lines
}

// FormatBytes renders n using binary units.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
