package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"

	"padlife/internal/core"
	"padlife/internal/life"
	"padlife/internal/pattern"
	"padlife/internal/stats"
)

type scenario struct {
	size core.Size
	kind pattern.Kind
	seed uint64
}

func (s scenario) String() string {
	return fmt.Sprintf("%dx%d %s seed=%d", s.size.W, s.size.H, s.kind, s.seed)
}

type scenarioResult struct {
	scenario  scenario
	steps     int
	mismatch  int // first generation where the steppers disagree, -1 if none
	elapsed   map[life.Mode]time.Duration
	finalLive int
	err       error
}

var modes = []life.Mode{life.ModeNaive, life.ModeOptimized, life.ModeParallel}

func main() {
	steps := flag.Int("steps", 200, "generations to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of scenario worker goroutines")
	bandWorkers := flag.Int("bands", 4, "row bands for the parallel stepper")
	sizes := flag.String("sizes", "25x25,64x48,200x150,512x512", "comma separated grid sizes")
	seed := flag.Uint64("seed", 1337, "pattern seed")
	flag.Parse()

	var dims []core.Size
	for _, s := range strings.Split(*sizes, ",") {
		d, err := parseSize(s)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		dims = append(dims, d)
	}

	var sets []scenario
	for _, d := range dims {
		for _, k := range pattern.Kinds() {
			sets = append(sets, scenario{size: d, kind: k, seed: *seed})
		}
	}

	poolSize := workerCount(*workers, len(sets))
	fmt.Printf("Checking %d scenarios (%d workers, %d steps)\n", len(sets), poolSize, *steps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *steps, *bandWorkers)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	failed := 0
	for res := range results {
		all = append(all, res)
		switch {
		case res.err != nil:
			failed++
			fmt.Printf("%s %s: %v\n", aurora.Red("ERROR"), res.scenario, res.err)
		case res.mismatch >= 0:
			failed++
			fmt.Printf("%s %s diverged at generation %d\n", aurora.Red("MISMATCH"), res.scenario, res.mismatch)
		}
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool {
		return all[i].elapsed[life.ModeOptimized] > all[j].elapsed[life.ModeOptimized]
	})

	fmt.Printf("\nSlowest 5 scenarios (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) %s live=%d %s\n", i+1, res.scenario, res.finalLive, formatTimings(res))
	}

	for _, d := range dims {
		totals := make(map[life.Mode]time.Duration)
		for _, res := range all {
			if res.scenario.size != d {
				continue
			}
			for m, e := range res.elapsed {
				totals[m] += e
			}
		}
		fmt.Printf("%s %s\n", aurora.Cyan(fmt.Sprintf("%dx%d", d.W, d.H)), formatTotals(totals, *steps*len(pattern.Kinds())))
	}

	if rss, err := stats.ProcessRSS(); err == nil {
		fmt.Printf("\nMemory: %s\n", stats.FormatBytes(rss))
	}
	if failed > 0 {
		fmt.Printf("%s: %d of %d scenarios failed\n", aurora.Red("FAIL"), failed, len(all))
		os.Exit(1)
	}
	fmt.Printf("%s: all steppers agree\n", aurora.Green("OK"))
}

// runScenario steps the same starting grid through every stepper and reports
// the first generation where they disagree.
func runScenario(sc scenario, steps, bands int) scenarioResult {
	res := scenarioResult{scenario: sc, steps: steps, mismatch: -1, elapsed: make(map[life.Mode]time.Duration)}

	start, err := core.NewGrid(sc.size.W, sc.size.H)
	if err != nil {
		res.err = err
		return res
	}
	p := pattern.Defaults(sc.kind, sc.size.W, sc.size.H).Seeded(sc.seed)
	if err := pattern.Apply(start, sc.kind, p); err != nil {
		res.err = err
		return res
	}

	engines := make([]*life.Engine, len(modes))
	grids := make([]*core.Grid, len(modes))
	for i, m := range modes {
		engines[i] = life.NewEngine(m, bands)
		grids[i] = start
	}

	ctx := context.Background()
	for gen := 1; gen <= steps; gen++ {
		for i, e := range engines {
			t0 := time.Now()
			next, err := e.Step(ctx, grids[i])
			res.elapsed[modes[i]] += time.Since(t0)
			if err != nil {
				res.err = fmt.Errorf("%s: %w", modes[i], err)
				return res
			}
			grids[i] = next
		}
		for i := 1; i < len(grids); i++ {
			if !grids[0].Equal(grids[i]) {
				res.mismatch = gen
				return res
			}
		}
	}
	res.finalLive = grids[0].Count(core.Alive)
	return res
}

// workerCount clamps the requested pool size to at least one worker and at
// most one per scenario.
func workerCount(requested, jobs int) int {
	return max(1, min(requested, jobs))
}

func formatTimings(res scenarioResult) string {
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		parts = append(parts, fmt.Sprintf("%s=%s", m, res.elapsed[m].Round(time.Microsecond)))
	}
	return strings.Join(parts, " ")
}

func formatTotals(totals map[life.Mode]time.Duration, generations int) string {
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		per := time.Duration(0)
		if generations > 0 {
			per = totals[m] / time.Duration(generations)
		}
		parts = append(parts, fmt.Sprintf("%s=%s/gen", m, per))
	}
	return strings.Join(parts, " ")
}

func parseSize(s string) (core.Size, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return core.Size{}, fmt.Errorf("bad size %q, want WxH", s)
	}
	wi, err := strconv.Atoi(w)
	if err != nil || wi <= 0 {
		return core.Size{}, fmt.Errorf("bad width in %q", s)
	}
	hi, err := strconv.Atoi(h)
	if err != nil || hi <= 0 {
		return core.Size{}, fmt.Errorf("bad height in %q", s)
	}
	return core.Size{W: wi, H: hi}, nil
}
