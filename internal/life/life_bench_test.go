package life

import (
	"context"
	"math/rand/v2"
	"testing"

	"padlife/internal/core"
)

const (
	benchWidth  = 256
	benchHeight = 256
)

func Benchmark_Step(b *testing.B) {
	g := randomGrid(rand.New(rand.NewPCG(1, 1)), benchWidth, benchHeight)
	for _, m := range []Mode{ModeNaive, ModeOptimized, ModeParallel} {
		b.Run(m.String(), func(b *testing.B) {
			e := NewEngine(m, 0)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Step(context.Background(), g); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_StepInto(b *testing.B) {
	src := randomGrid(rand.New(rand.NewPCG(2, 2)), benchWidth, benchHeight)
	dst, _ := core.NewGrid(benchWidth, benchHeight)
	scratch := make([]uint8, ScratchSize(benchWidth, benchHeight))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := StepInto(src, dst, scratch); err != nil {
			b.Fatal(err)
		}
		src, dst = dst, src
	}
}
