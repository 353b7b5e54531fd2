package collapse_test

import (
	"testing"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/tileset"
)

// benchGenerate measures one full Generate per iteration on the circuit
// theme. Seeds vary per iteration so restarts are part of the cost.
func benchGenerate(b *testing.B, size int, opts ...collapse.Option) {
	e := newEngine(b, tileset.Circuit())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o := append([]collapse.Option{collapse.WithSeed(int64(i + 1)), collapse.WithMaxAttempts(100)}, opts...)
		if _, err := e.Generate(size, size, o...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate_Circuit16(b *testing.B) { benchGenerate(b, 16) }

func BenchmarkGenerate_Circuit32(b *testing.B) { benchGenerate(b, 32) }

func BenchmarkGenerate_Circuit32_Hilbert(b *testing.B) {
	benchGenerate(b, 32, collapse.WithOrder(grid.Hilbert), collapse.WithTieBreak(collapse.TieRandom))
}

func BenchmarkGenerateMany_Circuit16x8(b *testing.B) {
	e := newEngine(b, tileset.Circuit())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.GenerateMany(8, 16, 16, collapse.WithSeed(int64(i+1)), collapse.WithMaxAttempts(100)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewEngine_Circuit(b *testing.B) {
	c, err := tileset.Build(tileset.Circuit())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := collapse.NewEngine(c); err != nil {
			b.Fatal(err)
		}
	}
}
