package exciton_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/excitontb/builder"
	"github.com/katalvlaran/excitontb/exciton"
)

func BenchmarkSolve_Monolayer(b *testing.B) {
	ds, err := builder.Monolayer(6, 4, 2, 2, builder.WithSeed(1))
	if err != nil {
		b.Fatal(err)
	}
	eng, err := exciton.New(ds)
	if err != nil {
		b.Fatal(err)
	}
	st, err := eng.Interaction(context.Background(), 3.5, yukawa(b))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := exciton.Solve(context.Background(), st); err != nil {
			b.Fatal(err)
		}
	}
}
