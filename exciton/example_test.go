package exciton_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/excitontb/builder"
	"github.com/katalvlaran/excitontb/exciton"
	"github.com/katalvlaran/excitontb/kernel"
)

func ExampleEngine_Solve() {
	ds, _ := builder.Sample1(builder.WithSeed(1))
	eng, err := exciton.New(ds)
	if err != nil {
		fmt.Println(err)
		return
	}
	kern, _ := kernel.New(kernel.Keldysh)
	ctx := context.Background()
	st, err := eng.Interaction(ctx, 2.0, kern)
	if err != nil {
		fmt.Println(err)
		return
	}
	x, err := eng.Solve(ctx, st)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d keys, %d excitons, %d cached\n", st.Len(), x.Len(), eng.Cached())
	// Output:
	// 4 keys, 12 excitons, 1 cached
}
