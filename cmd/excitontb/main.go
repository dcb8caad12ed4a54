// SPDX-License-Identifier: MIT

// Command excitontb builds exciton interaction stores and absorption spectra
// from tight-binding containers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "excitontb:", err)
		stop()
		os.Exit(1)
	}
}
