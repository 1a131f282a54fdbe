// Package main is the protscope command line. It explores proteins and their
// biological processes on Wikidata, either printing view models to the
// terminal or serving them as JSON over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/protscope/core/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		ui.Error(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
