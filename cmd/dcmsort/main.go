package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dcmsort/internal/sorter"
)

// Process exit codes. Only main maps errors to codes; everything below it
// returns sentinel-tagged errors.
const (
	exitOK          = 0
	exitFailure     = 1
	exitRunFailed   = 2
	exitInterrupted = 130
	exitCollision   = 253
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)

	code := exitCode(err)
	if err != nil && code != exitInterrupted {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitInterrupted
	case errors.Is(err, sorter.ErrCollision):
		return exitCollision
	case errors.Is(err, sorter.ErrRunFailed):
		return exitRunFailed
	default:
		return exitFailure
	}
}
