// Command dmsort sorts nearly sorted input with drop-merge sort, benchmarks
// it against general-purpose sorts and replays correctness scenarios.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/dmsort/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
