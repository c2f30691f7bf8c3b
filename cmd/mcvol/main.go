// Command mcvol runs Monte Carlo volume estimates and Fibonacci timings and
// writes reports and charts to an artifact store.
//
// Usage:
//
//	mcvol pi          [-n 1000,10000] [-plot-max 100000] [common flags]
//	mcvol hypersphere [-n 100000] [-d 2,11] [common flags]
//	mcvol parallel    [-n 10000000] [-d 11] [-workers 1,2,4,8] [common flags]
//	mcvol fib         [-n 30-44] [-strategies recursive,memoized,iterative] [common flags]
//	mcvol fib47       [-strategies memoized,iterative] [common flags]
//
// Common flags select the seed, logging and the artifact store:
//
//	-out file://./out | s3://bucket/prefix | minio://host:9000/bucket/prefix
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
)

var errUsage = errors.New("usage")

type command struct {
	name  string
	short string
	run   func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"pi", "approximate pi and draw scatter charts", runPi},
	{"hypersphere", "estimate unit ball volumes in several dimensions", runHypersphere},
	{"parallel", "time parallel estimates across worker counts", runParallel},
	{"fib", "time Fibonacci strategies", runFib},
	{"fib47", "compute the 47th Fibonacci number", runFib47},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, args[1:], stdout, stderr)
		}
	}
	usage(stderr)
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: mcvol <command> [flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.short)
	}
	fmt.Fprintf(w, "\nRun 'mcvol <command> -h' for the flags of a command.\n")
}
