package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// intList is a flag holding integers written as "1,2,4" or ranges like "30-44".
type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok && lo != "" {
			a, err := strconv.Atoi(lo)
			if err != nil {
				return err
			}
			b, err := strconv.Atoi(hi)
			if err != nil {
				return err
			}
			if b < a {
				return fmt.Errorf("empty range %q", part)
			}
			for v := a; v <= b; v++ {
				out = append(out, v)
			}
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return fmt.Errorf("no values in %q", s)
	}
	*l = out
	return nil
}

// stringList is a comma separated flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fmt.Errorf("no values in %q", s)
	}
	*l = out
	return nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mcvol %s [flags]\n", name)
		fs.PrintDefaults()
	}
	return fs
}
