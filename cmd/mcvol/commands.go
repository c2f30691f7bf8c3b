package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/hupe1980/mcvol/bench"
	"github.com/hupe1980/mcvol/chart"
	"github.com/hupe1980/mcvol/fib"
	"github.com/hupe1980/mcvol/sampler"
	"github.com/hupe1980/mcvol/volume"
)

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func runPi(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("pi", stderr)
	c := registerCommon(fs)
	ns := intList{1000, 10000, 100000, 1000000}
	fs.Var(&ns, "n", "sample counts")
	plotMax := fs.Int("plot-max", 100000, "largest sample count drawn as a scatter chart (0 disables charts)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := c.setup(ctx, stdout, stderr)
	if err != nil {
		return err
	}

	rows, err := bench.PiSeries(ctx, e.engine, ns)
	if err != nil {
		return err
	}

	tw := table(stdout)
	fmt.Fprintln(tw, "samples\tinside\tpi\telapsed\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%.6f\t%s\t\n", r.Samples, r.Inside, r.Pi, seconds(r.Elapsed))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if e.wantArtifacts() {
		for _, n := range ns {
			if n > *plotMax {
				continue
			}
			png, err := piScatter(ctx, e, n)
			if err != nil {
				return err
			}
			e.addArtifact(fmt.Sprintf("pi/scatter_%d.png", n), png)
		}
	}
	if err := addReport(e, "pi", rows); err != nil {
		return err
	}
	return e.flush(ctx)
}

func piScatter(ctx context.Context, e *env, n int) ([]byte, error) {
	set, err := e.engine.Generate(ctx, n, 2)
	if err != nil {
		return nil, err
	}
	defer e.engine.Release(set)

	cls := e.engine.Classify(set)
	pi, err := volume.Pi(cls.InsideCount(), cls.Total())
	if err != nil {
		return nil, err
	}

	ix, iy := sampler.XY(set, cls.Inside())
	ox, oy := sampler.XY(set, cls.Outside())
	return chart.Scatter(
		fmt.Sprintf("Monte Carlo pi, n = %d, pi = %.6f", n, pi),
		chart.XY{X: ix, Y: iy},
		chart.XY{X: ox, Y: oy},
	)
}

func runHypersphere(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("hypersphere", stderr)
	c := registerCommon(fs)
	n := fs.Int("n", 100000, "samples per dimension")
	ds := intList{2, 11}
	fs.Var(&ds, "d", "dimensions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := c.setup(ctx, stdout, stderr)
	if err != nil {
		return err
	}

	rows, err := bench.HypersphereRows(ctx, e.engine, *n, ds)
	if err != nil {
		return err
	}

	tw := table(stdout)
	fmt.Fprintln(tw, "d\tsamples\testimate\texact\trel. error\telapsed\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%.6f\t%.6f\t%.4f\t%s\t\n",
			r.Dimension, r.Samples, r.Volume, r.Exact, r.RelativeError, seconds(r.Elapsed))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := addReport(e, "hypersphere", rows); err != nil {
		return err
	}
	return e.flush(ctx)
}

func runParallel(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("parallel", stderr)
	c := registerCommon(fs)
	n := fs.Int("n", 10_000_000, "total samples per estimate")
	d := fs.Int("d", 11, "dimension")
	workers := intList{1, 2, 4, 8}
	fs.Var(&workers, "workers", "worker counts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := c.setup(ctx, stdout, stderr)
	if err != nil {
		return err
	}

	total := 0
	for _, w := range workers {
		total += w
	}
	e.bar.start(total)

	rows := make([]bench.SpeedRow, 0, len(workers))
	for _, w := range workers {
		r, err := bench.SpeedSweep(ctx, e.engine, []int{w}, *n, *d)
		if err != nil {
			e.bar.finish()
			return err
		}
		rows = append(rows, r...)
		e.bar.advance(w)
	}
	e.bar.finish()

	exact := e.engine.Analytic(*d)
	fmt.Fprintf(stdout, "d = %d, n = %d, exact volume = %.6f\n", *d, *n, exact)
	tw := table(stdout)
	fmt.Fprintln(tw, "workers\testimate\trel. error\telapsed\tspeedup\t")
	for _, r := range rows {
		speedup := rows[0].Elapsed.Seconds() / r.Elapsed.Seconds()
		fmt.Fprintf(tw, "%d\t%.6f\t%.4f\t%s\t%.2fx\t\n",
			r.Workers, r.Volume, r.RelativeError, seconds(r.Elapsed), speedup)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if e.wantArtifacts() {
		png, err := chart.Lines(
			fmt.Sprintf("Parallel estimate, d = %d, n = %d", *d, *n),
			"workers", "seconds",
			[]chart.Series{bench.SpeedSeries(fmt.Sprintf("d = %d", *d), rows)},
			false,
		)
		if err != nil {
			return err
		}
		e.addArtifact("parallel/speed.png", png)
	}
	if err := addReport(e, "parallel", rows); err != nil {
		return err
	}
	return e.flush(ctx)
}

func strategies(names []string) ([]fib.Strategy, error) {
	out := make([]fib.Strategy, 0, len(names))
	for _, name := range names {
		s, err := fib.ByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func runFib(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("fib", stderr)
	c := registerCommon(fs)
	ns := intList{}
	_ = ns.Set("30-44")
	fs.Var(&ns, "n", "Fibonacci indices")
	names := stringList{"recursive", "memoized", "iterative"}
	fs.Var(&names, "strategies", "strategies to time")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := c.setup(ctx, stdout, stderr)
	if err != nil {
		return err
	}
	ss, err := strategies(names)
	if err != nil {
		return err
	}

	rows, err := bench.FibSweep(ctx, ss, ns)
	if err != nil {
		return err
	}

	totals := make(map[string]time.Duration)
	for _, r := range rows {
		totals[r.Strategy] += r.Elapsed
	}
	tw := table(stdout)
	fmt.Fprintln(tw, "strategy\ttotal\t")
	for _, s := range ss {
		fmt.Fprintf(tw, "%s\t%s\t\n", s.Name(), seconds(totals[s.Name()]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if e.wantArtifacts() {
		series := bench.FibSeries(rows)
		for _, v := range []struct {
			name string
			logY bool
		}{{"fib/times.png", false}, {"fib/times_log.png", true}} {
			png, err := chart.Lines("Fibonacci strategy performance", "Fibonacci number", "execution time, seconds", series, v.logY)
			if err != nil {
				return err
			}
			e.addArtifact(v.name, png)
		}
	}
	if err := addReport(e, "fib", rows); err != nil {
		return err
	}
	return e.flush(ctx)
}

func runFib47(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("fib47", stderr)
	c := registerCommon(fs)
	n := fs.Int("n", 47, "Fibonacci index")
	names := stringList{"memoized", "iterative"}
	fs.Var(&names, "strategies", "strategies to time")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := c.setup(ctx, stdout, stderr)
	if err != nil {
		return err
	}
	ss, err := strategies(names)
	if err != nil {
		return err
	}

	rows, err := bench.FibSweep(ctx, ss, []int{*n})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "--- Fibonacci number %d ---\n", *n)
	for _, r := range rows {
		fmt.Fprintf(stdout, "%-10s %s  F(%d) = %d\n", r.Strategy, seconds(r.Elapsed), r.N, r.Value)
	}

	if err := addReport(e, "fib47", rows); err != nil {
		return err
	}
	return e.flush(ctx)
}
