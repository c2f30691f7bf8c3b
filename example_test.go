package mcvol_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/mcvol"
)

// Example_estimate estimates π from points in the unit square.
func Example_estimate() {
	e := mcvol.New(mcvol.WithSeed(42))

	est, err := e.Estimate(context.Background(), 100_000, 2)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("exact: %.5f\n", est.Exact)
	fmt.Println("close to pi:", est.RelativeError < 0.05)
	// Output:
	// exact: 3.14159
	// close to pi: true
}

// Example_parallelEstimate estimates the volume of the 5-ball over four workers.
func Example_parallelEstimate() {
	e := mcvol.New(mcvol.WithSeed(42))

	est, err := e.ParallelEstimate(context.Background(), 4, 400_000, 5)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("shards:", len(est.Shards))
	fmt.Println("within 5%:", est.RelativeError < 0.05)
	// Output:
	// shards: 4
	// within 5%: true
}

// Example_errors shows how argument and contract errors surface.
func Example_errors() {
	e := mcvol.New()

	_, err := e.Estimate(context.Background(), 0, 3)
	fmt.Println(errors.Is(err, mcvol.ErrInvalidArgument))

	_, err = e.ParallelEstimate(context.Background(), 4, 2, 3)
	var we *mcvol.WorkerError
	fmt.Println(errors.As(err, &we), errors.Is(err, mcvol.ErrDivision))
	// Output:
	// true
	// true true
}
