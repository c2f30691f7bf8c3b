package mcvol

import (
	"errors"
	"fmt"

	"github.com/hupe1980/mcvol/internal/fanout"
	"github.com/hupe1980/mcvol/resource"
	"github.com/hupe1980/mcvol/sampler"
	"github.com/hupe1980/mcvol/volume"
)

var (
	// ErrInvalidArgument is returned when n, d or the worker count is not positive.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDivision is returned when an estimate is requested over zero samples.
	ErrDivision = errors.New("division by zero sample count")

	// ErrMemoryLimit is returned when a sample set alone needs more memory
	// than the controller's limit allows.
	ErrMemoryLimit = errors.New("memory limit exceeded")
)

// WorkerError indicates that a shard of a parallel estimate failed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type WorkerError struct {
	Shard int
	Size  int
	cause error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker for shard %d (%d samples) failed: %v", e.Shard, e.Size, e.cause)
}

func (e *WorkerError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var we *fanout.WorkerError
	if errors.As(err, &we) {
		return &WorkerError{Shard: we.Shard, Size: we.Size, cause: translateError(errors.Unwrap(we))}
	}

	if errors.Is(err, resource.ErrMemoryLimit) {
		return fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}
	if errors.Is(err, volume.ErrDivision) {
		return fmt.Errorf("%w: %w", ErrDivision, err)
	}
	if errors.Is(err, sampler.ErrInvalidArgument) ||
		errors.Is(err, volume.ErrInvalidArgument) ||
		errors.Is(err, fanout.ErrInvalidArgument) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
