package fanout

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for non-positive sample, worker or dimension counts.
var ErrInvalidArgument = errors.New("fanout: invalid argument")

// WorkerError reports the shard that failed a run.
//
// The original underlying error can be accessed via errors.Unwrap.
type WorkerError struct {
	Shard int
	Size  int
	cause error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("fanout: shard %d (%d samples): %v", e.Shard, e.Size, e.cause)
}

func (e *WorkerError) Unwrap() error { return e.cause }
