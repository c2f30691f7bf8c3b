package sampler

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for non-positive sizes or a nil RNG.
var ErrInvalidArgument = errors.New("sampler: invalid argument")

// ErrInvalidSize reports a rejected sample count or dimensionality.
//
// It matches ErrInvalidArgument via errors.Is.
type ErrInvalidSize struct {
	Name  string
	Value int
}

func (e *ErrInvalidSize) Error() string {
	return fmt.Sprintf("sampler: invalid %s: %d", e.Name, e.Value)
}

func (e *ErrInvalidSize) Is(target error) bool { return target == ErrInvalidArgument }
