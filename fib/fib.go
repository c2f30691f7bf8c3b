package fib

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MaxN is the largest n whose Fibonacci number fits in a uint64.
const MaxN = 93

var (
	// ErrInvalidArgument is returned for negative n.
	ErrInvalidArgument = errors.New("fib: invalid argument")

	// ErrOverflow is returned for n > MaxN.
	ErrOverflow = errors.New("fib: result overflows uint64")

	// ErrUnknownStrategy is returned by ByName for an unregistered name.
	ErrUnknownStrategy = errors.New("fib: unknown strategy")
)

// Strategy computes Fibonacci numbers.
type Strategy interface {
	// Name returns a short stable identifier used in reports and charts.
	Name() string
	// Fib returns F(n) with F(0) = 0 and F(1) = 1.
	Fib(ctx context.Context, n int) (uint64, error)
}

func check(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: n=%d", ErrInvalidArgument, n)
	}
	if n > MaxN {
		return fmt.Errorf("%w: n=%d", ErrOverflow, n)
	}
	return nil
}

// cancelCheckDepth is the recursion depth down to which Recursive polls ctx.
// Deeper calls are cheap enough that polling would dominate.
const cancelCheckDepth = 20

// Recursive is the doubly recursive definition without caching.
type Recursive struct{}

// Name implements Strategy.
func (Recursive) Name() string { return "recursive" }

// Fib implements Strategy. Cancellation is polled near the top of the call
// tree, so a canceled ctx stops the computation within one small subtree.
func (Recursive) Fib(ctx context.Context, n int) (uint64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	return recursive(ctx, n)
}

func recursive(ctx context.Context, n int) (uint64, error) {
	if n <= 1 {
		return uint64(n), nil
	}
	if n > cancelCheckDepth {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		a, err := recursive(ctx, n-1)
		if err != nil {
			return 0, err
		}
		b, err := recursive(ctx, n-2)
		if err != nil {
			return 0, err
		}
		return a + b, nil
	}
	return plain(n), nil
}

func plain(n int) uint64 {
	if n <= 1 {
		return uint64(n)
	}
	return plain(n-1) + plain(n-2)
}

// Memoized is the recursive definition with a shared cache of computed values.
// It is safe for concurrent use.
type Memoized struct {
	mu   sync.Mutex
	memo map[int]uint64
}

// NewMemoized creates a Memoized strategy with an empty cache.
func NewMemoized() *Memoized {
	return &Memoized{memo: map[int]uint64{0: 0, 1: 1}}
}

// Name implements Strategy.
func (m *Memoized) Name() string { return "memoized" }

// Fib implements Strategy.
func (m *Memoized) Fib(ctx context.Context, n int) (uint64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.memo == nil {
		m.memo = map[int]uint64{0: 0, 1: 1}
	}
	return m.fibLocked(n), nil
}

func (m *Memoized) fibLocked(n int) uint64 {
	if v, ok := m.memo[n]; ok {
		return v
	}
	v := m.fibLocked(n-1) + m.fibLocked(n-2)
	m.memo[n] = v
	return v
}

// Reset clears the cache so the next call pays the full cost again.
func (m *Memoized) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memo = map[int]uint64{0: 0, 1: 1}
}

// Iterative walks the sequence from F(0) to F(n).
type Iterative struct{}

// Name implements Strategy.
func (Iterative) Name() string { return "iterative" }

// Fib implements Strategy.
func (Iterative) Fib(ctx context.Context, n int) (uint64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var a, b uint64 = 0, 1
	for range n {
		a, b = b, a+b
	}
	return a, nil
}

// All returns one instance of every strategy, slowest first.
func All() []Strategy {
	return []Strategy{Recursive{}, NewMemoized(), Iterative{}}
}

// ByName returns a new instance of the named strategy.
func ByName(name string) (Strategy, error) {
	for _, s := range All() {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
