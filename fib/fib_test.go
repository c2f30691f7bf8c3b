package fib

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var known = map[int]uint64{
	0:  0,
	1:  1,
	2:  1,
	10: 55,
	20: 6765,
	25: 75025,
	30: 832040,
}

func TestStrategiesAgree(t *testing.T) {
	ctx := context.Background()
	for _, s := range All() {
		t.Run(s.Name(), func(t *testing.T) {
			for n, want := range known {
				got, err := s.Fib(ctx, n)
				require.NoError(t, err)
				assert.Equal(t, want, got, "F(%d)", n)
			}
		})
	}
}

func TestLargeValues(t *testing.T) {
	ctx := context.Background()

	// F(47) overflows a signed 32-bit integer.
	v, err := Iterative{}.Fib(ctx, 47)
	require.NoError(t, err)
	assert.Equal(t, uint64(2971215073), v)

	m, err := NewMemoized().Fib(ctx, 47)
	require.NoError(t, err)
	assert.Equal(t, v, m)

	last, err := Iterative{}.Fib(ctx, MaxN)
	require.NoError(t, err)
	assert.Equal(t, uint64(12200160415121876738), last)
}

func TestInvalidArguments(t *testing.T) {
	ctx := context.Background()
	for _, s := range All() {
		_, err := s.Fib(ctx, -1)
		assert.ErrorIs(t, err, ErrInvalidArgument, s.Name())

		_, err = s.Fib(ctx, MaxN+1)
		assert.ErrorIs(t, err, ErrOverflow, s.Name())
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range All() {
		_, err := s.Fib(ctx, 40)
		assert.ErrorIs(t, err, context.Canceled, s.Name())
	}

	// Small n never reaches a cancellation point in the recursive strategy.
	v, err := Recursive{}.Fib(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(55), v)
}

func TestMemoizedReset(t *testing.T) {
	m := NewMemoized()
	_, err := m.Fib(context.Background(), 50)
	require.NoError(t, err)
	assert.Greater(t, len(m.memo), 50)

	m.Reset()
	assert.Len(t, m.memo, 2)

	var zero Memoized
	v, err := zero.Fib(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, uint64(144), v)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"recursive", "memoized", "iterative"} {
		s, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := ByName("numba")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func BenchmarkStrategies(b *testing.B) {
	ctx := context.Background()
	for _, s := range All() {
		b.Run(s.Name(), func(b *testing.B) {
			for b.Loop() {
				if m, ok := s.(*Memoized); ok {
					m.Reset()
				}
				_, _ = s.Fib(ctx, 25)
			}
		})
	}
}
