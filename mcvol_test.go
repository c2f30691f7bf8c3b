package mcvol

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mcvol/resource"
	"github.com/hupe1980/mcvol/sampler"
	"github.com/hupe1980/mcvol/testutil"
)

func TestEngine_Generate(t *testing.T) {
	e := New(WithSeed(1))

	set, err := e.Generate(context.Background(), 1000, 3)
	require.NoError(t, err)
	defer e.Release(set)

	assert.Equal(t, 1000, set.Len())
	assert.Equal(t, 3, set.Dim())
}

func TestEngine_GenerateInvalid(t *testing.T) {
	e := New()

	_, err := e.Generate(context.Background(), 0, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.Generate(context.Background(), 10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEngine_GenerateReservesMemory(t *testing.T) {
	ctrl := resource.NewController(resource.Config{})
	e := New(WithController(ctrl))

	set, err := e.Generate(context.Background(), 100, 4)
	require.NoError(t, err)
	assert.Equal(t, sampler.SizeBytes(100, 4), ctrl.MemoryUsage())

	e.Release(set)
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
}

func TestEngine_GenerateMemoryLimit(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
	e := New(WithController(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Generate(ctx, 1000, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
}

func TestEngine_EstimateMemoryLimitFailsFast(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
	e := New(WithController(ctrl))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := e.Estimate(ctx, 1000, 2)
	require.ErrorIs(t, err, ErrMemoryLimit)
	assert.ErrorIs(t, err, resource.ErrMemoryLimit)
	assert.Less(t, time.Since(start), time.Second)
	assert.NoError(t, ctx.Err())
	assert.Equal(t, int64(0), ctrl.MemoryUsage())

	// A set that fits the limit is still generated.
	est, err := e.Estimate(ctx, 64, 2)
	require.NoError(t, err)
	assert.Equal(t, 64, est.Samples)
}

func TestEngine_EstimatePi(t *testing.T) {
	e := New(WithSeed(1))

	est, err := e.Estimate(context.Background(), 1000, 2)
	require.NoError(t, err)

	// Seeded regression: 759 of 1000 points land inside the unit disk.
	assert.Equal(t, 759, est.Inside)
	assert.InDelta(t, 3.036, est.Volume, 1e-12)
	assert.GreaterOrEqual(t, est.Volume, 3.0)
	assert.LessOrEqual(t, est.Volume, 3.3)
	assert.InDelta(t, math.Pi, est.Exact, 1e-12)
	assert.Equal(t, 1, est.Workers)
	assert.InDelta(t, 4*float64(est.Inside)/1000, est.Volume, 1e-12)
}

func TestEngine_EstimateDeterministic(t *testing.T) {
	a, err := New(WithSeed(7)).Estimate(context.Background(), 5000, 3)
	require.NoError(t, err)
	b, err := New(WithSeed(7)).Estimate(context.Background(), 5000, 3)
	require.NoError(t, err)

	assert.Equal(t, a.Inside, b.Inside)
	assert.Equal(t, a.Volume, b.Volume)
}

func TestEngine_SuccessiveEstimatesDiffer(t *testing.T) {
	e := New(WithSeed(7))
	a, err := e.Estimate(context.Background(), 5000, 3)
	require.NoError(t, err)
	b, err := e.Estimate(context.Background(), 5000, 3)
	require.NoError(t, err)

	assert.NotEqual(t, a.Inside, b.Inside, "engine RNG must advance between calls")
}

func TestEngine_ParallelEstimate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical test in short mode")
	}

	e := New(WithSeed(11))
	est, err := e.ParallelEstimate(context.Background(), 4, 2_000_000, 11)
	require.NoError(t, err)

	assert.Len(t, est.Shards, 4)
	assert.Less(t, est.RelativeError, 0.15)
	assert.InDelta(t, e.Analytic(11), est.Exact, 1e-12)
	testutil.AssertWithinSigma(t, est.Volume, est.Exact,
		testutil.ShardedStdErr(11, []int{500_000, 500_000, 500_000, 500_000}), 5)
}

func TestEngine_ClassifyMatchesGroundTruth(t *testing.T) {
	e := New(WithSeed(9))
	set, err := e.Generate(context.Background(), 5000, 4)
	require.NoError(t, err)
	defer e.Release(set)

	cls := e.Classify(set)
	assert.Equal(t, testutil.CountInside(set.Points()), cls.InsideCount())
}

func TestEngine_ParallelEstimateSmallRun(t *testing.T) {
	e := New(WithSeed(11))
	est, err := e.ParallelEstimate(context.Background(), 4, 10000, 11)
	require.NoError(t, err)

	assert.Len(t, est.Shards, 4)
	assert.Equal(t, 2500, est.Shards[3].Size)
	assert.GreaterOrEqual(t, est.Volume, 0.0)
	assert.False(t, math.IsNaN(est.Volume))
}

func TestEngine_ParallelEstimateSeededRegression(t *testing.T) {
	e := New(WithSeed(4))
	est, err := e.ParallelEstimate(context.Background(), 4, 10000, 11)
	require.NoError(t, err)

	// Nine of 10000 eleven-dimensional points fall inside the ball, which
	// puts the mean of the shard estimates within 3% of the exact volume.
	assert.Equal(t, 9, est.Inside)
	assert.InDelta(t, 1.8432, est.Volume, 1e-12)
	assert.Less(t, est.RelativeError, 0.15)
	assert.InDelta(t, 1.8841038793898994, est.Exact, 1e-9)
}

func TestEngine_ParallelEstimateLogsShards(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := New(WithSeed(2), WithLogger(logger))

	_, err := e.ParallelEstimate(context.Background(), 2, 200, 3)
	require.NoError(t, err)

	shards := 0
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		if rec["msg"] != "shard completed" {
			continue
		}
		shards++
		assert.Equal(t, float64(2), rec["workers"])
		assert.Equal(t, float64(3), rec["dimension"])
	}
	assert.Equal(t, 2, shards)
}

func TestEngine_ParallelEstimateDeterministic(t *testing.T) {
	a, err := New(WithSeed(3)).ParallelEstimate(context.Background(), 3, 30000, 4)
	require.NoError(t, err)
	b, err := New(WithSeed(3)).ParallelEstimate(context.Background(), 3, 30000, 4)
	require.NoError(t, err)

	assert.Equal(t, a.Volume, b.Volume)
	assert.Equal(t, a.Inside, b.Inside)
}

func TestEngine_ParallelEstimateErrors(t *testing.T) {
	e := New()
	ctx := context.Background()

	_, err := e.ParallelEstimate(ctx, 0, 100, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.ParallelEstimate(ctx, 2, -1, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.ParallelEstimate(ctx, 2, 100, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Four empty shards precede the one holding all three samples.
	_, err = e.ParallelEstimate(ctx, 5, 3, 2)
	var we *WorkerError
	require.ErrorAs(t, err, &we)
	assert.ErrorIs(t, err, ErrDivision)
	assert.Equal(t, 0, we.Size)
}

func TestEngine_Progress(t *testing.T) {
	var (
		mu     sync.Mutex
		events []Progress
	)
	e := New(WithSeed(1), WithProgress(func(p Progress) {
		mu.Lock()
		events = append(events, p)
		mu.Unlock()
	}))

	_, err := e.ParallelEstimate(context.Background(), 4, 4000, 2)
	require.NoError(t, err)

	require.Len(t, events, 4)
	done := map[int]bool{}
	for _, ev := range events {
		assert.Equal(t, 4, ev.Total)
		done[ev.Done] = true
	}
	assert.True(t, done[4])
}

func TestEngine_ProgressRateLimited(t *testing.T) {
	var calls []Progress
	var mu sync.Mutex
	ctrl := resource.NewController(resource.Config{ProgressPerSec: 0.001})
	e := New(WithController(ctrl), WithProgress(func(p Progress) {
		mu.Lock()
		calls = append(calls, p)
		mu.Unlock()
	}))

	_, err := e.ParallelEstimate(context.Background(), 8, 8000, 2)
	require.NoError(t, err)

	assert.Less(t, len(calls), 8)
	last := false
	for _, c := range calls {
		if c.Done == 8 {
			last = true
		}
	}
	assert.True(t, last, "final shard is always reported")
}

func TestEngine_Metrics(t *testing.T) {
	m := &BasicMetricsCollector{}
	e := New(WithSeed(1), WithMetricsCollector(m))

	_, err := e.Estimate(context.Background(), 100, 2)
	require.NoError(t, err)
	_, err = e.ParallelEstimate(context.Background(), 2, 200, 2)
	require.NoError(t, err)
	_, err = e.Estimate(context.Background(), 0, 2)
	require.Error(t, err)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.GenerateCount)
	assert.Equal(t, int64(1), stats.GenerateErrors)
	assert.Equal(t, int64(100), stats.GeneratedPoints)
	assert.Equal(t, int64(3), stats.EstimateCount)
	assert.Equal(t, int64(1), stats.EstimateErrors)
	assert.Equal(t, int64(300), stats.SampledPoints)
	assert.Equal(t, int64(2), stats.ShardCount)
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))

	other := errors.New("other")
	assert.Equal(t, other, translateError(other))
}
