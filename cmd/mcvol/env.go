package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/hupe1980/mcvol"
	"github.com/hupe1980/mcvol/bench"
	"github.com/hupe1980/mcvol/blobstore"
	"github.com/hupe1980/mcvol/codec"
	"github.com/hupe1980/mcvol/resource"
)

// common holds the flags every command accepts.
type common struct {
	seed         uint64
	out          string
	compress     string
	codec        string
	logLevel     string
	logJSON      bool
	progress     bool
	maxWorkers   int64
	memLimit     int64
	progressRate float64
}

func registerCommon(fs *flag.FlagSet) *common {
	c := &common{}
	fs.Uint64Var(&c.seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.StringVar(&c.out, "out", "", "artifact store: a directory, file://dir, s3://bucket/prefix or minio://host/bucket/prefix (empty disables artifacts)")
	fs.StringVar(&c.compress, "compress", "none", "report compression: none, lz4 or zstd")
	fs.StringVar(&c.codec, "codec", "go-json", "report codec: json or go-json")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&c.logJSON, "log-json", false, "write logs as JSON")
	fs.BoolVar(&c.progress, "progress", true, "show a progress bar for parallel estimates")
	fs.Int64Var(&c.maxWorkers, "max-workers", 0, "maximum shards running at once (0 = unlimited)")
	fs.Int64Var(&c.memLimit, "mem-limit", 0, "maximum bytes held by generated samples (0 = unlimited)")
	fs.Float64Var(&c.progressRate, "progress-rate", 20, "maximum progress updates per second (0 = unlimited)")
	return c
}

// env is the state shared by a command run.
type env struct {
	engine *mcvol.Engine
	seed   uint64
	store  blobstore.Store
	codec  codec.Codec
	comp   codec.Compression
	logger *mcvol.Logger
	bar    *shardBar
	stdout io.Writer

	artifacts map[string][]byte
}

func (c *common) setup(ctx context.Context, stdout, stderr io.Writer) (*env, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var logger *mcvol.Logger
	if c.logJSON {
		logger = mcvol.NewLogger(slog.NewJSONHandler(stderr, opts))
	} else {
		logger = mcvol.NewLogger(slog.NewTextHandler(stderr, opts))
	}

	comp, err := codec.ParseCompression(c.compress)
	if err != nil {
		return nil, err
	}
	cd, ok := codec.ByName(c.codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", c.codec)
	}

	var store blobstore.Store
	if c.out != "" {
		if store, err = openStore(ctx, c.out); err != nil {
			return nil, err
		}
	}

	seed := c.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctrl := resource.NewController(resource.Config{
		MaxWorkers:       c.maxWorkers,
		MemoryLimitBytes: c.memLimit,
		ProgressPerSec:   c.progressRate,
	})
	limits := ctrl.Config()
	logger.DebugContext(ctx, "resource limits",
		"max_workers", limits.MaxWorkers,
		"memory_limit_bytes", limits.MemoryLimitBytes,
		"progress_per_sec", limits.ProgressPerSec,
	)

	bar := &shardBar{w: stderr, enabled: c.progress}
	e := &env{
		seed:      seed,
		store:     store,
		codec:     cd,
		comp:      comp,
		logger:    logger,
		bar:       bar,
		stdout:    stdout,
		artifacts: make(map[string][]byte),
	}
	e.engine = mcvol.New(
		mcvol.WithSeed(seed),
		mcvol.WithLogger(logger),
		mcvol.WithController(ctrl),
		mcvol.WithProgress(bar.update),
	)
	return e, nil
}

// addArtifact queues data for upload. Nothing is stored without -out.
func (e *env) addArtifact(name string, data []byte) {
	if e.store == nil {
		return
	}
	e.artifacts[name] = data
}

// wantArtifacts reports whether rendering artifacts is worthwhile.
func (e *env) wantArtifacts() bool { return e.store != nil }

func addReport[T any](e *env, kind string, rows []T) error {
	if e.store == nil {
		return nil
	}
	data, err := bench.NewReport(kind, e.seed, rows).Encode(e.codec, e.comp)
	if err != nil {
		return err
	}
	e.addArtifact(path.Join(kind, "report.json"+e.comp.Extension()), data)
	return nil
}

// flush uploads all queued artifacts and lists them on stdout.
func (e *env) flush(ctx context.Context) error {
	if e.store == nil || len(e.artifacts) == 0 {
		return nil
	}
	if err := blobstore.PutAll(ctx, e.store, e.artifacts, 4); err != nil {
		return err
	}

	names := make([]string, 0, len(e.artifacts))
	for name := range e.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(e.stdout, "wrote %s (%d bytes)\n", name, len(e.artifacts[name]))
	}
	e.logger.Info("artifacts written", "count", len(names))
	return nil
}

// shardBar renders finished shards of consecutive parallel estimates as
// one progress bar.
type shardBar struct {
	w       io.Writer
	enabled bool
	bar     *pb.ProgressBar
	offset  atomic.Int64
}

func (s *shardBar) start(total int) {
	if !s.enabled || total <= 0 {
		return
	}
	s.offset.Store(0)
	s.bar = pb.Simple.New(total).SetWriter(s.w).Start()
}

func (s *shardBar) update(p mcvol.Progress) {
	if s.bar == nil {
		return
	}
	s.bar.SetCurrent(s.offset.Load() + int64(p.Done))
}

// advance marks a whole estimate of n shards as done.
func (s *shardBar) advance(n int) {
	v := s.offset.Add(int64(n))
	if s.bar != nil {
		s.bar.SetCurrent(v)
	}
}

func (s *shardBar) finish() {
	if s.bar != nil {
		s.bar.Finish()
		s.bar = nil
	}
}
