// Package seeder runs one end-to-end generation: synthesize records, render
// them as a single INSERT statement and write the artifact.
package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dashboard-seeder/internal/data"
	"dashboard-seeder/internal/logging"
	"dashboard-seeder/internal/observability"
	"dashboard-seeder/internal/sqlfile"
)

// Result summarises a finished run.
type Result struct {
	Path         string
	Records      int
	Bytes        int
	ByTechnology map[string]int
	Duration     time.Duration
}

// Confirmation is the single line printed to the operator on success.
func (r Result) Confirmation() string {
	return fmt.Sprintf("SQL file generated: %s (%d records)", r.Path, r.Records)
}

type options struct {
	logger  logging.Logger
	metrics *observability.SeederCollector
}

// Option customises Run.
type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(c *observability.SeederCollector) Option {
	return func(o *options) { o.metrics = c }
}

// Run generates cfg.Count records from rng and writes them to cfg.OutputPath,
// replacing any previous file. Config errors are returned before anything is
// written; a write failure wraps sqlfile.ErrArtifactWrite.
func Run(ctx context.Context, cfg data.Config, rng *rand.Rand, opts ...Option) (Result, error) {
	o := options{logger: logging.Noop()}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, log := logging.WithRunLogger(ctx, o.logger)
	start := time.Now()

	if o.metrics == nil && cfg.MetricsTextfile != "" {
		c, err := observability.NewSeederCollector(prometheus.NewRegistry())
		if err != nil {
			return Result{}, err
		}
		o.metrics = c
	}

	synth, err := data.NewSynthesizer(cfg, rng)
	if err != nil {
		log.Error(ctx, "invalid generator config", logging.Err(err))
		return Result{}, err
	}

	log.Debug(ctx, "generating records",
		logging.Int("count", cfg.Count),
		logging.Int("regions", len(cfg.Regions)),
		logging.Int("technologies", len(cfg.Technologies)))

	records, err := synth.Generate(cfg.Count)
	if err != nil {
		log.Error(ctx, "record generation failed", logging.Err(err))
		return Result{}, err
	}
	byTech := make(map[string]int, len(cfg.Technologies))
	for _, r := range records {
		byTech[r.NetworkType]++
		o.metrics.ObserveRecord(r.NetworkType)
	}

	content, err := sqlfile.Statement(cfg.Comment, records)
	if err != nil {
		return Result{}, err
	}
	if err := sqlfile.WriteArtifact(cfg.OutputPath, content); err != nil {
		log.Error(ctx, "write artifact", logging.String("path", cfg.OutputPath), logging.Err(err))
		return Result{}, err
	}

	res := Result{
		Path:         cfg.OutputPath,
		Records:      len(records),
		Bytes:        len(content),
		ByTechnology: byTech,
		Duration:     time.Since(start),
	}
	o.metrics.ObserveRun(res.Bytes, res.Duration, time.Now())
	if cfg.MetricsTextfile != "" {
		if err := o.metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			// Metrics failures never fail a run.
			log.Warn(ctx, "metrics textfile not written", logging.Err(err))
		}
	}

	log.Info(ctx, "artifact written",
		logging.String("path", res.Path),
		logging.Int("records", res.Records),
		logging.Int("bytes", res.Bytes),
		logging.Any("by_network_type", res.ByTechnology),
		logging.Any("duration", res.Duration))
	return res, nil
}
