package pipeline

import (
	"io"
	"log/slog"

	"github.com/gridshift-org/gridshift/engine"
)

// ============================================================================
// RUNNER OPTIONS — functional options for New()
// ============================================================================

// Sink receives a metric's finished output table. Sinks are written only
// after the metric's full computation succeeds.
type Sink interface {
	WriteTable(t *engine.Table) error
}

// Option configures a Runner.
type Option func(*config)

type config struct {
	Logger    *slog.Logger
	RegionDim string
	Tolerance float64
	Sinks     []Sink
}

// WithLogger sets the structured logger. Defaults to a discard logger so
// library consumers and tests stay quiet.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.Logger = l }
}

// WithRegionDimension names the input column carrying place labels for
// regional metrics. When it is not the canonical Region column the runner
// aliases it to Region before concordance resolution, so grouping and table
// building are unaffected. Defaults to Region.
func WithRegionDimension(dim string) Option {
	return func(c *config) { c.RegionDim = dim }
}

// WithTolerance overrides the rollup reconciliation tolerance.
func WithTolerance(tol float64) Option {
	return func(c *config) { c.Tolerance = tol }
}

// WithSinks registers output sinks, appended in order.
func WithSinks(sinks ...Sink) Option {
	return func(c *config) { c.Sinks = append(c.Sinks, sinks...) }
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		RegionDim: engine.DimRegion,
		Tolerance: engine.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
