// Package pipeline drives the metric catalog through the aggregation
// stages: concordance view → segment filter → grouped aggregation → derived
// calculation → rollup reconciliation → output table. Each metric runs in
// isolation; one metric's failure never terminates the run.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gridshift-org/gridshift/catalog"
	"github.com/gridshift-org/gridshift/concord"
	"github.com/gridshift-org/gridshift/engine"
)

// Runner executes a set of metric definitions against one cleaned input
// table. All dependencies are explicit — the engine carries no process-wide
// state, so independent runners never interfere.
type Runner struct {
	view     engine.RecordView
	resolver *concord.Resolver
	metrics  []catalog.Metric
	log      *slog.Logger
	cfg      *config
}

// New builds a Runner over a cleaned input view. The resolver may be nil
// when no metric in the set is regional.
func New(view engine.RecordView, resolver *concord.Resolver, metrics []catalog.Metric, opts ...Option) *Runner {
	cfg := applyOptions(opts)
	return &Runner{
		view:     view,
		resolver: resolver,
		metrics:  metrics,
		log:      cfg.Logger,
		cfg:      cfg,
	}
}

// Run computes every metric in the set and returns the per-metric summary.
// Failures are caught at the metric boundary; output reaches the sinks only
// after a metric's full computation succeeds.
func (r *Runner) Run() Summary {
	summary := Summary{}
	for _, m := range r.metrics {
		result := MetricResult{MetricID: m.MetricID, OutputName: m.OutputName}

		table, err := r.runMetric(m)
		switch {
		case errors.Is(err, engine.ErrEmptySegment):
			result.Skipped = true
			r.log.Info("metric skipped: empty segment",
				"metric", m.MetricID, "output", m.OutputName)
		case err != nil:
			result.Err = err
			r.log.Error("metric failed",
				"metric", m.MetricID, "output", m.OutputName, "error", err)
		default:
			result.Rows = len(table.Rows)
			if err := r.write(table); err != nil {
				result.Err = err
				result.Rows = 0
				r.log.Error("metric output write failed",
					"metric", m.MetricID, "output", m.OutputName, "error", err)
			} else {
				r.log.Info("metric complete",
					"metric", m.MetricID, "output", m.OutputName, "rows", result.Rows)
			}
		}

		summary.Results = append(summary.Results, result)
	}

	if r.resolver != nil {
		if unmapped := r.resolver.Unmapped(); len(unmapped) > 0 {
			r.log.Warn("unmapped place labels resolved to Unknown",
				"count", len(unmapped), "labels", unmapped)
		}
	}
	return summary
}

// runMetric computes one metric end to end. Panics from definition bugs are
// converted to errors so the metric boundary holds.
func (r *Runner) runMetric(m catalog.Metric) (table *engine.Table, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("metric %s: panic: %v", m.MetricID, rec)
		}
	}()

	if err := m.Validate(); err != nil {
		return nil, err
	}

	view := engine.RecordView(r.view)
	if m.Regional {
		if r.resolver == nil {
			return nil, fmt.Errorf("metric %s: regional metric requires a concordance resolver", m.MetricID)
		}
		// Inputs may carry place labels in a non-canonical column; alias it
		// to Region so grouping and table building read one name.
		if r.cfg.RegionDim != engine.DimRegion {
			view = engine.NewAliasView(view, engine.DimRegion, r.cfg.RegionDim)
		}
		view = concord.NewView(view, engine.DimRegion, r.resolver)
	}
	if err := engine.RequireColumns(view, m.RequiredColumns()); err != nil {
		return nil, fmt.Errorf("metric %s: %w", m.MetricID, err)
	}

	groupDims := m.GroupDims()
	var detail, rollup []engine.GroupRow

	switch m.Calculation {
	case catalog.CalcCount, catalog.CalcSum, catalog.CalcUnitConvert:
		detail, rollup, err = r.runAdditive(m, view, groupDims)
	case catalog.CalcRatio:
		detail, rollup, err = r.runRatio(m, view, groupDims)
	case catalog.CalcRollingMean:
		detail, err = r.runRolling(m, view, groupDims)
	default:
		err = fmt.Errorf("metric %s: unknown calculation %q", m.MetricID, m.Calculation)
	}
	if err != nil {
		return nil, err
	}

	return engine.BuildTable(m.MetricID, m.OutputName, detail, rollup, m.Stamp()), nil
}

// runAdditive handles count, sum, and unit-converted sum metrics, including
// the reconciled rollup pass.
func (r *Runner) runAdditive(m catalog.Metric, view engine.RecordView, groupDims []string) ([]engine.GroupRow, []engine.GroupRow, error) {
	filtered := engine.ApplyFilters(view, engine.NewFilters(m.Filters))
	if filtered.Len() == 0 {
		return nil, nil, engine.ErrEmptySegment
	}

	detail := engine.Aggregate(filtered, groupDims, m.AggKind(), m.ValueMeasure())
	if m.Calculation == catalog.CalcUnitConvert {
		detail = engine.ScaleRows(detail, m.Convert.Factor)
	}

	var rollup []engine.GroupRow
	if len(m.RollupDims) > 0 {
		rollup = engine.Rollup(detail, groupDims, m.RollupDims)
		if err := engine.Reconcile(m.MetricID, detail, rollup, groupDims, m.RollupDims, r.cfg.Tolerance); err != nil {
			return nil, nil, err
		}
	}
	return detail, rollup, nil
}

// runRatio computes numerator and denominator aggregates over the same
// filtered subset and joins them per group. The rollup is recomputed from
// the summed numerator and denominator — ratios are not additive — and the
// reconciliation check runs on those additive components.
func (r *Runner) runRatio(m catalog.Metric, view engine.RecordView, groupDims []string) ([]engine.GroupRow, []engine.GroupRow, error) {
	num, den, err := r.ratioAggregates(m, view, groupDims)
	if err != nil {
		return nil, nil, err
	}
	detail := engine.RatioJoin(num, den, groupDims, m.Ratio.Scale)

	var rollup []engine.GroupRow
	if len(m.RollupDims) > 0 {
		numRoll := engine.Rollup(num, groupDims, m.RollupDims)
		denRoll := engine.Rollup(den, groupDims, m.RollupDims)
		if err := engine.Reconcile(m.MetricID, num, numRoll, groupDims, m.RollupDims, r.cfg.Tolerance); err != nil {
			return nil, nil, err
		}
		if err := engine.Reconcile(m.MetricID, den, denRoll, groupDims, m.RollupDims, r.cfg.Tolerance); err != nil {
			return nil, nil, err
		}
		rollup = engine.RatioJoin(numRoll, denRoll, groupDims, m.Ratio.Scale)
	}
	return detail, rollup, nil
}

// runRolling computes a trailing rolling mean over the metric's per-group
// time series. When the metric carries a ratio spec, the series is the
// per-period ratio; otherwise it is the plain aggregate.
func (r *Runner) runRolling(m catalog.Metric, view engine.RecordView, groupDims []string) ([]engine.GroupRow, error) {
	var series []engine.GroupRow
	if m.Ratio != nil {
		num, den, err := r.ratioAggregates(m, view, groupDims)
		if err != nil {
			return nil, err
		}
		series = engine.RatioJoin(num, den, groupDims, m.Ratio.Scale)
	} else {
		filtered := engine.ApplyFilters(view, engine.NewFilters(m.Filters))
		if filtered.Len() == 0 {
			return nil, engine.ErrEmptySegment
		}
		series = engine.Aggregate(filtered, groupDims, m.AggKind(), m.ValueMeasure())
	}

	seriesDims := seriesKeyDims(groupDims)
	return engine.RollingMean(series, seriesDims, m.Rolling.Window), nil
}

// ratioAggregates computes the denominator subset and, within it, the
// numerator subset, aggregated over the same keys. An empty denominator
// skips the metric; an empty numerator is a valid all-zero ratio.
func (r *Runner) ratioAggregates(m catalog.Metric, view engine.RecordView, groupDims []string) (num, den []engine.GroupRow, err error) {
	denomFilters := m.Ratio.DenominatorFilters
	if len(denomFilters) == 0 {
		denomFilters = m.Filters
	}

	denomView := engine.ApplyFilters(view, engine.NewFilters(denomFilters))
	if denomView.Len() == 0 {
		return nil, nil, engine.ErrEmptySegment
	}
	numView := engine.ApplyFilters(denomView, engine.NewFilters(m.Ratio.NumeratorFilters))

	kind, measure := m.AggKind(), m.ValueMeasure()
	den = engine.Aggregate(denomView, groupDims, kind, measure)
	num = engine.Aggregate(numView, groupDims, kind, measure)
	return num, den, nil
}

// write hands a finished table to every sink.
func (r *Runner) write(table *engine.Table) error {
	for _, sink := range r.cfg.Sinks {
		if err := sink.WriteTable(table); err != nil {
			return fmt.Errorf("sink write %s: %w", table.OutputName, err)
		}
	}
	return nil
}

// seriesKeyDims strips the time dimensions from a group tuple, leaving the
// dims that identify one rolling-window series.
func seriesKeyDims(groupDims []string) []string {
	out := make([]string, 0, len(groupDims))
	for _, dim := range groupDims {
		if dim == engine.DimYear || dim == engine.DimMonth {
			continue
		}
		out = append(out, dim)
	}
	return out
}
