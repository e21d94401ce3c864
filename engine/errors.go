package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERROR TAXONOMY
// ============================================================================
// Recoverable conditions (empty segment, mapping gap) keep the run going;
// mapping gaps are not even errors — the concordance resolver degrades to
// "Unknown" and records the label. Fatal-for-the-metric conditions
// (reconciliation mismatch, missing column) abort that metric only, never
// the run. The orchestrator holds that boundary.
// ============================================================================

// ErrEmptySegment marks a metric variant whose filter predicates matched no
// rows. The variant is skipped with a logged notice; the run continues.
var ErrEmptySegment = errors.New("no rows match segment filters")

// ReconciliationError reports a rollup row that disagrees with the sum of its
// detail rows beyond tolerance. Fatal for the metric: it indicates an
// aggregation logic bug, not a data-quality issue.
type ReconciliationError struct {
	MetricID  string
	GroupKey  string
	DetailSum float64
	Rollup    float64
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("metric %s: rollup mismatch at %s: detail sum %v != rollup %v",
		e.MetricID, e.GroupKey, e.DetailSum, e.Rollup)
}

// MissingColumnError reports an input column a metric requires that the
// cleaned table does not carry. Fatal for the metric.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required input column %q is absent", e.Column)
}
