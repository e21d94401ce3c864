package engine

import (
	"math"
	"strings"
)

// ============================================================================
// ROLLUP RECONCILER — dimension-reduced "Total" rows + sum verification
// ============================================================================
// A rollup is a second aggregation pass over the same detail rows with one or
// more dimensions removed from the group key, the removed dimensions stamped
// with the "Total" sentinel. Detail and rollup share one output schema; the
// reconciliation check is an explicit post-condition on the two row sets.
// ============================================================================

// DefaultTolerance is the relative tolerance for rollup reconciliation.
const DefaultTolerance = 1e-9

// Rollup re-aggregates detail rows with dropDims removed from the group key,
// stamping each dropped dimension with SentinelTotal. groupDims is the detail
// rows' full key; values are summed, so rollups only make sense for additive
// calculations (count, sum, unit-converted sums).
func Rollup(detail []GroupRow, groupDims, dropDims []string) []GroupRow {
	kept := keepDims(groupDims, dropDims)

	grouped := make(map[string]*GroupRow)
	order := make([]string, 0)
	for _, row := range detail {
		key := GroupKey(row, kept)
		agg, exists := grouped[key]
		if !exists {
			dims := make(map[string]string, len(groupDims))
			for _, dim := range kept {
				dims[dim] = row.Dims[dim]
			}
			for _, dim := range dropDims {
				dims[dim] = SentinelTotal
			}
			agg = &GroupRow{Dims: dims}
			grouped[key] = agg
			order = append(order, key)
		}
		agg.Value += row.Value
		agg.Count += row.Count
	}

	rows := make([]GroupRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *grouped[key])
	}
	return rows
}

// Reconcile verifies that for every grouping key shared between detail and
// rollup, the detail values sum to the rollup value within the relative
// tolerance. A violation indicates an aggregation logic bug, so it is fatal
// for the metric: the first mismatch is returned as a ReconciliationError.
func Reconcile(metricID string, detail, rollup []GroupRow, groupDims, dropDims []string, tolerance float64) error {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	kept := keepDims(groupDims, dropDims)

	sums := make(map[string]float64, len(rollup))
	for _, row := range detail {
		sums[GroupKey(row, kept)] += row.Value
	}

	for _, row := range rollup {
		key := GroupKey(row, kept)
		want := sums[key]
		if !withinTolerance(want, row.Value, tolerance) {
			return &ReconciliationError{
				MetricID:  metricID,
				GroupKey:  strings.Join(keyParts(row, kept), "/"),
				DetailSum: want,
				Rollup:    row.Value,
			}
		}
	}
	return nil
}

// withinTolerance compares two values with relative tolerance, falling back
// to absolute tolerance near zero.
func withinTolerance(a, b, tol float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return diff == 0
	}
	return diff <= tol*scale
}

// keepDims returns groupDims minus dropDims, order preserved.
func keepDims(groupDims, dropDims []string) []string {
	dropped := make(map[string]bool, len(dropDims))
	for _, dim := range dropDims {
		dropped[dim] = true
	}
	kept := make([]string, 0, len(groupDims))
	for _, dim := range groupDims {
		if !dropped[dim] {
			kept = append(kept, dim)
		}
	}
	return kept
}

func keyParts(row GroupRow, dims []string) []string {
	parts := make([]string, len(dims))
	for i, dim := range dims {
		parts[i] = row.Dims[dim]
	}
	return parts
}
