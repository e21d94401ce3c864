package engine

import "sort"

// ============================================================================
// DERIVED METRIC CALCULATOR — ratio, unit conversion, rolling mean
// ============================================================================
// All three kinds consume aggregator output ([]GroupRow) and produce the same
// shape, so derivations compose: a renewable share (ratio) can feed a
// 12-month rolling mean.
// ============================================================================

// TJToMWh converts terajoules to megawatt-hours (1 TJ = 1/0.036 MWh).
const TJToMWh = 1 / 0.036

// ----------------------------------------------------------------------------
// RATIO
// ----------------------------------------------------------------------------

// RatioJoin left-joins a numerator aggregate onto a denominator aggregate
// over the given key dims and computes scale * numerator / denominator per
// group. Groups with no numerator row count as 0; a zero denominator yields
// exactly 0, never NaN or Inf. The result carries the denominator's keys and
// row counts, one row per denominator group.
//
// scale declares the output unit: 100 for percentages, 1 for fractions.
func RatioJoin(numerator, denominator []GroupRow, dims []string, scale float64) []GroupRow {
	numByKey := make(map[string]float64, len(numerator))
	for _, row := range numerator {
		numByKey[GroupKey(row, dims)] = row.Value
	}

	out := make([]GroupRow, 0, len(denominator))
	for _, den := range denominator {
		num := numByKey[GroupKey(den, dims)]
		var ratio float64
		if den.Value != 0 {
			ratio = scale * num / den.Value
		}
		out = append(out, GroupRow{
			Dims:  den.CloneDims(),
			Value: ratio,
			Count: den.Count,
		})
	}
	return out
}

// ----------------------------------------------------------------------------
// UNIT CONVERSION
// ----------------------------------------------------------------------------

// ScaleRows multiplies every row's value by a fixed conversion factor.
// Purely pointwise — grouping keys and counts are unchanged.
func ScaleRows(rows []GroupRow, factor float64) []GroupRow {
	out := make([]GroupRow, len(rows))
	for i, row := range rows {
		out[i] = GroupRow{Dims: row.CloneDims(), Value: row.Value * factor, Count: row.Count}
	}
	return out
}

// ----------------------------------------------------------------------------
// ROLLING MEAN
// ----------------------------------------------------------------------------

// RollingMean computes a trailing rolling mean of fixed width window over
// each group's time series. seriesDims identify the series (the group dims
// minus Year and Month — typically just Region); within a series, rows are
// stably sorted ascending by the Year/Month date key before the window is
// applied. Sorting first is a correctness requirement, not an optimization.
//
// The window only emits once full: the first window-1 periods of each series
// produce no output row, so a series of length N yields max(0, N-window+1)
// rows.
func RollingMean(rows []GroupRow, seriesDims []string, window int) []GroupRow {
	if window <= 0 {
		return nil
	}

	series := make(map[string][]GroupRow)
	order := make([]string, 0)
	for _, row := range rows {
		key := GroupKey(row, seriesDims)
		if _, exists := series[key]; !exists {
			order = append(order, key)
		}
		series[key] = append(series[key], row)
	}

	var out []GroupRow
	for _, key := range order {
		rows := series[key]
		sort.SliceStable(rows, func(i, j int) bool {
			return DateKey(rows[i]) < DateKey(rows[j])
		})

		var windowSum float64
		for i, row := range rows {
			windowSum += row.Value
			if i >= window {
				windowSum -= rows[i-window].Value
			}
			if i >= window-1 {
				out = append(out, GroupRow{
					Dims:  row.CloneDims(),
					Value: windowSum / float64(window),
					Count: row.Count,
				})
			}
		}
	}
	return out
}
