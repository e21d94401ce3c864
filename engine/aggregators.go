package engine

import (
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// GROUPED AGGREGATOR — count/sum over an ordered dimension tuple
// ============================================================================
// Groups rows by the ordered dims (typically Year, Month, Region, and
// optionally Category/Sub_Category/Fuel_Type) and applies count or sum over
// a designated measure. First-seen group order is preserved here; the final,
// deterministic output order is imposed when the table is built.
// ============================================================================

// keySep joins dimension values into a composite group key. Unit separator —
// never appears in source data.
const keySep = "\x1f"

// Aggregate groups a view by the ordered dims and computes one GroupRow per
// distinct key. For AggCount the measure is ignored and rows are counted;
// for AggSum the named measure is summed.
func Aggregate(view RecordView, groupDims []string, kind AggKind, measure string) []GroupRow {
	grouped := make(map[string]*GroupRow)
	order := make([]string, 0)

	n := view.Len()
	for i := 0; i < n; i++ {
		parts := make([]string, len(groupDims))
		for d, dim := range groupDims {
			parts[d] = view.Dimension(i, dim)
		}
		key := strings.Join(parts, keySep)

		row, exists := grouped[key]
		if !exists {
			dims := make(map[string]string, len(groupDims))
			for d, dim := range groupDims {
				dims[dim] = parts[d]
			}
			row = &GroupRow{Dims: dims}
			grouped[key] = row
			order = append(order, key)
		}

		row.Count++
		switch kind {
		case AggSum:
			row.Value += view.Measure(i, measure)
		default:
			row.Value++
		}
	}

	rows := make([]GroupRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *grouped[key])
	}
	return rows
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// GroupKey builds the composite key of a row over the given dims. Rows from
// different aggregation passes join on equal keys.
func GroupKey(row GroupRow, dims []string) string {
	parts := make([]string, len(dims))
	for i, dim := range dims {
		parts[i] = row.Dims[dim]
	}
	return strings.Join(parts, keySep)
}

// SortGroupRows orders rows by the given dims, comparing numerically where
// both values parse as integers (Year, Month) and lexically otherwise.
// The sort is stable so equal keys keep their aggregation order.
func SortGroupRows(rows []GroupRow, dims []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, dim := range dims {
			a, b := rows[i].Dims[dim], rows[j].Dims[dim]
			if a == b {
				continue
			}
			return lessDimValue(a, b)
		}
		return false
	})
}

// lessDimValue compares two dimension values, numerically when possible.
func lessDimValue(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// DateKey converts a row's Year and Month dims into a sortable integer
// (2022, 7 → 202207). Rows without a parseable year sort first.
func DateKey(row GroupRow) int {
	year, err := strconv.Atoi(row.Dims[DimYear])
	if err != nil {
		return 0
	}
	month, err := strconv.Atoi(row.Dims[DimMonth])
	if err != nil {
		return year * 100
	}
	return year*100 + month
}
