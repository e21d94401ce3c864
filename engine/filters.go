package engine

// ============================================================================
// SEGMENT FILTER — Declarative Predicate Application via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one
// loop. Returns a SubView (index list into parent) — zero data copy.
//
// Matching is exact: the cleaned table's categorical values are already
// canonical, so "BEV" and "bev" are different values. An empty result is a
// valid outcome, not an error; the orchestrator decides whether to skip the
// metric variant.
// ============================================================================

// ApplyFilters returns a view of records matching all dimension predicates.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// An empty filter set returns the original view.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toSet(allowed)
		}
	}
	if len(sets) == 0 {
		return view
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			if !set[view.Dimension(i, dim)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return NewSubView(view, indices)
}

// RequireColumns verifies that every named column exists in the view as a
// dimension or measure. The first missing column is reported as a
// MissingColumnError (fatal for the requesting metric).
func RequireColumns(view RecordView, columns []string) error {
	present := make(map[string]bool)
	for _, k := range view.DimensionKeys() {
		present[k] = true
	}
	for _, k := range view.MeasureKeys() {
		present[k] = true
	}
	for _, col := range columns {
		if col == "" {
			continue
		}
		if !present[col] {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
