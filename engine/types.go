package engine

// ============================================================================
// ENGINE TYPES — Records, Filters, and Group Rows
// ============================================================================
// One Record per cleaned observation. Dimensions are strings (including Year
// and Month — grouping is string-keyed; table building parses them back to
// integers). Measures are numeric value columns plus the synthetic row
// counter that count aggregations sum over.
// ============================================================================

// Record is a single cleaned observation with string dimensions and numeric
// measures.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// Canonical column names shared across source domains. Column naming and
// casing are fixed per the input contract; metric definitions reference
// these names directly.
const (
	DimYear        = "Year"
	DimMonth       = "Month"
	DimRegion      = "Region"
	DimDistrict    = "District"
	DimCategory    = "Category"
	DimSubCategory = "Sub_Category"
	DimFuelType    = "Fuel_Type"
	DimCondition   = "Condition"
)

// MeasureRecordCount is the synthetic per-row measure (always 1) behind
// count aggregations.
const MeasureRecordCount = "record_count"

// Sentinel dimension values. Total marks rollup rows; Unknown is the
// concordance fallback for unmapped place labels.
const (
	SentinelTotal   = "Total"
	SentinelUnknown = "Unknown"
)

// ============================================================================
// FILTERS — declarative segment predicates
// ============================================================================

// Filters define which records a metric variant includes.
// Keys are dimension names, values are allowed values: OR within a dimension,
// AND across dimensions. Empty means no restriction.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// NewFilters wraps a predicate map as Filters. A nil map is a valid
// everything-passes filter.
func NewFilters(dims map[string][]string) Filters {
	return Filters{Dimensions: dims}
}

// HasFilter reports whether a specific dimension is constrained.
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	vals, ok := f.Dimensions[dimension]
	return ok && len(vals) > 0
}

// IsEmpty reports whether no dimension is constrained.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Columns returns the constrained dimension names.
func (f Filters) Columns() []string {
	cols := make([]string, 0, len(f.Dimensions))
	for dim, vals := range f.Dimensions {
		if len(vals) > 0 {
			cols = append(cols, dim)
		}
	}
	return cols
}

// ============================================================================
// GROUP ROW — intermediate aggregation result
// ============================================================================

// AggKind selects the grouped statistic.
type AggKind string

const (
	AggCount AggKind = "count"
	AggSum   AggKind = "sum"
)

// GroupRow is one aggregated row: the grouping key as named dimension values,
// the computed value, and the number of source rows behind it.
type GroupRow struct {
	Dims  map[string]string `json:"dims"`
	Value float64           `json:"value"`
	Count int               `json:"count"`
}

// Dim returns a named key value, or "" when the row's key does not include it.
func (g GroupRow) Dim(name string) string {
	return g.Dims[name]
}

// CloneDims returns a copy of the row's key values. Callers that stamp or
// drop dimensions mutate the copy, never the original.
func (g GroupRow) CloneDims() map[string]string {
	out := make(map[string]string, len(g.Dims))
	for k, v := range g.Dims {
		out[k] = v
	}
	return out
}
