package engine

import (
	"sort"
	"strconv"
)

// ============================================================================
// TABLE BUILDER — final output artifact, one per metric definition
// ============================================================================
// Stable column order: Year, Month, Region, Metric_Group, Category,
// Sub_Category, Fuel_Type, <metric id>. Rows are sorted under a defined key
// so identical inputs produce byte-identical output across runs.
// ============================================================================

// NationalRegion labels rows of metrics that carry no regional dimension.
const NationalRegion = "New Zealand"

// Stamp holds the static metadata a metric definition fixes on its output,
// independent of the filter predicates. Values present in a row's grouping
// key win over the stamp; the stamp fills the rest.
type Stamp struct {
	MetricGroup string
	Category    string
	SubCategory string
	FuelType    string
}

// Row is one aggregated and derived output row.
type Row struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Region      string  `json:"region"`
	MetricGroup string  `json:"metric_group"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	FuelType    string  `json:"fuel_type"`
	Value       float64 `json:"value"`
}

// Table is one tabular output artifact: all detail rows for a metric
// followed (in sort order) by any rollup rows, under one shared schema.
type Table struct {
	MetricID   string `json:"metricId"`
	OutputName string `json:"outputName"`
	Rows       []Row  `json:"rows"`
}

// Columns returns the artifact's column names in their stable order.
// The metric value column is named after the metric id.
func (t *Table) Columns() []string {
	return []string{
		DimYear, DimMonth, DimRegion, "Metric_Group",
		DimCategory, DimSubCategory, DimFuelType, t.MetricID,
	}
}

// BuildTable converts detail and rollup group rows into a sorted output
// table, stamping static metadata on every row.
func BuildTable(metricID, outputName string, detail, rollup []GroupRow, stamp Stamp) *Table {
	rows := make([]Row, 0, len(detail)+len(rollup))
	for _, g := range detail {
		rows = append(rows, buildRow(g, stamp))
	}
	for _, g := range rollup {
		rows = append(rows, buildRow(g, stamp))
	}
	sortRows(rows)
	return &Table{MetricID: metricID, OutputName: outputName, Rows: rows}
}

func buildRow(g GroupRow, stamp Stamp) Row {
	row := Row{
		Year:        atoiOrZero(g.Dims[DimYear]),
		Month:       atoiOrZero(g.Dims[DimMonth]),
		Region:      g.Dims[DimRegion],
		MetricGroup: stamp.MetricGroup,
		Category:    stamp.Category,
		SubCategory: stamp.SubCategory,
		FuelType:    stamp.FuelType,
		Value:       g.Value,
	}
	if row.Region == "" {
		row.Region = NationalRegion
	}
	// Grouped dimensions override the stamp, so rollup sentinels survive.
	if v, ok := g.Dims[DimCategory]; ok && v != "" {
		row.Category = v
	}
	if v, ok := g.Dims[DimSubCategory]; ok && v != "" {
		row.SubCategory = v
	}
	if v, ok := g.Dims[DimFuelType]; ok && v != "" {
		row.FuelType = v
	}
	return row
}

// sortRows imposes the defined output order: Year, Month, Region, Category,
// Sub_Category, Fuel_Type. Sentinel "Total" rows interleave by the same key.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.SubCategory != b.SubCategory {
			return a.SubCategory < b.SubCategory
		}
		return a.FuelType < b.FuelType
	})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
