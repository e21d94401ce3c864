// Package catalog holds the declarative metric definitions the orchestrator
// drives. A Metric is data, not code: filter predicates, grouping dimensions,
// stamped output metadata, and a calculation kind fully determine one output
// table. The built-in registry replaces the original deployment's
// filesystem-driven pipeline discovery with an explicit static list.
package catalog

import (
	"fmt"

	"github.com/gridshift-org/gridshift/engine"
)

// Source identifies which cleaned input table a metric reads.
type Source string

const (
	SourceMVR        Source = "mvr"               // motor vehicle register
	SourceGas        Source = "gic"               // gas connection logs
	SourceEnergy     Source = "eeca"              // energy consumption extract
	SourceGeneration Source = "emi_generation"    // generation telemetry
	SourceSolar      Source = "emi_battery_solar" // distributed solar/battery installs
)

// Calculation selects the derivation applied to the grouped aggregate.
type Calculation string

const (
	CalcCount       Calculation = "count"
	CalcSum         Calculation = "sum"
	CalcRatio       Calculation = "ratio"
	CalcRollingMean Calculation = "rolling_mean"
	CalcUnitConvert Calculation = "unit_convert"
)

// FilterSet maps a column to its allowed values. In TOML a value may be a
// single string or a list; both decode to a value set.
type FilterSet map[string][]string

// UnmarshalTOML accepts `col = "value"` and `col = ["a", "b"]` forms.
func (fs *FilterSet) UnmarshalTOML(data interface{}) error {
	raw, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("filters must be a table of column = value entries")
	}
	out := make(FilterSet, len(raw))
	for col, v := range raw {
		switch val := v.(type) {
		case string:
			out[col] = []string{val}
		case []interface{}:
			vals := make([]string, 0, len(val))
			for _, item := range val {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("filter %q: values must be strings", col)
				}
				vals = append(vals, s)
			}
			out[col] = vals
		default:
			return fmt.Errorf("filter %q: value must be a string or list of strings", col)
		}
	}
	*fs = out
	return nil
}

// RatioSpec configures a ratio derivation. The numerator filters select a
// subset of the denominator subset; the denominator scope is explicit —
// when DenominatorFilters is empty the metric's own filters define it, so an
// unconstrained Fuel_Type keeps the catch-all "Other" bucket in the
// denominator.
type RatioSpec struct {
	NumeratorFilters   FilterSet `toml:"numerator_filters"`
	DenominatorFilters FilterSet `toml:"denominator_filters"`
	// Scale declares the output unit: 100 for percentages, 1 for fractions.
	Scale float64 `toml:"scale"`
}

// RollingSpec configures a trailing rolling mean.
type RollingSpec struct {
	Window int `toml:"window"`
}

// ConvertSpec configures a pointwise unit conversion.
type ConvertSpec struct {
	Factor float64 `toml:"factor"`
}

// Metric is one declarative output metric definition. Definitions are
// authored statically (registry or TOML catalog) and immutable during a run.
type Metric struct {
	MetricID    string `toml:"metric_id"`
	OutputName  string `toml:"output_name"`
	Source      Source `toml:"source"`
	MetricGroup string `toml:"metric_group"`

	// Filters select the row subset; conjunctive across columns.
	Filters FilterSet `toml:"filters"`

	// Stamped output dimensions, independent of the filters.
	Category    string `toml:"category"`
	SubCategory string `toml:"sub_category"`
	FuelType    string `toml:"fuel_type"`

	Calculation Calculation `toml:"calculation"`

	// Measure names the value column for sum-shaped calculations; empty
	// means the synthetic row counter.
	Measure string `toml:"measure"`

	// GroupBy is the ordered output dimension tuple. Empty defaults to
	// Year, Month, Region.
	GroupBy []string `toml:"group_by"`

	// RollupDims are replaced by the "Total" sentinel in a second,
	// reconciled aggregation pass. Empty means no rollup rows.
	RollupDims []string `toml:"rollup_dims"`

	// Regional metrics route the region column through the concordance
	// resolver before any other stage.
	Regional bool `toml:"regional"`

	Ratio   *RatioSpec   `toml:"ratio"`
	Rolling *RollingSpec `toml:"rolling"`
	Convert *ConvertSpec `toml:"convert"`
}

// DefaultGroupBy is the grouping tuple used when a definition names none.
var DefaultGroupBy = []string{engine.DimYear, engine.DimMonth, engine.DimRegion}

// GroupDims returns the metric's effective grouping tuple.
func (m Metric) GroupDims() []string {
	if len(m.GroupBy) > 0 {
		return m.GroupBy
	}
	return DefaultGroupBy
}

// ValueMeasure returns the measure the aggregation reads, defaulting to the
// synthetic row counter.
func (m Metric) ValueMeasure() string {
	if m.Measure != "" {
		return m.Measure
	}
	return engine.MeasureRecordCount
}

// AggKind maps the calculation to the underlying grouped statistic.
func (m Metric) AggKind() engine.AggKind {
	if m.Measure != "" {
		return engine.AggSum
	}
	return engine.AggCount
}

// Stamp returns the static metadata stamped on every output row.
func (m Metric) Stamp() engine.Stamp {
	return engine.Stamp{
		MetricGroup: m.MetricGroup,
		Category:    m.Category,
		SubCategory: m.SubCategory,
		FuelType:    m.FuelType,
	}
}

// RequiredColumns lists the input columns the metric's computation touches;
// the orchestrator verifies them before running the metric.
func (m Metric) RequiredColumns() []string {
	seen := make(map[string]bool)
	var cols []string
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	for _, dim := range m.GroupDims() {
		add(dim)
	}
	for col := range m.Filters {
		add(col)
	}
	if m.Ratio != nil {
		for col := range m.Ratio.NumeratorFilters {
			add(col)
		}
		for col := range m.Ratio.DenominatorFilters {
			add(col)
		}
	}
	if m.Measure != "" {
		add(m.Measure)
	}
	return cols
}

// Validate rejects definitions the orchestrator cannot run.
func (m Metric) Validate() error {
	if m.MetricID == "" {
		return fmt.Errorf("metric_id is required")
	}
	if m.OutputName == "" {
		return fmt.Errorf("metric %s: output_name is required", m.MetricID)
	}
	switch m.Calculation {
	case CalcCount, CalcSum:
	case CalcRatio:
		if m.Ratio == nil || len(m.Ratio.NumeratorFilters) == 0 {
			return fmt.Errorf("metric %s: ratio calculation requires numerator filters", m.MetricID)
		}
		if m.Ratio.Scale != 1 && m.Ratio.Scale != 100 {
			return fmt.Errorf("metric %s: ratio scale must be 1 or 100, got %v", m.MetricID, m.Ratio.Scale)
		}
	case CalcRollingMean:
		if m.Rolling == nil || m.Rolling.Window < 2 {
			return fmt.Errorf("metric %s: rolling_mean requires a window of at least 2", m.MetricID)
		}
		if len(m.RollupDims) > 0 {
			return fmt.Errorf("metric %s: rolling_mean metrics carry no rollup", m.MetricID)
		}
	case CalcUnitConvert:
		if m.Convert == nil || m.Convert.Factor == 0 {
			return fmt.Errorf("metric %s: unit_convert requires a non-zero factor", m.MetricID)
		}
		if m.Measure == "" {
			return fmt.Errorf("metric %s: unit_convert requires a value measure", m.MetricID)
		}
	default:
		return fmt.Errorf("metric %s: unknown calculation %q", m.MetricID, m.Calculation)
	}

	group := make(map[string]bool)
	for _, dim := range m.GroupDims() {
		group[dim] = true
	}
	for _, dim := range m.RollupDims {
		if !group[dim] {
			return fmt.Errorf("metric %s: rollup dim %q is not a group dimension", m.MetricID, dim)
		}
	}
	return nil
}
