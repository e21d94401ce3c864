package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridshift-org/gridshift/engine"
)

func TestRegistryAllDefinitionsValid(t *testing.T) {
	metrics := Registry()
	require.NotEmpty(t, metrics)

	for _, m := range metrics {
		assert.NoError(t, m.Validate(), "metric %s (%s)", m.MetricID, m.OutputName)
	}
}

func TestRegistryOutputNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Registry() {
		assert.False(t, seen[m.OutputName], "duplicate output name %s", m.OutputName)
		seen[m.OutputName] = true
	}
}

func TestRegistryVariantCounts(t *testing.T) {
	byID := make(map[string]int)
	for _, m := range Registry() {
		byID[m.MetricID]++
	}

	assert.Equal(t, 6, byID["_01_P1_EV"])  // 6 segments
	assert.Equal(t, 20, byID["_02_P1_FF"]) // 5 fuels x 4 segments
	assert.Equal(t, 1, byID["_05_P1_FleetElec"])
	assert.Equal(t, 1, byID["_12_P1_EnergyRenew"])
}

func TestRegistryDistributedInstallMetrics(t *testing.T) {
	byID := make(map[string]Metric)
	for _, m := range BySource(SourceSolar) {
		byID[m.MetricID] = m
	}
	require.Len(t, byID, 4)

	sol := byID["_07_P1_Sol"]
	assert.Equal(t, CalcSum, sol.Calculation)
	assert.Equal(t, "Total capacity installed (MW)", sol.Measure)
	assert.Equal(t, []string{"Solar", "Solar (with battery)"}, sol.Filters["Fuel_Type"])

	batt := byID["_08_P1_Batt"]
	assert.Equal(t, []string{"Sub_Category"}, batt.RollupDims)
	assert.Equal(t, []string{"Battery (standalone)"}, batt.Filters["Fuel_Type"])

	// 06a: battery share of new solar installs — the denominator is the
	// metric's own solar filter, the numerator the with-battery subset.
	pen := byID["_06a_P1_BattPen"]
	assert.Equal(t, CalcRatio, pen.Calculation)
	assert.Equal(t, []string{"Solar", "Solar (with battery)"}, pen.Filters["Fuel_Type"])
	assert.Equal(t, []string{"Solar (with battery)"}, pen.Ratio.NumeratorFilters["Fuel_Type"])
	assert.Equal(t, 100.0, pen.Ratio.Scale)

	// 06b: battery share of all new connections — unfiltered denominator.
	all := byID["_06b_P1_BattPen"]
	assert.Empty(t, all.Filters)
	assert.Equal(t, "ICP count", all.Measure)
}

func TestRegistryBoilerEnergyMetric(t *testing.T) {
	var boiler Metric
	for _, m := range BySource(SourceEnergy) {
		if m.MetricID == "_11_P1_EnergyFF" {
			boiler = m
		}
	}
	require.NotEmpty(t, boiler.MetricID)

	assert.Equal(t, CalcUnitConvert, boiler.Calculation)
	assert.Equal(t, []string{"1"}, boiler.Filters["FossilFuelFlag"])
	assert.Equal(t, []string{"1"}, boiler.Filters["BoilerFlag"])
	assert.Equal(t, []string{"Year", "Sub_Category"}, boiler.GroupBy)
	assert.Equal(t, []string{"Sub_Category"}, boiler.RollupDims)
	assert.InDelta(t, 1/0.036, boiler.Convert.Factor, 1e-12)
}

func TestBySource(t *testing.T) {
	for _, m := range BySource(SourceGas) {
		assert.Equal(t, SourceGas, m.Source)
	}
	assert.NotEmpty(t, BySource(SourceMVR))
	assert.Len(t, BySource(SourceEnergy), 2)
	assert.Len(t, BySource(SourceSolar), 4)
	assert.Empty(t, BySource(Source("nonexistent")))
}

func TestGroupDimsDefault(t *testing.T) {
	m := Metric{}
	assert.Equal(t, []string{engine.DimYear, engine.DimMonth, engine.DimRegion}, m.GroupDims())

	m.GroupBy = []string{"Year", "Category"}
	assert.Equal(t, []string{"Year", "Category"}, m.GroupDims())
}

func TestValueMeasureAndAggKind(t *testing.T) {
	count := Metric{Calculation: CalcCount}
	assert.Equal(t, engine.MeasureRecordCount, count.ValueMeasure())
	assert.Equal(t, engine.AggCount, count.AggKind())

	sum := Metric{Calculation: CalcSum, Measure: "NEW"}
	assert.Equal(t, "NEW", sum.ValueMeasure())
	assert.Equal(t, engine.AggSum, sum.AggKind())
}

func TestRequiredColumnsCoverFiltersAndGrouping(t *testing.T) {
	m := Metric{
		MetricID:    "_05_P1_FleetElec",
		Calculation: CalcRatio,
		Ratio:       &RatioSpec{NumeratorFilters: FilterSet{"Fuel_Type": {"BEV"}}, Scale: 100},
	}

	cols := m.RequiredColumns()
	assert.Contains(t, cols, engine.DimYear)
	assert.Contains(t, cols, engine.DimMonth)
	assert.Contains(t, cols, engine.DimRegion)
	assert.Contains(t, cols, "Fuel_Type")
}

// ----------------------------------------------------------------------------
// Validation
// ----------------------------------------------------------------------------

func TestValidateRejections(t *testing.T) {
	base := Metric{MetricID: "_99_Test", OutputName: "99_Test", Calculation: CalcCount}

	cases := map[string]func(m *Metric){
		"missing metric_id":         func(m *Metric) { m.MetricID = "" },
		"missing output_name":       func(m *Metric) { m.OutputName = "" },
		"unknown calculation":       func(m *Metric) { m.Calculation = "median" },
		"ratio without numerator":   func(m *Metric) { m.Calculation = CalcRatio },
		"rollup dim outside groups": func(m *Metric) { m.RollupDims = []string{"Fuel_Type"} },
		"rolling without window":    func(m *Metric) { m.Calculation = CalcRollingMean },
		"unit_convert without spec": func(m *Metric) { m.Calculation = CalcUnitConvert },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			m := base
			mutate(&m)
			assert.Error(t, m.Validate())
		})
	}
}

func TestValidateRatioScale(t *testing.T) {
	m := Metric{
		MetricID:    "_99_Ratio",
		OutputName:  "99_Ratio",
		Calculation: CalcRatio,
		Ratio:       &RatioSpec{NumeratorFilters: FilterSet{"Fuel_Type": {"BEV"}}, Scale: 50},
	}
	assert.Error(t, m.Validate())

	m.Ratio.Scale = 100
	assert.NoError(t, m.Validate())

	m.Ratio.Scale = 1
	assert.NoError(t, m.Validate())
}

func TestValidateRollingMeanRejectsRollup(t *testing.T) {
	m := Metric{
		MetricID:    "_99_Roll",
		OutputName:  "99_Roll",
		Calculation: CalcRollingMean,
		Rolling:     &RollingSpec{Window: 12},
		RollupDims:  []string{"Region"},
	}
	assert.Error(t, m.Validate())

	m.RollupDims = nil
	assert.NoError(t, m.Validate())
}

// ----------------------------------------------------------------------------
// TOML catalog loading
// ----------------------------------------------------------------------------

const sampleCatalog = `
[[metric]]
metric_id    = "_01_P1_EV"
output_name  = "01_P1_EV_Private_LPV"
source       = "mvr"
metric_group = "Transport"
calculation  = "count"
regional     = true
rollup_dims  = ["Region"]
category     = "Private"
sub_category = "Light Passenger Vehicle"
fuel_type    = "BEV"
[metric.filters]
Fuel_Type    = "BEV"
Category     = "Private"
Sub_Category = "Light Passenger Vehicle"

[[metric]]
metric_id    = "_02_P1_FF"
output_name  = "02_P1_FF_Private_LPV_Petrol_Diesel"
source       = "mvr"
metric_group = "Transport"
calculation  = "count"
[metric.filters]
Fuel_Type = ["Petrol", "Diesel"]
`

func TestLoadParsesCatalog(t *testing.T) {
	metrics, err := Load(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	ev := metrics[0]
	assert.Equal(t, "_01_P1_EV", ev.MetricID)
	assert.Equal(t, SourceMVR, ev.Source)
	assert.True(t, ev.Regional)
	assert.Equal(t, []string{"Region"}, ev.RollupDims)
	// Single string and list filter forms both decode to value sets.
	assert.Equal(t, []string{"BEV"}, ev.Filters["Fuel_Type"])
	assert.Equal(t, []string{"Petrol", "Diesel"}, metrics[1].Filters["Fuel_Type"])
}

func TestLoadRejectsInvalidMetric(t *testing.T) {
	src := `
[[metric]]
metric_id   = "_99_Bad"
output_name = "99_Bad"
calculation = "median"
`
	_, err := Load(strings.NewReader(src))
	assert.Error(t, err)
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	assert.Error(t, err)
}
