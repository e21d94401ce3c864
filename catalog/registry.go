package catalog

import "fmt"

// ============================================================================
// BUILT-IN REGISTRY — the static metric set
// ============================================================================
// One entry per output artifact. Variants over category/sub-category/fuel
// combinations are generated from the combination lists rather than written
// out longhand, matching how the definitions were agreed: a fixed matrix of
// segments per indicator.
// ============================================================================

type segment struct {
	category    string
	subCategory string
}

var evSegments = []segment{
	{"Private", "Light Passenger Vehicle"},
	{"Commercial", "Light Passenger Vehicle"},
	{"Private", "Bus"},
	{"Commercial", "Bus"},
	{"Private", "Light Commercial Vehicle"},
	{"Commercial", "Light Commercial Vehicle"},
}

var fossilSegments = []segment{
	{"Private", "Light Passenger Vehicle"},
	{"Commercial", "Light Passenger Vehicle"},
	{"Private", "Light Commercial Vehicle"},
	{"Commercial", "Light Commercial Vehicle"},
}

var fossilFuels = []string{"HEV", "PHEV", "FCEV", "Petrol", "Diesel"}

// Registry returns the full built-in metric set across all sources.
// Definitions are rebuilt on each call — callers own their copy.
func Registry() []Metric {
	var metrics []Metric
	metrics = append(metrics, evCountMetrics()...)
	metrics = append(metrics, fossilCountMetrics()...)
	metrics = append(metrics, conditionCountMetrics()...)
	metrics = append(metrics, fleetElectrification())
	metrics = append(metrics, batteryPenetrationMetrics()...)
	metrics = append(metrics, solarCapacity())
	metrics = append(metrics, batteryCapacity())
	metrics = append(metrics, gasConnections())
	metrics = append(metrics, boilerEnergy())
	metrics = append(metrics, energyByFuel())
	metrics = append(metrics, renewableShare())
	return metrics
}

// BySource filters the built-in registry to one input table's metrics.
func BySource(src Source) []Metric {
	var out []Metric
	for _, m := range Registry() {
		if m.Source == src {
			out = append(out, m)
		}
	}
	return out
}

// evCountMetrics counts battery-electric vehicles in use per segment.
func evCountMetrics() []Metric {
	metrics := make([]Metric, 0, len(evSegments))
	for _, seg := range evSegments {
		metrics = append(metrics, Metric{
			MetricID:    "_01_P1_EV",
			OutputName:  fmt.Sprintf("01_P1_EV_%s_%s", seg.category, abbreviate(seg.subCategory)),
			Source:      SourceMVR,
			MetricGroup: "Transport",
			Filters: FilterSet{
				"Fuel_Type":    {"BEV"},
				"Category":     {seg.category},
				"Sub_Category": {seg.subCategory},
			},
			Category:    seg.category,
			SubCategory: seg.subCategory,
			FuelType:    "BEV",
			Calculation: CalcCount,
			Regional:    true,
			RollupDims:  []string{"Region"},
		})
	}
	return metrics
}

// fossilCountMetrics counts fossil-fuelled vehicles in use per fuel and
// segment.
func fossilCountMetrics() []Metric {
	metrics := make([]Metric, 0, len(fossilFuels)*len(fossilSegments))
	for _, fuel := range fossilFuels {
		for _, seg := range fossilSegments {
			metrics = append(metrics, Metric{
				MetricID:    "_02_P1_FF",
				OutputName:  fmt.Sprintf("02_P1_FF_%s_%s_%s", seg.category, abbreviate(seg.subCategory), fuel),
				Source:      SourceMVR,
				MetricGroup: "Transport",
				Filters: FilterSet{
					"Fuel_Type":    {fuel},
					"Category":     {seg.category},
					"Sub_Category": {seg.subCategory},
				},
				Category:    seg.category,
				SubCategory: seg.subCategory,
				FuelType:    fuel,
				Calculation: CalcCount,
				Regional:    true,
				RollupDims:  []string{"Region"},
			})
		}
	}
	return metrics
}

// conditionCountMetrics counts new-import and used-import battery-electric
// registrations.
func conditionCountMetrics() []Metric {
	defs := []struct {
		id, name, condition string
	}{
		{"_03_P1_NewEV", "03_P1_NewEV", "New"},
		{"_04_P1_UsedEV", "04_P1_UsedEV", "Used"},
	}
	metrics := make([]Metric, 0, len(defs))
	for _, d := range defs {
		metrics = append(metrics, Metric{
			MetricID:    d.id,
			OutputName:  d.name,
			Source:      SourceMVR,
			MetricGroup: "Transport",
			Filters: FilterSet{
				"Fuel_Type": {"BEV"},
				"Condition": {d.condition},
			},
			Category:    "Total",
			SubCategory: "Total",
			FuelType:    "BEV",
			Calculation: CalcCount,
			Regional:    true,
			RollupDims:  []string{"Region"},
		})
	}
	return metrics
}

// fleetElectrification is the share of the whole fleet that is
// battery-electric. The denominator scope is the unfiltered fleet, so the
// catch-all "Other" fuel bucket stays in — preserved from the source data
// convention.
func fleetElectrification() Metric {
	return Metric{
		MetricID:    "_05_P1_FleetElec",
		OutputName:  "05_P1_FleetElec",
		Source:      SourceMVR,
		MetricGroup: "Transport",
		Category:    "Total",
		SubCategory: "Total",
		FuelType:    "BEV",
		Calculation: CalcRatio,
		Regional:    true,
		RollupDims:  []string{"Region"},
		Ratio: &RatioSpec{
			NumeratorFilters: FilterSet{"Fuel_Type": {"BEV"}},
			Scale:            100,
		},
	}
}

// batteryPenetrationMetrics are the two battery-penetration ratios over the
// distributed-install extract: the share of new solar installs that include a
// battery, and the share of all new connections that include one.
func batteryPenetrationMetrics() []Metric {
	installGroup := []string{"Year", "Month", "Region", "Sub_Category"}
	return []Metric{
		{
			MetricID:    "_06a_P1_BattPen",
			OutputName:  "06a_P1_BattPen",
			Source:      SourceSolar,
			MetricGroup: "Energy",
			Filters: FilterSet{
				"Fuel_Type": {"Solar", "Solar (with battery)"},
			},
			Category:    "Solar",
			Calculation: CalcRatio,
			Measure:     "ICP count - new installations",
			GroupBy:     installGroup,
			Regional:    true,
			Ratio: &RatioSpec{
				NumeratorFilters: FilterSet{"Fuel_Type": {"Solar (with battery)"}},
				Scale:            100,
			},
		},
		{
			MetricID:    "_06b_P1_BattPen",
			OutputName:  "06b_P1_BattPen",
			Source:      SourceSolar,
			MetricGroup: "Energy",
			Category:    "Solar",
			Calculation: CalcRatio,
			Measure:     "ICP count",
			GroupBy:     installGroup,
			Regional:    true,
			Ratio: &RatioSpec{
				NumeratorFilters: FilterSet{
					"Fuel_Type": {"Solar (with battery)", "Battery (standalone)", "battery"},
				},
				Scale: 100,
			},
		},
	}
}

// solarCapacity sums monthly MW of solar installed by region and
// sub-category.
func solarCapacity() Metric {
	return Metric{
		MetricID:    "_07_P1_Sol",
		OutputName:  "07_P1_Sol",
		Source:      SourceSolar,
		MetricGroup: "Energy",
		Filters: FilterSet{
			"Fuel_Type": {"Solar", "Solar (with battery)"},
		},
		Category:    "Solar",
		Calculation: CalcSum,
		Measure:     "Total capacity installed (MW)",
		GroupBy:     []string{"Year", "Month", "Region", "Sub_Category"},
		Regional:    true,
	}
}

// batteryCapacity sums monthly MW of standalone battery capacity installed,
// with a sub-category rollup.
func batteryCapacity() Metric {
	return Metric{
		MetricID:    "_08_P1_Batt",
		OutputName:  "08_P1_Batt",
		Source:      SourceSolar,
		MetricGroup: "Energy",
		Filters: FilterSet{
			"Fuel_Type": {"Battery (standalone)"},
		},
		Category:    "Solar",
		Calculation: CalcSum,
		Measure:     "Total capacity installed (MW)",
		GroupBy:     []string{"Year", "Month", "Region", "Sub_Category"},
		RollupDims:  []string{"Sub_Category"},
		Regional:    true,
	}
}

// gasConnections sums monthly new gas connections by region.
func gasConnections() Metric {
	return Metric{
		MetricID:    "_10_P1_Gas",
		OutputName:  "10_P1_Gas",
		Source:      SourceGas,
		MetricGroup: "Energy",
		Category:    "Gas",
		SubCategory: "Total",
		Calculation: CalcSum,
		Measure:     "NEW",
		Regional:    true,
		RollupDims:  []string{"Region"},
	}
}

// boilerEnergy sums annual fossil-fuel boiler energy consumption by sector,
// converted from terajoules to MWh, with an all-sector rollup.
func boilerEnergy() Metric {
	return Metric{
		MetricID:    "_11_P1_EnergyFF",
		OutputName:  "11_P1_EnergyBoilers",
		Source:      SourceEnergy,
		MetricGroup: "Grid",
		Filters: FilterSet{
			"FossilFuelFlag": {"1"},
			"BoilerFlag":     {"1"},
		},
		Category:    "Total",
		Calculation: CalcUnitConvert,
		Measure:     "energyValue",
		GroupBy:     []string{"Year", "Sub_Category"},
		RollupDims:  []string{"Sub_Category"},
		Convert:     &ConvertSpec{Factor: 1 / 0.036},
	}
}

// energyByFuel sums annual energy consumption by fuel type and sector,
// converted from terajoules to MWh.
func energyByFuel() Metric {
	return Metric{
		MetricID:    "_14_P1_EnergyxFuel",
		OutputName:  "14_P1_EnergyxFuel",
		Source:      SourceEnergy,
		MetricGroup: "Energy",
		Calculation: CalcUnitConvert,
		Measure:     "energyValue",
		GroupBy:     []string{"Year", "Category", "Sub_Category"},
		RollupDims:  []string{"Sub_Category"},
		Convert:     &ConvertSpec{Factor: 1 / 0.036},
	}
}

// renewableShare is the 12-month trailing mean of the monthly renewable
// generation fraction by region.
func renewableShare() Metric {
	return Metric{
		MetricID:    "_12_P1_EnergyRenew",
		OutputName:  "12_P1_EnergyRenew",
		Source:      SourceGeneration,
		MetricGroup: "Energy",
		Category:    "Grid",
		Calculation: CalcRollingMean,
		Measure:     "kWh",
		Regional:    true,
		Ratio: &RatioSpec{
			NumeratorFilters: FilterSet{"Type": {"1"}},
			Scale:            1,
		},
		Rolling: &RollingSpec{Window: 12},
	}
}

// abbreviate shortens sub-category names for output file naming.
func abbreviate(subCategory string) string {
	switch subCategory {
	case "Light Passenger Vehicle":
		return "LPV"
	case "Light Commercial Vehicle":
		return "LCV"
	case "Heavy Vehicle":
		return "HV"
	default:
		return subCategory
	}
}
