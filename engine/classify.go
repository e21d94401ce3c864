package engine

// ============================================================================
// ORDERED RECLASSIFICATION — raw source codes → canonical categories
// ============================================================================
// Upstream extracts carry raw industry/vehicle/fuel codes. Reclassification
// is an explicit ordered list of (predicate, result) pairs evaluated
// first-match-wins with a mandatory default — a small rule table, testable on
// its own, not inline branching.
// ============================================================================

// BoundOp selects the comparison a Bound applies.
type BoundOp string

const (
	BoundLTE BoundOp = "lte"
	BoundGT  BoundOp = "gt"
)

// Bound is an optional numeric guard on a rule: the named measure must
// satisfy the comparison for the rule to match.
type Bound struct {
	Measure   string
	Op        BoundOp
	Threshold float64
}

func (b *Bound) matches(lookup func(string) float64) bool {
	if b == nil {
		return true
	}
	v := lookup(b.Measure)
	switch b.Op {
	case BoundGT:
		return v > b.Threshold
	default:
		return v <= b.Threshold
	}
}

// Rule matches when the raw value is in In and the optional Bound holds.
type Rule struct {
	In     []string
	Bound  *Bound
	Result string
}

// RuleSet is an ordered first-match-wins rule table over one source
// dimension, with a mandatory default result.
type RuleSet struct {
	Source  string
	Rules   []Rule
	Default string
}

// Classify resolves a raw value to its canonical result. lookup supplies
// measure values for bounded rules; pass nil when no rule carries a bound.
// Classification is total: unmatched values take the default.
func (rs RuleSet) Classify(raw string, lookup func(string) float64) string {
	if lookup == nil {
		lookup = func(string) float64 { return 0 }
	}
	for _, rule := range rs.Rules {
		for _, v := range rule.In {
			if v == raw {
				if rule.Bound.matches(lookup) {
					return rule.Result
				}
				break
			}
		}
	}
	return rs.Default
}

// Apply classifies one record by its source dimension.
func (rs RuleSet) Apply(rec Record) string {
	return rs.Classify(rec.Dimensions[rs.Source], func(m string) float64 {
		return rec.Measures[m]
	})
}

// ----------------------------------------------------------------------------
// Vehicle register rule sets
// ----------------------------------------------------------------------------
// The motor vehicle register's raw INDUSTRY_CLASS, VEHICLE_TYPE and
// MOTIVE_POWER codes map to the canonical Category, Sub_Category and
// Fuel_Type values the metric catalog filters on.

// MeasureGrossVehicleMass is the numeric column backing the light/heavy
// commercial split.
const MeasureGrossVehicleMass = "GROSS_VEHICLE_MASS"

// VehicleCategoryRules maps INDUSTRY_CLASS to Private/Commercial.
var VehicleCategoryRules = RuleSet{
	Source: "INDUSTRY_CLASS",
	Rules: []Rule{
		{In: []string{"PRIVATE"}, Result: "Private"},
		{In: []string{
			"BUSINESS/FINANCIAL", "COMMERCIAL ROAD TRANSPORT", "CONSTRUCTING",
			"WHOLESALE/RETAIL/TRADE", "TOURISM/LEISURE", "AGRICULTURE/FORESTRY/FISHING",
			"COMMUNITY SERVICES", "ELECTRICITY/GAS/WATER", "VEHICLE TRADER",
			"MANUFACTURING", "MINING/QUARRYING", "TRANSPORT NON ROAD", "VEHICLE DEALER",
		}, Result: "Commercial"},
	},
	Default: "Other",
}

// VehicleSubCategoryRules maps VEHICLE_TYPE to the canonical sub-category,
// splitting vans/trucks on gross vehicle mass at 3500 kg.
var VehicleSubCategoryRules = RuleSet{
	Source: "VEHICLE_TYPE",
	Rules: []Rule{
		{In: []string{"PASSENGER CAR/VAN"}, Result: "Light Passenger Vehicle"},
		{In: []string{"BUS"}, Result: "Bus"},
		{
			In:     []string{"MOTOR CARAVAN", "GOODS VAN/TRUCK/UTILITY"},
			Bound:  &Bound{Measure: MeasureGrossVehicleMass, Op: BoundLTE, Threshold: 3500},
			Result: "Light Commercial Vehicle",
		},
		{
			In:     []string{"MOTOR CARAVAN", "GOODS VAN/TRUCK/UTILITY"},
			Bound:  &Bound{Measure: MeasureGrossVehicleMass, Op: BoundGT, Threshold: 3500},
			Result: "Heavy Vehicle",
		},
		{In: []string{"ATV"}, Result: "ATV"},
		{In: []string{"MOTORCYCLE", "MOPED"}, Result: "Motorcycle"},
	},
	Default: "Other",
}

// VehicleFuelRules maps MOTIVE_POWER to the canonical fuel type.
var VehicleFuelRules = RuleSet{
	Source: "MOTIVE_POWER",
	Rules: []Rule{
		{In: []string{"PETROL", "LPG", "CNG"}, Result: "Petrol"},
		{In: []string{"DIESEL"}, Result: "Diesel"},
		{In: []string{"PETROL HYBRID", "DIESEL HYBRID"}, Result: "HEV"},
		{In: []string{"PETROL ELECTRIC HYBRID", "PLUGIN PETROL HYBRID"}, Result: "PHEV"},
		{In: []string{"ELECTRIC", "ELECTRIC [PETROL EXTENDED]", "ELECTRIC [DIESEL EXTENDED]"}, Result: "BEV"},
		{In: []string{
			"ELECTRIC FUEL CELL HYDROGEN", "ELECTRIC FUEL CELL OTHER",
			"PLUG IN FUEL CELL HYDROGEN HYBRID", "PLUG IN FUEL CELL OTHER HYBRID",
		}, Result: "FCEV"},
	},
	Default: "Other",
}
