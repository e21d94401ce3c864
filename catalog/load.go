package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// ============================================================================
// TOML CATALOG LOADING — externally authored metric definitions
// ============================================================================
// A catalog file is a sequence of [[metric]] blocks:
//
//	[[metric]]
//	metric_id   = "_01_P1_EV"
//	output_name = "01_P1_EV_Private_LPV"
//	source      = "mvr"
//	metric_group = "Transport"
//	calculation = "count"
//	regional    = true
//	rollup_dims = ["Region"]
//	category     = "Private"
//	sub_category = "Light Passenger Vehicle"
//	fuel_type    = "BEV"
//	[metric.filters]
//	Fuel_Type    = "BEV"
//	Category     = "Private"
//	Sub_Category = "Light Passenger Vehicle"
//
// Filter values may be a single string or a list.
// ============================================================================

type catalogFile struct {
	Metrics []Metric `toml:"metric"`
}

// Load parses and validates a TOML metric catalog.
func Load(r io.Reader) ([]Metric, error) {
	var f catalogFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Metrics) == 0 {
		return nil, fmt.Errorf("parse catalog: no [[metric]] entries")
	}
	for _, m := range f.Metrics {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
	}
	return f.Metrics, nil
}

// LoadFile reads a metric catalog from a TOML file on disk.
func LoadFile(path string) ([]Metric, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}
