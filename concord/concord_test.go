package concord

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridshift-org/gridshift/engine"
)

func TestResolveKnownLabel(t *testing.T) {
	r := NewResolver(DefaultNZ())

	assert.Equal(t, "Waikato", r.Resolve("Thames-Coromandel"))
	assert.Equal(t, "Auckland", r.Resolve("Auckland"))
	assert.Equal(t, "Canterbury", r.Resolve("Christchurch"))
}

func TestResolveNormalizesSuffixAndCase(t *testing.T) {
	r := NewResolver(DefaultNZ())

	assert.Equal(t, "Waikato", r.Resolve("thames-coromandel district"))
	assert.Equal(t, "Otago", r.Resolve("  DUNEDIN CITY  "))
	assert.Equal(t, "Wellington", r.Resolve("Lower Hutt City"))
}

func TestResolveUnknownFallsBack(t *testing.T) {
	r := NewResolver(DefaultNZ())

	assert.Equal(t, engine.SentinelUnknown, r.Resolve("XYZ District"))
	assert.Equal(t, engine.SentinelUnknown, r.Resolve(""))
	assert.Equal(t, engine.SentinelUnknown, r.Resolve("   "))
}

func TestResolveIsTotal(t *testing.T) {
	// Every input yields exactly one non-empty region, mapped or not.
	r := NewResolver(DefaultNZ())
	inputs := []string{"Auckland", "nowhere", "", "Gore District", "??"}

	for _, in := range inputs {
		region := r.Resolve(in)
		assert.NotEmpty(t, region, "input %q", in)
	}
}

func TestUnmappedCollectsDistinctLabels(t *testing.T) {
	r := NewResolver(DefaultNZ())

	r.Resolve("Zetland")
	r.Resolve("Avalon")
	r.Resolve("Zetland") // duplicate; recorded once
	r.Resolve("Auckland")

	assert.Equal(t, []string{"Avalon", "Zetland"}, r.Unmapped())
}

func TestUnmappedIgnoresBlankLabels(t *testing.T) {
	r := NewResolver(DefaultNZ())

	r.Resolve("")
	r.Resolve("  ")

	assert.Empty(t, r.Unmapped())
}

func TestDefaultNZCoversAllRegions(t *testing.T) {
	regions := make(map[string]bool)
	for _, region := range DefaultNZ() {
		regions[region] = true
	}

	for _, want := range []string{
		"Northland", "Auckland", "Waikato", "Bay of Plenty", "Gisborne",
		"Hawke's Bay", "Taranaki", "Manawatu-Whanganui", "Wellington",
		"Tasman", "Nelson", "Marlborough", "West Coast", "Canterbury",
		"Otago", "Southland",
	} {
		assert.True(t, regions[want], "region %s has no source districts", want)
	}
}

// ----------------------------------------------------------------------------
// TOML loading
// ----------------------------------------------------------------------------

func TestLoadParsesRegionsTable(t *testing.T) {
	src := `
[regions]
"Thames-Coromandel" = "Waikato"
"Gore" = "Southland"
`
	m, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	r := NewResolver(m)
	assert.Equal(t, "Waikato", r.Resolve("Thames-Coromandel District"))
	assert.Equal(t, "Southland", r.Resolve("gore"))
}

func TestLoadRejectsEmptyMap(t *testing.T) {
	_, err := Load(strings.NewReader("[regions]\n"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := Load(strings.NewReader("regions = ["))
	assert.Error(t, err)
}

// ----------------------------------------------------------------------------
// Concordance view
// ----------------------------------------------------------------------------

func TestViewResolvesOnRead(t *testing.T) {
	records := []engine.Record{
		{
			Dimensions: map[string]string{engine.DimRegion: "Thames-Coromandel District", engine.DimFuelType: "BEV"},
			Measures:   map[string]float64{engine.MeasureRecordCount: 1},
		},
		{
			Dimensions: map[string]string{engine.DimRegion: "XYZ", engine.DimFuelType: "PETROL"},
			Measures:   map[string]float64{engine.MeasureRecordCount: 1},
		},
	}
	parent := engine.NewSliceView(records)
	v := NewView(parent, engine.DimRegion, NewResolver(DefaultNZ()))

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "Waikato", v.Dimension(0, engine.DimRegion))
	assert.Equal(t, engine.SentinelUnknown, v.Dimension(1, engine.DimRegion))
	// Other dimensions and measures pass through untouched.
	assert.Equal(t, "BEV", v.Dimension(0, engine.DimFuelType))
	assert.Equal(t, 1.0, v.Measure(1, engine.MeasureRecordCount))
	assert.Equal(t, parent.DimensionKeys(), v.DimensionKeys())
}
