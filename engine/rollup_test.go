package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailFixture() []GroupRow {
	return []GroupRow{
		{Dims: map[string]string{DimYear: "2022", DimMonth: "1", DimRegion: "Auckland"}, Value: 10, Count: 10},
		{Dims: map[string]string{DimYear: "2022", DimMonth: "1", DimRegion: "Waikato"}, Value: 4, Count: 4},
		{Dims: map[string]string{DimYear: "2022", DimMonth: "2", DimRegion: "Auckland"}, Value: 7, Count: 7},
	}
}

var fixtureDims = []string{DimYear, DimMonth, DimRegion}

func TestRollupStampsTotalSentinel(t *testing.T) {
	rollup := Rollup(detailFixture(), fixtureDims, []string{DimRegion})

	require.Len(t, rollup, 2)
	byMonth := make(map[string]GroupRow)
	for _, row := range rollup {
		assert.Equal(t, SentinelTotal, row.Dims[DimRegion])
		byMonth[row.Dims[DimMonth]] = row
	}
	assert.Equal(t, 14.0, byMonth["1"].Value)
	assert.Equal(t, 7.0, byMonth["2"].Value)
	assert.Equal(t, 14, byMonth["1"].Count)
}

func TestRollupMultipleDroppedDims(t *testing.T) {
	rollup := Rollup(detailFixture(), fixtureDims, []string{DimMonth, DimRegion})

	require.Len(t, rollup, 1)
	assert.Equal(t, 21.0, rollup[0].Value)
	assert.Equal(t, SentinelTotal, rollup[0].Dims[DimMonth])
	assert.Equal(t, SentinelTotal, rollup[0].Dims[DimRegion])
	assert.Equal(t, "2022", rollup[0].Dims[DimYear])
}

func TestReconcilePasses(t *testing.T) {
	detail := detailFixture()
	rollup := Rollup(detail, fixtureDims, []string{DimRegion})

	require.NoError(t, Reconcile("_01_P1_EV", detail, rollup, fixtureDims, []string{DimRegion}, DefaultTolerance))
}

func TestReconcileDetectsMismatch(t *testing.T) {
	detail := detailFixture()
	rollup := Rollup(detail, fixtureDims, []string{DimRegion})
	rollup[0].Value += 1 // simulate an aggregation bug

	err := Reconcile("_01_P1_EV", detail, rollup, fixtureDims, []string{DimRegion}, DefaultTolerance)

	require.Error(t, err)
	var mismatch *ReconciliationError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "_01_P1_EV", mismatch.MetricID)
}

func TestReconcileToleratesFloatNoise(t *testing.T) {
	detail := []GroupRow{
		{Dims: map[string]string{DimYear: "2020", DimRegion: "A"}, Value: 0.1},
		{Dims: map[string]string{DimYear: "2020", DimRegion: "B"}, Value: 0.2},
	}
	rollup := []GroupRow{
		// 0.1 + 0.2 != 0.3 exactly in binary; relative tolerance must absorb it.
		{Dims: map[string]string{DimYear: "2020", DimRegion: SentinelTotal}, Value: 0.3},
	}

	dims := []string{DimYear, DimRegion}
	require.NoError(t, Reconcile("m", detail, rollup, dims, []string{DimRegion}, DefaultTolerance))
}
