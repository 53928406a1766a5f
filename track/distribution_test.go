package track

import (
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racelens/models"
)

func speeds(vals ...float64) []models.Sample {
	out := make([]models.Sample, len(vals))
	for i, v := range vals {
		out[i] = models.Sample{Time: float64(i), Speed: v}
	}
	return out
}

func TestComputeSpeedDistribution_Bins(t *testing.T) {
	d := ComputeSpeedDistribution(speeds(5, 15, 15, 299.9, 300, -1), DefaultBinSize, DefaultBins)
	require.Len(t, d.Bins, DefaultBins)

	assert.Equal(t, 1, d.Bins[0].Count)
	assert.Equal(t, 2, d.Bins[1].Count)
	assert.Equal(t, 1, d.Bins[29].Count)
	assert.Equal(t, 2, d.MaxCount())

	total := 0
	for _, b := range d.Bins {
		total += b.Count
	}
	assert.Equal(t, 4, total, "speeds outside the binned range are not counted")
	assert.Equal(t, "10-20", d.Bins[1].Label())
	assert.Equal(t, 290.0, d.Bins[29].Low)
}

func TestComputeSpeedDistribution_Quantiles(t *testing.T) {
	vals := make([]float64, 0, 100)
	for i := 1; i <= 100; i++ {
		vals = append(vals, float64(i))
	}
	d := ComputeSpeedDistribution(speeds(vals...), 0, 0)
	assert.Len(t, d.Bins, DefaultBins)
	assert.InDelta(t, 50.5, d.Median, 2)
	assert.InDelta(t, 95, d.P95, 2)
}

func TestComputeSpeedDistribution_Empty(t *testing.T) {
	d := ComputeSpeedDistribution(nil, 20, 5)
	assert.Len(t, d.Bins, 5)
	assert.Equal(t, 0, d.MaxCount())
	assert.Equal(t, 0.0, d.Median)
}

func TestComputeTireSummary(t *testing.T) {
	samples := []models.Sample{
		{TireTemp: models.Corners{FL: omit.From(80.0)}, TirePressure: models.Corners{RR: omit.From(1.8)}},
		{TireTemp: models.Corners{FL: omit.From(90.0)}},
		{},
	}
	ts := ComputeTireSummary(samples)

	fl, ok := ts.Temp.FL.Get()
	require.True(t, ok)
	assert.InDelta(t, 85.0, fl, 1e-9)

	rr, ok := ts.Pressure.RR.Get()
	require.True(t, ok)
	assert.InDelta(t, 1.8, rr, 1e-9)

	assert.False(t, ts.Temp.FR.IsValue())
	assert.False(t, ts.Pressure.FL.IsValue())
	assert.True(t, ts.Temp.Any())

	assert.False(t, ComputeTireSummary(speeds(100, 120)).Temp.Any())
}
