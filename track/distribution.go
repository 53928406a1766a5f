package track

import (
	"fmt"
	"math"

	"github.com/influxdata/tdigest"

	"racelens/models"
)

const (
	DefaultBinSize = 10.0
	DefaultBins    = 30
)

type SpeedBin struct {
	Low   float64
	High  float64
	Count int
}

func (b SpeedBin) Label() string {
	return fmt.Sprintf("%g-%g", b.Low, b.High)
}

type SpeedDistribution struct {
	Bins   []SpeedBin
	Median float64 // approximate
	P95    float64 // approximate
}

// MaxCount returns the largest bin count.
func (d SpeedDistribution) MaxCount() int {
	m := 0
	for _, b := range d.Bins {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

// ComputeSpeedDistribution counts samples into fixed-width speed bins starting
// at 0. Speeds outside [0, bins*binSize) are not counted but still feed the
// quantile estimates.
func ComputeSpeedDistribution(samples []models.Sample, binSize float64, bins int) SpeedDistribution {
	if binSize <= 0 {
		binSize = DefaultBinSize
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	d := SpeedDistribution{Bins: make([]SpeedBin, bins)}
	for i := range d.Bins {
		d.Bins[i] = SpeedBin{Low: float64(i) * binSize, High: float64(i+1) * binSize}
	}
	if len(samples) == 0 {
		return d
	}

	td := tdigest.NewWithCompression(100)
	for _, s := range samples {
		td.Add(s.Speed, 1)
		idx := int(math.Floor(s.Speed / binSize))
		if idx >= 0 && idx < bins {
			d.Bins[idx].Count++
		}
	}
	d.Median = td.Quantile(0.5)
	d.P95 = td.Quantile(0.95)
	return d
}
