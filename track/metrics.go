package track

import (
	"fmt"
	"math"

	"racelens/models"
)

// NumSectors is the fixed number of index slices a lap is split into.
const NumSectors = 3

// EmptyLapError is returned when a lap without samples reaches the
// aggregator. Segmentation never produces one, so seeing it means a caller
// built laps by hand incorrectly.
type EmptyLapError struct {
	Lap int
}

func (e *EmptyLapError) Error() string {
	if e.Lap == 0 {
		return "lap has no samples"
	}
	return fmt.Sprintf("lap %d has no samples", e.Lap)
}

// ComputeLapStats folds a lap into its summary. Lap time is the time between
// the first and the last sample, so a single-sample lap has a lap time of 0.
func ComputeLapStats(lap models.Lap) (models.LapStats, error) {
	n := len(lap.Samples)
	if n == 0 {
		return models.LapStats{}, &EmptyLapError{Lap: lap.Number}
	}
	speeds := series(lap.Samples, speedOf)
	_, maxSpeed := minMax(speeds)
	return models.LapStats{
		LapNumber:   lap.Number,
		AvgSpeed:    mean(speeds),
		MaxSpeed:    maxSpeed,
		AvgThrottle: mean(series(lap.Samples, throttleOf)),
		AvgBrake:    mean(series(lap.Samples, brakeOf)),
		LapTime:     lap.Samples[n-1].Time - lap.Samples[0].Time,
		Samples:     n,
		Distance:    PathDistance(lap.Samples),
	}, nil
}

// ComputeAllLapStats computes stats for every lap in order and stops at the
// first empty lap.
func ComputeAllLapStats(laps []models.Lap) ([]models.LapStats, error) {
	out := make([]models.LapStats, 0, len(laps))
	for _, l := range laps {
		st, err := ComputeLapStats(l)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// SplitSectors slices samples by index. Sectors 1 and 2 get floor(n/3)
// samples each, sector 3 gets the rest.
func SplitSectors(samples []models.Sample) [NumSectors][]models.Sample {
	size := len(samples) / NumSectors
	return [NumSectors][]models.Sample{
		samples[:size],
		samples[size : 2*size],
		samples[2*size:],
	}
}

// SectorOf returns the 1-based sector of the sample at idx in a lap of n samples.
func SectorOf(idx, n int) int {
	size := n / NumSectors
	switch {
	case idx < size:
		return 1
	case idx < 2*size:
		return 2
	}
	return 3
}

// ComputeSectors splits a lap's samples into sectors and summarizes each.
// Sectors left empty because the lap has fewer than three samples carry zero
// values.
func ComputeSectors(samples []models.Sample, th BrakeThresholds) ([NumSectors]models.Sector, error) {
	var out [NumSectors]models.Sector
	if len(samples) == 0 {
		return out, &EmptyLapError{}
	}
	for i, part := range SplitSectors(samples) {
		out[i] = computeSector(i+1, part, th)
	}
	return out, nil
}

func computeSector(num int, samples []models.Sample, th BrakeThresholds) models.Sector {
	sec := models.Sector{Number: num, Samples: samples, BrakingPoints: []models.BrakingPoint{}}
	if len(samples) == 0 {
		return sec
	}
	speeds := series(samples, speedOf)
	sec.MinSpeed, sec.MaxSpeed = minMax(speeds)
	sec.AvgSpeed = mean(speeds)
	sec.AvgThrottle = mean(series(samples, throttleOf))
	sec.Time = samples[len(samples)-1].Time - samples[0].Time
	sec.BrakingPoints = DetectBrakingPoints(samples, th)
	return sec
}

// SectorDeltas compares each lap's sector times with the best time seen for
// that sector across all given laps. Zero sector times are ignored when
// searching the best and get a delta of 0.
func SectorDeltas(laps [][NumSectors]models.Sector) [][NumSectors]float64 {
	var best [NumSectors]float64
	for i := range best {
		best[i] = math.Inf(1)
	}
	for _, secs := range laps {
		for i, s := range secs {
			if s.Time > 0 && s.Time < best[i] {
				best[i] = s.Time
			}
		}
	}

	out := make([][NumSectors]float64, len(laps))
	for l, secs := range laps {
		for i, s := range secs {
			if math.IsInf(best[i], 1) || s.Time == 0 {
				continue
			}
			out[l][i] = s.Time - best[i]
		}
	}
	return out
}
