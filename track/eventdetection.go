package track

import "racelens/models"

type BrakeThresholds struct {
	Onset float64 // brake input above this starts a braking run
}

func DefaultBrakeThresholds() BrakeThresholds {
	return BrakeThresholds{Onset: 0.5}
}

// DetectBrakingPoints returns the first sample of every run where brake input
// exceeds the onset threshold. The first sample of the slice counts as an
// onset when it is already above the threshold. Index is relative to samples.
func DetectBrakingPoints(samples []models.Sample, th BrakeThresholds) []models.BrakingPoint {
	points := []models.BrakingPoint{}
	for i, cur := range samples {
		if cur.Brake <= th.Onset {
			continue
		}
		if i > 0 && samples[i-1].Brake > th.Onset {
			continue
		}
		points = append(points, models.BrakingPoint{
			Index: i,
			Time:  cur.Time,
			Speed: cur.Speed,
			X:     cur.X,
			Y:     cur.Y,
		})
	}
	return points
}
