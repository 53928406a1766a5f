package track

import "racelens/models"

// series extracts one channel from a run of samples.
func series(samples []models.Sample, pick func(models.Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = pick(s)
	}
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func minMax(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func speedOf(s models.Sample) float64    { return s.Speed }
func throttleOf(s models.Sample) float64 { return s.Throttle }
func brakeOf(s models.Sample) float64    { return s.Brake }
