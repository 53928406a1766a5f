package track

import "math"

// Consistency scores lap-time variability as 100 minus the coefficient of
// variation in percent, floored at 0. 100 means identical lap times. It is a
// quick indicator, not a statistical consistency index.
//
// Fewer than two laps, or a non-positive mean lap time, score 0.
func Consistency(lapTimes []float64) float64 {
	if len(lapTimes) < 2 {
		return 0
	}
	mu := mean(lapTimes)
	if mu <= 0 {
		return 0
	}
	var sq float64
	for _, t := range lapTimes {
		sq += (t - mu) * (t - mu)
	}
	sigma := math.Sqrt(sq / float64(len(lapTimes)))
	return math.Max(0, 100-(sigma/mu)*100)
}
