package track

import (
	"math"

	"racelens/models"
)

// BuildPath turns samples into path points with cumulative distance S
// measured along the X/Y positions. Non-finite coordinates are treated as 0.
func BuildPath(samples []models.Sample) []models.Trackpoint {
	if len(samples) == 0 {
		return nil
	}
	out := make([]models.Trackpoint, len(samples))
	for i, s := range samples {
		out[i] = models.Trackpoint{X: cleanFloat(s.X, 0), Y: cleanFloat(s.Y, 0)}
	}
	return RecomputeArcLength(out)
}

// RecomputeArcLength rebases S to start at 0 and sums straight-line steps.
func RecomputeArcLength(points []models.Trackpoint) []models.Trackpoint {
	if len(points) == 0 {
		return points
	}
	out := make([]models.Trackpoint, len(points))
	out[0] = points[0]
	out[0].S = 0
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		out[i] = points[i]
		out[i].S = out[i-1].S + math.Hypot(dx, dy)
	}
	return out
}

// PathDistance is the driven distance in position units.
func PathDistance(samples []models.Sample) float64 {
	path := BuildPath(samples)
	if len(path) == 0 {
		return 0
	}
	return path[len(path)-1].S
}

// IsLoopByProximity returns true if the path ends within radius of its start.
func IsLoopByProximity(points []models.Trackpoint, radius float64) bool {
	if len(points) < 2 {
		return false
	}
	start := points[0]
	end := points[len(points)-1]
	dx := end.X - start.X
	dy := end.Y - start.Y
	return dx*dx+dy*dy <= radius*radius
}

func cleanFloat(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
