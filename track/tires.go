package track

import (
	"github.com/aarondl/opt/omit"

	"racelens/models"
)

// TireSummary holds per-corner averages over the samples that carried a value.
type TireSummary struct {
	Temp     models.Corners
	Pressure models.Corners
}

func ComputeTireSummary(samples []models.Sample) TireSummary {
	return TireSummary{
		Temp:     averageCorners(samples, func(s models.Sample) models.Corners { return s.TireTemp }),
		Pressure: averageCorners(samples, func(s models.Sample) models.Corners { return s.TirePressure }),
	}
}

func averageCorners(samples []models.Sample, pick func(models.Sample) models.Corners) models.Corners {
	avg := func(get func(models.Corners) omit.Val[float64]) omit.Val[float64] {
		var vals []float64
		for _, s := range samples {
			if v, ok := get(pick(s)).Get(); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return omit.Val[float64]{}
		}
		return omit.From(mean(vals))
	}
	return models.Corners{
		FL: avg(func(c models.Corners) omit.Val[float64] { return c.FL }),
		FR: avg(func(c models.Corners) omit.Val[float64] { return c.FR }),
		RL: avg(func(c models.Corners) omit.Val[float64] { return c.RL }),
		RR: avg(func(c models.Corners) omit.Val[float64] { return c.RR }),
	}
}
