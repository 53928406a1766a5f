package session

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"racelens/models"
	"racelens/track"
)

// Summary is the whole-session view used for comparison.
type Summary struct {
	Laps        int
	BestLap     models.LapStats
	AvgLapTime  float64
	AvgThrottle float64 // mean of per-lap averages
	AvgBrake    float64 // mean of per-lap averages
	Consistency float64
}

// BestLap returns the lap with the shortest lap time; ties go to the earlier lap.
func (s *Session) BestLap() (models.LapStats, bool) {
	if len(s.LapStats) == 0 {
		return models.LapStats{}, false
	}
	return lo.MinBy(s.LapStats, func(a, b models.LapStats) bool {
		return a.LapTime < b.LapTime
	}), true
}

func (s *Session) Summary() Summary {
	n := len(s.LapStats)
	if n == 0 {
		return Summary{}
	}
	best, _ := s.BestLap()
	avg := func(pick func(models.LapStats) float64) float64 {
		return lo.SumBy(s.LapStats, pick) / float64(n)
	}
	return Summary{
		Laps:        n,
		BestLap:     best,
		AvgLapTime:  avg(func(l models.LapStats) float64 { return l.LapTime }),
		AvgThrottle: avg(func(l models.LapStats) float64 { return l.AvgThrottle }),
		AvgBrake:    avg(func(l models.LapStats) float64 { return l.AvgBrake }),
		Consistency: CalculateConsistency(s.LapStats),
	}
}

// LapSectors are the sectors of one lap together with their deltas to the
// best sector times among the compared laps.
type LapSectors struct {
	Lap     int
	Sectors [track.NumSectors]models.Sector
	Delta   [track.NumSectors]float64
}

// CompareSectors computes sectors for the requested laps in the given order.
// Unknown lap numbers are skipped. Without lap numbers the best lap is used.
func (s *Session) CompareSectors(lapNumbers []int) ([]LapSectors, error) {
	if len(lapNumbers) == 0 {
		if best, ok := s.BestLap(); ok {
			lapNumbers = []int{best.LapNumber}
		}
	}
	lapNumbers = lo.Filter(lo.Uniq(lapNumbers), func(n int, _ int) bool {
		_, ok := s.GetLapData(n)
		return ok
	})

	out := make([]LapSectors, 0, len(lapNumbers))
	all := make([][track.NumSectors]models.Sector, 0, len(lapNumbers))
	for _, n := range lapNumbers {
		data, _ := s.GetLapData(n)
		secs, err := s.CalculateSectorMetrics(data)
		if err != nil {
			return nil, errors.Wrapf(err, "sectors of lap %d", n)
		}
		out = append(out, LapSectors{Lap: n, Sectors: secs})
		all = append(all, secs)
	}
	for i, d := range track.SectorDeltas(all) {
		out[i].Delta = d
	}
	return out, nil
}

// SpeedDistribution bins the speeds of one lap, or of the whole session when
// lapNumber is 0.
func (s *Session) SpeedDistribution(lapNumber int) (track.SpeedDistribution, error) {
	data, err := s.lapOrAll(lapNumber)
	if err != nil {
		return track.SpeedDistribution{}, err
	}
	return track.ComputeSpeedDistribution(data, track.DefaultBinSize, track.DefaultBins), nil
}

// TireSummary averages tire readings of one lap, or of the whole session when
// lapNumber is 0.
func (s *Session) TireSummary(lapNumber int) (track.TireSummary, error) {
	data, err := s.lapOrAll(lapNumber)
	if err != nil {
		return track.TireSummary{}, err
	}
	return track.ComputeTireSummary(data), nil
}

// Outline returns the sector-annotated path of a lap.
func (s *Session) Outline(lapNumber int) (track.Outline, error) {
	data, ok := s.GetLapData(lapNumber)
	if !ok {
		return track.Outline{}, errors.Errorf("lap %d not found", lapNumber)
	}
	return track.BuildOutline(data, s.segmenter.Config().StartRadius), nil
}

func (s *Session) lapOrAll(lapNumber int) ([]models.Sample, error) {
	if lapNumber == 0 {
		return s.RawData, nil
	}
	data, ok := s.GetLapData(lapNumber)
	if !ok {
		return nil, errors.Errorf("lap %d not found", lapNumber)
	}
	return data, nil
}
