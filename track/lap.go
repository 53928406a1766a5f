package track

import (
	"fmt"
	"math"

	"racelens/models"
)

// SegmentConfig holds the finish-line heuristic thresholds.
// Changing any of them changes which laps are detected; re-check against
// recorded sessions before shipping a new default.
type SegmentConfig struct {
	StartRadius float64 // |x| and |y| below this count as near the start
	FarRadius   float64 // |x| or |y| above this count as away from the start
	MinLapGap   float64 // seconds between boundaries; <= 0 disables the check
}

const (
	PresetStrict = "strict"
	PresetLoose  = "loose"
)

// StrictPreset is the default. It suppresses false splits from position noise
// near the origin.
func StrictPreset() SegmentConfig {
	return SegmentConfig{StartRadius: 5, FarRadius: 20, MinLapGap: 5}
}

// LoosePreset uses a wider start area and no cooldown.
func LoosePreset() SegmentConfig {
	return SegmentConfig{StartRadius: 10, FarRadius: 100, MinLapGap: 0}
}

// PresetByName resolves "strict" or "loose". An empty name yields the strict preset.
func PresetByName(name string) (SegmentConfig, error) {
	switch name {
	case "", PresetStrict:
		return StrictPreset(), nil
	case PresetLoose:
		return LoosePreset(), nil
	}
	return SegmentConfig{}, fmt.Errorf("unknown segmentation preset %q", name)
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(s *Segmenter)

// WithConfig replaces all thresholds, typically with a preset.
func WithConfig(cfg SegmentConfig) SegmenterOption {
	return func(s *Segmenter) {
		s.cfg = cfg
	}
}

func WithStartRadius(r float64) SegmenterOption {
	return func(s *Segmenter) {
		s.cfg.StartRadius = r
	}
}

func WithFarRadius(r float64) SegmenterOption {
	return func(s *Segmenter) {
		s.cfg.FarRadius = r
	}
}

func WithMinLapGap(secs float64) SegmenterOption {
	return func(s *Segmenter) {
		s.cfg.MinLapGap = secs
	}
}

// Segmenter splits a sample sequence into laps using position only.
// It keeps no state between calls and is safe for concurrent use.
type Segmenter struct {
	cfg SegmentConfig
}

// NewSegmenter returns a Segmenter using the strict preset unless options
// say otherwise.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{cfg: StrictPreset()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the thresholds in effect.
func (s *Segmenter) Config() SegmentConfig {
	return s.cfg
}

// Segment assigns every sample to a lap in a single forward pass. A boundary
// is counted when a sample lies near the origin, the previous sample was far
// from it and the cooldown since the last boundary has expired. The returned
// laps are numbered from 1 without gaps and together hold every input sample
// in order. Empty input yields no laps.
func (s *Segmenter) Segment(samples []models.Sample) []models.Lap {
	if len(samples) == 0 {
		return nil
	}

	laps := []models.Lap{{Number: 1}}
	var (
		lastX, lastY     float64
		haveLast         bool
		lastBoundaryTime float64
		haveBoundary     bool
	)

	for _, p := range samples {
		if haveLast && s.isBoundary(p, lastX, lastY, lastBoundaryTime, haveBoundary) {
			laps = append(laps, models.Lap{Number: len(laps) + 1})
			lastBoundaryTime = p.Time
			haveBoundary = true
		}
		cur := &laps[len(laps)-1]
		cur.Samples = append(cur.Samples, p)
		lastX, lastY = p.X, p.Y
		haveLast = true
	}
	return laps
}

func (s *Segmenter) isBoundary(p models.Sample, lastX, lastY, lastBoundary float64, haveBoundary bool) bool {
	nearStart := math.Abs(p.X) < s.cfg.StartRadius && math.Abs(p.Y) < s.cfg.StartRadius
	wasFar := math.Abs(lastX) > s.cfg.FarRadius || math.Abs(lastY) > s.cfg.FarRadius
	cooldownOk := !haveBoundary || s.cfg.MinLapGap <= 0 || p.Time-lastBoundary > s.cfg.MinLapGap
	return nearStart && wasFar && cooldownOk
}

// LapIdx returns start indices of each lap into the flat sample sequence plus
// a final end-exclusive boundary.
func LapIdx(laps []models.Lap) []int {
	idx := []int{0}
	n := 0
	for _, l := range laps {
		n += len(l.Samples)
		idx = append(idx, n)
	}
	return idx
}

// FindLap returns the lap number (1-based) holding the sample at flat index
// idx and the index within that lap. It returns 0, 0 when idx is out of range.
func FindLap(lapIdx []int, idx int) (int, int) {
	for lapNum := 1; lapNum < len(lapIdx); lapNum++ {
		start := lapIdx[lapNum-1]
		end := lapIdx[lapNum]
		if idx >= start && idx < end {
			return lapNum, idx - start
		}
	}
	return 0, 0
}
