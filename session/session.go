package session

import (
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"racelens/ingest"
	"racelens/log"
	"racelens/models"
	"racelens/track"
)

// Session is the analysed form of one telemetry recording. Every consumer
// reads laps and statistics from here instead of deriving them again.
type Session struct {
	ID       string
	Metadata models.Metadata
	RawData  []models.Sample
	Laps     []models.Lap
	LapStats []models.LapStats

	lapIdx    []int
	segmenter *track.Segmenter
	brake     track.BrakeThresholds
	logger    *log.Logger
}

type Option func(s *Session)

func WithSegmenter(seg *track.Segmenter) Option {
	return func(s *Session) {
		s.segmenter = seg
	}
}

func WithBrakeThresholds(th track.BrakeThresholds) Option {
	return func(s *Session) {
		s.brake = th
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New segments samples into laps and computes their statistics. The session
// takes ownership of samples.
func New(samples []models.Sample, meta models.Metadata, opts ...Option) (*Session, error) {
	s := &Session{
		ID:        uuid.New().String(),
		Metadata:  meta,
		segmenter: track.NewSegmenter(),
		brake:     track.DefaultBrakeThresholds(),
		logger:    log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(samples) == 0 {
		return nil, &ingest.FormatError{Reason: "no telemetry rows"}
	}

	s.RawData = samples
	s.Laps = s.segmenter.Segment(samples)
	s.lapIdx = track.LapIdx(s.Laps)
	stats, err := track.ComputeAllLapStats(s.Laps)
	if err != nil {
		return nil, errors.Wrap(err, "compute lap stats")
	}
	s.LapStats = stats

	cfg := s.segmenter.Config()
	s.logger.Debug("session built",
		log.String("id", s.ID),
		log.Int("samples", len(samples)),
		log.Int("laps", len(s.Laps)),
		log.Float64("startRadius", cfg.StartRadius),
		log.Float64("farRadius", cfg.FarRadius),
		log.Float64("minLapGap", cfg.MinLapGap))
	return s, nil
}

// FromTable builds a session from a tokenized file.
func FromTable(t *ingest.Table, opts ...Option) (*Session, error) {
	samples, err := t.Samples()
	if err != nil {
		return nil, err
	}
	return New(samples, t.Metadata, opts...)
}

// FromReader parses CSV telemetry from r and builds a session.
func FromReader(r io.Reader, opts ...Option) (*Session, error) {
	t, err := ingest.Read(r)
	if err != nil {
		return nil, err
	}
	return FromTable(t, opts...)
}

// FromFile loads a .csv file and builds a session. Metadata records the
// file name and load time.
func FromFile(path string, opts ...Option) (*Session, error) {
	t, err := ingest.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := FromTable(t, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "analyse %s", path)
	}
	return s, nil
}

// GetLapData returns the samples of a lap.
func (s *Session) GetLapData(lapNumber int) ([]models.Sample, bool) {
	if lapNumber < 1 || lapNumber > len(s.Laps) {
		return nil, false
	}
	return s.Laps[lapNumber-1].Samples, true
}

func (s *Session) GetLapStats() []models.LapStats {
	return append([]models.LapStats(nil), s.LapStats...)
}

// GetSelectedLapData returns the samples of every requested lap. Unknown lap
// numbers are skipped.
func (s *Session) GetSelectedLapData(lapNumbers []int) map[int][]models.Sample {
	out := make(map[int][]models.Sample)
	for _, n := range lo.Uniq(lapNumbers) {
		if data, ok := s.GetLapData(n); ok {
			out[n] = data
		}
	}
	return out
}

func (s *Session) CalculateSectorMetrics(lapSamples []models.Sample) ([track.NumSectors]models.Sector, error) {
	return track.ComputeSectors(lapSamples, s.brake)
}

// LapOf maps an index into RawData to its lap number and the index within that lap.
func (s *Session) LapOf(sampleIdx int) (int, int) {
	return track.FindLap(s.lapIdx, sampleIdx)
}

// CalculateConsistency scores the lap times of stats; see track.Consistency.
func CalculateConsistency(stats []models.LapStats) float64 {
	return track.Consistency(lo.Map(stats, func(l models.LapStats, _ int) float64 {
		return l.LapTime
	}))
}
