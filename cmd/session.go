package cmd

import (
	"context"

	"github.com/pkg/errors"

	"racelens/config"
	"racelens/log"
	"racelens/session"
	"racelens/track"
	"racelens/units"
)

// segmentConfig resolves the preset and applies any explicit overrides.
func segmentConfig() (track.SegmentConfig, error) {
	cfg, err := track.PresetByName(config.Preset)
	if err != nil {
		return cfg, err
	}
	if config.StartRadius >= 0 {
		cfg.StartRadius = config.StartRadius
	}
	if config.FarRadius >= 0 {
		cfg.FarRadius = config.FarRadius
	}
	if config.MinLapGap >= 0 {
		cfg.MinLapGap = config.MinLapGap
	}
	return cfg, nil
}

func unitSettings() (units.Settings, error) {
	return units.Parse(config.SpeedUnit, config.TempUnit, config.PressureUnit)
}

func loadSession(ctx context.Context, path string) (*session.Session, error) {
	logger := log.GetFromContext(ctx).Named("session").With(log.String("path", path))
	cfg, err := segmentConfig()
	if err != nil {
		return nil, err
	}
	s, err := session.FromFile(path,
		session.WithSegmenter(track.NewSegmenter(track.WithConfig(cfg))),
		session.WithBrakeThresholds(track.BrakeThresholds{Onset: config.BrakeOnset}),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	logger.Info("session loaded",
		log.String("file", s.Metadata.Filename),
		log.String("track", s.Metadata.TrackName),
		log.String("car", s.Metadata.CarName),
		log.Int("samples", len(s.RawData)),
		log.Int("laps", len(s.Laps)))
	return s, nil
}
