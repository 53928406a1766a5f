package models

import (
	"time"

	"github.com/aarondl/opt/omit"
)

// Corners holds one optional reading per wheel. A corner is unset when the
// recording did not carry the matching column.
type Corners struct {
	FL omit.Val[float64]
	FR omit.Val[float64]
	RL omit.Val[float64]
	RR omit.Val[float64]
}

// Any reports whether at least one corner carries a value.
func (c Corners) Any() bool {
	return c.FL.IsValue() || c.FR.IsValue() || c.RL.IsValue() || c.RR.IsValue()
}

// Sample is one time-stamped telemetry measurement.
type Sample struct {
	Time     float64 // seconds, non-decreasing within a session
	X        float64 // track-relative position
	Y        float64
	Speed    float64
	Throttle float64 // 0..1
	Brake    float64 // 0..1

	TireTemp     Corners
	TirePressure Corners

	// Extra keeps columns the engine does not interpret, keyed by header name.
	Extra map[string]string
}

// Lap is the ordered run of samples between two detected finish-line crossings.
type Lap struct {
	Number  int
	Samples []Sample
}

// LapStats summarizes a single lap.
type LapStats struct {
	LapNumber   int     `json:"lapNumber"`
	AvgSpeed    float64 `json:"avgSpeed"`
	MaxSpeed    float64 `json:"maxSpeed"`
	AvgThrottle float64 `json:"avgThrottle"`
	AvgBrake    float64 `json:"avgBrake"`
	LapTime     float64 `json:"lapTime"`
	Samples     int     `json:"samples"`
	Distance    float64 `json:"distance"`
}

// BrakingPoint marks the first sample of a run where brake input exceeds the
// onset threshold.
type BrakingPoint struct {
	Index int
	Time  float64
	Speed float64
	X     float64
	Y     float64
}

// Sector is one of three index slices of a lap.
type Sector struct {
	Number        int
	Samples       []Sample
	Time          float64 // elapsed seconds, last minus first sample
	MinSpeed      float64
	MaxSpeed      float64
	AvgSpeed      float64
	AvgThrottle   float64
	BrakingPoints []BrakingPoint
}

// Trackpoint is a point on the driven path with cumulative distance S.
type Trackpoint struct {
	S      float64
	X      float64
	Y      float64
	Sector int
}

// Metadata describes where a session came from.
type Metadata struct {
	Filename   string
	UploadDate time.Time
	TrackName  string
	CarName    string
}

const (
	UnknownTrack = "Unknown Track"
	UnknownCar   = "Unknown Car"
)

// NewMetadata returns metadata with the default track and car names.
func NewMetadata() Metadata {
	return Metadata{TrackName: UnknownTrack, CarName: UnknownCar}
}
