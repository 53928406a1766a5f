//nolint:whitespace,lll,funlen // readability
package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racelens/ingest"
	"racelens/models"
	"racelens/track"
)

type row struct {
	t, x, y, speed, throttle, brake float64
}

// threeLaps drives a square three times. Lap times are 30, 32 and 28 seconds.
var threeLaps = []row{
	{0, 0, 0, 100, 1, 0}, {10, 50, 0, 200, 1, 0}, {20, 50, 50, 150, 0.5, 0.8}, {30, 0, 50, 120, 0.2, 0},
	{40, 0, 0, 110, 1, 0}, {50, 50, 0, 190, 1, 0}, {60, 50, 50, 140, 0, 0.9}, {72, 0, 50, 100, 0.3, 0},
	{80, 0, 0, 120, 1, 0}, {90, 50, 0, 210, 1, 0}, {100, 50, 50, 160, 0.4, 0.7}, {108, 0, 50, 130, 0.5, 0},
}

func csvOf(rows []row) string {
	var b strings.Builder
	b.WriteString("# Track: Test Ring\n")
	b.WriteString("Time,X,Y,Speed,Throttle,Brake\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%g,%g,%g,%g,%g,%g\n", r.t, r.x, r.y, r.speed, r.throttle, r.brake)
	}
	return b.String()
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := FromReader(strings.NewReader(csvOf(threeLaps)), opts...)
	require.NoError(t, err)
	return s
}

func TestFromReader(t *testing.T) {
	s := newTestSession(t)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Test Ring", s.Metadata.TrackName)
	assert.Equal(t, models.UnknownCar, s.Metadata.CarName)
	assert.Len(t, s.RawData, 12)
	require.Len(t, s.Laps, 3)
	require.Len(t, s.LapStats, 3)

	got := []float64{s.LapStats[0].LapTime, s.LapStats[1].LapTime, s.LapStats[2].LapTime}
	if diff := cmp.Diff([]float64{30, 32, 28}, got); diff != "" {
		t.Errorf("lap times mismatch (-want +got):\n%s", diff)
	}
	for i, st := range s.LapStats {
		assert.Equal(t, i+1, st.LapNumber)
	}
	assert.NotEqual(t, s.ID, newTestSession(t).ID)
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil, models.NewMetadata())
	var fe *ingest.FormatError
	require.True(t, errors.As(err, &fe))

	_, err = FromReader(strings.NewReader(""))
	require.True(t, errors.As(err, &fe))
}

func TestNew_Deterministic(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)
	assert.Equal(t, a.Laps, b.Laps)
	assert.Equal(t, a.LapStats, b.LapStats)
}

func TestWithSegmenter(t *testing.T) {
	s := newTestSession(t, WithSegmenter(track.NewSegmenter(track.WithFarRadius(60))))
	assert.Len(t, s.Laps, 1, "no sample is beyond the far radius")
}

func TestGetLapData(t *testing.T) {
	s := newTestSession(t)
	data, ok := s.GetLapData(2)
	require.True(t, ok)
	require.Len(t, data, 4)
	assert.Equal(t, 40.0, data[0].Time)

	for _, n := range []int{0, -1, 4} {
		_, ok := s.GetLapData(n)
		assert.False(t, ok, "lap %d", n)
	}
}

func TestGetSelectedLapData(t *testing.T) {
	s := newTestSession(t)
	got := s.GetSelectedLapData([]int{3, 1, 3, 9})
	assert.Len(t, got, 2)
	assert.Contains(t, got, 1)
	assert.Contains(t, got, 3)
	assert.Equal(t, 80.0, got[3][0].Time)
	assert.Empty(t, s.GetSelectedLapData(nil))
}

func TestGetLapStats_ReturnsCopy(t *testing.T) {
	s := newTestSession(t)
	stats := s.GetLapStats()
	stats[0].LapTime = 999
	assert.Equal(t, 30.0, s.LapStats[0].LapTime)
}

func TestLapOf(t *testing.T) {
	s := newTestSession(t)
	lap, off := s.LapOf(5)
	assert.Equal(t, 2, lap)
	assert.Equal(t, 1, off)
}

func TestBestLapAndSummary(t *testing.T) {
	s := newTestSession(t)
	best, ok := s.BestLap()
	require.True(t, ok)
	assert.Equal(t, 3, best.LapNumber)

	sum := s.Summary()
	assert.Equal(t, 3, sum.Laps)
	assert.Equal(t, 3, sum.BestLap.LapNumber)
	assert.InDelta(t, 30.0, sum.AvgLapTime, 1e-9)
	assert.InDelta(t, CalculateConsistency(s.LapStats), sum.Consistency, 1e-9)
	assert.Greater(t, sum.Consistency, 90.0)
	assert.Less(t, sum.Consistency, 100.0)

	assert.Equal(t, Summary{}, (&Session{}).Summary())
}

func TestBestLap_TieGoesToEarlierLap(t *testing.T) {
	s := &Session{LapStats: []models.LapStats{
		{LapNumber: 1, LapTime: 31}, {LapNumber: 2, LapTime: 30}, {LapNumber: 3, LapTime: 30},
	}}
	best, ok := s.BestLap()
	require.True(t, ok)
	assert.Equal(t, 2, best.LapNumber)
}

func TestCalculateConsistency(t *testing.T) {
	stats := []models.LapStats{{LapTime: 90}, {LapTime: 90}, {LapTime: 90}}
	assert.Equal(t, 100.0, CalculateConsistency(stats))
	assert.Equal(t, 0.0, CalculateConsistency(stats[:1]))
}

func TestCompareSectors(t *testing.T) {
	s := newTestSession(t)

	got, err := s.CompareSectors(nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Lap, "defaults to the best lap")
	assert.Equal(t, [track.NumSectors]float64{}, got[0].Delta)

	got, err = s.CompareSectors([]int{2, 1, 2, 7})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Lap)
	assert.Equal(t, 1, got[1].Lap)

	// four samples per lap: sectors hold 1, 1 and 2 samples
	assert.Equal(t, 0.0, got[0].Sectors[0].Time)
	assert.Equal(t, 12.0, got[0].Sectors[2].Time)
	assert.Equal(t, 10.0, got[1].Sectors[2].Time)
	assert.Equal(t, 2.0, got[0].Delta[2])
	assert.Equal(t, 0.0, got[1].Delta[2])
	require.Len(t, got[0].Sectors[2].BrakingPoints, 1)
	assert.Equal(t, 140.0, got[0].Sectors[2].BrakingPoints[0].Speed)
}

func TestWithBrakeThresholds(t *testing.T) {
	s := newTestSession(t, WithBrakeThresholds(track.BrakeThresholds{Onset: 0.85}))
	got, err := s.CompareSectors([]int{1, 2})
	require.NoError(t, err)
	assert.Empty(t, got[0].Sectors[2].BrakingPoints)
	assert.Len(t, got[1].Sectors[2].BrakingPoints, 1)
}

func TestSpeedDistribution(t *testing.T) {
	s := newTestSession(t)

	all, err := s.SpeedDistribution(0)
	require.NoError(t, err)
	total := 0
	for _, b := range all.Bins {
		total += b.Count
	}
	assert.Equal(t, 12, total)

	lap, err := s.SpeedDistribution(1)
	require.NoError(t, err)
	assert.Equal(t, 1, lap.Bins[20].Count)

	_, err = s.SpeedDistribution(5)
	require.Error(t, err)
}

func TestTireSummary(t *testing.T) {
	s := newTestSession(t)
	ts, err := s.TireSummary(0)
	require.NoError(t, err)
	assert.False(t, ts.Temp.Any())

	_, err = s.TireSummary(-1)
	require.Error(t, err)
}

func TestOutline(t *testing.T) {
	s := newTestSession(t)
	o, err := s.Outline(1)
	require.NoError(t, err)
	assert.Len(t, o.Points, 4)
	assert.False(t, o.Closed)
	assert.InDelta(t, 150.0, o.Points[3].S, 1e-9)

	_, err = s.Outline(4)
	assert.EqualError(t, err, "lap 4 not found")
}
