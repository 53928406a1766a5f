package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"racelens/models"
	"racelens/session"
	"racelens/track"
	"racelens/units"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	// keep unit labels such as "km/h" as written
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

// Laps renders one row per lap; the best lap is marked with '*'.
func Laps(w io.Writer, stats []models.LapStats, best int, u units.Settings) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Lap", "Time", "Avg Speed", "Max Speed", "Throttle", "Brake", "Samples"})
	for _, l := range stats {
		lap := fmt.Sprintf("%d", l.LapNumber)
		if l.LapNumber == best {
			lap += "*"
		}
		t.AppendRow(table.Row{
			lap,
			LapTime(l.LapTime),
			Fixed(u.ConvertSpeed(l.AvgSpeed), 1) + " " + u.SpeedLabel(),
			Fixed(u.ConvertSpeed(l.MaxSpeed), 1) + " " + u.SpeedLabel(),
			Percent(l.AvgThrottle),
			Percent(l.AvgBrake),
			l.Samples,
		})
	}
	t.Render()
}

func Summary(w io.Writer, meta models.Metadata, sum session.Summary, u units.Settings) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Session", ""})
	t.AppendRows([]table.Row{
		{"Track", meta.TrackName},
		{"Car", meta.CarName},
		{"Laps", sum.Laps},
		{"Best Lap", fmt.Sprintf("%s (lap %d)", LapTime(sum.BestLap.LapTime), sum.BestLap.LapNumber)},
		{"Avg Lap", LapTime(sum.AvgLapTime)},
		{"Best Lap Avg Speed", Fixed(u.ConvertSpeed(sum.BestLap.AvgSpeed), 1) + " " + u.SpeedLabel()},
		{"Best Lap Max Speed", Fixed(u.ConvertSpeed(sum.BestLap.MaxSpeed), 1) + " " + u.SpeedLabel()},
		{"Avg Throttle", Percent(sum.AvgThrottle)},
		{"Avg Brake", Percent(sum.AvgBrake)},
		{"Consistency", Fixed(sum.Consistency, 1) + "%"},
	})
	t.Render()
}

func Sectors(w io.Writer, laps []session.LapSectors, u units.Settings) {
	t := newTable(w)
	unit := " (" + u.SpeedLabel() + ")"
	t.AppendHeader(table.Row{
		"Lap", "Sector", "Time", "Delta",
		"Min Speed" + unit, "Max Speed" + unit, "Avg Speed" + unit,
		"Throttle", "Braking",
	})
	for i, l := range laps {
		if i > 0 {
			t.AppendSeparator()
		}
		for j, s := range l.Sectors {
			t.AppendRow(table.Row{
				l.Lap,
				s.Number,
				Fixed(s.Time, 3) + "s",
				Delta(l.Delta[j]),
				Fixed(u.ConvertSpeed(s.MinSpeed), 1),
				Fixed(u.ConvertSpeed(s.MaxSpeed), 1),
				Fixed(u.ConvertSpeed(s.AvgSpeed), 1),
				Percent(s.AvgThrottle),
				len(s.BrakingPoints),
			})
		}
	}
	t.Render()
}

// Distribution renders the non-empty speed bins with a bar scaled to the
// largest bin. Bin bounds are shown in the selected speed unit.
func Distribution(w io.Writer, d track.SpeedDistribution, u units.Settings) {
	const width = 40
	t := newTable(w)
	t.AppendHeader(table.Row{"Speed (" + u.SpeedLabel() + ")", "Count", ""})
	maxCount := d.MaxCount()
	for _, b := range d.Bins {
		if b.Count == 0 {
			continue
		}
		bar := b.Count * width / maxCount
		t.AppendRow(table.Row{binLabel(b, u), b.Count, strings.Repeat("#", bar)})
	}
	t.AppendFooter(table.Row{"Median", Fixed(u.ConvertSpeed(d.Median), 1) + " " + u.SpeedLabel(), ""})
	t.AppendFooter(table.Row{"P95", Fixed(u.ConvertSpeed(d.P95), 1) + " " + u.SpeedLabel(), ""})
	t.Render()
}

func Tires(w io.Writer, ts track.TireSummary, u units.Settings) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Tire", "Temp " + u.TemperatureLabel(), "Pressure " + u.PressureLabel()})
	t.AppendRows([]table.Row{
		{"FL", optional(ts.Temp.FL, u.ConvertTemperature, 1), optional(ts.Pressure.FL, u.ConvertPressure, 2)},
		{"FR", optional(ts.Temp.FR, u.ConvertTemperature, 1), optional(ts.Pressure.FR, u.ConvertPressure, 2)},
		{"RL", optional(ts.Temp.RL, u.ConvertTemperature, 1), optional(ts.Pressure.RL, u.ConvertPressure, 2)},
		{"RR", optional(ts.Temp.RR, u.ConvertTemperature, 1), optional(ts.Pressure.RR, u.ConvertPressure, 2)},
	})
	t.Render()
}

func binLabel(b track.SpeedBin, u units.Settings) string {
	if u.Speed != units.MPH {
		return b.Label()
	}
	return Fixed(u.ConvertSpeed(b.Low), 1) + "-" + Fixed(u.ConvertSpeed(b.High), 1)
}
