package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"racelens/models"
	"racelens/session"
	"racelens/units"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Columns is the fixed CSV export column order.
var Columns = []string{
	"Time", "Speed", "Throttle", "Brake",
	"TireTempFL", "TireTempFR", "TireTempRL", "TireTempRR",
	"TirePressureFL", "TirePressureFR", "TirePressureRL", "TirePressureRR",
	"X", "Y",
}

type Options struct {
	Units           units.Settings
	IncludeMetadata bool
	Precision       int // decimal places; negative keeps full precision
}

func DefaultOptions() Options {
	return Options{Units: units.Default(), IncludeMetadata: true, Precision: -1}
}

// Write exports the raw samples of s in the given format.
func Write(w io.Writer, s *session.Session, format string, opts Options) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, s, opts)
	case FormatJSON:
		return WriteJSON(w, s, opts)
	}
	return errors.Errorf("unsupported export format: %s", format)
}

// Filename builds a timestamped export file name.
func Filename(format string, now time.Time) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(now.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	return fmt.Sprintf("telemetry-data-%s.%s", stamp, format)
}

// WriteCSV writes the samples with converted units. Unset tire readings stay
// empty. With IncludeMetadata the data is preceded by "# key: value" lines and
// a blank line.
func WriteCSV(w io.Writer, s *session.Session, opts Options) error {
	if opts.IncludeMetadata {
		for _, kv := range metadataPairs(s.Metadata) {
			if _, err := fmt.Fprintf(w, "# %s: %s\n", kv[0], kv[1]); err != nil {
				return errors.Wrap(err, "write metadata")
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return errors.Wrap(err, "write metadata")
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, p := range s.RawData {
		values := convert(p, opts)
		rec := make([]string, len(Columns))
		for i, c := range Columns {
			if v, ok := values[c].Get(); ok {
				rec[i] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// WriteJSON writes {"metadata": {...}, "data": [...]} with converted units.
// Each data entry also carries its lap number and any passthrough columns.
func WriteJSON(w io.Writer, s *session.Session, opts Options) error {
	meta := map[string]any{}
	for _, kv := range metadataPairs(s.Metadata) {
		meta[kv[0]] = kv[1]
	}

	data := make([]any, 0, len(s.RawData))
	for i, p := range s.RawData {
		entry := map[string]any{}
		for k, v := range p.Extra {
			entry[k] = v
		}
		for k, v := range convert(p, opts) {
			if f, ok := v.Get(); ok {
				entry[k] = f
			}
		}
		lap, _ := s.LapOf(i)
		entry["Lap"] = lap
		data = append(data, entry)
	}

	doc := map[string]any{"metadata": meta, "data": data}
	if _, err := io.WriteString(w, oj.JSON(doc, &ojg.Options{Indent: 2, Sort: true})); err != nil {
		return errors.Wrap(err, "write json")
	}
	return nil
}

func metadataPairs(m models.Metadata) [][2]string {
	pairs := [][2]string{}
	if m.Filename != "" {
		pairs = append(pairs, [2]string{"filename", m.Filename})
	}
	if !m.UploadDate.IsZero() {
		pairs = append(pairs, [2]string{"uploadDate", m.UploadDate.UTC().Format(time.RFC3339)})
	}
	pairs = append(pairs,
		[2]string{"trackName", m.TrackName},
		[2]string{"carName", m.CarName})
	return pairs
}

func convert(p models.Sample, opts Options) map[string]omit.Val[float64] {
	u := opts.Units
	round := func(v float64) omit.Val[float64] {
		if opts.Precision >= 0 {
			v = decimal.NewFromFloat(v).Round(int32(opts.Precision)).InexactFloat64()
		}
		return omit.From(v)
	}
	corner := func(v omit.Val[float64], conv func(float64) float64) omit.Val[float64] {
		if f, ok := v.Get(); ok {
			return round(conv(f))
		}
		return omit.Val[float64]{}
	}
	return map[string]omit.Val[float64]{
		"Time":           round(p.Time),
		"Speed":          round(u.ConvertSpeed(p.Speed)),
		"Throttle":       round(p.Throttle),
		"Brake":          round(p.Brake),
		"X":              round(p.X),
		"Y":              round(p.Y),
		"TireTempFL":     corner(p.TireTemp.FL, u.ConvertTemperature),
		"TireTempFR":     corner(p.TireTemp.FR, u.ConvertTemperature),
		"TireTempRL":     corner(p.TireTemp.RL, u.ConvertTemperature),
		"TireTempRR":     corner(p.TireTemp.RR, u.ConvertTemperature),
		"TirePressureFL": corner(p.TirePressure.FL, u.ConvertPressure),
		"TirePressureFR": corner(p.TirePressure.FR, u.ConvertPressure),
		"TirePressureRL": corner(p.TirePressure.RL, u.ConvertPressure),
		"TirePressureRR": corner(p.TirePressure.RR, u.ConvertPressure),
	}
}
