package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/aarondl/opt/omit"

	"racelens/models"
)

// Row maps a header name to the raw text of one field.
type Row map[string]string

const (
	ColTime     = "Time"
	ColSpeed    = "Speed"
	ColThrottle = "Throttle"
	ColBrake    = "Brake"
	ColX        = "X"
	ColY        = "Y"
)

// RequiredColumns must be present in every header.
var RequiredColumns = []string{ColTime, ColSpeed, ColThrottle, ColBrake}

// TireColumns lists the optional per-corner columns in export order.
var TireColumns = []string{
	"TireTempFL", "TireTempFR", "TireTempRL", "TireTempRR",
	"TirePressureFL", "TirePressureFR", "TirePressureRL", "TirePressureRR",
}

var knownColumns = func() map[string]string {
	m := make(map[string]string)
	for _, c := range []string{ColTime, ColSpeed, ColThrottle, ColBrake, ColX, ColY} {
		m[strings.ToLower(c)] = c
	}
	for _, c := range TireColumns {
		m[strings.ToLower(c)] = c
	}
	return m
}()

// ParseRows converts tokenized rows into samples. Header names are matched
// case-insensitively. Numeric fields that are missing or unparsable become 0.
func ParseRows(header []string, rows []Row) ([]models.Sample, error) {
	if len(header) == 0 {
		return nil, &FormatError{Reason: "no header line found"}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Reason: "no telemetry rows"}
	}

	// canonical column -> header name as it appears in the rows
	cols := make(map[string]string)
	var extra []string
	for _, h := range header {
		key := strings.TrimSpace(h)
		if canon, ok := knownColumns[strings.ToLower(key)]; ok {
			if _, dup := cols[canon]; !dup {
				cols[canon] = h
			}
			continue
		}
		extra = append(extra, h)
	}

	var missing []string
	for _, r := range RequiredColumns {
		if _, ok := cols[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Reason: "missing required column", Missing: missing}
	}

	samples := make([]models.Sample, 0, len(rows))
	for _, row := range rows {
		num := func(canon string) float64 {
			h, ok := cols[canon]
			if !ok {
				return 0
			}
			return parseOrZero(row[h])
		}
		opt := func(canon string) omit.Val[float64] {
			h, ok := cols[canon]
			if !ok {
				return omit.Val[float64]{}
			}
			return omit.From(parseOrZero(row[h]))
		}

		s := models.Sample{
			Time:     num(ColTime),
			Speed:    num(ColSpeed),
			Throttle: num(ColThrottle),
			Brake:    num(ColBrake),
			X:        num(ColX),
			Y:        num(ColY),
			TireTemp: models.Corners{
				FL: opt("TireTempFL"), FR: opt("TireTempFR"),
				RL: opt("TireTempRL"), RR: opt("TireTempRR"),
			},
			TirePressure: models.Corners{
				FL: opt("TirePressureFL"), FR: opt("TirePressureFR"),
				RL: opt("TirePressureRL"), RR: opt("TirePressureRR"),
			},
		}
		if len(extra) > 0 {
			s.Extra = make(map[string]string, len(extra))
			for _, h := range extra {
				if v, ok := row[h]; ok {
					s.Extra[strings.TrimSpace(h)] = v
				}
			}
		}
		samples = append(samples, s)
	}
	return samples, nil
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseOrZero reads the longest leading decimal number of s, so "120km"
// yields 120. Text without a leading number and non-finite values yield 0.
func parseOrZero(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
