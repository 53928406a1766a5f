package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"racelens/models"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Table is a tokenized telemetry file.
type Table struct {
	Header   []string
	Rows     []Row
	Metadata models.Metadata
}

// Samples converts the table rows into typed samples.
func (t *Table) Samples() ([]models.Sample, error) {
	return ParseRows(t.Header, t.Rows)
}

// Read tokenizes CSV telemetry. Lines starting with '#' are comments; the
// "# Track:" and "# Car:" comments fill in the session metadata. The header is
// the first non-comment line. A leading UTF-8 byte order mark is dropped and
// rows without any non-blank field are skipped.
func Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read telemetry")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	meta := models.NewMetadata()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "# Track:"):
			meta.TrackName = strings.TrimSpace(strings.TrimPrefix(line, "# Track:"))
		case strings.HasPrefix(line, "# Car:"):
			meta.CarName = strings.TrimSpace(strings.TrimPrefix(line, "# Car:"))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan comments")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &FormatError{Reason: "no header line found"}
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read rows")
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows, Metadata: meta}, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Load reads a telemetry CSV file from disk. Only .csv files are accepted.
func Load(path string) (*Table, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, &FormatError{Reason: "please provide a CSV file: " + filepath.Base(path)}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, err
	}
	t.Metadata.Filename = filepath.Base(path)
	t.Metadata.UploadDate = time.Now()
	return t, nil
}
