package ingest

import (
	"fmt"
	"strings"
)

// FormatError reports input that cannot be turned into telemetry samples at
// all: no rows, no header, or a header missing required columns.
type FormatError struct {
	Reason  string
	Missing []string
}

func (e *FormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("format error: %s: %s", e.Reason, strings.Join(e.Missing, ", "))
	}
	return "format error: " + e.Reason
}
