package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"der_simulator/internal/frame"
)

// Accepted timestamp layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseLoadCSV reads a two-column CSV of load intervals (timestamp, kw) into
// a power frame. A header row is skipped when the first field does not parse
// as a timestamp. Rows must be in strictly increasing timestamp order.
func ParseLoadCSV(r io.Reader) (*frame.IntervalFrame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var index []time.Time
	var values []float64
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected timestamp,kw got %d fields", line, len(record))
		}

		ts, err := parseTimestamp(record[0])
		if err != nil {
			if line == 1 {
				// header
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		kw, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad kw value %q", line, record[1])
		}

		index = append(index, ts)
		values = append(values, kw)
	}

	return frame.NewSeries(frame.Power, index, values)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", s)
}
