package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// dateLayouts are tried in order against each value of the detected date
// column. Month-first short forms come first because that is what the
// supported sales exports use.
var dateLayouts = []string{
	"01-02-06",
	"01-02-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"01/02/06",
}

// Load reads a CSV file from disk into an immutable snapshot.
func Load(path string, log *logrus.Logger) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	return Read(file, path, log)
}

// Read parses CSV content into an immutable snapshot. The first record is
// the header; its names are stripped of surrounding whitespace before being
// matched against the recognized schema. Rows with a wrong field count are
// skipped, not fatal.
func Read(r io.Reader, source string, log *logrus.Logger) (*Snapshot, error) {
	start := time.Now()
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataset is empty: no header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[i] = name
		if _, exists := colIndex[name]; !exists {
			colIndex[name] = i
		}
	}

	cells := make([][]string, len(columns))
	rows := 0
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				skipped++
				log.WithFields(logrus.Fields{
					"row":    rows + skipped,
					"fields": len(record),
				}).Debug("Skipping row with unexpected field count")
				continue
			}
			return nil, fmt.Errorf("failed to read row %d: %w", rows+skipped+1, err)
		}
		for ci := range columns {
			cells[ci] = append(cells[ci], record[ci])
		}
		rows++
	}

	caps := resolveCapabilities(columns)

	numeric := make(map[string][]float64)
	for _, name := range []string{ColAmount, ColQty} {
		ci, ok := colIndex[name]
		if !ok {
			continue
		}
		parsed := make([]float64, rows)
		for i, raw := range cells[ci] {
			value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				value = math.NaN()
			}
			parsed[i] = value
		}
		numeric[name] = parsed
	}

	var dates []time.Time
	var dateOK []bool
	if caps.DateColumn != "" {
		ci := colIndex[caps.DateColumn]
		dates = make([]time.Time, rows)
		dateOK = make([]bool, rows)
		for i, raw := range cells[ci] {
			dates[i], dateOK[i] = parseDate(raw)
		}
	}

	if skipped > 0 {
		log.WithFields(logrus.Fields{
			"source":  source,
			"skipped": skipped,
		}).Warn("Dataset contained malformed rows")
	}
	log.WithFields(logrus.Fields{
		"source":      source,
		"rows":        rows,
		"columns":     len(columns),
		"date_column": caps.DateColumn,
		"duration":    time.Since(start).String(),
	}).Info("Dataset loaded")

	return &Snapshot{
		source:   source,
		loadedAt: time.Now(),
		columns:  columns,
		colIndex: colIndex,
		cells:    cells,
		numeric:  numeric,
		dates:    dates,
		dateOK:   dateOK,
		caps:     caps,
		rows:     rows,
	}, nil
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
