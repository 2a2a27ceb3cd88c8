// Package series loads and summarizes the time-series data behind the line
// chart. A Series keeps its source order; nothing here sorts it.
package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"chart2svg/internal/logging"
)

var (
	// ErrEmptySeries is returned when an extent is requested over no points.
	ErrEmptySeries = errors.New("empty series")

	// ErrMalformedDate is returned for a date cell that matches no known layout.
	ErrMalformedDate = errors.New("malformed date")
)

// Point is one observation: a date and the price at that date.
type Point struct {
	Date  time.Time
	Price float64
}

// Series is an ordered sequence of points in source order.
type Series []Point

// dateFormats are tried in order for every date cell.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"Jan 2 2006",
	"2-Jan-06",
}

// LoadOptions selects the CSV columns and the handling of bad dates.
type LoadOptions struct {
	DateColumn  string // header name, case-insensitive; default "date"
	PriceColumn string // header name, case-insensitive; default "price"

	// Lenient keeps rows whose date cannot be parsed, with a zero Date,
	// and logs a warning. The zero date then takes part in extents.
	Lenient bool

	Log *logging.Logger
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.DateColumn == "" {
		o.DateColumn = "date"
	}
	if o.PriceColumn == "" {
		o.PriceColumn = "price"
	}
	if o.Log == nil {
		o.Log = logging.NopLogger()
	}
	return o
}

// ParseDate parses s against the supported layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string, opts LoadOptions) (Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	return LoadCSV(file, opts)
}

// LoadCSV reads a header row followed by data rows. Columns are matched by
// name, case-insensitively; extra columns are ignored.
func LoadCSV(r io.Reader, opts LoadOptions) (Series, error) {
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	columnMap := make(map[string]int, len(header))
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	dateCol, ok := columnMap[strings.ToLower(opts.DateColumn)]
	if !ok {
		return nil, fmt.Errorf("date column '%s' not found in CSV. Available columns: %v", opts.DateColumn, header)
	}
	priceCol, ok := columnMap[strings.ToLower(opts.PriceColumn)]
	if !ok {
		return nil, fmt.Errorf("price column '%s' not found in CSV. Available columns: %v", opts.PriceColumn, header)
	}

	var out Series
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if dateCol >= len(record) || priceCol >= len(record) {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", row, max(dateCol, priceCol)+1, len(record))
		}

		date, err := ParseDate(record[dateCol])
		if err != nil {
			if !opts.Lenient {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			opts.Log.Warn("keeping row with unparsable date", "row", row, "value", record[dateCol])
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[priceCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q: %w", row, record[priceCol], err)
		}

		out = append(out, Point{Date: date, Price: price})
	}

	opts.Log.Debug("loaded series", "points", len(out))
	return out, nil
}

// DateExtent returns [earliest, latest] date in one pass.
func DateExtent(s Series) ([2]time.Time, error) {
	if len(s) == 0 {
		return [2]time.Time{}, ErrEmptySeries
	}
	lo, hi := s[0].Date, s[0].Date
	for _, p := range s[1:] {
		if p.Date.Before(lo) {
			lo = p.Date
		}
		if p.Date.After(hi) {
			hi = p.Date
		}
	}
	return [2]time.Time{lo, hi}, nil
}

// PriceExtent returns [min, max] price in one pass. NaN prices are skipped,
// matching how an invalid value compares false against everything.
func PriceExtent(s Series) ([2]float64, error) {
	if len(s) == 0 {
		return [2]float64{}, ErrEmptySeries
	}
	var ext [2]float64
	seen := false
	for _, p := range s {
		if p.Price != p.Price {
			continue
		}
		if !seen {
			ext = [2]float64{p.Price, p.Price}
			seen = true
			continue
		}
		if p.Price < ext[0] {
			ext[0] = p.Price
		}
		if p.Price > ext[1] {
			ext[1] = p.Price
		}
	}
	if !seen {
		return [2]float64{}, ErrEmptySeries
	}
	return ext, nil
}
