package temperature

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	coretemp "github.com/kilianp07/cropplan/core/temperature"
)

// CSVProvider serves daily means read from a delimited file. The first row
// names the columns; location, month, day and temperature are required, year
// is optional. Rows carrying a year only apply to that year, rows without one
// apply to every year.
//
//	location;month;day;temperature
//	Bologna;1;1;3.4
type CSVProvider struct {
	// readings[location][year] with year 0 for undated rows
	readings map[string]map[int]map[coretemp.DayKey]float64
}

var errMissingColumn = errors.New("missing column")

// NewCSVProvider loads path. A zero comma defaults to ';'.
func NewCSVProvider(path string, comma rune) (*CSVProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ReadCSV(f, comma)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p, nil
}

// ReadCSV parses temperature rows from r.
func ReadCSV(r io.Reader, comma rune) (*CSVProvider, error) {
	if comma == 0 {
		comma = ';'
	}
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{"location", "month", "day", "temperature"} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w %q", errMissingColumn, want)
		}
	}
	yearCol, hasYear := cols["year"]

	p := &CSVProvider{readings: make(map[string]map[int]map[coretemp.DayKey]float64)}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		if len(rec) < len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(rec))
		}
		month, err := strconv.Atoi(strings.TrimSpace(rec[cols["month"]]))
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("line %d: invalid month %q", line, rec[cols["month"]])
		}
		day, err := strconv.Atoi(strings.TrimSpace(rec[cols["day"]]))
		if err != nil || day < 1 || day > 31 {
			return nil, fmt.Errorf("line %d: invalid day %q", line, rec[cols["day"]])
		}
		raw := strings.Replace(strings.TrimSpace(rec[cols["temperature"]]), ",", ".", 1)
		temp, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid temperature %q", line, rec[cols["temperature"]])
		}
		year := 0
		if hasYear && strings.TrimSpace(rec[yearCol]) != "" {
			if year, err = strconv.Atoi(strings.TrimSpace(rec[yearCol])); err != nil {
				return nil, fmt.Errorf("line %d: invalid year %q", line, rec[yearCol])
			}
		}
		loc := strings.TrimSpace(rec[cols["location"]])
		byYear, ok := p.readings[loc]
		if !ok {
			byYear = make(map[int]map[coretemp.DayKey]float64)
			p.readings[loc] = byYear
		}
		days, ok := byYear[year]
		if !ok {
			days = make(map[coretemp.DayKey]float64)
			byYear[year] = days
		}
		days[coretemp.DayKey{Month: time.Month(month), Day: day}] = temp
	}
	return p, nil
}

// Locations lists the locations present in the file.
func (p *CSVProvider) Locations() []string {
	out := make([]string, 0, len(p.readings))
	for name := range p.readings {
		out = append(out, name)
	}
	return out
}

// DailyMeans returns the readings for location, dated rows of year taking
// precedence over undated ones.
func (p *CSVProvider) DailyMeans(ctx context.Context, location string, year int) (map[coretemp.DayKey]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	byYear, ok := p.readings[location]
	if !ok {
		return nil, fmt.Errorf("no temperatures for location %s", location)
	}
	out := make(map[coretemp.DayKey]float64, 366)
	for k, v := range byYear[0] {
		out[k] = v
	}
	for k, v := range byYear[year] {
		out[k] = v
	}
	return out, nil
}
