// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package equilux tabulates sunrise, sunset, daylight and darkness for
// each day of a date range and searches that table for the equilux (the
// day with the most nearly equal daylight and darkness) and for the
// sunrise and sunset closest to due east and due west.
package equilux

import (
	"fmt"
	"math"
	"time"

	"cloudeng.io/equilux/astronomy"
	"cloudeng.io/errors"
)

// ErrInvalidRange is returned when a date range is empty, ie. its start
// date is after its end date.
var ErrInvalidRange = errors.New("invalid date range")

// EventSource is the source of rising and setting events used to build
// a Table. It is implemented by *astronomy.Calculator.
type EventSource interface {
	Next(ref time.Time, kind astronomy.EventKind) (astronomy.Event, error)
}

const (
	dueEast = 90.0
	dueWest = 270.0
)

// Row represents the values computed for a single day.
type Row struct {
	Date            time.Time `json:"date" yaml:"date"`
	Sunrise         time.Time `json:"sunrise" yaml:"sunrise"`
	SunriseAzimuth  float64   `json:"sunrise_az" yaml:"sunrise_az"`
	Sunset          time.Time `json:"sunset" yaml:"sunset"`
	SunsetAzimuth   float64   `json:"sunset_az" yaml:"sunset_az"`
	HoursOfDaylight float64   `json:"hours_of_daylight" yaml:"hours_of_daylight"`
	HoursOfDarkness float64   `json:"hours_of_darkness" yaml:"hours_of_darkness"`
	DaylightDelta   float64   `json:"daylight_delta" yaml:"daylight_delta"`
	SunriseDelta    float64   `json:"sunrise_delta" yaml:"sunrise_delta"`
	SunsetDelta     float64   `json:"sunset_delta" yaml:"sunset_delta"`
}

// Daylight returns the time between sunrise and sunset.
func (r Row) Daylight() time.Duration {
	return hoursToDuration(r.HoursOfDaylight)
}

// Darkness returns the time between sunset and the following sunrise.
func (r Row) Darkness() time.Duration {
	return hoursToDuration(r.HoursOfDarkness)
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(math.Round(h * float64(time.Hour)))
}

// newRow computes the row for a day given its reference instant. The
// sunset is the first to follow the day's sunrise, rather than ref, so
// that daylight is never negative when ref falls between an evening's
// sunset and the next sunrise. Darkness looks forward to the sunrise
// following this sunset so daylight and darkness need not sum to 24 hours.
func newRow(src EventSource, date, ref time.Time) (Row, error) {
	rise, err := src.Next(ref, astronomy.Rising)
	if err != nil {
		return Row{}, err
	}
	set, err := src.Next(rise.Time, astronomy.Setting)
	if err != nil {
		return Row{}, err
	}
	nextRise, err := src.Next(set.Time, astronomy.Rising)
	if err != nil {
		return Row{}, err
	}
	daylight := set.Time.Sub(rise.Time).Hours()
	darkness := nextRise.Time.Sub(set.Time).Hours()
	return Row{
		Date:            date,
		Sunrise:         rise.Time,
		SunriseAzimuth:  rise.Azimuth,
		Sunset:          set.Time,
		SunsetAzimuth:   set.Azimuth,
		HoursOfDaylight: daylight,
		HoursOfDarkness: darkness,
		DaylightDelta:   math.Abs(darkness - daylight),
		SunriseDelta:    math.Abs(dueEast - rise.Azimuth),
		SunsetDelta:     math.Abs(dueWest - set.Azimuth),
	}, nil
}

// Table represents the rows computed for a contiguous range of days in
// ascending date order. A Table is not modified once built.
type Table struct {
	rows []Row
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i'th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns a copy of all of the rows.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// Values returns the values of the specified column in date order.
func (t *Table) Values(col Column) []float64 {
	vals := make([]float64, len(t.rows))
	for i, r := range t.rows {
		vals[i] = col.Value(r)
	}
	return vals
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Days returns the number of calendar days from the date of start through
// the date of end inclusive. end is converted to start's location before
// its date is taken. Zero is returned if end's date precedes start's.
func Days(start, end time.Time) int {
	from, to := dateOf(start), dateOf(end.In(start.Location()))
	if to.Before(from) {
		return 0
	}
	// Round to absorb daylight saving transitions.
	return int(math.Round(to.Sub(from).Hours()/24)) + 1
}

// BuildTable computes a row for every calendar date from the date of start
// through the date of end, inclusive. Each row's events are those that
// follow its reference instant, which is start advanced by whole days, so
// any time of day in start applies to every row. Any failure to compute an
// event aborts the build.
func BuildTable(src EventSource, start, end time.Time) (*Table, error) {
	n := Days(start, end)
	if n == 0 {
		return nil, fmt.Errorf("%w: %v is after %v", ErrInvalidRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	rows := make([]Row, n)
	for i := range rows {
		ref := start.AddDate(0, 0, i)
		row, err := newRow(src, dateOf(ref), ref)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", ref.Format(time.DateOnly), err)
		}
		rows[i] = row
	}
	return &Table{rows: rows}, nil
}
