// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package equilux

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/errors"
)

// ErrUnknownColumn is returned by ParseColumn for unrecognised names.
var ErrUnknownColumn = errors.New("unknown column")

// Column identifies one of the numeric columns of a Table.
type Column int

const (
	SunriseAzimuth Column = iota
	SunsetAzimuth
	HoursOfDaylight
	HoursOfDarkness
	DaylightDelta
	SunriseDelta
	SunsetDelta
)

var columnNames = []string{
	SunriseAzimuth:  "sunrise_az",
	SunsetAzimuth:   "sunset_az",
	HoursOfDaylight: "hours of daylight",
	HoursOfDarkness: "hours of darkness",
	DaylightDelta:   "daylight delta",
	SunriseDelta:    "sunrise delta",
	SunsetDelta:     "sunset delta",
}

// Columns returns all of the numeric columns.
func Columns() []Column {
	cols := make([]Column, len(columnNames))
	for i := range columnNames {
		cols[i] = Column(i)
	}
	return cols
}

func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return columnNames[c]
}

// Value returns the value of the column for the specified row.
func (c Column) Value(r Row) float64 {
	switch c {
	case SunriseAzimuth:
		return r.SunriseAzimuth
	case SunsetAzimuth:
		return r.SunsetAzimuth
	case HoursOfDaylight:
		return r.HoursOfDaylight
	case HoursOfDarkness:
		return r.HoursOfDarkness
	case DaylightDelta:
		return r.DaylightDelta
	case SunriseDelta:
		return r.SunriseDelta
	case SunsetDelta:
		return r.SunsetDelta
	}
	return 0
}

func normalizeColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

// ParseColumn parses a column name. Names may be given as they appear in
// the table header (eg. 'daylight delta') or with underscores or dashes
// in place of spaces (eg. daylight_delta, daylight-delta).
func ParseColumn(name string) (Column, error) {
	n := normalizeColumnName(name)
	for i, cn := range columnNames {
		if n == normalizeColumnName(cn) {
			return Column(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Mode determines whether a search selects the minimum or maximum value.
type Mode int

const (
	Min Mode = iota
	Max
)

func (m Mode) String() string {
	if m == Max {
		return "max"
	}
	return "min"
}

// IndexOfMin returns the index of the row with the smallest value in col.
// If several rows share that value the earliest is returned, -1 is
// returned for an empty table.
func (t *Table) IndexOfMin(col Column) int {
	return t.indexOf(col, func(a, b float64) bool { return a < b })
}

// IndexOfMax returns the index of the row with the largest value in col.
// If several rows share that value the earliest is returned, -1 is
// returned for an empty table.
func (t *Table) IndexOfMax(col Column) int {
	return t.indexOf(col, func(a, b float64) bool { return a > b })
}

func (t *Table) indexOf(col Column, better func(a, b float64) bool) int {
	idx := -1
	var best float64
	for i, r := range t.rows {
		v := col.Value(r)
		if idx < 0 || better(v, best) {
			idx, best = i, v
		}
	}
	return idx
}

// Select returns the row selected by mode for col.
func (t *Table) Select(col Column, mode Mode) (Row, error) {
	idx := t.IndexOfMin(col)
	if mode == Max {
		idx = t.IndexOfMax(col)
	}
	if idx < 0 {
		return Row{}, fmt.Errorf("%w: empty table", ErrInvalidRange)
	}
	return t.rows[idx], nil
}

// Search builds the table for start through end and returns the row that
// minimizes or maximizes col. Ties are resolved in favour of the earliest
// date.
func Search(src EventSource, start, end time.Time, col Column, mode Mode) (Row, error) {
	tbl, err := BuildTable(src, start, end)
	if err != nil {
		return Row{}, err
	}
	return tbl.Select(col, mode)
}

// Equilux returns the day with the most nearly equal daylight and darkness.
func Equilux(src EventSource, start, end time.Time) (Row, error) {
	return Search(src, start, end, DaylightDelta, Min)
}

// SunriseNearestDueEast returns the day whose sunrise is closest to due east.
func SunriseNearestDueEast(src EventSource, start, end time.Time) (Row, error) {
	return Search(src, start, end, SunriseDelta, Min)
}

// SunsetNearestDueWest returns the day whose sunset is closest to due west.
func SunsetNearestDueWest(src EventSource, start, end time.Time) (Row, error) {
	return Search(src, start, end, SunsetDelta, Min)
}
