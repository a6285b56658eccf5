// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package equilux

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"cloudeng.io/logging"
	"gopkg.in/yaml.v3"
)

// Format represents an output format for rows and tables.
type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// ParseFormat parses text, json or yaml, the empty string is treated
// as text.
func ParseFormat(val string) (Format, error) {
	switch f := Format(strings.ToLower(val)); f {
	case TextFormat, JSONFormat, YAMLFormat:
		return f, nil
	case "":
		return TextFormat, nil
	}
	return "", fmt.Errorf("unsupported format %q: must be one of text, json or yaml", val)
}

// Encode writes v, which will typically be a Row, []Row or *Table, to w
// in the requested format. Times are written in loc, which may be nil to
// leave them unchanged.
func Encode(w io.Writer, format Format, loc *time.Location, v any) error {
	switch t := v.(type) {
	case *Table:
		v = t.Rows()
	case Table:
		v = t.Rows()
	}
	if loc != nil {
		switch t := v.(type) {
		case Row:
			v = t.In(loc)
		case []Row:
			rows := make([]Row, len(t))
			for i, r := range t {
				rows[i] = r.In(loc)
			}
			v = rows
		}
	}
	switch format {
	case JSONFormat:
		return logging.NewJSONFormatter(w, "", "  ").Format(v)
	case YAMLFormat:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case TextFormat, "":
		switch t := v.(type) {
		case Row:
			return writeText(w, []Row{t})
		case []Row:
			return writeText(w, t)
		}
		_, err := fmt.Fprintf(w, "%v\n", v)
		return err
	}
	return fmt.Errorf("unsupported format %q", format)
}

// WriteText writes the table as aligned text columns with times in loc.
func (t *Table) WriteText(w io.Writer, loc *time.Location) error {
	return Encode(w, TextFormat, loc, t)
}

// In returns a copy of the row with all of its times in loc.
func (r Row) In(loc *time.Location) Row {
	y, m, d := r.Date.Date()
	r.Date = time.Date(y, m, d, 0, 0, 0, 0, loc)
	r.Sunrise = r.Sunrise.In(loc)
	r.Sunset = r.Sunset.In(loc)
	return r
}

const textTimeFormat = "2006-01-02 15:04:05 MST"

func writeText(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "date\tsunrise\tsunrise_az\tsunset\tsunset_az\t%v\t%v\t%v\t%v\t%v\t\n",
		HoursOfDaylight, HoursOfDarkness, DaylightDelta, SunriseDelta, SunsetDelta)
	for _, r := range rows {
		fmt.Fprintf(tw, "%v\t%v\t%.6f\t%v\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t\n",
			r.Date.Format(time.DateOnly),
			r.Sunrise.Format(textTimeFormat),
			r.SunriseAzimuth,
			r.Sunset.Format(textTimeFormat),
			r.SunsetAzimuth,
			r.HoursOfDaylight,
			r.HoursOfDarkness,
			r.DaylightDelta,
			r.SunriseDelta,
			r.SunsetDelta)
	}
	return tw.Flush()
}
