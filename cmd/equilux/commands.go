// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/equilux/astronomy"
	"cloudeng.io/equilux/equilux"
	"cloudeng.io/logging/ctxlog"
)

type reportFlags struct {
	ObserverFlags
	cmdutil.LoggingFlags
	Year int `subcmd:"year,2017,'year to report on'"`
}

type tableFlags struct {
	ObserverFlags
	cmdutil.LoggingFlags
}

type searchFlags struct {
	ObserverFlags
	cmdutil.LoggingFlags
	Max bool `subcmd:"max,false,'select the maximum rather than the minimum value'"`
}

type equinoxFlags struct {
	ObserverFlags
	cmdutil.LoggingFlags
}

type commands struct {
	out io.Writer
	now func() time.Time
}

// session holds the state shared by a single command invocation.
type session struct {
	calc   *astronomy.Calculator
	loc    *time.Location
	format equilux.Format
	logger *cmdutil.Logger
}

func (s *session) Close() error {
	return s.logger.Close()
}

func (c *commands) newSession(ctx context.Context, of ObserverFlags, lf cmdutil.LoggingFlags) (context.Context, *session, error) {
	format, err := equilux.ParseFormat(of.Format)
	if err != nil {
		return ctx, nil, err
	}
	logger, err := lf.LoggingConfig().NewLogger()
	if err != nil {
		return ctx, nil, err
	}
	cfg, err := loadConfig(of)
	if err != nil {
		logger.Close()
		return ctx, nil, err
	}
	o, model, err := cfg.Observer()
	if err != nil {
		logger.Close()
		return ctx, nil, err
	}
	ctx = ctxlog.Context(ctx, logger.Logger)
	calc, err := astronomy.NewCalculator(o,
		astronomy.WithModel(model),
		astronomy.WithLogger(logger.Logger))
	if err != nil {
		logger.Close()
		return ctx, nil, err
	}
	ctxlog.Logger(ctx).Info("observer", "observer", o.String(), "model", model.Name())
	return ctx, &session{
		calc:   calc,
		loc:    o.TimeLocation(),
		format: format,
		logger: logger,
	}, nil
}

var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"2006-01-02 15:04",
	time.RFC3339,
}

// parseDate parses a command line date, dates without a time zone are
// interpreted as UTC.
func parseDate(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use one of %v", val, strings.Join(dateLayouts, ", "))
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func (c *commands) table(ctx context.Context, values any, args []string) error {
	fv := values.(*tableFlags)
	start, end, err := parseRange(args[0], args[1])
	if err != nil {
		return err
	}
	ctx, s, err := c.newSession(ctx, fv.ObserverFlags, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer s.Close()
	began := time.Now()
	tbl, err := equilux.BuildTable(s.calc, start, end)
	if err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info("table", "start", start, "end", end, "rows", tbl.Len(), "took", time.Since(began))
	return equilux.Encode(c.out, s.format, s.loc, tbl)
}

func (c *commands) search(ctx context.Context, values any, args []string) error {
	fv := values.(*searchFlags)
	col, err := equilux.ParseColumn(args[0])
	if err != nil {
		return err
	}
	start, end, err := parseRange(args[1], args[2])
	if err != nil {
		return err
	}
	mode := equilux.Min
	if fv.Max {
		mode = equilux.Max
	}
	ctx, s, err := c.newSession(ctx, fv.ObserverFlags, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer s.Close()
	row, err := equilux.Search(s.calc, start, end, col, mode)
	if err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info("search", "column", col.String(), "mode", mode.String(), "date", row.Date)
	return equilux.Encode(c.out, s.format, s.loc, row)
}

type seasonalEvent struct {
	Season string    `json:"season" yaml:"season"`
	Time   time.Time `json:"time" yaml:"time"`
}

type equinoxes struct {
	After    time.Time     `json:"after" yaml:"after"`
	Equinox  seasonalEvent `json:"equinox" yaml:"equinox"`
	Solstice seasonalEvent `json:"solstice" yaml:"solstice"`
}

func newSeasonalEvent(t time.Time, loc *time.Location) seasonalEvent {
	return seasonalEvent{
		Season: astronomy.SeasonOf(t).String(),
		Time:   t.In(loc),
	}
}

func (c *commands) equinox(ctx context.Context, values any, args []string) error {
	fv := values.(*equinoxFlags)
	after := c.now()
	if len(args) == 1 {
		var err error
		if after, err = parseDate(args[0]); err != nil {
			return err
		}
	}
	_, s, err := c.newSession(ctx, fv.ObserverFlags, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer s.Close()
	ev := equinoxes{
		After:    after.In(s.loc),
		Equinox:  newSeasonalEvent(astronomy.NextEquinox(after), s.loc),
		Solstice: newSeasonalEvent(astronomy.NextSolstice(after), s.loc),
	}
	if s.format != equilux.TextFormat {
		return equilux.Encode(c.out, s.format, nil, ev)
	}
	fmt.Fprintf(c.out, "equinox:  %v (start of %v)\n", ev.Equinox.Time.Format(displayTime), ev.Equinox.Season)
	fmt.Fprintf(c.out, "solstice: %v (start of %v)\n", ev.Solstice.Time.Format(displayTime), ev.Solstice.Season)
	return nil
}

const (
	displayTime = "2006-01-02 15:04:05 MST"
	displayDate = "01/02/06"
)

type halfYear struct {
	Name    string      `json:"name" yaml:"name"`
	Start   time.Time   `json:"start" yaml:"start"`
	End     time.Time   `json:"end" yaml:"end"`
	Equinox time.Time   `json:"equinox" yaml:"equinox"`
	Equilux equilux.Row `json:"equilux" yaml:"equilux"`
	DueEast equilux.Row `json:"due_east_sunrise" yaml:"due_east_sunrise"`
	DueWest equilux.Row `json:"due_west_sunset" yaml:"due_west_sunset"`
}

func newHalfYear(ctx context.Context, calc *astronomy.Calculator, loc *time.Location, name string, start, end time.Time) (halfYear, error) {
	logger := ctxlog.Logger(ctx).With("period", name)
	logger.Info("building table", "start", start, "end", end)
	tbl, err := equilux.BuildTable(calc, start, end)
	if err != nil {
		return halfYear{}, err
	}
	// The three searches share the one table.
	sel := func(col equilux.Column) (equilux.Row, error) {
		row, err := tbl.Select(col, equilux.Min)
		if err != nil {
			return row, err
		}
		logger.Debug("selected", "column", col.String(), "date", row.Date, "value", col.Value(row))
		return row.In(loc), nil
	}
	h := halfYear{
		Name:    name,
		Start:   start,
		End:     end,
		Equinox: astronomy.NextEquinox(start).In(loc),
	}
	if h.Equilux, err = sel(equilux.DaylightDelta); err != nil {
		return h, err
	}
	if h.DueEast, err = sel(equilux.SunriseDelta); err != nil {
		return h, err
	}
	if h.DueWest, err = sel(equilux.SunsetDelta); err != nil {
		return h, err
	}
	return h, nil
}

func (h halfYear) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s (%s-%s)\n", h.Name, h.Start.Format(time.DateOnly), h.End.Format(time.DateOnly))
	fmt.Fprintf(w, "equinox: %s\n", h.Equinox.Format(displayTime))
	fmt.Fprintf(w, "closest to equal daylight and darkness: %s %.4f hrs of daylight (%.4f hrs, %.2f sec)\n",
		h.Equilux.Sunrise.Format(displayDate), h.Equilux.HoursOfDaylight,
		h.Equilux.DaylightDelta, h.Equilux.DaylightDelta*60*60)
	fmt.Fprintf(w, "closest to due east sunrise:            %s (%f degrees)\n",
		h.DueEast.Sunrise.Format(displayDate), h.DueEast.SunriseAzimuth)
	fmt.Fprintf(w, "closest to due west sunset:             %s (%f degrees)\n",
		h.DueWest.Sunset.Format(displayDate), h.DueWest.SunsetAzimuth)
	fmt.Fprintln(w)
}

func (c *commands) report(ctx context.Context, values any, _ []string) error {
	fv := values.(*reportFlags)
	ctx, s, err := c.newSession(ctx, fv.ObserverFlags, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer s.Close()
	periods := []struct {
		name       string
		start, end time.Time
	}{
		{"winter-summer", date(fv.Year, time.January, 1), date(fv.Year, time.June, 30)},
		{"summer-winter", date(fv.Year, time.July, 1), date(fv.Year, time.December, 31)},
	}
	report := make([]halfYear, 0, len(periods))
	for _, p := range periods {
		h, err := newHalfYear(ctx, s.calc, s.loc, p.name, p.start, p.end)
		if err != nil {
			return err
		}
		report = append(report, h)
	}
	if s.format != equilux.TextFormat {
		return equilux.Encode(c.out, s.format, nil, report)
	}
	for _, h := range report {
		h.writeText(c.out)
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
