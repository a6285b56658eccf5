// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package equilux_test

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"cloudeng.io/equilux/astronomy"
	"cloudeng.io/equilux/equilux"
)

var errInjected = errors.New("injected failure")

// synthetic is an EventSource with solar days centered on noon UTC, or
// on transit after midnight UTC if set, whose daylight and azimuths are
// defined per day, relative to start.
type synthetic struct {
	start    time.Time
	transit  time.Duration
	daylight func(day int) time.Duration
	azimuth  func(day int) float64
	fail     time.Time
	calls    int
}

func (s *synthetic) Next(ref time.Time, kind astronomy.EventKind) (astronomy.Event, error) {
	s.calls++
	if !s.fail.IsZero() && !ref.Before(s.fail) {
		return astronomy.Event{}, errInjected
	}
	y, m, d := ref.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	for ; ; day = day.AddDate(0, 0, 1) {
		idx := int(math.Round(day.Sub(s.start).Hours() / 24))
		noon := day.Add(12 * time.Hour)
		if s.transit != 0 {
			noon = day.Add(s.transit)
		}
		half := s.daylight(idx) / 2
		az := 90.0
		if s.azimuth != nil {
			az = s.azimuth(idx)
		}
		ev := astronomy.Event{Kind: kind, Time: noon.Add(-half), Azimuth: az}
		if kind == astronomy.Setting {
			ev.Time = noon.Add(half)
			ev.Azimuth = 360 - az
		}
		if ev.Time.After(ref) {
			return ev, nil
		}
	}
}

func constant(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

var jan1 = time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRowCount(t *testing.T) {
	src := &synthetic{start: jan1, daylight: constant(10 * time.Hour)}
	for _, tc := range []struct {
		start, end time.Time
		rows       int
	}{
		{jan1.Add(6 * time.Hour), time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC), 181},
		{jan1, time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC), 181},
		{jan1, time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC), 365},
		{jan1, jan1, 1},
		{jan1.Add(23 * time.Hour), jan1, 1},
	} {
		tbl, err := equilux.BuildTable(src, tc.start, tc.end)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := tbl.Len(), tc.rows; got != want {
			t.Errorf("%v..%v: got %v, want %v", tc.start, tc.end, got, want)
		}
		if got, want := equilux.Days(tc.start, tc.end), tc.rows; got != want {
			t.Errorf("%v..%v: got %v, want %v", tc.start, tc.end, got, want)
		}
		first, last := tbl.Row(0), tbl.Row(tbl.Len()-1)
		if got, want := first.Date, jan1; !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := last.Date.Format(time.DateOnly), tc.end.Format(time.DateOnly); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	_, err := equilux.BuildTable(src, jan1.AddDate(0, 0, 1), jan1)
	if !errors.Is(err, equilux.ErrInvalidRange) {
		t.Errorf("unexpected or missing error: %v", err)
	}
	_, err = equilux.Search(src, jan1.AddDate(0, 0, 1), jan1, equilux.DaylightDelta, equilux.Min)
	if !errors.Is(err, equilux.ErrInvalidRange) {
		t.Errorf("unexpected or missing error: %v", err)
	}
}

func TestDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip(err)
	}
	start := time.Date(2017, 3, 1, 0, 0, 0, 0, ny)
	end := time.Date(2017, 3, 31, 0, 0, 0, 0, ny)
	if got, want := equilux.Days(start, end), 31; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	src := &synthetic{start: start.UTC(), daylight: constant(12 * time.Hour)}
	tbl, err := equilux.BuildTable(src, start, end)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range tbl.Rows() {
		if got, want := r.Date.Day(), i+1; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := r.Date.Hour(), 0; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestRowValues(t *testing.T) {
	src := &synthetic{
		start:    jan1,
		daylight: func(day int) time.Duration { return 10*time.Hour + time.Duration(day)*time.Minute },
		azimuth:  func(day int) float64 { return 100 - float64(day) },
	}
	tbl, err := equilux.BuildTable(src, jan1, jan1.AddDate(0, 0, 9))
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range tbl.Rows() {
		daylight := 10 + float64(i)/60
		nextDaylight := 10 + float64(i+1)/60
		darkness := 24 - daylight/2 - nextDaylight/2
		if got, want := r.HoursOfDaylight, daylight; math.Abs(got-want) > 1e-9 {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.HoursOfDarkness, darkness; math.Abs(got-want) > 1e-9 {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.DaylightDelta, math.Abs(darkness-daylight); math.Abs(got-want) > 1e-9 {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.SunriseAzimuth, 100-float64(i); got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.SunriseDelta, math.Abs(90-(100-float64(i))); got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.SunsetDelta, math.Abs(270-(260+float64(i))); got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.Daylight(), 10*time.Hour+time.Duration(i)*time.Minute; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if !r.Sunrise.Before(r.Sunset) {
			t.Errorf("%v: sunrise %v is not before sunset %v", i, r.Sunrise, r.Sunset)
		}
	}
	if got, want := src.calls, 3*tbl.Len(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSunsetAfterMidnight(t *testing.T) {
	// West of Greenwich in summer the sun sets after midnight UTC, so a
	// midnight reference falls between the previous sunset and sunrise.
	src := &synthetic{
		start:    jan1,
		transit:  17*time.Hour + 15*time.Minute,
		daylight: constant(14*time.Hour + 24*time.Minute),
	}
	tbl, err := equilux.BuildTable(src, jan1, jan1.AddDate(0, 0, 9))
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range tbl.Rows() {
		if got, want := r.HoursOfDaylight, 14.4; math.Abs(got-want) > 1e-9 {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.HoursOfDarkness, 9.6; math.Abs(got-want) > 1e-9 {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := r.Sunrise.Day(), r.Date.Day(); got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if !r.Sunset.After(r.Sunrise) {
			t.Errorf("%v: sunset %v is not after sunrise %v", i, r.Sunset, r.Sunrise)
		}
	}
}

func TestBuildFailure(t *testing.T) {
	src := &synthetic{
		start:    jan1,
		daylight: constant(10 * time.Hour),
		fail:     jan1.AddDate(0, 0, 3),
	}
	tbl, err := equilux.BuildTable(src, jan1, jan1.AddDate(0, 0, 9))
	if !errors.Is(err, errInjected) {
		t.Errorf("unexpected or missing error: %v", err)
	}
	if tbl != nil {
		t.Errorf("expected no table")
	}
}

func TestIdempotent(t *testing.T) {
	src := &synthetic{
		start:    jan1,
		daylight: func(day int) time.Duration { return 9*time.Hour + time.Duration(day)*2*time.Minute },
	}
	a, err := equilux.BuildTable(src, jan1, jan1.AddDate(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := equilux.BuildTable(src, jan1, jan1.AddDate(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := b.Rows(), a.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
