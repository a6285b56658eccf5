// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy_test

import (
	"testing"
	"time"

	"cloudeng.io/equilux/astronomy"
)

func date(t time.Time) (int, time.Month, int) {
	return t.UTC().Date()
}

func TestSolstice(t *testing.T) {
	for _, tc := range []struct {
		when  time.Time
		year  int
		month time.Month
		day   int
	}{
		{astronomy.December(2024), 2024, 12, 21},
		{astronomy.March(1900), 1900, 3, 21},
		{astronomy.June(2022), 2022, 6, 21},
		{astronomy.September(2023), 2023, 9, 23},
		{astronomy.March(2017), 2017, 3, 20},
		{astronomy.September(2017), 2017, 9, 22},
	} {
		y, m, d := date(tc.when)
		if got, want := y, tc.year; got != want {
			t.Errorf("%v: got %v, want %v", tc.when, got, want)
		}
		if got, want := m, tc.month; got != want {
			t.Errorf("%v: got %v, want %v", tc.when, got, want)
		}
		if got, want := d, tc.day; got != want {
			t.Errorf("%v: got %v, want %v", tc.when, got, want)
		}
	}

	// The 2017 March equinox occurred at 10:29 UTC.
	march := astronomy.March(2017)
	if got, want := march.Hour(), 10; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNextEquinox(t *testing.T) {
	jan := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	jul := time.Date(2017, 7, 1, 0, 0, 0, 0, time.UTC)
	oct := time.Date(2017, 10, 1, 0, 0, 0, 0, time.UTC)

	if got, want := astronomy.NextEquinox(jan), astronomy.March(2017); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := astronomy.NextEquinox(jul), astronomy.September(2017); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := astronomy.NextEquinox(oct), astronomy.March(2018); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	// Strictly after.
	march := astronomy.March(2017)
	if got, want := astronomy.NextEquinox(march), astronomy.September(2017); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := astronomy.NextSolstice(jan), astronomy.June(2017); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := astronomy.NextSolstice(jul), astronomy.December(2017); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSeasons(t *testing.T) {
	for _, tc := range []struct {
		when time.Time
		want astronomy.Season
	}{
		{time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), astronomy.Winter},
		{time.Date(2017, 4, 1, 0, 0, 0, 0, time.UTC), astronomy.Spring},
		{time.Date(2017, 7, 4, 0, 0, 0, 0, time.UTC), astronomy.Summer},
		{time.Date(2017, 10, 31, 0, 0, 0, 0, time.UTC), astronomy.Autumn},
		{time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC), astronomy.Winter},
	} {
		if got, want := astronomy.SeasonOf(tc.when), tc.want; got != want {
			t.Errorf("%v: got %v, want %v", tc.when, got, want)
		}
	}
}
