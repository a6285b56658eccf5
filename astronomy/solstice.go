// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
)

// JDEToTime converts a Julian ephemeris day to a time in the UTC location.
// No correction is made for the difference between dynamical and
// universal time, which is of the order of a minute for current dates.
func JDEToTime(jde float64) time.Time {
	y, m, d := julian.JDToCalendar(jde)
	day, frac := math.Modf(d)
	midnight := time.Date(y, time.Month(m), int(day), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(frac * float64(24*time.Hour))).Round(time.Second)
}

// March returns the instant of the vernal/spring equinox.
func March(year int) time.Time {
	return JDEToTime(solstice.March(year))
}

// June returns the instant of the summer solstice.
func June(year int) time.Time {
	return JDEToTime(solstice.June(year))
}

// September returns the instant of the autumnal equinox.
func September(year int) time.Time {
	return JDEToTime(solstice.September(year))
}

// December returns the instant of the winter solstice.
func December(year int) time.Time {
	return JDEToTime(solstice.December(year))
}

func nextOf(t time.Time, events ...func(int) time.Time) time.Time {
	year := t.UTC().Year()
	for y := year - 1; y <= year+1; y++ {
		for _, fn := range events {
			if e := fn(y); e.After(t) {
				return e
			}
		}
	}
	return time.Time{}
}

// NextEquinox returns the first March or September equinox strictly
// after t.
func NextEquinox(t time.Time) time.Time {
	return nextOf(t, March, September)
}

// NextSolstice returns the first June or December solstice strictly
// after t.
func NextSolstice(t time.Time) time.Time {
	return nextOf(t, June, December)
}

// Season represents one of the four astronomical seasons.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	}
	return "unknown"
}

// SeasonOf returns the northern hemisphere astronomical season that
// contains t.
func SeasonOf(t time.Time) Season {
	year := t.UTC().Year()
	switch {
	case t.Before(March(year)):
		return Winter
	case t.Before(June(year)):
		return Spring
	case t.Before(September(year)):
		return Summer
	case t.Before(December(year)):
		return Autumn
	}
	return Winter
}
