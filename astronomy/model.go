// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"math"
	"slices"
	"time"

	"cloudeng.io/errors"
	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
)

// ErrUnknownModel is returned by NewModel for unrecognised model names.
var ErrUnknownModel = errors.New("unknown model")

// Model represents an ephemeris capable of computing the rising and setting
// times of the sun and its azimuth for an Observer.
type Model interface {
	// Name returns the name of the model as accepted by NewModel.
	Name() string
	// Supports returns true if the model can compute events for the
	// specified horizon.
	Supports(Horizon) bool
	// DayEvents returns the rising and setting instants of the solar day
	// associated with day. A zero time is returned for an event that does
	// not occur, eg. for polar day or night.
	DayEvents(day time.Time, o Observer) (rise, set time.Time)
	// Azimuth returns the compass bearing, in degrees in the range [0, 360),
	// of the sun at the specified instant.
	Azimuth(when time.Time, o Observer) float64
}

const (
	// SunCalcModel is the name of the model based on
	// github.com/sixdouglas/suncalc.
	SunCalcModel = "suncalc"
	// SunriseModel is the name of the model based on
	// github.com/nathan-osman/go-sunrise.
	SunriseModel = "sunrise"
)

// ModelNames returns the names of the supported models.
func ModelNames() []string {
	return []string{SunCalcModel, SunriseModel}
}

// NewModel returns the named model, the empty string selects the default
// (suncalc) model.
func NewModel(name string) (Model, error) {
	switch name {
	case SunCalcModel, "":
		return SunCalc{}, nil
	case SunriseModel:
		return Sunrise{}, nil
	}
	return nil, fmt.Errorf("%w: %q, must be one of %v", ErrUnknownModel, name, ModelNames())
}

// SunCalc implements Model using github.com/sixdouglas/suncalc.
type SunCalc struct{}

// suncalc names for the morning and evening events for each horizon.
var suncalcEvents = [][2]string{
	RefractedHorizon:     {"sunrise", "sunset"},
	CivilTwilight:        {"dawn", "dusk"},
	NauticalTwilight:     {"nauticalDawn", "nauticalDusk"},
	AstronomicalTwilight: {"nightEnd", "night"},
}

// Name implements Model.
func (SunCalc) Name() string { return SunCalcModel }

// Supports implements Model.
func (SunCalc) Supports(h Horizon) bool {
	return h.valid()
}

func lookup[K ~string, V any](m map[K]V, key string) (V, bool) {
	v, ok := m[K(key)]
	return v, ok
}

// DayEvents implements Model.
func (SunCalc) DayEvents(day time.Time, o Observer) (rise, set time.Time) {
	if !o.Horizon.valid() {
		return
	}
	names := suncalcEvents[o.Horizon]
	times := suncalc.GetTimes(day, o.Latitude, o.Longitude)
	if r, ok := lookup(times, names[0]); ok {
		rise = plausible(day, r.Value)
	}
	if s, ok := lookup(times, names[1]); ok {
		set = plausible(day, s.Value)
	}
	return
}

// Azimuth implements Model. suncalc measures azimuth in radians from
// south towards west, the returned value is a compass bearing in degrees.
func (SunCalc) Azimuth(when time.Time, o Observer) float64 {
	pos := suncalc.GetPosition(when, o.Latitude, o.Longitude)
	return compassDegrees(pos.Azimuth + math.Pi)
}

// Sunrise implements Model using github.com/nathan-osman/go-sunrise for
// rising and setting times and suncalc for azimuth. It only supports
// the RefractedHorizon.
type Sunrise struct{}

// Name implements Model.
func (Sunrise) Name() string { return SunriseModel }

// Supports implements Model.
func (Sunrise) Supports(h Horizon) bool {
	return h == RefractedHorizon
}

// DayEvents implements Model, the solar day is that of the UTC calendar
// date of day.
func (Sunrise) DayEvents(day time.Time, o Observer) (rise, set time.Time) {
	if o.Horizon != RefractedHorizon {
		return
	}
	d := day.UTC()
	rise, set = sunrise.SunriseSunset(o.Latitude, o.Longitude, d.Year(), d.Month(), d.Day())
	return plausible(day, rise), plausible(day, set)
}

// Azimuth implements Model.
func (Sunrise) Azimuth(when time.Time, o Observer) float64 {
	return SunCalc{}.Azimuth(when, o)
}

// maxEventOffset bounds how far from the requested day a returned event
// may lie; the libraries return arbitrary or NaN derived times when an
// event does not occur.
const maxEventOffset = 48 * time.Hour

func plausible(day, when time.Time) time.Time {
	if when.IsZero() {
		return time.Time{}
	}
	if d := when.Sub(day); d > maxEventOffset || d < -maxEventOffset {
		return time.Time{}
	}
	return when
}

func compassDegrees(radians float64) float64 {
	deg := math.Mod(radians*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SupportedModels returns the names of the models that support the
// specified horizon.
func SupportedModels(h Horizon) []string {
	var names []string
	for _, n := range ModelNames() {
		m, _ := NewModel(n)
		if m.Supports(h) {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names
}
