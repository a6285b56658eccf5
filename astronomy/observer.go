// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package astronomy provides the observer, rise/set and equinox
// calculations used to tabulate daylight and darkness for a fixed
// location. The underlying solar position and rise/set computations are
// provided by third party ephemeris packages, see Model.
package astronomy

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/errors"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidObserver is returned (wrapped) when an Observer fails
	// validation.
	ErrInvalidObserver = errors.New("invalid observer")
	// ErrUnsupportedHorizon is returned when a Model cannot compute
	// events for the requested Horizon.
	ErrUnsupportedHorizon = errors.New("unsupported horizon")
)

// Horizon represents the altitude of the sun at which a rising or setting
// event is deemed to occur.
type Horizon int

const (
	// RefractedHorizon places the upper limb of the sun 34 arc minutes
	// below the horizon, the USNO standard for sea level refraction.
	RefractedHorizon Horizon = iota
	// CivilTwilight places the center of the sun 6 degrees below the horizon.
	CivilTwilight
	// NauticalTwilight places the center of the sun 12 degrees below the horizon.
	NauticalTwilight
	// AstronomicalTwilight places the center of the sun 18 degrees below
	// the horizon.
	AstronomicalTwilight
)

var horizonNames = []struct {
	name    string
	dms     string
	degrees float64
}{
	{"refracted", "-0:34", -34.0 / 60},
	{"civil", "-6", -6},
	{"nautical", "-12", -12},
	{"astronomical", "-18", -18},
}

func (h Horizon) valid() bool {
	return h >= RefractedHorizon && h <= AstronomicalTwilight
}

// String returns the name of the horizon.
func (h Horizon) String() string {
	if !h.valid() {
		return fmt.Sprintf("Horizon(%d)", int(h))
	}
	return horizonNames[h].name
}

// Angle returns the horizon in degrees:minutes form, eg. -0:34.
func (h Horizon) Angle() string {
	if !h.valid() {
		return "?"
	}
	return horizonNames[h].dms
}

// Degrees returns the horizon as a signed angle in decimal degrees.
// Note that for RefractedHorizon the angle refers to the upper limb of
// the sun rather than its center.
func (h Horizon) Degrees() float64 {
	if !h.valid() {
		return 0
	}
	return horizonNames[h].degrees
}

// ParseHorizon parses a horizon specified either by name (refracted,
// civil, nautical, astronomical) or by angle (-0:34, -6, -12, -18).
// The empty string is interpreted as RefractedHorizon.
func ParseHorizon(val string) (Horizon, error) {
	val = strings.TrimSpace(strings.ToLower(val))
	if len(val) == 0 {
		return RefractedHorizon, nil
	}
	for i, hn := range horizonNames {
		if val == hn.name || val == hn.dms || val == hn.dms+":00" {
			return Horizon(i), nil
		}
	}
	return RefractedHorizon, fmt.Errorf("%w: %q", ErrUnsupportedHorizon, val)
}

// Observer represents a fixed geographic viewpoint together with the
// atmospheric assumptions used for all event computations. Observers
// are values and are never modified by the calculations that use them.
type Observer struct {
	// Latitude in degrees, north positive.
	Latitude float64 `validate:"latitude"`
	// Longitude in degrees, east positive.
	Longitude float64 `validate:"longitude"`
	// Pressure in millibars, must be zero since none of the supported
	// models applies a pressure dependent refraction correction.
	Pressure float64 `validate:"eq=0"`
	Horizon  Horizon `validate:"-"`
	// Location is used for calendar dates and for displaying times, nil
	// is treated as UTC.
	Location *time.Location `validate:"-"`
}

var validate = validator.New()

// Validate returns an error, wrapping ErrInvalidObserver, if the observer
// is not usable.
func (o Observer) Validate() error {
	errs := &errors.M{}
	if err := validate.Struct(o); err != nil {
		errs.Append(err)
	}
	if !o.Horizon.valid() {
		errs.Append(fmt.Errorf("%w: %v", ErrUnsupportedHorizon, o.Horizon))
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidObserver, err)
	}
	return nil
}

// TimeLocation returns the observer's location, defaulting to UTC.
func (o Observer) TimeLocation() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o Observer) String() string {
	return fmt.Sprintf("%.4f, %.4f (horizon %v, %v)", o.Latitude, o.Longitude, o.Horizon.Angle(), o.TimeLocation())
}

// RaleighLatitude and RaleighLongitude are the coordinates of the
// default observer.
const (
	RaleighLatitude  = 33.78
	RaleighLongitude = -78.64
)

// Raleigh returns the default observer: Raleigh, NC at sea level with the
// standard refracted horizon and no pressure correction. The
// America/New_York time zone is used if it can be loaded, UTC otherwise.
func Raleigh() Observer {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return Observer{
		Latitude:  RaleighLatitude,
		Longitude: RaleighLongitude,
		Horizon:   RefractedHorizon,
		Location:  loc,
	}
}
