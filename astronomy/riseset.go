// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloudeng.io/errors"
)

// ErrNoEvent is returned when no rising or setting event can be found
// after the requested time, typically at polar latitudes.
var ErrNoEvent = errors.New("no rising or setting event found")

// EventKind distinguishes rising from setting events.
type EventKind int

const (
	Rising EventKind = iota
	Setting
)

func (k EventKind) String() string {
	if k == Rising {
		return "rising"
	}
	return "setting"
}

// Event represents a rising or setting of the sun.
type Event struct {
	Kind EventKind
	// Time of the event in the observer's location.
	Time time.Time
	// Azimuth of the sun at Time as a compass bearing in degrees.
	Azimuth float64
}

func (e Event) String() string {
	return fmt.Sprintf("%v: %v (%.4f°)", e.Kind, e.Time.Format(time.RFC3339), e.Azimuth)
}

// Option represents an option to NewCalculator.
type Option func(o *options)

type options struct {
	model  Model
	logger *slog.Logger
}

// WithModel specifies the Model to use, the default is SunCalc.
func WithModel(m Model) Option {
	return func(o *options) {
		o.model = m
	}
}

// WithLogger specifies a logger for debug output, the default is to
// discard all log output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Calculator computes rising and setting events for a single Observer.
// A Calculator is immutable once created and may be used concurrently.
type Calculator struct {
	observer Observer
	model    Model
	logger   *slog.Logger
}

// NewCalculator returns a Calculator for the specified observer. The
// observer is validated and must use a horizon supported by the
// selected model.
func NewCalculator(o Observer, opts ...Option) (*Calculator, error) {
	var options options
	for _, fn := range opts {
		fn(&options)
	}
	if options.model == nil {
		options.model = SunCalc{}
	}
	if options.logger == nil {
		options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !options.model.Supports(o.Horizon) {
		return nil, fmt.Errorf("%w: model %v does not support the %v horizon, use one of %v",
			ErrUnsupportedHorizon, options.model.Name(), o.Horizon, SupportedModels(o.Horizon))
	}
	return &Calculator{
		observer: o,
		model:    options.model,
		logger:   options.logger.With("model", options.model.Name()),
	}, nil
}

// Observer returns the calculator's observer.
func (c *Calculator) Observer() Observer {
	return c.observer
}

// Model returns the calculator's model.
func (c *Calculator) Model() Model {
	return c.model
}

// candidateDays are the offsets, in days, from the reference time of the
// solar days searched for the next event. The models associate a time
// with the nearest solar day or with its UTC date, either of which may
// precede the reference time, hence the search starts a day early.
var candidateDays = []int{-1, 0, 1, 2}

// Next returns the first event of the requested kind that occurs strictly
// after ref together with the sun's azimuth at that event. The azimuth is
// computed at the time of the event, not at ref.
func (c *Calculator) Next(ref time.Time, kind EventKind) (Event, error) {
	var next time.Time
	for _, offset := range candidateDays {
		rise, set := c.model.DayEvents(ref.Add(time.Duration(offset)*24*time.Hour), c.observer)
		when := rise
		if kind == Setting {
			when = set
		}
		if when.IsZero() || !when.After(ref) {
			continue
		}
		if next.IsZero() || when.Before(next) {
			next = when
		}
	}
	if next.IsZero() {
		return Event{}, fmt.Errorf("%w: %v after %v at %v", ErrNoEvent, kind, ref.Format(time.RFC3339), c.observer)
	}
	ev := Event{
		Kind:    kind,
		Time:    next.In(c.observer.TimeLocation()),
		Azimuth: c.model.Azimuth(next, c.observer),
	}
	c.logger.Debug("event", "ref", ref, "kind", kind.String(), "time", ev.Time, "azimuth", ev.Azimuth)
	return ev, nil
}

// Sunrise returns the next rising of the sun strictly after ref.
func (c *Calculator) Sunrise(ref time.Time) (Event, error) {
	return c.Next(ref, Rising)
}

// Sunset returns the next setting of the sun strictly after ref.
func (c *Calculator) Sunset(ref time.Time) (Event, error) {
	return c.Next(ref, Setting)
}

// SolarNoon returns the midpoint of the first sunrise after ref and the
// sunset that follows it. For RefractedHorizon this approximates the
// sun's transit to within the asymmetry of the day's rise and set. Since
// the events use the observer's horizon, for the twilight horizons the
// value is the midpoint of dawn and dusk.
func (c *Calculator) SolarNoon(ref time.Time) (time.Time, error) {
	rise, err := c.Next(ref, Rising)
	if err != nil {
		return time.Time{}, err
	}
	set, err := c.Next(rise.Time, Setting)
	if err != nil {
		return time.Time{}, err
	}
	return rise.Time.Add(set.Time.Sub(rise.Time) / 2), nil
}
