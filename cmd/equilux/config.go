// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/equilux/astronomy"
	"cloudeng.io/equilux/places"
	"cloudeng.io/errors"
	"github.com/kelseyhightower/envconfig"
)

// ObserverFlags represents the flags common to all commands that
// determine the observer and the output format. Latitude, longitude and
// pressure are strings so that an unset flag can be distinguished from
// a zero value.
type ObserverFlags struct {
	Config    string `subcmd:"config,,'YAML configuration file'"`
	Latitude  string `subcmd:"latitude,,'observer latitude in degrees, north is positive'"`
	Longitude string `subcmd:"longitude,,'observer longitude in degrees, east is positive'"`
	Pressure  string `subcmd:"pressure,,'atmospheric pressure in millibars, only 0 is supported'"`
	Horizon   string `subcmd:"horizon,,'horizon: refracted (-0:34), civil (-6), nautical (-12) or astronomical (-18)'"`
	TimeZone  string `subcmd:"timezone,,'IANA time zone used for dates and for displaying times'"`
	Model     string `subcmd:"model,,'ephemeris model: suncalc or sunrise'"`
	PostalDB  string `subcmd:"postal-db,,'geonames.org postal code file used to look up --postal'"`
	Postal    string `subcmd:"postal,,'admin and postal code of the observer, eg. NC/27601'"`
	Format    string `subcmd:"format,text,'output format: text, json or yaml'"`
}

// Config represents the observer configuration as read from a YAML file.
type Config struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Pressure  float64 `yaml:"pressure"`
	Horizon   string  `yaml:"horizon"`
	TimeZone  string  `yaml:"timezone"`
	Model     string  `yaml:"model"`
	PostalDB  string  `yaml:"postal_db"`
	Postal    string  `yaml:"postal"`
}

// envConfig represents the EQUILUX_ environment variables, empty values
// are ignored.
type envConfig struct {
	Latitude  string `envconfig:"LATITUDE"`
	Longitude string `envconfig:"LONGITUDE"`
	Pressure  string `envconfig:"PRESSURE"`
	Horizon   string `envconfig:"HORIZON"`
	TimeZone  string `envconfig:"TIMEZONE"`
	Model     string `envconfig:"MODEL"`
}

const envPrefix = "EQUILUX"

func defaultConfig() Config {
	return Config{
		Latitude:  astronomy.RaleighLatitude,
		Longitude: astronomy.RaleighLongitude,
		Horizon:   astronomy.RefractedHorizon.Angle(),
		TimeZone:  "America/New_York",
		Model:     astronomy.SunCalcModel,
	}
}

func setFloat(errs *errors.M, name string, val string, f *float64) {
	if len(val) == 0 {
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		errs.Append(fmt.Errorf("invalid %v: %q", name, val))
		return
	}
	*f = v
}

func setString(val string, s *string) {
	if len(val) > 0 {
		*s = val
	}
}

// loadConfig determines the configuration by layering, in increasing
// order of precedence, the built-in defaults, the YAML file named by
// --config, EQUILUX_ environment variables, the location of the postal
// code named by --postal and the remaining flags. All invalid settings
// are reported together.
func loadConfig(fl ObserverFlags) (Config, error) {
	cfg := defaultConfig()
	if len(fl.Config) > 0 {
		if err := cmdutil.ParseYAMLConfigFile(fl.Config, &cfg); err != nil {
			return Config{}, err
		}
	}
	var env envConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return Config{}, err
	}
	errs := &errors.M{}
	setFloat(errs, envPrefix+"_LATITUDE", env.Latitude, &cfg.Latitude)
	setFloat(errs, envPrefix+"_LONGITUDE", env.Longitude, &cfg.Longitude)
	setFloat(errs, envPrefix+"_PRESSURE", env.Pressure, &cfg.Pressure)
	setString(env.Horizon, &cfg.Horizon)
	setString(env.TimeZone, &cfg.TimeZone)
	setString(env.Model, &cfg.Model)

	setString(fl.PostalDB, &cfg.PostalDB)
	setString(fl.Postal, &cfg.Postal)
	if len(cfg.Postal) > 0 {
		errs.Append(cfg.lookupPostal())
	}

	setFloat(errs, "--latitude", fl.Latitude, &cfg.Latitude)
	setFloat(errs, "--longitude", fl.Longitude, &cfg.Longitude)
	setFloat(errs, "--pressure", fl.Pressure, &cfg.Pressure)
	setString(fl.Horizon, &cfg.Horizon)
	setString(fl.TimeZone, &cfg.TimeZone)
	setString(fl.Model, &cfg.Model)
	return cfg, errs.Err()
}

// splitPostal splits NC/27601 or "ENG AL3 8QE" into admin and postal
// codes.
func splitPostal(val string) (admin, postal string, ok bool) {
	val = strings.TrimSpace(val)
	if admin, postal, ok = strings.Cut(val, "/"); ok {
		return admin, postal, len(admin) > 0 && len(postal) > 0
	}
	admin, postal, ok = strings.Cut(val, " ")
	return admin, postal, ok && len(admin) > 0 && len(postal) > 0
}

func (c *Config) lookupPostal() error {
	if len(c.PostalDB) == 0 {
		return fmt.Errorf("a postal code database must be specified to look up %q", c.Postal)
	}
	admin, postal, ok := splitPostal(c.Postal)
	if !ok {
		return fmt.Errorf("invalid postal code %q: use <admin>/<postal>, eg. NC/27601", c.Postal)
	}
	db := places.NewDB()
	if err := db.LoadFile(c.PostalDB); err != nil {
		return err
	}
	p, ok := db.Lookup(admin, postal)
	if !ok {
		return fmt.Errorf("postal code %q not found in %v", c.Postal, c.PostalDB)
	}
	c.Latitude, c.Longitude = p.Latitude, p.Longitude
	return nil
}

// Observer returns the validated observer and the model described by
// the configuration.
func (c Config) Observer() (astronomy.Observer, astronomy.Model, error) {
	errs := &errors.M{}
	horizon, err := astronomy.ParseHorizon(c.Horizon)
	errs.Append(err)
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		errs.Append(fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err))
	}
	model, err := astronomy.NewModel(c.Model)
	errs.Append(err)
	if err := errs.Err(); err != nil {
		return astronomy.Observer{}, nil, err
	}
	o := astronomy.Observer{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Pressure:  c.Pressure,
		Horizon:   horizon,
		Location:  loc,
	}
	if err := o.Validate(); err != nil {
		return astronomy.Observer{}, nil, err
	}
	return o, model, nil
}
