// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package places maps postal codes to observer locations using the tab
// separated postal code dumps published by www.geonames.org.
package places

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/equilux/astronomy"
	"cloudeng.io/errors"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord is returned when a line of a postal code dump cannot
// be parsed.
var ErrInvalidRecord = errors.New("invalid postal code record")

// Place represents a single postal code entry.
type Place struct {
	Country   string  `yaml:"country" json:"country"`
	Postal    string  `yaml:"postal" json:"postal"`
	Name      string  `yaml:"name" json:"name"`
	Admin     string  `yaml:"admin" json:"admin"`
	Latitude  float64 `yaml:"latitude" json:"latitude" validate:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude" validate:"longitude"`
}

func (p Place) String() string {
	return fmt.Sprintf("%v %v (%v, %v): %.4f, %.4f", p.Admin, p.Postal, p.Name, p.Country, p.Latitude, p.Longitude)
}

// Observer returns an observer at the place using the refracted horizon
// and the specified time zone.
func (p Place) Observer(loc *time.Location) astronomy.Observer {
	return astronomy.Observer{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Horizon:   astronomy.RefractedHorizon,
		Location:  loc,
	}
}

// DB is an in-memory index of places keyed by admin and postal code.
type DB struct {
	places map[string]Place
}

// NewDB returns an empty DB.
func NewDB() *DB {
	return &DB{places: make(map[string]Place)}
}

var validate = validator.New()

const numFields = 12

func key(admin, postal string) string {
	return strings.ToUpper(strings.TrimSpace(admin)) + " " + strings.ToUpper(strings.TrimSpace(postal))
}

// Len returns the number of places in the DB.
func (db *DB) Len() int {
	return len(db.places)
}

// Lookup returns the place for the specified admin and postal codes,
// eg. NC 27601. GB and CA postal codes come in two formats, either the
// short form or long form:
//
//	GB: ENG BN91, or ENG "BN91 9AA".
//	CA: AB T0A, or AB "T0A 0A0".
//
// Codes are compared without regard to case.
func (db *DB) Lookup(admin, postal string) (Place, bool) {
	p, ok := db.places[key(admin, postal)]
	return p, ok
}

// Load adds the places contained in data, which must be in the geonames
// postal code format of 12 tab separated fields per line. Blank lines are
// ignored. Later entries for the same admin and postal code replace
// earlier ones.
func (db *DB) Load(data []byte) error {
	return db.LoadFrom(bytes.NewReader(data))
}

// LoadFile loads the places contained in the named file.
func (db *DB) LoadFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := db.LoadFrom(f); err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}
	return nil
}

// LoadFrom loads places from rd. The DB is unchanged if any line is
// invalid.
func (db *DB) LoadFrom(rd io.Reader) error {
	loaded := map[string]Place{}
	sc := bufio.NewScanner(rd)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if len(strings.TrimSpace(text)) == 0 {
			continue
		}
		p, err := parseRecord(text)
		if err != nil {
			return fmt.Errorf("line %v: %w", line, err)
		}
		loaded[key(p.Admin, p.Postal)] = p
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read postal codes: %w", err)
	}
	for k, p := range loaded {
		db.places[k] = p
	}
	return nil
}

func parseRecord(text string) (Place, error) {
	parts := strings.Split(text, "\t")
	if len(parts) != numFields {
		return Place{}, fmt.Errorf("%w: wrong number of fields (%v != %v): %q", ErrInvalidRecord, len(parts), numFields, text)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[9]), 64)
	if err != nil {
		return Place{}, fmt.Errorf("%w: latitude: %v", ErrInvalidRecord, err)
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(parts[10]), 64)
	if err != nil {
		return Place{}, fmt.Errorf("%w: longitude: %v", ErrInvalidRecord, err)
	}
	p := Place{
		Country:   parts[0],
		Postal:    parts[1],
		Name:      parts[2],
		Admin:     parts[4],
		Latitude:  lat,
		Longitude: long,
	}
	if err := validate.Struct(p); err != nil {
		return Place{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return p, nil
}
