// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package places_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloudeng.io/equilux/places"
)

const sampleData = `
US	27601	Raleigh	North Carolina	NC	Wake	183			35.7721	-78.6386	4
US	99553	Akutan	Alaska	AK	Aleutians East	013			54.143	-165.7854	1
GB	BN91	Worthing	England	ENG					50.818	-0.3754	
GB	AL3 8QE	Slip End	England	ENG	Bedfordshire		Central Bedfordshire	E06000056	51.8479	-0.4474	6
`

func loadSample(t *testing.T) *places.DB {
	t.Helper()
	db := places.NewDB()
	if err := db.Load([]byte(sampleData)); err != nil {
		t.Fatalf("failed to load sample data: %v", err)
	}
	return db
}

func TestLookup(t *testing.T) {
	db := loadSample(t)
	if got, want := db.Len(), 4; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	for _, tc := range []struct {
		admin, postal string
		name          string
		lat, long     float64
	}{
		{"NC", "27601", "Raleigh", 35.7721, -78.6386},
		{"AK", "99553", "Akutan", 54.143, -165.7854},
		{"ENG", "BN91", "Worthing", 50.818, -0.3754},
		{"Eng", "bn91", "Worthing", 50.818, -0.3754},
		{"ENG", "AL3 8QE", "Slip End", 51.8479, -0.4474},
	} {
		p, ok := db.Lookup(tc.admin, tc.postal)
		if !ok {
			t.Errorf("%v %v: not found", tc.admin, tc.postal)
			continue
		}
		if got, want := p.Name, tc.name; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := p.Latitude, tc.lat; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := p.Longitude, tc.long; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if _, ok := db.Lookup("ENG", "AL3 8QF"); ok {
		t.Errorf("expected not to find AL3 8QF")
	}
}

func TestObserver(t *testing.T) {
	db := loadSample(t)
	p, _ := db.Lookup("NC", "27601")
	o := p.Observer(time.UTC)
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if got, want := o.Latitude, 35.7721; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInvalidRecords(t *testing.T) {
	for _, data := range []string{
		"US\t27601\tRaleigh\n",
		"US\t27601\tRaleigh\tNorth Carolina\tNC\tWake\t183\t\t\tnorth\t-78.6386\t4\n",
		"US\t27601\tRaleigh\tNorth Carolina\tNC\tWake\t183\t\t\t35.7721\twest\t4\n",
		"US\t27601\tRaleigh\tNorth Carolina\tNC\tWake\t183\t\t\t135.7721\t-78.6386\t4\n",
	} {
		db := places.NewDB()
		if err := db.Load([]byte(sampleData + data)); !errors.Is(err, places.ErrInvalidRecord) {
			t.Errorf("%q: unexpected or missing error: %v", data, err)
		}
		if got, want := db.Len(), 0; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "US.txt")
	if err := os.WriteFile(name, []byte(sampleData), 0600); err != nil {
		t.Fatal(err)
	}
	db := places.NewDB()
	if err := db.LoadFile(name); err != nil {
		t.Fatal(err)
	}
	if _, ok := db.Lookup("AK", "99553"); !ok {
		t.Errorf("expected to find AK 99553")
	}
	if err := db.LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("expected an error")
	}
}
