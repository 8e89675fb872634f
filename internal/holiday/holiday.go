// Package holiday reads legal holiday calendars from YAML files.
package holiday

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a holiday calendar:
//
//	holidays:
//	  - date: "2025-01-01"
//	    name: New Year's Day
type File struct {
	Holidays []Entry `yaml:"holidays"`
}

type Entry struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// Parse decodes and validates a holiday calendar.
func Parse(r io.Reader) ([]domain.Holiday, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding holiday file: %w", err)
	}

	out := make([]domain.Holiday, 0, len(f.Holidays))
	seen := make(map[string]bool, len(f.Holidays))
	for i, e := range f.Holidays {
		d, err := time.Parse(domain.DateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %d: date %q: %w", i, e.Date, err)
		}
		date := d.Format(domain.DateLayout)
		if seen[date] {
			return nil, fmt.Errorf("holiday %d: duplicate date %s", i, date)
		}
		seen[date] = true
		out = append(out, domain.Holiday{Date: date, Name: e.Name})
	}
	return out, nil
}

// LoadFile parses the calendar at path.
func LoadFile(path string) ([]domain.Holiday, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening holiday file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
