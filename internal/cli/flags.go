package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/segment"
	"github.com/spf13/pflag"
)

// categoryValue is a pflag.Value accepting any payroll bucket name.
type categoryValue struct {
	c *domain.Category
}

var _ pflag.Value = categoryValue{}

func newCategoryValue(c *domain.Category) categoryValue {
	return categoryValue{c: c}
}

func (v categoryValue) String() string {
	if v.c == nil {
		return ""
	}
	return string(*v.c)
}

func (v categoryValue) Set(s string) error {
	c, ok := domain.ParseCategory(s)
	if !ok {
		names := make([]string, len(domain.Categories))
		for i, c := range domain.Categories {
			names[i] = string(c)
		}
		return fmt.Errorf("unknown category %q (one of %s)", s, strings.Join(names, ", "))
	}
	*v.c = c
	return nil
}

func (categoryValue) Type() string { return "category" }

// dateValue is a pflag.Value holding a YYYY-MM-DD date.
type dateValue struct {
	s *string
}

var _ pflag.Value = dateValue{}

func newDateValue(s *string) dateValue {
	return dateValue{s: s}
}

func (v dateValue) String() string {
	if v.s == nil {
		return ""
	}
	return *v.s
}

func (v dateValue) Set(s string) error {
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	*v.s = s
	return nil
}

func (dateValue) Type() string { return "date" }

var wallLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02 15:04:05"}

// parseInstant reads an RFC3339 instant or a local wall-clock time. Empty
// input means now.
func parseInstant(s string, r segment.Resolver, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "now" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range wallLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return r.UTCOfWall(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q: use RFC3339 or \"YYYY-MM-DD HH:MM\" local time", s)
}

// dayStartUTC is the UTC instant of local midnight starting date.
func dayStartUTC(date string, r segment.Resolver) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("use YYYY-MM-DD format")
	}
	return r.UTCOfWall(d), nil
}
