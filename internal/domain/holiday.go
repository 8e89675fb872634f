package domain

import "time"

// Holiday is a legal holiday on a local civil date.
type Holiday struct {
	Date string
	Name string
}

// HolidayCalendar is a read-only set of local dates. It is built once per
// batch run and never mutated afterwards.
type HolidayCalendar struct {
	dates map[string]string
}

// NewHolidayCalendar builds a calendar from holidays. Later duplicates win
// the name.
func NewHolidayCalendar(holidays []Holiday) HolidayCalendar {
	dates := make(map[string]string, len(holidays))
	for _, h := range holidays {
		dates[h.Date] = h.Name
	}
	return HolidayCalendar{dates: dates}
}

// IsHoliday reports whether the local civil date d is a holiday.
func (c HolidayCalendar) IsHoliday(d time.Time) bool {
	_, ok := c.dates[d.Format(DateLayout)]
	return ok
}
