package segment

import (
	"testing"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sub(start, end string) domain.SubInterval {
	return domain.SubInterval{Start: utc(start), End: utc(end)}
}

func TestClassify_Precedence(t *testing.T) {
	r := DefaultResolver()
	cal := domain.NewHolidayCalendar([]domain.Holiday{
		{Date: "2025-01-01", Name: "New Year"},
		{Date: "2025-01-12", Name: "Sunday holiday"},
	})

	tests := []struct {
		name string
		sub  domain.SubInterval
		want domain.Category
	}{
		{"holiday weekday", sub("2025-01-01T08:00:00Z", "2025-01-01T10:00:00Z"), domain.CategoryHoliday},
		{"holiday beats sunday", sub("2025-01-12T08:00:00Z", "2025-01-12T10:00:00Z"), domain.CategoryHoliday},
		{"holiday beats night", sub("2025-01-01T20:00:00Z", "2025-01-01T21:00:00Z"), domain.CategoryHoliday},
		{"sunday", sub("2025-01-05T08:00:00Z", "2025-01-05T10:00:00Z"), domain.CategorySunday},
		{"saturday beats night", sub("2025-01-11T21:00:00Z", "2025-01-11T22:00:00Z"), domain.CategorySaturday},
		{"weekday late night", sub("2025-01-14T20:00:00Z", "2025-01-14T22:00:00Z"), domain.CategoryNight},
		{"weekday early morning", sub("2025-01-14T02:00:00Z", "2025-01-14T04:00:00Z"), domain.CategoryNight},
		{"weekday day", sub("2025-01-14T08:00:00Z", "2025-01-14T12:00:00Z"), domain.CategoryRegular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(r, tt.sub, cal))
		})
	}
}

func TestClassify_UsesMidpointNotStart(t *testing.T) {
	r := DefaultResolver()

	// Starts exactly at local 22:00.
	atBoundary := sub("2025-01-14T20:00:00Z", "2025-01-14T21:00:00Z")
	assert.Equal(t, domain.CategoryNight, Classify(r, atBoundary, domain.HolidayCalendar{}))

	// Ends exactly at local 22:00.
	beforeBoundary := sub("2025-01-14T19:00:00Z", "2025-01-14T20:00:00Z")
	assert.Equal(t, domain.CategoryRegular, Classify(r, beforeBoundary, domain.HolidayCalendar{}))
}

func TestClassify_SundayAfterLocalMidnight(t *testing.T) {
	r := DefaultResolver()
	// Saturday 23:30 UTC is Sunday 01:30 local.
	s := sub("2025-01-11T23:00:00Z", "2025-01-12T00:00:00Z")
	assert.Equal(t, domain.CategorySunday, Classify(r, s, domain.HolidayCalendar{}))
}
