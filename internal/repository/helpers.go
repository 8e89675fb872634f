package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a UTC string for storage, or
// SQL NULL for nil.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// hourColumns lists the per-category columns in domain.Categories order.
const hourColumns = `regular_h, night_h, saturday_h, sunday_h, holiday_h,
	driving_h, passenger_h, equipment_h, leave_h, medical_leave_h`

// hourArgs returns bucket values in hourColumns order.
func hourArgs(h domain.CategoryHours) []any {
	args := make([]any, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		args = append(args, h.Get(c))
	}
	return args
}

// hourDests returns scan destinations in hourColumns order.
func hourDests(h *domain.CategoryHours) []any {
	return []any{
		&h.Regular, &h.Night, &h.Saturday, &h.Sunday, &h.Holiday,
		&h.Driving, &h.Passenger, &h.Equipment, &h.Leave, &h.MedicalLeave,
	}
}
