package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/repository"
)

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return t, nil
}

// shiftWindow bounds the shifts that can put hours on local work dates in
// [from, to]: they end after endAfter and start before startBefore. A day
// around from and to covers any civil offset up to 14 hours.
func shiftWindow(from, to time.Time) (endAfter, startBefore time.Time) {
	return from.AddDate(0, 0, -1), to.AddDate(0, 0, 2)
}

func loadCalendar(ctx context.Context, holidays repository.HolidayRepo) (domain.HolidayCalendar, error) {
	list, err := holidays.List(ctx)
	if err != nil {
		return domain.HolidayCalendar{}, fmt.Errorf("loading holiday calendar: %w", err)
	}
	return domain.NewHolidayCalendar(list), nil
}
