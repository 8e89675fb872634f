package segment

import (
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Classify assigns a slice its category from the local date, weekday and
// hour of its midpoint. Precedence: holiday, sunday, saturday, night,
// regular.
func Classify(r Resolver, sub domain.SubInterval, cal domain.HolidayCalendar) domain.Category {
	mid := r.LocalOf(sub.Midpoint())

	switch {
	case cal.IsHoliday(mid):
		return domain.CategoryHoliday
	case mid.Weekday() == time.Sunday:
		return domain.CategorySunday
	case mid.Weekday() == time.Saturday:
		return domain.CategorySaturday
	case mid.Hour() >= nightStartHour || mid.Hour() < nightEndHour:
		return domain.CategoryNight
	default:
		return domain.CategoryRegular
	}
}
