package segment

import (
	"iter"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Local wall clock hours at which category eligibility can change.
const (
	nightEndHour   = 6
	nightStartHour = 22
)

// NextBoundary returns the first critical boundary (local 06:00, 22:00 or
// next midnight) strictly after current.
func (r Resolver) NextBoundary(current time.Time) time.Time {
	local := r.LocalOf(current)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	candidates := [...]time.Time{
		day.Add(nightEndHour * time.Hour),
		day.Add(nightStartHour * time.Hour),
		day.AddDate(0, 0, 1),
	}
	for _, wall := range candidates {
		if b := r.UTCOfWall(wall); b.After(current) {
			return b
		}
	}
	return r.UTCOfWall(day.AddDate(0, 0, 1).Add(nightEndHour * time.Hour))
}

// Walk yields the slices of [start, end) cut at every critical boundary.
// The sequence is finite and can be ranged over any number of times.
func Walk(r Resolver, start, end time.Time) iter.Seq[domain.SubInterval] {
	from, to := start.UTC(), end.UTC()
	return func(yield func(domain.SubInterval) bool) {
		current := from
		for current.Before(to) {
			next := r.NextBoundary(current)
			if next.After(to) {
				next = to
			}
			if !yield(domain.SubInterval{Start: current, End: next}) {
				return
			}
			current = next
		}
	}
}

// SegmentShift yields the classified slices of a closed shift. Special
// activities bypass the walk and come back as one slice pinned to the local
// date of the shift start. Unknown activity tags are walked like untagged
// shifts.
func SegmentShift(r Resolver, cal domain.HolidayCalendar, s *domain.ShiftInterval) iter.Seq[domain.SubInterval] {
	return func(yield func(domain.SubInterval) bool) {
		if s.End == nil {
			return
		}
		if act, _ := domain.ParseActivity(s.Activity); act != domain.ActivityNone {
			yield(domain.SubInterval{
				ShiftID:   s.ID,
				SubjectID: s.SubjectID,
				Start:     s.Start.UTC(),
				End:       s.End.UTC(),
				Category:  act.Category(),
				WorkDate:  r.LocalDate(s.Start),
			})
			return
		}
		for sub := range Walk(r, s.Start, *s.End) {
			sub.ShiftID = s.ID
			sub.SubjectID = s.SubjectID
			sub.Category = Classify(r, sub, cal)
			if !yield(sub) {
				return
			}
		}
	}
}
