package segment

import "time"

// Resolver converts between UTC instants and the wall clock of a fixed civil
// timezone with one seasonal transition pair per year. The extended offset
// applies from the last Sunday of March 01:00 UTC until the last Sunday of
// October 01:00 UTC.
type Resolver struct {
	Standard time.Duration
	Extended time.Duration
}

// NewResolver creates a Resolver from the standard and extended offsets.
func NewResolver(standard, extended time.Duration) Resolver {
	return Resolver{Standard: standard, Extended: extended}
}

// DefaultResolver is UTC+2 in winter and UTC+3 in summer.
func DefaultResolver() Resolver {
	return NewResolver(2*time.Hour, 3*time.Hour)
}

// OffsetFor returns the offset from UTC in force at instant.
func (r Resolver) OffsetFor(instant time.Time) time.Duration {
	u := instant.UTC()
	start := lastSundayAt0100(u.Year(), time.March)
	end := lastSundayAt0100(u.Year(), time.October)
	if !u.Before(start) && u.Before(end) {
		return r.Extended
	}
	return r.Standard
}

// LocalOf returns instant in the civil timezone. The result is the same
// instant; only its wall clock fields change.
func (r Resolver) LocalOf(instant time.Time) time.Time {
	off := r.OffsetFor(instant)
	return instant.In(time.FixedZone("", int(off/time.Second)))
}

// UTCOf reads the wall clock fields of local and converts them to UTC with
// the given offset.
func UTCOf(local time.Time, assumedOffset time.Duration) time.Time {
	return wallAsUTC(local).Add(-assumedOffset)
}

// UTCOfWall converts wall clock fields to UTC, resolving the offset from the
// rule itself. Wall times skipped or repeated by a transition resolve to the
// rule in force before the transition.
func (r Resolver) UTCOfWall(wall time.Time) time.Time {
	w := wallAsUTC(wall)
	if u := w.Add(-r.Extended); r.OffsetFor(u) == r.Extended {
		return u
	}
	return w.Add(-r.Standard)
}

// LocalDate returns the civil date of instant as YYYY-MM-DD.
func (r Resolver) LocalDate(instant time.Time) string {
	return r.LocalOf(instant).Format("2006-01-02")
}

func wallAsUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func lastSundayAt0100(year int, month time.Month) time.Time {
	last := time.Date(year, month+1, 0, 1, 0, 0, 0, time.UTC)
	return last.AddDate(0, 0, -int(last.Weekday()))
}
