package segment

import (
	"sort"

	"github.com/alexanderramin/timecard/internal/domain"
)

// dayTally accumulates whole hundredths of an hour so that the order in
// which slices arrive never changes the result.
type dayTally struct {
	gross      int64
	categories map[domain.Category]int64
}

// Aggregator merges classified slices into per-(subject, work date) totals.
// It is not safe for concurrent use; build one per worker and Merge.
type Aggregator struct {
	resolver Resolver
	days     map[domain.DayKey]*dayTally
}

// NewAggregator creates an empty Aggregator resolving work dates with r.
func NewAggregator(r Resolver) *Aggregator {
	return &Aggregator{resolver: r, days: make(map[domain.DayKey]*dayTally)}
}

// WorkDate returns the local date a slice is booked on.
func (a *Aggregator) WorkDate(sub domain.SubInterval) string {
	if sub.WorkDate != "" {
		return sub.WorkDate
	}
	return a.resolver.LocalDate(sub.Midpoint())
}

// Add books one slice.
func (a *Aggregator) Add(sub domain.SubInterval) {
	key := domain.DayKey{SubjectID: sub.SubjectID, WorkDate: a.WorkDate(sub)}
	h := domain.HundredthsOf(sub.Duration())
	d := a.day(key)
	d.gross += h
	d.categories[sub.Category] += h
}

// Merge folds other into a.
func (a *Aggregator) Merge(other *Aggregator) {
	for key, src := range other.days {
		d := a.day(key)
		d.gross += src.gross
		for c, h := range src.categories {
			d.categories[c] += h
		}
	}
}

// Totals returns pre-break totals ordered by subject then date.
func (a *Aggregator) Totals() []domain.DailyTotals {
	keys := make([]domain.DayKey, 0, len(a.days))
	for k := range a.days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].SubjectID != keys[j].SubjectID {
			return keys[i].SubjectID < keys[j].SubjectID
		}
		return keys[i].WorkDate < keys[j].WorkDate
	})

	out := make([]domain.DailyTotals, 0, len(keys))
	for _, k := range keys {
		d := a.days[k]
		t := domain.DailyTotals{
			SubjectID:  k.SubjectID,
			WorkDate:   k.WorkDate,
			GrossHours: float64(d.gross) / 100,
			State:      domain.StateComputed,
		}
		for c, h := range d.categories {
			t.Hours.Set(c, float64(h)/100)
		}
		out = append(out, t)
	}
	return out
}

func (a *Aggregator) day(key domain.DayKey) *dayTally {
	d, ok := a.days[key]
	if !ok {
		d = &dayTally{categories: make(map[domain.Category]int64)}
		a.days[key] = d
	}
	return d
}
