package domain

import (
	"math"
	"time"
)

// DateLayout is the civil date format used for work dates and holidays.
const DateLayout = "2006-01-02"

// Tolerance is the largest gap, in hours, allowed between the summed
// categories of a computed day and its clock total.
const Tolerance = 0.5

// DayKey identifies one subject's local work date.
type DayKey struct {
	SubjectID string
	WorkDate  string
}

func (k DayKey) String() string {
	return k.SubjectID + "@" + k.WorkDate
}

// CategoryHours holds hours per bucket.
type CategoryHours struct {
	Regular      float64
	Night        float64
	Saturday     float64
	Sunday       float64
	Holiday      float64
	Driving      float64
	Passenger    float64
	Equipment    float64
	Leave        float64
	MedicalLeave float64
}

func (h *CategoryHours) ptr(c Category) *float64 {
	switch c {
	case CategoryRegular:
		return &h.Regular
	case CategoryNight:
		return &h.Night
	case CategorySaturday:
		return &h.Saturday
	case CategorySunday:
		return &h.Sunday
	case CategoryHoliday:
		return &h.Holiday
	case CategoryDriving:
		return &h.Driving
	case CategoryPassenger:
		return &h.Passenger
	case CategoryEquipment:
		return &h.Equipment
	case CategoryLeave:
		return &h.Leave
	case CategoryMedicalLeave:
		return &h.MedicalLeave
	}
	return nil
}

// Get returns the hours booked in c, zero for an unknown category.
func (h CategoryHours) Get(c Category) float64 {
	if p := h.ptr(c); p != nil {
		return *p
	}
	return 0
}

// Set overwrites the hours booked in c. Unknown categories are ignored.
func (h *CategoryHours) Set(c Category, v float64) {
	if p := h.ptr(c); p != nil {
		*p = v
	}
}

// Sum adds up every bucket.
func (h CategoryHours) Sum() float64 {
	var total float64
	for _, c := range Categories {
		total += h.Get(c)
	}
	return RoundHours(total)
}

// SumExcept adds up every bucket not listed in skip.
func (h CategoryHours) SumExcept(skip ...Category) float64 {
	var total float64
outer:
	for _, c := range Categories {
		for _, s := range skip {
			if c == s {
				continue outer
			}
		}
		total += h.Get(c)
	}
	return RoundHours(total)
}

// DayGroup is regular+saturday+sunday+holiday.
func (h CategoryHours) DayGroup() float64 {
	return RoundHours(h.Regular + h.Saturday + h.Sunday + h.Holiday)
}

// DailyTotals is the per-day allocation produced by the forward pipeline or
// set by an administrator.
type DailyTotals struct {
	SubjectID string
	WorkDate  string
	Hours     CategoryHours
	// GrossHours is the clock-derived time attributed to the day before any
	// break deduction.
	GrossHours float64
	// BreakHours is what the break rules actually removed.
	BreakHours float64
	State      TotalsState
	Version    int
	UpdatedAt  time.Time
}

// Key returns the (subject, date) identity of the record.
func (t *DailyTotals) Key() DayKey {
	return DayKey{SubjectID: t.SubjectID, WorkDate: t.WorkDate}
}

// ClockTotal is the payable clock-derived duration the categories must add
// up to.
func (t *DailyTotals) ClockTotal() float64 {
	return RoundHours(t.GrossHours - t.BreakHours)
}

// IsOverridden reports whether an administrator allocation is authoritative.
func (t *DailyTotals) IsOverridden() bool {
	return t.State == StateOverridden
}

// WithinTolerance reports whether the categories agree with the clock.
func (t *DailyTotals) WithinTolerance() bool {
	return math.Abs(t.Hours.Sum()-t.ClockTotal()) <= Tolerance+hoursEpsilon
}

// SameValues compares everything except bookkeeping fields.
func (t *DailyTotals) SameValues(o *DailyTotals) bool {
	return t.SubjectID == o.SubjectID &&
		t.WorkDate == o.WorkDate &&
		t.Hours == o.Hours &&
		t.GrossHours == o.GrossHours &&
		t.BreakHours == o.BreakHours &&
		t.State == o.State
}

// ManualOverride is an administrator allocation for one day. While it exists
// it supersedes computed totals for that day.
type ManualOverride struct {
	ID         string
	SubjectID  string
	WorkDate   string
	Hours      CategoryHours
	ClockTotal float64
	Reason     string
	Kind       OverrideKind
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (o *ManualOverride) Key() DayKey {
	return DayKey{SubjectID: o.SubjectID, WorkDate: o.WorkDate}
}

// OverrideKindFor classifies an allocation against its clock total.
func OverrideKindFor(h CategoryHours, clockTotal float64) OverrideKind {
	if math.Abs(h.Sum()-clockTotal) > Tolerance+hoursEpsilon {
		return OverrideTrue
	}
	return OverrideSegmentation
}

const hoursEpsilon = 1e-9

// RoundHours rounds to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// HundredthsOf converts a duration to whole hundredths of an hour.
func HundredthsOf(d time.Duration) int64 {
	return int64(math.Round(d.Hours() * 100))
}

// AtLeast compares hour figures with a float guard so that 4.0 built from
// rounded parts still counts as 4.0.
func AtLeast(v, threshold float64) bool {
	return v >= threshold-hoursEpsilon
}
