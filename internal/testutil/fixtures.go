package testutil

import (
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/google/uuid"
)

// Shift options
type ShiftOption func(*domain.ShiftInterval)

func WithActivity(tag string) ShiftOption {
	return func(s *domain.ShiftInterval) {
		s.Activity = tag
	}
}

func WithShiftID(id string) ShiftOption {
	return func(s *domain.ShiftInterval) {
		s.ID = id
	}
}

// Open clears the clock-out.
func Open() ShiftOption {
	return func(s *domain.ShiftInterval) {
		s.End = nil
	}
}

// NewTestShift builds a closed shift between two RFC3339 instants.
func NewTestShift(subjectID, start, end string, opts ...ShiftOption) *domain.ShiftInterval {
	st := MustTime(start)
	en := MustTime(end)
	now := time.Now().UTC()
	s := &domain.ShiftInterval{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Start:     st,
		End:       &en,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Totals options
type TotalsOption func(*domain.DailyTotals)

func WithHours(c domain.Category, v float64) TotalsOption {
	return func(t *domain.DailyTotals) {
		t.Hours.Set(c, v)
	}
}

func WithBreak(v float64) TotalsOption {
	return func(t *domain.DailyTotals) {
		t.BreakHours = v
	}
}

func WithState(s domain.TotalsState) TotalsOption {
	return func(t *domain.DailyTotals) {
		t.State = s
	}
}

// NewTestTotals builds a computed day with gross hours set. Options that set
// buckets do not touch gross.
func NewTestTotals(subjectID, workDate string, gross float64, opts ...TotalsOption) *domain.DailyTotals {
	t := &domain.DailyTotals{
		SubjectID:  subjectID,
		WorkDate:   workDate,
		GrossHours: gross,
		State:      domain.StateComputed,
		UpdatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MustTime parses an RFC3339 instant or panics.
func MustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}
