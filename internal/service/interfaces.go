package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/reconcile"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/segment"
)

type ShiftService interface {
	// ClockIn opens a shift for subjectID. A subject may hold one open shift.
	ClockIn(ctx context.Context, subjectID string, at time.Time, activity string) (*domain.ShiftInterval, error)
	// Record stores a complete shift.
	Record(ctx context.Context, s *domain.ShiftInterval) error
	// ClockOut closes the open shift of subjectID.
	ClockOut(ctx context.Context, subjectID string, at time.Time) (*domain.ShiftInterval, error)
	GetByID(ctx context.Context, id string) (*domain.ShiftInterval, error)
	List(ctx context.Context, f repository.ShiftFilter) ([]*domain.ShiftInterval, error)
	Delete(ctx context.Context, id string) error
}

type HolidayService interface {
	Import(ctx context.Context, holidays []domain.Holiday) (int, error)
	List(ctx context.Context) ([]domain.Holiday, error)
	Delete(ctx context.Context, date string) error
}

type PayrollService interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

type TotalsService interface {
	Get(ctx context.Context, key domain.DayKey) (*domain.DailyTotals, error)
	List(ctx context.Context, f repository.TotalsFilter) ([]*domain.DailyTotals, error)
}

type ReconcileService interface {
	Edit(ctx context.Context, req EditRequest) (*EditResult, error)
	ClearOverride(ctx context.Context, key domain.DayKey) (*domain.DailyTotals, error)
	ListOverrides(ctx context.Context, subjectID string) ([]*domain.ManualOverride, error)
}

// RunRequest selects the inclusive local work dates to recompute.
type RunRequest struct {
	From      string
	To        string
	SubjectID string
}

// RunResult summarizes one batch run.
type RunResult struct {
	From string
	To   string
	// Totals holds the rows written by this run.
	Totals            []domain.DailyTotals
	Written           int
	Unchanged         int
	SkippedOverridden int
	Removed           int
	ShiftsLoaded      int
	Skipped           []segment.SkippedShift
	UnknownTags       []segment.SkippedShift
}

// EditRequest sets one category of one day.
type EditRequest struct {
	Key           domain.DayKey
	Category      domain.Category
	Value         float64
	Justification string
}

// EditResult reports how an edit landed.
type EditResult struct {
	Kind         reconcile.Kind
	Totals       *domain.DailyTotals
	Override     *domain.ManualOverride
	RegularDelta float64
	Reason       string
	Attempts     int
}
