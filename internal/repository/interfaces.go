package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when a daily totals row changed between
	// read and write.
	ErrVersionConflict = errors.New("version conflict")
)

// ShiftFilter narrows shift listings. Zero values do not filter.
type ShiftFilter struct {
	SubjectID string
	// StartFrom and StartTo bound the shift start as [StartFrom, StartTo).
	StartFrom time.Time
	StartTo   time.Time
	// EndAfter keeps shifts that end after this instant or are still open.
	EndAfter  time.Time
	OpenOnly  bool
}

// TotalsFilter narrows daily totals listings. Dates are inclusive.
type TotalsFilter struct {
	SubjectID string
	FromDate  string
	ToDate    string
	State     domain.TotalsState
}

type ShiftRepo interface {
	Create(ctx context.Context, s *domain.ShiftInterval) error
	GetByID(ctx context.Context, id string) (*domain.ShiftInterval, error)
	GetOpenBySubject(ctx context.Context, subjectID string) (*domain.ShiftInterval, error)
	List(ctx context.Context, f ShiftFilter) ([]*domain.ShiftInterval, error)
	Update(ctx context.Context, s *domain.ShiftInterval) error
	Delete(ctx context.Context, id string) error
}

type DailyTotalsRepo interface {
	Get(ctx context.Context, key domain.DayKey) (*domain.DailyTotals, error)
	List(ctx context.Context, f TotalsFilter) ([]*domain.DailyTotals, error)
	// Save inserts when expectedVersion is zero, otherwise updates only if the
	// stored version still matches. On success t.Version holds the new version.
	Save(ctx context.Context, t *domain.DailyTotals, expectedVersion int) error
	Delete(ctx context.Context, key domain.DayKey) error
}

type OverrideRepo interface {
	Get(ctx context.Context, key domain.DayKey) (*domain.ManualOverride, error)
	List(ctx context.Context, subjectID string) ([]*domain.ManualOverride, error)
	ListKeys(ctx context.Context) (map[domain.DayKey]struct{}, error)
	Upsert(ctx context.Context, o *domain.ManualOverride) error
	Delete(ctx context.Context, key domain.DayKey) error
}

type HolidayRepo interface {
	Upsert(ctx context.Context, h domain.Holiday) error
	List(ctx context.Context) ([]domain.Holiday, error)
	Delete(ctx context.Context, date string) error
}
