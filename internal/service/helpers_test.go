package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/reconcile"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/segment"
	"github.com/alexanderramin/timecard/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db        *sql.DB
	cache     *TotalsCache
	shifts    ShiftService
	holidays  HolidayService
	payroll   PayrollService
	reconcile ReconcileService
	totals    TotalsService
	observer  *recordingObserver
}

func newFixture(t *testing.T, database *sql.DB) *fixture {
	t.Helper()
	return newFixtureWithUoW(t, database, testutil.NewTestUoW(database))
}

func newFixtureWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *fixture {
	t.Helper()
	cache := NewTotalsCache(128)
	obs := &recordingObserver{}
	shiftRepo := repository.NewSQLiteShiftRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)

	return &fixture{
		db:       database,
		cache:    cache,
		observer: obs,
		shifts:   NewShiftService(shiftRepo, uow, obs),
		holidays: NewHolidayService(holidayRepo, uow, obs),
		payroll:  NewPayrollService(uow, shiftRepo, holidayRepo, segment.DefaultResolver(), 2, cache, obs),
		reconcile: NewReconcileService(uow, repository.NewSQLiteOverrideRepo(database),
			reconcile.NewKeyedLocker(), cache,
			ReconcileOptions{Resolver: segment.DefaultResolver(), Workers: 2, Attempts: 5}, obs),
		totals: NewTotalsService(repository.NewSQLiteTotalsRepo(database), cache),
	}
}

func (f *fixture) record(t *testing.T, subject, start, end string, opts ...testutil.ShiftOption) *domain.ShiftInterval {
	t.Helper()
	s := testutil.NewTestShift(subject, start, end, opts...)
	require.NoError(t, f.shifts.Record(context.Background(), s))
	return s
}

func (f *fixture) run(t *testing.T, from, to string) *RunResult {
	t.Helper()
	res, err := f.payroll.Run(context.Background(), RunRequest{From: from, To: to})
	require.NoError(t, err)
	return res
}

func (f *fixture) stored(t *testing.T, subject, date string) *domain.DailyTotals {
	t.Helper()
	got, err := repository.NewSQLiteTotalsRepo(f.db).Get(context.Background(), domain.DayKey{SubjectID: subject, WorkDate: date})
	require.NoError(t, err)
	return got
}

// mondayShift is a local 08:00-16:30 day: regular 8 after the half-hour break.
func (f *fixture) mondayShift(t *testing.T) domain.DayKey {
	t.Helper()
	f.record(t, "emp-1", "2025-01-13T06:00:00Z", "2025-01-13T14:30:00Z")
	f.run(t, "2025-01-13", "2025-01-13")
	return domain.DayKey{SubjectID: "emp-1", WorkDate: "2025-01-13"}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}
