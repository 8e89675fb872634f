package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/reconcile"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdit_RebalancesRegular(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)

	res, err := f.reconcile.Edit(context.Background(), EditRequest{Key: key, Category: domain.CategoryDriving, Value: 3})
	require.NoError(t, err)
	assert.Equal(t, reconcile.KindRebalanced, res.Kind)
	assert.Equal(t, -3.0, res.RegularDelta)
	assert.Equal(t, 1, res.Attempts)

	got := f.stored(t, key.SubjectID, key.WorkDate)
	assert.Equal(t, 3.0, got.Hours.Driving)
	assert.Equal(t, 5.0, got.Hours.Regular)
	assert.Equal(t, domain.StateComputed, got.State)
	assert.Equal(t, 2, got.Version)
	assert.True(t, got.WithinTolerance())
}

func TestEdit_OverrideNeedsJustification(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)

	_, err := f.reconcile.Edit(context.Background(), EditRequest{Key: key, Category: domain.CategoryNight, Value: 9})
	require.Error(t, err)
	assert.True(t, domain.IsValidationField(err, "justification"))

	got := f.stored(t, key.SubjectID, key.WorkDate)
	assert.Equal(t, 1, got.Version, "rejected edit writes nothing")
	assert.Zero(t, got.Hours.Night)

	overrides, err := f.reconcile.ListOverrides(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestEdit_OverrideRecorded(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)

	res, err := f.reconcile.Edit(context.Background(), EditRequest{
		Key: key, Category: domain.CategoryNight, Value: 9, Justification: "  paper timesheet  ",
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.KindOverrideRequired, res.Kind)
	require.NotNil(t, res.Override)
	assert.Equal(t, domain.OverrideTrue, res.Override.Kind)
	assert.Equal(t, "paper timesheet", res.Override.Reason)
	assert.Equal(t, 8.0, res.Override.ClockTotal)

	got := f.stored(t, key.SubjectID, key.WorkDate)
	assert.Equal(t, domain.StateOverridden, got.State)
	assert.Equal(t, 9.0, got.Hours.Night)
	assert.Equal(t, 8.0, got.Hours.Regular)
}

func TestEdit_OverriddenDayStaysOverride(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)
	ctx := context.Background()

	_, err := f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryNight, Value: 9, Justification: "paper"})
	require.NoError(t, err)

	_, err = f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryNight, Value: 0})
	assert.True(t, domain.IsValidationField(err, "justification"))

	res, err := f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryNight, Value: 0, Justification: "undo night"})
	require.NoError(t, err)
	assert.Equal(t, reconcile.KindOverrideRequired, res.Kind)
	assert.Equal(t, domain.OverrideSegmentation, res.Override.Kind)

	overrides, err := f.reconcile.ListOverrides(ctx, key.SubjectID)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "undo night", overrides[0].Reason)
}

func TestEdit_DayWithoutShifts(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := domain.DayKey{SubjectID: "emp-1", WorkDate: "2025-01-20"}

	res, err := f.reconcile.Edit(context.Background(), EditRequest{
		Key: key, Category: domain.CategoryMedicalLeave, Value: 8, Justification: "sick note",
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.KindOverrideRequired, res.Kind)

	got := f.stored(t, key.SubjectID, key.WorkDate)
	assert.Equal(t, 8.0, got.Hours.MedicalLeave)
	assert.Equal(t, 1, got.Version)
}

func TestEdit_ZeroOnEmptyDayWritesNothing(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := domain.DayKey{SubjectID: "emp-9", WorkDate: "2025-01-13"}
	ctx := context.Background()

	res, err := f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryLeave, Value: 0})
	require.NoError(t, err)
	assert.Equal(t, reconcile.KindApplied, res.Kind)
	assert.Zero(t, res.Totals.Hours.Sum())

	_, err = f.totals.Get(ctx, key)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEdit_Rejections(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   EditRequest
		field string
	}{
		{"negative hours", EditRequest{Key: key, Category: domain.CategoryDriving, Value: -1}, "value"},
		{"unknown category", EditRequest{Key: key, Category: "overtime", Value: 1}, "category"},
		{"empty subject", EditRequest{Key: domain.DayKey{WorkDate: key.WorkDate}, Category: domain.CategoryDriving, Value: 1}, "subject"},
		{"bad date", EditRequest{Key: domain.DayKey{SubjectID: "emp-1", WorkDate: "13.01.2025"}, Category: domain.CategoryDriving, Value: 1}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reconcile.Edit(ctx, tt.req)
			assert.True(t, domain.IsValidationField(err, tt.field), "got %v", err)
		})
	}
	assert.Equal(t, 1, f.stored(t, key.SubjectID, key.WorkDate).Version)
}

func TestEdit_RetriesAfterVersionConflict(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := newFixture(t, database)
	key := f.mondayShift(t)

	uow := &testutil.BumpVersionUoW{DB: database, Conflicts: 2}
	racing := newFixtureWithUoW(t, database, uow)

	res, err := racing.reconcile.Edit(context.Background(), EditRequest{Key: key, Category: domain.CategoryDriving, Value: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, uow.Transactions())

	got := f.stored(t, key.SubjectID, key.WorkDate)
	assert.Equal(t, 2.0, got.Hours.Driving)
	assert.Equal(t, 6.0, got.Hours.Regular)
	assert.Equal(t, 2, got.Version, "losing attempts rolled back")
}

func TestEdit_GivesUpAsConcurrentEdit(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := newFixture(t, database)
	key := f.mondayShift(t)

	uow := &testutil.BumpVersionUoW{DB: database, Conflicts: 100}
	racing := newFixtureWithUoW(t, database, uow)

	_, err := racing.reconcile.Edit(context.Background(), EditRequest{Key: key, Category: domain.CategoryDriving, Value: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConcurrentEdit)
	assert.Equal(t, 5, uow.Transactions())

	assert.Equal(t, 1, f.stored(t, key.SubjectID, key.WorkDate).Version)
}

func TestEdit_ConcurrentEditsSerialize(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	f := newFixture(t, database)
	key := f.mondayShift(t)

	// A second service instance has its own locker, like a second process.
	other := newFixture(t, database)

	const n = 12
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc := f.reconcile
			if i%2 == 1 {
				svc = other.reconcile
			}
			cat := domain.CategoryDriving
			if i%3 == 0 {
				cat = domain.CategoryEquipment
			}
			_, err := svc.Edit(context.Background(), EditRequest{Key: key, Category: cat, Value: float64(i%4) * 0.5})
			if err != nil {
				t.Errorf("edit %d: %v", i, err)
			}
		}()
	}
	wg.Wait()

	got := f.stored(t, key.SubjectID, key.WorkDate)
	assert.Equal(t, n+1, got.Version)
	assert.True(t, got.WithinTolerance(), "every serialized edit keeps the day in tolerance: %+v", got.Hours)
}

func TestClearOverride_RecomputesDay(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)
	ctx := context.Background()

	_, err := f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryNight, Value: 9, Justification: "paper"})
	require.NoError(t, err)

	got, err := f.reconcile.ClearOverride(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.CategoryHours{Regular: 8}, got.Hours)
	assert.Equal(t, domain.StateComputed, got.State)
	assert.Equal(t, 3, got.Version)

	_, err = f.reconcile.ClearOverride(ctx, key)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClearOverride_MultiDayShift(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	f.record(t, "emp-1", "2025-01-10T06:00:00Z", "2025-01-13T10:00:00Z")
	f.run(t, "2025-01-10", "2025-01-13")
	key := domain.DayKey{SubjectID: "emp-1", WorkDate: "2025-01-13"}
	ctx := context.Background()

	res, err := f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryNight, Value: 20, Justification: "double shift"})
	require.NoError(t, err)
	require.Equal(t, reconcile.KindOverrideRequired, res.Kind)

	got, err := f.reconcile.ClearOverride(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.CategoryHours{Regular: 5.5, Night: 5.75}, got.Hours)
	assert.Equal(t, domain.StateComputed, got.State)
}

func TestClearOverride_DayWithoutShiftsIsRemoved(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := domain.DayKey{SubjectID: "emp-1", WorkDate: "2025-01-20"}
	ctx := context.Background()

	_, err := f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryLeave, Value: 8, Justification: "annual leave"})
	require.NoError(t, err)

	got, err := f.reconcile.ClearOverride(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = f.totals.Get(ctx, key)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTotalsGet_CacheInvalidatedByEdit(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)
	ctx := context.Background()

	first, err := f.totals.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 8.0, first.Hours.Regular)
	_, cached := f.cache.Get(key)
	assert.True(t, cached)

	_, err = f.reconcile.Edit(ctx, EditRequest{Key: key, Category: domain.CategoryPassenger, Value: 1})
	require.NoError(t, err)
	_, cached = f.cache.Get(key)
	assert.False(t, cached)

	second, err := f.totals.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 7.0, second.Hours.Regular)
	assert.Equal(t, 1.0, second.Hours.Passenger)
}

func TestTotalsGet_CacheDroppedByBatch(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)
	ctx := context.Background()

	_, err := f.totals.Get(ctx, key)
	require.NoError(t, err)

	f.record(t, "emp-1", "2025-01-13T16:00:00Z", "2025-01-13T18:00:00Z")
	f.run(t, "2025-01-13", "2025-01-13")

	got, err := f.totals.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Hours.Regular)
}
