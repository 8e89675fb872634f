package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalsGet_NotFound(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))

	_, err := f.totals.Get(context.Background(), domain.DayKey{SubjectID: "ghost", WorkDate: "2025-01-13"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTotalsGet_ServesFromCache(t *testing.T) {
	f := newFixture(t, testutil.NewTestDB(t))
	key := f.mondayShift(t)
	ctx := context.Background()

	first, err := f.totals.Get(ctx, key)
	require.NoError(t, err)
	first.Hours.Regular = 99

	_, err = f.db.Exec(`UPDATE daily_totals SET regular_h = 1 WHERE subject_id = ?`, key.SubjectID)
	require.NoError(t, err)

	second, err := f.totals.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 8.0, second.Hours.Regular, "cached copy must not see caller mutations or unsignalled writes")

	f.cache.Invalidate(key)
	third, err := f.totals.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1.0, third.Hours.Regular)
}

func TestTotalsCache_InvalidateAll(t *testing.T) {
	c := NewTotalsCache(16)
	tot := testutil.NewTestTotals("emp-1", "2025-01-13", 8)
	c.Set(tot)

	got, ok := c.Get(tot.Key())
	require.True(t, ok)
	assert.Equal(t, tot.GrossHours, got.GrossHours)

	c.InvalidateAll()
	_, ok = c.Get(tot.Key())
	assert.False(t, ok)
}
