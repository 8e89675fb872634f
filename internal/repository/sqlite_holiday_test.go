package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepo_UpsertListDelete(t *testing.T) {
	repo := NewSQLiteHolidayRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Holiday{Date: "2025-12-25", Name: "Christmas"}))
	require.NoError(t, repo.Upsert(ctx, domain.Holiday{Date: "2025-01-01", Name: "New Year"}))
	require.NoError(t, repo.Upsert(ctx, domain.Holiday{Date: "2025-12-25", Name: "Christmas Day"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-01-01", list[0].Date)
	assert.Equal(t, "Christmas Day", list[1].Name)

	require.NoError(t, repo.Delete(ctx, "2025-01-01"))
	assert.ErrorIs(t, repo.Delete(ctx, "2025-01-01"), ErrNotFound)
}
