package segment

import (
	"testing"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func totalsWith(h domain.CategoryHours) domain.DailyTotals {
	return domain.DailyTotals{SubjectID: "emp-1", WorkDate: "2025-01-14", Hours: h, GrossHours: h.Sum()}
}

func TestApplyBreaks_DayGroupThreshold(t *testing.T) {
	below := ApplyBreaks(totalsWith(domain.CategoryHours{Regular: 3.99}))
	assert.Equal(t, 3.99, below.Hours.Regular)
	assert.Zero(t, below.BreakHours)

	at := ApplyBreaks(totalsWith(domain.CategoryHours{Regular: 4.0}))
	assert.Equal(t, 3.5, at.Hours.Regular)
	assert.Equal(t, 0.5, at.BreakHours)
}

func TestApplyBreaks_ProportionalAcrossDayGroup(t *testing.T) {
	got := ApplyBreaks(totalsWith(domain.CategoryHours{Regular: 6, Saturday: 2}))

	// 6 - 0.375 and 2 - 0.125; the leftover cent goes to regular.
	assert.Equal(t, 5.62, got.Hours.Regular)
	assert.Equal(t, 1.88, got.Hours.Saturday)
	assert.Equal(t, 0.5, got.BreakHours)
}

func TestApplyBreaks_AlwaysDeductsExactlyHalfHour(t *testing.T) {
	got := ApplyBreaks(totalsWith(domain.CategoryHours{Regular: 2, Saturday: 1, Sunday: 1, Holiday: 1}))

	deducted := 5.0 - got.Hours.DayGroup()
	assert.InDelta(t, 0.5, deducted, 1e-9)
	assert.Equal(t, 0.5, got.BreakHours)
}

func TestApplyBreaks_NightIndependentOfDayGroup(t *testing.T) {
	got := ApplyBreaks(totalsWith(domain.CategoryHours{Regular: 4, Night: 4}))

	assert.Equal(t, 3.5, got.Hours.Regular)
	assert.Equal(t, 3.75, got.Hours.Night)
	assert.Equal(t, 0.75, got.BreakHours)
}

func TestApplyBreaks_NightThreshold(t *testing.T) {
	below := ApplyBreaks(totalsWith(domain.CategoryHours{Night: 3.99}))
	assert.Equal(t, 3.99, below.Hours.Night)
	assert.Zero(t, below.BreakHours)

	at := ApplyBreaks(totalsWith(domain.CategoryHours{Night: 4}))
	assert.Equal(t, 3.75, at.Hours.Night)
}

func TestApplyBreaks_SpecialActivitiesUntouched(t *testing.T) {
	got := ApplyBreaks(totalsWith(domain.CategoryHours{Driving: 9, Equipment: 2}))

	assert.Equal(t, 9.0, got.Hours.Driving)
	assert.Equal(t, 2.0, got.Hours.Equipment)
	assert.Zero(t, got.BreakHours)
}

func TestApplyBreaks_ClockTotalMatchesCategories(t *testing.T) {
	got := ApplyBreaks(totalsWith(domain.CategoryHours{Regular: 3.33, Sunday: 2.17, Night: 5.01}))

	assert.InDelta(t, got.ClockTotal(), got.Hours.Sum(), 1e-9)
	assert.True(t, got.WithinTolerance())
}
