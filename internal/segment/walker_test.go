package segment

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(r Resolver, start, end time.Time) []domain.SubInterval {
	var out []domain.SubInterval
	for sub := range Walk(r, start, end) {
		out = append(out, sub)
	}
	return out
}

func TestWalk_OvernightWeekdayShift(t *testing.T) {
	r := DefaultResolver()
	// Tuesday 2025-01-14 20:00 local to Wednesday 07:00 local (UTC+2).
	start := utc("2025-01-14T18:00:00Z")
	end := utc("2025-01-15T05:00:00Z")

	subs := collect(r, start, end)

	require.Len(t, subs, 4)
	wantBounds := [][2]string{
		{"2025-01-14T18:00:00Z", "2025-01-14T20:00:00Z"},
		{"2025-01-14T20:00:00Z", "2025-01-14T22:00:00Z"},
		{"2025-01-14T22:00:00Z", "2025-01-15T04:00:00Z"},
		{"2025-01-15T04:00:00Z", "2025-01-15T05:00:00Z"},
	}
	wantCats := []domain.Category{
		domain.CategoryRegular,
		domain.CategoryNight,
		domain.CategoryNight,
		domain.CategoryRegular,
	}
	for i, sub := range subs {
		assert.Equal(t, utc(wantBounds[i][0]), sub.Start, "slice %d start", i)
		assert.Equal(t, utc(wantBounds[i][1]), sub.End, "slice %d end", i)
		assert.Equal(t, wantCats[i], Classify(r, sub, domain.HolidayCalendar{}), "slice %d category", i)
	}
}

func TestWalk_Restartable(t *testing.T) {
	r := DefaultResolver()
	seq := Walk(r, utc("2025-01-14T18:00:00Z"), utc("2025-01-15T05:00:00Z"))

	var first, second []domain.SubInterval
	for sub := range seq {
		first = append(first, sub)
	}
	for sub := range seq {
		second = append(second, sub)
	}
	assert.Equal(t, first, second)
}

func TestWalk_EarlyStop(t *testing.T) {
	r := DefaultResolver()
	n := 0
	for range Walk(r, utc("2025-01-14T00:00:00Z"), utc("2025-01-17T00:00:00Z")) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestWalk_EmptyWhenEndNotAfterStart(t *testing.T) {
	r := DefaultResolver()
	at := utc("2025-01-14T18:00:00Z")
	assert.Empty(t, collect(r, at, at))
	assert.Empty(t, collect(r, at, at.Add(-time.Hour)))
}

func TestWalk_SpringForwardKeepsUTCDuration(t *testing.T) {
	r := DefaultResolver()
	// 30 minutes either side of the 01:00 UTC spring transition.
	start := utc("2025-03-30T00:30:00Z")
	end := utc("2025-03-30T01:30:00Z")

	subs := collect(r, start, end)

	var total time.Duration
	for _, s := range subs {
		total += s.Duration()
	}
	assert.Equal(t, time.Hour, total)

	// The local clock jumps: 02:30 EET to 04:30 EEST reads as two hours.
	ls, le := r.LocalOf(start), r.LocalOf(end)
	wall := time.Duration(le.Hour()-ls.Hour())*time.Hour + time.Duration(le.Minute()-ls.Minute())*time.Minute
	assert.Equal(t, 2*time.Hour, wall)
}

func TestWalk_BoundaryAfterSpringForward(t *testing.T) {
	r := DefaultResolver()
	// Local 00:00 EET to 07:00 EEST on the spring day.
	subs := collect(r, utc("2025-03-29T22:00:00Z"), utc("2025-03-30T04:00:00Z"))

	require.Len(t, subs, 2)
	// Local 06:00 EEST is 03:00 UTC.
	assert.Equal(t, utc("2025-03-30T03:00:00Z"), subs[0].End)
	assert.Equal(t, 5*time.Hour, subs[0].Duration())
	assert.Equal(t, time.Hour, subs[1].Duration())
}

func TestWalk_BoundaryAfterFallBack(t *testing.T) {
	r := DefaultResolver()
	// Local 00:00 EEST to 07:00 EET on the autumn day.
	subs := collect(r, utc("2025-10-25T21:00:00Z"), utc("2025-10-26T05:00:00Z"))

	require.Len(t, subs, 2)
	// Local 06:00 EET is 04:00 UTC.
	assert.Equal(t, utc("2025-10-26T04:00:00Z"), subs[0].End)
	assert.Equal(t, 7*time.Hour, subs[0].Duration())
	assert.Equal(t, time.Hour, subs[1].Duration())
}

// TestWalk_Invariants_PartitionsInterval property-tests that slices cover
// [start, end) exactly and never straddle a boundary.
func TestWalk_Invariants_PartitionsInterval(t *testing.T) {
	r := DefaultResolver()
	rng := rand.New(rand.NewSource(42))
	base := utc("2024-01-01T00:00:00Z")

	for trial := 0; trial < 500; trial++ {
		start := base.Add(time.Duration(rng.Int63n(int64(3 * 365 * 24 * time.Hour))))
		length := 10*time.Minute + time.Duration(rng.Int63n(int64(40*time.Hour)))
		end := start.Add(length)

		subs := collect(r, start, end)
		require.NotEmpty(t, subs, "trial %d", trial)

		assert.Equal(t, start, subs[0].Start, "trial %d: first slice must start at shift start", trial)
		assert.Equal(t, end, subs[len(subs)-1].End, "trial %d: last slice must end at shift end", trial)

		var total time.Duration
		for i, s := range subs {
			assert.True(t, s.End.After(s.Start), "trial %d slice %d: empty slice", trial, i)
			if i > 0 {
				assert.Equal(t, subs[i-1].End, s.Start, "trial %d slice %d: gap or overlap", trial, i)
			}
			assert.False(t, r.NextBoundary(s.Start).Before(s.End),
				"trial %d slice %d: straddles a boundary", trial, i)
			total += s.Duration()
		}
		assert.Equal(t, length, total, "trial %d: durations must add up", trial)
	}
}

func TestSegmentShift_SpecialActivityNotSplit(t *testing.T) {
	r := DefaultResolver()
	end := utc("2025-01-15T03:00:00Z")
	shift := &domain.ShiftInterval{
		ID:        "s-1",
		SubjectID: "emp-1",
		Start:     utc("2025-01-14T18:00:00Z"),
		End:       &end,
		Activity:  "Driving",
	}

	var subs []domain.SubInterval
	for sub := range SegmentShift(r, domain.HolidayCalendar{}, shift) {
		subs = append(subs, sub)
	}

	require.Len(t, subs, 1)
	assert.Equal(t, domain.CategoryDriving, subs[0].Category)
	assert.Equal(t, "2025-01-14", subs[0].WorkDate)
	assert.Equal(t, 9*time.Hour, subs[0].Duration())
}

func TestSegmentShift_UnknownTagIsWalked(t *testing.T) {
	r := DefaultResolver()
	end := utc("2025-01-15T05:00:00Z")
	shift := &domain.ShiftInterval{
		ID:        "s-2",
		SubjectID: "emp-1",
		Start:     utc("2025-01-14T18:00:00Z"),
		End:       &end,
		Activity:  "forklift",
	}

	n := 0
	for sub := range SegmentShift(r, domain.HolidayCalendar{}, shift) {
		assert.Equal(t, "s-2", sub.ShiftID)
		assert.Equal(t, "emp-1", sub.SubjectID)
		n++
	}
	assert.Equal(t, 4, n)
}
