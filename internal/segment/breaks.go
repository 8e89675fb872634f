package segment

import (
	"math"
	"sort"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Unpaid break rules. Days below a threshold get no deduction for that
// group.
const (
	DayBreakThreshold   = 4.0
	DayBreakHours       = 0.5
	NightBreakThreshold = 4.0
	NightBreakHours     = 0.25
)

var dayGroup = [...]domain.Category{
	domain.CategoryRegular,
	domain.CategorySaturday,
	domain.CategorySunday,
	domain.CategoryHoliday,
}

// ApplyBreaks deducts mandatory breaks from a day's totals. The day-group
// deduction is spread across regular, saturday, sunday and holiday in
// proportion to their share; the night deduction comes off night alone.
// Both are computed from the pre-deduction figures.
func ApplyBreaks(t domain.DailyTotals) domain.DailyTotals {
	pre := t.Hours
	out := t
	var deducted int64

	if group := pre.DayGroup(); domain.AtLeast(group, DayBreakThreshold) {
		shares := proportionalShares(pre, hundredths(DayBreakHours))
		for i, c := range dayGroup {
			v := hundredths(pre.Get(c))
			nv := max(v-shares[i], 0)
			deducted += v - nv
			out.Hours.Set(c, float64(nv)/100)
		}
	}

	if domain.AtLeast(pre.Night, NightBreakThreshold) {
		v := hundredths(pre.Night)
		nv := max(v-hundredths(NightBreakHours), 0)
		deducted += v - nv
		out.Hours.Night = float64(nv) / 100
	}

	out.BreakHours = float64(deducted) / 100
	return out
}

// proportionalShares splits total hundredths across the day group by share
// of the group, handing leftover hundredths to the largest remainders so the
// parts always add up to total.
func proportionalShares(h domain.CategoryHours, total int64) [len(dayGroup)]int64 {
	var shares [len(dayGroup)]int64
	var weights [len(dayGroup)]int64
	var sum int64
	for i, c := range dayGroup {
		weights[i] = hundredths(h.Get(c))
		sum += weights[i]
	}
	if sum == 0 {
		return shares
	}

	type rem struct {
		idx  int
		frac int64
	}
	rems := make([]rem, 0, len(dayGroup))
	var given int64
	for i, w := range weights {
		shares[i] = total * w / sum
		given += shares[i]
		if w > 0 {
			rems = append(rems, rem{idx: i, frac: total * w % sum})
		}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; given < total && len(rems) > 0; i = (i + 1) % len(rems) {
		shares[rems[i].idx]++
		given++
	}
	return shares
}

func hundredths(h float64) int64 {
	return int64(math.Round(h * 100))
}
