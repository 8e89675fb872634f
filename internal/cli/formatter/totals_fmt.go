package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timecard/internal/domain"
)

// FormatDay renders one day with every bucket, the clock total and how well
// the allocation covers it.
func FormatDay(t *domain.DailyTotals, o *domain.ManualOverride) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n\n", Bold(t.SubjectID), t.WorkDate, StatePill(t.State))

	rows := make([][]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		if v := t.Hours.Get(c); v != 0 {
			rows = append(rows, []string{string(c), Hours(v)})
		}
	}
	if len(rows) == 0 {
		b.WriteString(Dim("no hours booked") + "\n")
	} else {
		b.WriteString(RenderTable([]string{"CATEGORY", "HOURS"}, rows, 1))
	}

	fmt.Fprintf(&b, "\n%s %s  %s %s  %s %s\n",
		Dim("gross"), Hours(t.GrossHours),
		Dim("break"), Hours(t.BreakHours),
		Dim("version"), fmt.Sprint(t.Version))
	b.WriteString(RenderAllocation(t.Hours.Sum(), t.ClockTotal(), 20))

	if o != nil {
		fmt.Fprintf(&b, "\n\n%s %s\n%s", KindBadge(o.Kind), Dim(o.UpdatedAt.Format("2006-01-02 15:04")), o.Reason)
	}
	return RenderBox("Daily Totals", b.String())
}

// FormatTotalsTable renders a compact listing of days.
func FormatTotalsTable(list []*domain.DailyTotals) string {
	headers := []string{"SUBJECT", "DATE", "REG", "NIGHT", "SAT", "SUN", "HOL", "SPECIAL", "LEAVE", "CLOCK", "STATE"}
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		h := t.Hours
		rows = append(rows, []string{
			t.SubjectID,
			t.WorkDate,
			Hours(h.Regular),
			Hours(h.Night),
			Hours(h.Saturday),
			Hours(h.Sunday),
			Hours(h.Holiday),
			Hours(domain.RoundHours(h.Driving + h.Passenger + h.Equipment)),
			Hours(domain.RoundHours(h.Leave + h.MedicalLeave)),
			Hours(t.ClockTotal()),
			StatePill(t.State),
		})
	}
	return RenderTable(headers, rows, 2, 3, 4, 5, 6, 7, 8, 9)
}

// FormatOverrides renders the override register.
func FormatOverrides(list []*domain.ManualOverride) string {
	headers := []string{"SUBJECT", "DATE", "KIND", "ALLOCATED", "CLOCK", "REASON"}
	rows := make([][]string, 0, len(list))
	for _, o := range list {
		reason := o.Reason
		if len(reason) > 40 {
			reason = reason[:37] + "..."
		}
		rows = append(rows, []string{
			o.SubjectID,
			o.WorkDate,
			KindBadge(o.Kind),
			Hours(o.Hours.Sum()),
			Hours(o.ClockTotal),
			reason,
		})
	}
	return RenderTable(headers, rows, 3, 4)
}
