package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/segment"
)

// RunSummary is the part of a batch result the CLI prints.
type RunSummary struct {
	From              string
	To                string
	ShiftsLoaded      int
	Written           int
	Unchanged         int
	SkippedOverridden int
	Removed           int
	Skipped           []segment.SkippedShift
	UnknownTags       []segment.SkippedShift
}

func FormatRunSummary(s RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s → %s\n", Dim("range"), s.From, s.To)
	fmt.Fprintf(&b, "%s %d\n\n", Dim("shifts loaded"), s.ShiftsLoaded)
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d   %s %d",
		StyleGreen.Render("written"), s.Written,
		Dim("unchanged"), s.Unchanged,
		StylePurple.Render("overridden"), s.SkippedOverridden,
		StyleYellow.Render("removed"), s.Removed)

	if len(s.Skipped) > 0 {
		b.WriteString("\n\n" + StyleRed.Render(fmt.Sprintf("%d shift(s) skipped", len(s.Skipped))))
		for _, sk := range s.Skipped {
			fmt.Fprintf(&b, "\n  %s %s", TruncID(sk.ShiftID), Dim(sk.Err.Error()))
		}
	}
	if len(s.UnknownTags) > 0 {
		b.WriteString("\n\n" + StyleYellow.Render(fmt.Sprintf("%d shift(s) with unknown activity tag", len(s.UnknownTags))))
		for _, sk := range s.UnknownTags {
			fmt.Fprintf(&b, "\n  %s %s", TruncID(sk.ShiftID), Dim(sk.Err.Error()))
		}
	}
	return RenderBox("Payroll Run", b.String())
}

// FormatShifts renders shifts with start and end shown through localOf.
func FormatShifts(list []*domain.ShiftInterval, localOf func(time.Time) time.Time) string {
	headers := []string{"ID", "SUBJECT", "START", "END", "HOURS", "ACTIVITY"}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		end := StyleYellow.Render("open")
		hours := Dim("-")
		if s.End != nil {
			end = LocalTime(localOf(*s.End))
			hours = Hours(domain.RoundHours(s.Duration().Hours()))
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			s.SubjectID,
			LocalTime(localOf(s.Start)),
			end,
			hours,
			s.Activity,
		})
	}
	return RenderTable(headers, rows, 4)
}

// FormatSegments renders the category slices of one shift.
func FormatSegments(s *domain.ShiftInterval, subs []domain.SubInterval, localOf func(time.Time) time.Time) string {
	headers := []string{"FROM", "TO", "HOURS", "CATEGORY", "WORK DATE"}
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		date := sub.WorkDate
		if date == "" {
			date = localOf(sub.Midpoint()).Format(domain.DateLayout)
		}
		rows = append(rows, []string{
			LocalTime(localOf(sub.Start)),
			LocalTime(localOf(sub.End)),
			Hours(domain.RoundHours(sub.Duration().Hours())),
			string(sub.Category),
			date,
		})
	}
	title := fmt.Sprintf("Shift %s  %s", TruncID(s.ID), s.SubjectID)
	return RenderBox(title, RenderTable(headers, rows, 2))
}
