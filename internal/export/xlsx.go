// Package export writes payroll totals to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	TotalsSheet    = "Daily Totals"
	OverridesSheet = "Overrides"
)

func totalsHeader() []any {
	h := []any{"Subject", "Work Date"}
	for _, c := range domain.Categories {
		h = append(h, string(c))
	}
	return append(h, "Gross", "Break", "Clock Total", "State", "Version")
}

var overridesHeader = []any{"Subject", "Work Date", "Kind", "Clock Total", "Allocated", "Reason", "Updated At"}

// WriteXLSX writes one row per day and one row per override to w.
func WriteXLSX(w io.Writer, totals []*domain.DailyTotals, overrides []*domain.ManualOverride) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(TotalsSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if _, err := f.NewSheet(OverridesSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeHeader(f, TotalsSheet, totalsHeader(), headerStyle); err != nil {
		return err
	}
	for i, t := range totals {
		row := []any{t.SubjectID, t.WorkDate}
		for _, c := range domain.Categories {
			row = append(row, t.Hours.Get(c))
		}
		row = append(row, t.GrossHours, t.BreakHours, t.ClockTotal(), string(t.State), t.Version)
		if err := setRow(f, TotalsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeHeader(f, OverridesSheet, overridesHeader, headerStyle); err != nil {
		return err
	}
	for i, o := range overrides {
		row := []any{o.SubjectID, o.WorkDate, string(o.Kind), o.ClockTotal, o.Hours.Sum(), o.Reason,
			o.UpdatedAt.UTC().Format("2006-01-02 15:04:05")}
		if err := setRow(f, OverridesSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(OverridesSheet, "F", "F", 40); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []any, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("converting coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("converting coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
