package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/export"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var from, to, subject, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write daily totals and overrides to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			totals, err := app.Totals.List(ctx, repository.TotalsFilter{
				SubjectID: subject,
				FromDate:  from,
				ToDate:    to,
			})
			if err != nil {
				return err
			}
			all, err := app.Reconcile.ListOverrides(ctx, subject)
			if err != nil {
				return err
			}
			overrides := make([]*domain.ManualOverride, 0, len(all))
			for _, o := range all {
				if o.WorkDate >= from && o.WorkDate <= to {
					overrides = append(overrides, o)
				}
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := export.WriteXLSX(f, totals, overrides); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d day(s) and %d override(s) to %s\n", len(totals), len(overrides), out)
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&from), "from", "First work date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "Last work date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&subject, "subject", "", "Only this subject")
	cmd.Flags().StringVarP(&out, "out", "o", "timecard.xlsx", "Output file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
