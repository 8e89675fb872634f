package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/service"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var from, to, subject string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Recompute daily totals for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Payroll.Run(context.Background(), service.RunRequest{
				From:      from,
				To:        to,
				SubjectID: subject,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRunSummary(formatter.RunSummary{
				From:              res.From,
				To:                res.To,
				ShiftsLoaded:      res.ShiftsLoaded,
				Written:           res.Written,
				Unchanged:         res.Unchanged,
				SkippedOverridden: res.SkippedOverridden,
				Removed:           res.Removed,
				Skipped:           res.Skipped,
				UnknownTags:       res.UnknownTags,
			}))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&from), "from", "First work date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "Last work date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&subject, "subject", "", "Only this subject")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
