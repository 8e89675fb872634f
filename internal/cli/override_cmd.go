package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/spf13/cobra"
)

func newOverrideCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Review and clear manual overrides",
	}

	var subject string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List manual overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Reconcile.ListOverrides(context.Background(), subject)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No manual overrides.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverrides(list))
			return nil
		},
	}
	listCmd.Flags().StringVar(&subject, "subject", "", "Only this subject")

	clearCmd := &cobra.Command{
		Use:   "clear SUBJECT DATE",
		Short: "Drop an override and recompute the day from its shifts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := domain.DayKey{SubjectID: args[0], WorkDate: args[1]}
			t, err := app.Reconcile.ClearOverride(context.Background(), key)
			if err != nil {
				return err
			}
			if t == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared override on %s; no shifts remain for that day.\n", key)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared override on %s.\n", key)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(t, nil))
			return nil
		},
	}

	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}
