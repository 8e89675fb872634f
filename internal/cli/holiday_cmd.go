package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/holiday"
	"github.com/spf13/cobra"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage the legal holiday calendar",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "import FILE",
			Short: "Import holidays from a YAML file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				holidays, err := holiday.LoadFile(args[0])
				if err != nil {
					return err
				}
				n, err := app.Holidays.Import(context.Background(), holidays)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d holiday(s) from %s\n", n, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List holidays",
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := app.Holidays.List(context.Background())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No holidays configured.")
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, h := range list {
					rows = append(rows, []string{h.Date, h.Name})
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"DATE", "NAME"}, rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm DATE",
			Short: "Remove a holiday",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Holidays.Delete(context.Background(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed holiday %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
