package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/reconcile"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/service"
	"github.com/spf13/cobra"
)

func newTotalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Inspect and edit daily totals",
	}

	cmd.AddCommand(
		newTotalsListCmd(app),
		newTotalsShowCmd(app),
		newTotalsEditCmd(app),
	)

	return cmd
}

func newTotalsListCmd(app *App) *cobra.Command {
	var from, to, subject string
	var overridden bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily totals in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := repository.TotalsFilter{SubjectID: subject, FromDate: from, ToDate: to}
			if overridden {
				f.State = domain.StateOverridden
			}
			list, err := app.Totals.List(context.Background(), f)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No daily totals found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTotalsTable(list))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&from), "from", "First work date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "Last work date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&subject, "subject", "", "Only this subject")
	cmd.Flags().BoolVar(&overridden, "overridden", false, "Only days under a manual override")

	return cmd
}

func newTotalsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show SUBJECT DATE",
		Short: "Show one day in detail",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key := domain.DayKey{SubjectID: args[0], WorkDate: args[1]}
			t, err := app.Totals.Get(ctx, key)
			if err != nil {
				return err
			}
			var o *domain.ManualOverride
			if t.IsOverridden() {
				if o, err = findOverride(ctx, app, key); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(t, o))
			return nil
		},
	}
}

func newTotalsEditCmd(app *App) *cobra.Command {
	var category domain.Category
	var hours float64
	var reason string

	cmd := &cobra.Command{
		Use:   "edit SUBJECT DATE",
		Short: "Set one category of a day, rebalancing or overriding as needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.EditRequest{
				Key:           domain.DayKey{SubjectID: args[0], WorkDate: args[1]},
				Category:      category,
				Value:         hours,
				Justification: reason,
			}

			res, err := editWithPrompt(context.Background(), app, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch res.Kind {
			case reconcile.KindRebalanced:
				fmt.Fprintf(out, "Rebalanced: regular %s h\n", formatter.SignedHours(res.RegularDelta))
			case reconcile.KindOverrideRequired:
				fmt.Fprintf(out, "Recorded %s: %s\n", res.Override.Kind, res.Reason)
			default:
				fmt.Fprintln(out, "Applied.")
			}
			fmt.Fprintln(out, formatter.FormatDay(res.Totals, res.Override))
			return nil
		},
	}

	cmd.Flags().Var(newCategoryValue(&category), "category", "Bucket to set")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New value in hours")
	cmd.Flags().StringVar(&reason, "reason", "", "Justification, required when the edit becomes an override")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

// editWithPrompt submits req and, on a terminal, asks for a justification
// when the edit needs one.
func editWithPrompt(ctx context.Context, app *App, req service.EditRequest) (*service.EditResult, error) {
	res, err := app.Reconcile.Edit(ctx, req)
	var ve *domain.ValidationError
	if err == nil || !errors.As(err, &ve) || ve.Field != "justification" || !app.interactive() {
		return res, err
	}

	ask := app.AskJustification
	if ask == nil {
		ask = huhJustification
	}
	text, askErr := ask(req, ve.Message)
	if askErr != nil {
		return nil, fmt.Errorf("reading justification: %w", askErr)
	}
	req.Justification = text
	return app.Reconcile.Edit(ctx, req)
}

func findOverride(ctx context.Context, app *App, key domain.DayKey) (*domain.ManualOverride, error) {
	list, err := app.Reconcile.ListOverrides(ctx, key.SubjectID)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.WorkDate == key.WorkDate {
			return o, nil
		}
	}
	return nil, nil
}
