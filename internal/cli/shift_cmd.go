package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/segment"
	"github.com/spf13/cobra"
)

func newShiftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Capture and inspect clocked shifts",
	}

	cmd.AddCommand(
		newShiftInCmd(app),
		newShiftOutCmd(app),
		newShiftAddCmd(app),
		newShiftListCmd(app),
		newShiftShowCmd(app),
		newShiftRemoveCmd(app),
	)

	return cmd
}

func newShiftInCmd(app *App) *cobra.Command {
	var at, activity string

	cmd := &cobra.Command{
		Use:   "in SUBJECT",
		Short: "Clock a subject in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseInstant(at, app.Resolver, time.Now())
			if err != nil {
				return err
			}
			s, err := app.Shifts.ClockIn(context.Background(), args[0], start, activity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clocked in %s at %s (%s)\n",
				s.SubjectID, formatter.LocalTime(app.Resolver.LocalOf(s.Start)), formatter.TruncID(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Clock-in time (RFC3339 or local \"YYYY-MM-DD HH:MM\"; default now)")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity tag: driving, passenger or equipment")

	return cmd
}

func newShiftOutCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "out SUBJECT",
		Short: "Clock a subject out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			end, err := parseInstant(at, app.Resolver, time.Now())
			if err != nil {
				return err
			}
			s, err := app.Shifts.ClockOut(context.Background(), args[0], end)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clocked out %s at %s after %s h\n",
				s.SubjectID, formatter.LocalTime(app.Resolver.LocalOf(*s.End)),
				formatter.Hours(domain.RoundHours(s.Duration().Hours())))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Clock-out time (RFC3339 or local \"YYYY-MM-DD HH:MM\"; default now)")

	return cmd
}

func newShiftAddCmd(app *App) *cobra.Command {
	var startFlag, endFlag, activity string

	cmd := &cobra.Command{
		Use:   "add SUBJECT",
		Short: "Record a complete shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			start, err := parseInstant(startFlag, app.Resolver, now)
			if err != nil {
				return err
			}
			end, err := parseInstant(endFlag, app.Resolver, now)
			if err != nil {
				return err
			}
			s := &domain.ShiftInterval{
				SubjectID: args[0],
				Start:     start,
				End:       &end,
				Activity:  activity,
			}
			if err := app.Shifts.Record(context.Background(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s h shift for %s (%s)\n",
				formatter.Hours(domain.RoundHours(s.Duration().Hours())), s.SubjectID, s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Shift start (RFC3339 or local \"YYYY-MM-DD HH:MM\")")
	cmd.Flags().StringVar(&endFlag, "end", "", "Shift end (RFC3339 or local \"YYYY-MM-DD HH:MM\")")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity tag: driving, passenger or equipment")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newShiftListCmd(app *App) *cobra.Command {
	var subject, from, to string
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts by local start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := repository.ShiftFilter{SubjectID: subject, OpenOnly: openOnly}
			if from != "" {
				start, err := dayStartUTC(from, app.Resolver)
				if err != nil {
					return err
				}
				f.StartFrom = start
			}
			if to != "" {
				end, err := dayStartUTC(to, app.Resolver)
				if err != nil {
					return err
				}
				f.StartTo = end.AddDate(0, 0, 1)
			}

			shifts, err := app.Shifts.List(context.Background(), f)
			if err != nil {
				return err
			}
			if len(shifts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shifts found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatShifts(shifts, app.Resolver.LocalOf))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Only this subject")
	cmd.Flags().Var(newDateValue(&from), "from", "First local start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "Last local start date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Only shifts still clocked in")

	return cmd
}

func newShiftShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show how a shift splits into payroll categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Shifts.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			holidays, err := app.Holidays.List(ctx)
			if err != nil {
				return err
			}
			p := segment.NewPipeline(app.Resolver, domain.NewHolidayCalendar(holidays), 1)
			subs, err := p.Segment(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSegments(s, subs, app.Resolver.LocalOf))
			return nil
		},
	}
}

func newShiftRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Shifts.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted shift %s. Re-run payroll for its dates.\n", args[0])
			return nil
		},
	}
}
