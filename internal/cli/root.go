package cli

import (
	"github.com/alexanderramin/timecard/internal/segment"
	"github.com/alexanderramin/timecard/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Shifts    service.ShiftService
	Holidays  service.HolidayService
	Payroll   service.PayrollService
	Totals    service.TotalsService
	Reconcile service.ReconcileService

	// Resolver turns wall-clock input into UTC and back.
	Resolver segment.Resolver

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// AskJustification prompts for an override reason. Defaults to a huh form.
	AskJustification func(req service.EditRequest, reason string) (string, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timecard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timecard",
		Short:         "Shift capture, payroll categorization and reconciliation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newShiftCmd(app),
		newHolidayCmd(app),
		newRunCmd(app),
		newTotalsCmd(app),
		newOverrideCmd(app),
		newExportCmd(app),
	)

	return root
}
