package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/timecard/internal/cli"
	"github.com/alexanderramin/timecard/internal/config"
	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/reconcile"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/segment"
	"github.com/alexanderramin/timecard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	shiftRepo := repository.NewSQLiteShiftRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	totalsRepo := repository.NewSQLiteTotalsRepo(database)
	overrideRepo := repository.NewSQLiteOverrideRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	resolver := segment.NewResolver(cfg.StandardOffset, cfg.ExtendedOffset)
	cache := service.NewTotalsCache(cfg.CacheSize)

	app := &cli.App{
		Shifts:   service.NewShiftService(shiftRepo, uow, observers...),
		Holidays: service.NewHolidayService(holidayRepo, uow, observers...),
		Payroll:  service.NewPayrollService(uow, shiftRepo, holidayRepo, resolver, cfg.Workers, cache, observers...),
		Totals:   service.NewTotalsService(totalsRepo, cache),
		Reconcile: service.NewReconcileService(uow, overrideRepo, reconcile.NewKeyedLocker(), cache,
			service.ReconcileOptions{
				Resolver: resolver,
				Workers:  cfg.Workers,
				Attempts: cfg.EditAttempts,
			}, observers...),
		Resolver: resolver,
	}

	// Only prompt for justifications on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
