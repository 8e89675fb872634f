package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/segment"
)

type payrollService struct {
	uow      db.UnitOfWork
	shifts   repository.ShiftRepo
	holidays repository.HolidayRepo
	resolver segment.Resolver
	workers  int
	cache    *TotalsCache
	observer UseCaseObserver
	now      func() time.Time
}

func NewPayrollService(
	uow db.UnitOfWork,
	shifts repository.ShiftRepo,
	holidays repository.HolidayRepo,
	resolver segment.Resolver,
	workers int,
	cache *TotalsCache,
	observers ...UseCaseObserver,
) PayrollService {
	return &payrollService{
		uow:      uow,
		shifts:   shifts,
		holidays: holidays,
		resolver: resolver,
		workers:  workers,
		cache:    cache,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run recomputes daily totals for work dates in [req.From, req.To]. Overridden
// days are left alone. Rows whose values did not change keep their version.
// Computed rows in range that no longer have any hours are removed.
func (s *payrollService) Run(ctx context.Context, req RunRequest) (result *RunResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"from": req.From, "to": req.To}
	if req.SubjectID != "" {
		fields["subject"] = req.SubjectID
	}
	var warnings []string
	defer func() { emit(ctx, s.observer, "payroll-run", startedAt, fields, warnings, err) }()

	from, err := parseDate("from", req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, &domain.ValidationError{Field: "to", Message: "must not be before from"}
	}

	cal, err := loadCalendar(ctx, s.holidays)
	if err != nil {
		return nil, err
	}
	endAfter, startBefore := shiftWindow(from, to)
	shifts, err := s.shifts.List(ctx, repository.ShiftFilter{
		SubjectID: req.SubjectID,
		StartTo:   startBefore,
		EndAfter:  endAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("loading shifts: %w", err)
	}

	report, err := segment.NewPipeline(s.resolver, cal, s.workers).Run(ctx, shifts)
	if err != nil {
		return nil, err
	}

	for _, sk := range report.Skipped {
		warnings = append(warnings, "skipped: "+sk.Err.Error())
	}
	for _, sk := range report.UnknownTags {
		warnings = append(warnings, sk.Err.Error())
	}

	result = &RunResult{
		From:         req.From,
		To:           req.To,
		ShiftsLoaded: len(shifts),
		Skipped:      report.Skipped,
		UnknownTags:  report.UnknownTags,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.apply(ctx, tx, req, report.Totals, result)
	})
	s.cache.InvalidateAll()
	if err != nil {
		return nil, fmt.Errorf("writing daily totals: %w", err)
	}

	fields["written"] = result.Written
	fields["unchanged"] = result.Unchanged
	fields["skipped_overridden"] = result.SkippedOverridden
	fields["removed"] = result.Removed
	fields["skipped_shifts"] = len(result.Skipped)
	return result, nil
}

func (s *payrollService) apply(ctx context.Context, tx db.DBTX, req RunRequest, computed []domain.DailyTotals, result *RunResult) error {
	totals := repository.NewSQLiteTotalsRepo(tx)
	overrides := repository.NewSQLiteOverrideRepo(tx)

	overridden, err := overrides.ListKeys(ctx)
	if err != nil {
		return err
	}
	existing, err := totals.List(ctx, repository.TotalsFilter{
		SubjectID: req.SubjectID,
		FromDate:  req.From,
		ToDate:    req.To,
	})
	if err != nil {
		return err
	}
	stored := make(map[domain.DayKey]*domain.DailyTotals, len(existing))
	for _, t := range existing {
		stored[t.Key()] = t
	}

	now := s.now()
	fresh := make(map[domain.DayKey]struct{}, len(computed))
	for _, t := range computed {
		if t.WorkDate < req.From || t.WorkDate > req.To {
			continue
		}
		key := t.Key()
		fresh[key] = struct{}{}
		if _, ok := overridden[key]; ok {
			result.SkippedOverridden++
			continue
		}

		t.UpdatedAt = now
		expected := 0
		if cur, ok := stored[key]; ok {
			if cur.SameValues(&t) {
				result.Unchanged++
				continue
			}
			expected = cur.Version
		}
		if err := totals.Save(ctx, &t, expected); err != nil {
			return err
		}
		result.Written++
		result.Totals = append(result.Totals, t)
	}

	for _, t := range existing {
		key := t.Key()
		if _, ok := fresh[key]; ok {
			continue
		}
		if _, ok := overridden[key]; ok || t.IsOverridden() {
			continue
		}
		if err := totals.Delete(ctx, key); err != nil {
			return err
		}
		result.Removed++
	}
	return nil
}

// recomputeDay runs the forward pipeline for a single day inside tx and
// returns its totals, or nil when no shift contributes hours to it.
func recomputeDay(ctx context.Context, tx db.DBTX, resolver segment.Resolver, workers int, key domain.DayKey) (*domain.DailyTotals, error) {
	date, err := parseDate("date", key.WorkDate)
	if err != nil {
		return nil, err
	}
	cal, err := loadCalendar(ctx, repository.NewSQLiteHolidayRepo(tx))
	if err != nil {
		return nil, err
	}
	endAfter, startBefore := shiftWindow(date, date)
	shifts, err := repository.NewSQLiteShiftRepo(tx).List(ctx, repository.ShiftFilter{
		SubjectID: key.SubjectID,
		StartTo:   startBefore,
		EndAfter:  endAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("loading shifts: %w", err)
	}
	report, err := segment.NewPipeline(resolver, cal, workers).Run(ctx, shifts)
	if err != nil {
		return nil, err
	}
	for _, t := range report.Totals {
		if t.Key() == key {
			return &t, nil
		}
	}
	return nil, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
