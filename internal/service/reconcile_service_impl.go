package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/reconcile"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/alexanderramin/timecard/internal/segment"
	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"
)

// ReconcileOptions tunes edit retries and day recomputation.
type ReconcileOptions struct {
	Resolver segment.Resolver
	Workers  int
	// Attempts bounds how often an edit is retried after losing a version
	// race.
	Attempts   int
	RetryDelay time.Duration
}

type reconcileService struct {
	uow       db.UnitOfWork
	overrides repository.OverrideRepo
	locker    *reconcile.KeyedLocker
	cache     *TotalsCache
	opts      ReconcileOptions
	observer  UseCaseObserver
	now       func() time.Time
}

func NewReconcileService(
	uow db.UnitOfWork,
	overrides repository.OverrideRepo,
	locker *reconcile.KeyedLocker,
	cache *TotalsCache,
	opts ReconcileOptions,
	observers ...UseCaseObserver,
) ReconcileService {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Millisecond
	}
	return &reconcileService{
		uow:       uow,
		overrides: overrides,
		locker:    locker,
		cache:     cache,
		opts:      opts,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Edit applies one administrator change to a day. Edits of the same day are
// serialized in-process; edits racing from elsewhere are caught by the
// version check and retried on fresh data.
func (s *reconcileService) Edit(ctx context.Context, req EditRequest) (result *EditResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"subject":  req.Key.SubjectID,
		"date":     req.Key.WorkDate,
		"category": string(req.Category),
	}
	defer observe(ctx, s.observer, "totals-edit", startedAt, fields, &err)

	if err := validateKey(req.Key); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(req.Key)
	defer unlock()

	attempts := 0
	err = s.withRetry(ctx, func() error {
		attempts++
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			r, err := s.applyEdit(ctx, tx, req)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	})
	fields["attempts"] = attempts
	s.cache.Invalidate(req.Key)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("editing %s after %d attempts: %w", req.Key, attempts, domain.ErrConcurrentEdit)
		}
		return nil, err
	}

	result.Attempts = attempts
	fields["outcome"] = string(result.Kind)
	return result, nil
}

func (s *reconcileService) applyEdit(ctx context.Context, tx db.DBTX, req EditRequest) (*EditResult, error) {
	totals := repository.NewSQLiteTotalsRepo(tx)
	overrides := repository.NewSQLiteOverrideRepo(tx)

	current, err := totals.Get(ctx, req.Key)
	absent := isNotFound(err)
	if absent {
		// No shift produced this day; start from an empty allocation.
		current = &domain.DailyTotals{
			SubjectID: req.Key.SubjectID,
			WorkDate:  req.Key.WorkDate,
			State:     domain.StateComputed,
		}
	} else if err != nil {
		return nil, err
	}

	res := reconcile.Resolve(*current, reconcile.Edit{
		Category:      req.Category,
		Value:         req.Value,
		Justification: req.Justification,
	})
	if res.Kind == reconcile.KindRejected {
		return nil, res.Err
	}

	now := s.now()
	next := res.Totals
	next.UpdatedAt = now
	result := &EditResult{
		Kind:         res.Kind,
		Totals:       &next,
		RegularDelta: res.RegularDelta,
		Reason:       res.Reason,
	}
	if absent && res.Kind == reconcile.KindApplied && next.Hours.Sum() == 0 {
		// Nothing to store for a day that stays empty.
		return result, nil
	}

	if err := totals.Save(ctx, &next, current.Version); err != nil {
		return nil, err
	}
	if res.Kind != reconcile.KindOverrideRequired {
		return result, nil
	}

	o := &domain.ManualOverride{
		ID:         uuid.New().String(),
		SubjectID:  req.Key.SubjectID,
		WorkDate:   req.Key.WorkDate,
		Hours:      next.Hours,
		ClockTotal: next.ClockTotal(),
		Reason:     strings.TrimSpace(req.Justification),
		Kind:       res.OverrideKind,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := overrides.Upsert(ctx, o); err != nil {
		return nil, err
	}
	stored, err := overrides.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	result.Override = stored
	return result, nil
}

// ClearOverride removes the manual override of a day and recomputes the day
// from its shifts in the same transaction. It returns the recomputed totals,
// or nil when no shift contributes to the day.
func (s *reconcileService) ClearOverride(ctx context.Context, key domain.DayKey) (result *domain.DailyTotals, err error) {
	startedAt := time.Now()
	fields := map[string]any{"subject": key.SubjectID, "date": key.WorkDate}
	defer observe(ctx, s.observer, "override-clear", startedAt, fields, &err)

	if err := validateKey(key); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(key)
	defer unlock()

	err = s.withRetry(ctx, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			r, err := s.clear(ctx, tx, key)
			result = r
			return err
		})
	})
	s.cache.Invalidate(key)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("clearing %s: %w", key, domain.ErrConcurrentEdit)
		}
		return nil, err
	}
	return result, nil
}

func (s *reconcileService) clear(ctx context.Context, tx db.DBTX, key domain.DayKey) (*domain.DailyTotals, error) {
	totals := repository.NewSQLiteTotalsRepo(tx)

	if err := repository.NewSQLiteOverrideRepo(tx).Delete(ctx, key); err != nil {
		return nil, err
	}

	version := 0
	current, err := totals.Get(ctx, key)
	switch {
	case err == nil:
		version = current.Version
	case !isNotFound(err):
		return nil, err
	}

	fresh, err := recomputeDay(ctx, tx, s.opts.Resolver, s.opts.Workers, key)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		if current != nil {
			return nil, totals.Delete(ctx, key)
		}
		return nil, nil
	}

	fresh.UpdatedAt = s.now()
	if err := totals.Save(ctx, fresh, version); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *reconcileService) ListOverrides(ctx context.Context, subjectID string) ([]*domain.ManualOverride, error) {
	return s.overrides.List(ctx, subjectID)
}

func (s *reconcileService) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(uint(s.opts.Attempts)),
		retry.Delay(s.opts.RetryDelay),
		retry.MaxDelay(20*s.opts.RetryDelay),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, repository.ErrVersionConflict)
		}),
	)
}

func validateKey(key domain.DayKey) error {
	if strings.TrimSpace(key.SubjectID) == "" {
		return &domain.ValidationError{Field: "subject", Message: "must not be empty"}
	}
	_, err := parseDate("date", key.WorkDate)
	return err
}
