package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/google/uuid"
)

type shiftService struct {
	shifts   repository.ShiftRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewShiftService(shifts repository.ShiftRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ShiftService {
	return &shiftService{
		shifts:   shifts,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *shiftService) ClockIn(ctx context.Context, subjectID string, at time.Time, activity string) (shift *domain.ShiftInterval, err error) {
	startedAt := time.Now()
	fields := map[string]any{"subject": subjectID}
	defer observe(ctx, s.observer, "clock-in", startedAt, fields, &err)

	if strings.TrimSpace(subjectID) == "" {
		return nil, &domain.ValidationError{Field: "subject", Message: "must not be empty"}
	}

	now := s.now()
	shift = &domain.ShiftInterval{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Start:     at.UTC(),
		Activity:  strings.TrimSpace(activity),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteShiftRepo(tx)
		open, err := repo.GetOpenBySubject(ctx, subjectID)
		if err == nil {
			return fmt.Errorf("subject %s already clocked in at %s", subjectID, open.Start.Format(time.RFC3339))
		}
		if !isNotFound(err) {
			return err
		}
		return repo.Create(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) Record(ctx context.Context, shift *domain.ShiftInterval) error {
	if strings.TrimSpace(shift.SubjectID) == "" {
		return &domain.ValidationError{Field: "subject", Message: "must not be empty"}
	}
	if shift.End != nil && !shift.End.After(shift.Start) {
		return &domain.ValidationError{Field: "end", Message: "must be after start"}
	}
	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}
	now := s.now()
	shift.Start = shift.Start.UTC()
	if shift.End != nil {
		end := shift.End.UTC()
		shift.End = &end
	}
	shift.CreatedAt = now
	shift.UpdatedAt = now
	return s.shifts.Create(ctx, shift)
}

func (s *shiftService) ClockOut(ctx context.Context, subjectID string, at time.Time) (shift *domain.ShiftInterval, err error) {
	startedAt := time.Now()
	fields := map[string]any{"subject": subjectID}
	defer observe(ctx, s.observer, "clock-out", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteShiftRepo(tx)
		open, err := repo.GetOpenBySubject(ctx, subjectID)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("subject %s is not clocked in: %w", subjectID, err)
			}
			return err
		}
		if err := open.Close(at, s.now()); err != nil {
			return err
		}
		shift = open
		return repo.Update(ctx, open)
	})
	if err != nil {
		return nil, err
	}
	fields["hours"] = domain.RoundHours(shift.Duration().Hours())
	return shift, nil
}

func (s *shiftService) GetByID(ctx context.Context, id string) (*domain.ShiftInterval, error) {
	return s.shifts.GetByID(ctx, id)
}

func (s *shiftService) List(ctx context.Context, f repository.ShiftFilter) ([]*domain.ShiftInterval, error) {
	return s.shifts.List(ctx, f)
}

func (s *shiftService) Delete(ctx context.Context, id string) error {
	return s.shifts.Delete(ctx, id)
}
