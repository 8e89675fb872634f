package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/repository"
)

type holidayService struct {
	holidays repository.HolidayRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewHolidayService(holidays repository.HolidayRepo, uow db.UnitOfWork, observers ...UseCaseObserver) HolidayService {
	return &holidayService{holidays: holidays, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Import upserts every holiday in one transaction. Existing dates take the
// new name. Totals are not recomputed; run the batch for affected dates.
func (s *holidayService) Import(ctx context.Context, holidays []domain.Holiday) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"count": len(holidays)}
	defer observe(ctx, s.observer, "holiday-import", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteHolidayRepo(tx)
		for _, h := range holidays {
			if err := repo.Upsert(ctx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(holidays), nil
}

func (s *holidayService) List(ctx context.Context) ([]domain.Holiday, error) {
	return s.holidays.List(ctx)
}

func (s *holidayService) Delete(ctx context.Context, date string) error {
	return s.holidays.Delete(ctx, date)
}
