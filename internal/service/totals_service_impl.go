package service

import (
	"context"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/repository"
)

type totalsService struct {
	totals repository.DailyTotalsRepo
	cache  *TotalsCache
}

func NewTotalsService(totals repository.DailyTotalsRepo, cache *TotalsCache) TotalsService {
	return &totalsService{totals: totals, cache: cache}
}

// Get serves a day from cache when present. Callers get a copy.
func (s *totalsService) Get(ctx context.Context, key domain.DayKey) (*domain.DailyTotals, error) {
	if t, ok := s.cache.Get(key); ok {
		return t, nil
	}
	t, err := s.totals.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Set(t)
	cp := *t
	return &cp, nil
}

func (s *totalsService) List(ctx context.Context, f repository.TotalsFilter) ([]*domain.DailyTotals, error) {
	return s.totals.List(ctx, f)
}
