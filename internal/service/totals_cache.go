package service

import (
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/maypok86/otter/v2"
)

// TotalsCache keeps recently read daily totals. Every write path invalidates
// the keys it touched so readers never see a value older than the last
// committed application.
type TotalsCache struct {
	cache *otter.Cache[domain.DayKey, domain.DailyTotals]
}

func NewTotalsCache(size int) *TotalsCache {
	if size < 1 {
		size = 1
	}
	return &TotalsCache{
		cache: otter.Must(&otter.Options[domain.DayKey, domain.DailyTotals]{
			MaximumSize:     size,
			InitialCapacity: min(size, 1024),
		}),
	}
}

func (c *TotalsCache) Get(key domain.DayKey) (*domain.DailyTotals, bool) {
	t, ok := c.cache.GetIfPresent(key)
	if !ok {
		return nil, false
	}
	return &t, true
}

func (c *TotalsCache) Set(t *domain.DailyTotals) {
	c.cache.Set(t.Key(), *t)
}

func (c *TotalsCache) Invalidate(key domain.DayKey) {
	c.cache.Invalidate(key)
}

func (c *TotalsCache) InvalidateAll() {
	c.cache.InvalidateAll()
}
