package segment

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/timecard/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SkippedShift records a shift left out of aggregation and why.
type SkippedShift struct {
	ShiftID   string
	SubjectID string
	Err       error
}

// Report is the outcome of one forward pipeline run.
type Report struct {
	// Totals holds break-deducted totals ordered by subject then date.
	Totals []domain.DailyTotals
	// Skipped lists invalid or still-open shifts.
	Skipped []SkippedShift
	// UnknownTags lists shifts whose activity tag named no special bucket.
	// They were walked and aggregated normally.
	UnknownTags []SkippedShift
}

// Pipeline runs shifts through walk, classify, aggregate and break
// deduction. The holiday calendar is fixed for the lifetime of the Pipeline.
type Pipeline struct {
	resolver Resolver
	calendar domain.HolidayCalendar
	workers  int
}

// NewPipeline creates a Pipeline fanning out over at most workers goroutines.
func NewPipeline(r Resolver, cal domain.HolidayCalendar, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{resolver: r, calendar: cal, workers: workers}
}

// Run processes shifts. A bad shift is reported and skipped; it never
// aborts the run. The only error returned is ctx cancellation.
func (p *Pipeline) Run(ctx context.Context, shifts []*domain.ShiftInterval) (*Report, error) {
	report := &Report{}
	merged := NewAggregator(p.resolver)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, s := range shifts {
		if err := s.Validate(); err != nil {
			report.Skipped = append(report.Skipped, SkippedShift{ShiftID: s.ID, SubjectID: s.SubjectID, Err: err})
			continue
		}
		if _, known := domain.ParseActivity(s.Activity); !known {
			report.UnknownTags = append(report.UnknownTags, SkippedShift{
				ShiftID:   s.ID,
				SubjectID: s.SubjectID,
				Err:       fmt.Errorf("shift %s tag %q: %w", s.ID, s.Activity, domain.ErrUnknownActivityTag),
			})
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			local := p.aggregateShift(s)
			mu.Lock()
			merged.Merge(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running pipeline: %w", err)
	}

	pre := merged.Totals()
	report.Totals = make([]domain.DailyTotals, 0, len(pre))
	for _, t := range pre {
		report.Totals = append(report.Totals, ApplyBreaks(t))
	}
	return report, nil
}

// Segment returns the classified slices of one shift, or the reason it
// cannot be aggregated.
func (p *Pipeline) Segment(s *domain.ShiftInterval) ([]domain.SubInterval, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var subs []domain.SubInterval
	for sub := range SegmentShift(p.resolver, p.calendar, s) {
		subs = append(subs, sub)
	}
	return subs, nil
}

func (p *Pipeline) aggregateShift(s *domain.ShiftInterval) *Aggregator {
	agg := NewAggregator(p.resolver)
	for sub := range SegmentShift(p.resolver, p.calendar, s) {
		agg.Add(sub)
	}
	return agg
}
