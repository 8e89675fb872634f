package domain

import (
	"fmt"
	"time"
)

// MinShiftDuration is the shortest interval treated as a real shift.
const MinShiftDuration = 10 * time.Minute

// ShiftInterval is a clocked work period as captured at the terminal.
type ShiftInterval struct {
	ID        string
	SubjectID string
	Start     time.Time
	End       *time.Time
	Activity  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the subject has not clocked out yet.
func (s *ShiftInterval) IsOpen() bool {
	return s.End == nil
}

// Duration returns the clocked length, zero while open.
func (s *ShiftInterval) Duration() time.Duration {
	if s.End == nil {
		return 0
	}
	return s.End.Sub(s.Start)
}

// Validate checks the interval can be aggregated.
func (s *ShiftInterval) Validate() error {
	if s.End == nil {
		return fmt.Errorf("shift %s: %w", s.ID, ErrOpenInterval)
	}
	if !s.End.After(s.Start) {
		return fmt.Errorf("shift %s: end %s not after start %s: %w",
			s.ID, s.End.UTC().Format(time.RFC3339), s.Start.UTC().Format(time.RFC3339), ErrInvalidInterval)
	}
	if d := s.Duration(); d < MinShiftDuration {
		return fmt.Errorf("shift %s: duration %s below %s: %w", s.ID, d, MinShiftDuration, ErrInvalidInterval)
	}
	return nil
}

// Close records the clock-out instant.
func (s *ShiftInterval) Close(end time.Time, now time.Time) error {
	if s.End != nil {
		return fmt.Errorf("shift %s already closed", s.ID)
	}
	if !end.After(s.Start) {
		return &ValidationError{Field: "end", Message: "must be after start"}
	}
	e := end.UTC()
	s.End = &e
	s.UpdatedAt = now
	return nil
}

// SubInterval is a contiguous slice of a shift inside one boundary window.
type SubInterval struct {
	ShiftID   string
	SubjectID string
	Start     time.Time
	End       time.Time
	Category  Category
	// WorkDate pins the slice to a local date. Empty means the local date of
	// the midpoint decides.
	WorkDate string
}

func (s SubInterval) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Midpoint is the instant halfway through the slice.
func (s SubInterval) Midpoint() time.Time {
	return s.Start.Add(s.Duration() / 2)
}
