package reconcile

import (
	"math"
	"strings"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Kind tags the outcome of resolving an edit.
type Kind string

const (
	// KindApplied means the edited category was set and nothing else moved.
	KindApplied Kind = "applied"
	// KindRebalanced means regular absorbed the difference.
	KindRebalanced Kind = "rebalanced"
	// KindOverrideRequired means the day must carry a manual override.
	KindOverrideRequired Kind = "override_required"
	// KindRejected means the edit was refused; nothing may be written.
	KindRejected Kind = "rejected"
)

// Edit is one administrator change: set Category to Value hours.
type Edit struct {
	Category      domain.Category
	Value         float64
	Justification string
}

// Resolution is the decision for an Edit against the current totals.
type Resolution struct {
	Kind Kind
	// Totals is the resulting allocation for every kind but KindRejected.
	Totals domain.DailyTotals
	// RegularDelta is how far regular moved when rebalanced.
	RegularDelta float64
	// Reason explains why an override is required.
	Reason string
	// OverrideKind classifies the override allocation.
	OverrideKind domain.OverrideKind
	// Err carries the ValidationError of a rejected edit.
	Err error
}

const epsilon = 1e-9

// Resolve decides how an edit lands on current without side effects. The
// caller persists the result.
func Resolve(current domain.DailyTotals, edit Edit) Resolution {
	if _, ok := domain.ParseCategory(string(edit.Category)); !ok {
		return reject("category", "unknown category "+string(edit.Category))
	}
	if math.IsNaN(edit.Value) || math.IsInf(edit.Value, 0) {
		return reject("value", "must be a finite number of hours")
	}
	if edit.Value < 0 {
		return reject("value", "hours cannot be negative")
	}

	v := domain.RoundHours(edit.Value)
	clock := current.ClockTotal()
	proposed := current
	proposed.Hours.Set(edit.Category, v)

	if current.IsOverridden() {
		return requireOverride(proposed, clock, edit, "day already carries a manual override")
	}

	if edit.Category == domain.CategoryRegular {
		total := current.Hours.SumExcept(domain.CategoryRegular) + v
		if withinTolerance(total, clock) {
			return applied(proposed)
		}
		return requireOverride(proposed, clock, edit, "regular hours exceed the headroom left by the other categories")
	}

	others := current.Hours.SumExcept(edit.Category, domain.CategoryRegular)
	regular := current.Hours.Regular
	desired := domain.RoundHours(others + v + regular)

	if desired <= clock+domain.Tolerance+epsilon {
		if desired >= clock-domain.Tolerance-epsilon {
			return applied(proposed)
		}
		// Shrinking a category leaves a deficit; regular grows to fill it.
		return rebalanced(proposed, domain.RoundHours(regular+clock-desired), regular)
	}

	newRegular := domain.RoundHours(math.Max(0, regular-(desired-clock)))
	if others+v+newRegular <= clock+domain.Tolerance+epsilon {
		return rebalanced(proposed, newRegular, regular)
	}
	return requireOverride(proposed, clock, edit, "regular cannot absorb the excess over the clock total")
}

func applied(t domain.DailyTotals) Resolution {
	return Resolution{Kind: KindApplied, Totals: t}
}

func rebalanced(t domain.DailyTotals, newRegular, oldRegular float64) Resolution {
	t.Hours.Regular = newRegular
	return Resolution{
		Kind:         KindRebalanced,
		Totals:       t,
		RegularDelta: domain.RoundHours(newRegular - oldRegular),
	}
}

func requireOverride(t domain.DailyTotals, clock float64, edit Edit, reason string) Resolution {
	if strings.TrimSpace(edit.Justification) == "" {
		return reject("justification", reason+"; a justification is required")
	}
	t.State = domain.StateOverridden
	return Resolution{
		Kind:         KindOverrideRequired,
		Totals:       t,
		Reason:       reason,
		OverrideKind: domain.OverrideKindFor(t.Hours, clock),
	}
}

func reject(field, msg string) Resolution {
	return Resolution{Kind: KindRejected, Err: &domain.ValidationError{Field: field, Message: msg}}
}

func withinTolerance(total, clock float64) bool {
	return math.Abs(total-clock) <= domain.Tolerance+epsilon
}
