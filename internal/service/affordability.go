package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jask/kidbuckets/internal/database/repository"
)

var hundred = decimal.NewFromInt(100)

// ProgressPercent returns min(100, 100 * available / target). Targets are
// validated positive at the write boundary; a non-positive target that
// slips through reads as instantly satisfied rather than dividing by zero.
func ProgressPercent(goal repository.Goal, available decimal.Decimal) decimal.Decimal {
	if goal.TargetAmount.Sign() <= 0 {
		return hundred
	}
	pct := available.Div(goal.TargetAmount).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// IsAffordable reports whether the available balance covers the goal.
func IsAffordable(goal repository.Goal, available decimal.Decimal) bool {
	return available.GreaterThanOrEqual(goal.TargetAmount)
}

// SortForDisplay orders goals closest-to-completion first: descending by
// available/target. Ties keep the input (creation) order so re-renders with
// unchanged data are deterministic. The input slice is not modified.
func SortForDisplay(goals []repository.Goal, available decimal.Decimal) []repository.Goal {
	out := make([]repository.Goal, len(goals))
	copy(out, goals)
	sort.SliceStable(out, func(i, j int) bool {
		return completionRatio(out[i], available).GreaterThan(completionRatio(out[j], available))
	})
	return out
}

func completionRatio(g repository.Goal, available decimal.Decimal) decimal.Decimal {
	if g.TargetAmount.Sign() <= 0 {
		// treated as satisfied; sorts ahead of any finite ratio
		return decimal.New(1, 12)
	}
	return available.Div(g.TargetAmount)
}
