package rules

// Allocation is a transient point-buy worksheet used during character
// creation. All six attributes start at the minimum score and are
// adjusted one step at a time. Adjustments that would leave the legal
// range or overspend the budget are rejected atomically with no state
// change; rejection is an affordance for the UI, not an error.
type Allocation struct {
	scores map[string]int
}

// NewAllocation returns an allocation with every attribute at the
// minimum score (zero points spent).
func NewAllocation() *Allocation {
	scores := make(map[string]int, len(Attributes))
	for _, attr := range Attributes {
		scores[attr] = MinBaseScore
	}
	return &Allocation{scores: scores}
}

// Score returns the current base score for an attribute, or 0 for an
// unknown attribute name.
func (a *Allocation) Score(attr string) int {
	return a.scores[attr]
}

// Scores returns a copy of the current base scores.
func (a *Allocation) Scores() map[string]int {
	out := make(map[string]int, len(a.scores))
	for k, v := range a.scores {
		out[k] = v
	}
	return out
}

// SpentPoints returns the total point cost of the current scores.
func (a *Allocation) SpentPoints() int {
	total := 0
	for _, score := range a.scores {
		total += PointBuyCosts[score]
	}
	return total
}

// RemainingPoints returns the unspent portion of the budget.
func (a *Allocation) RemainingPoints() int {
	return PointBuyBudget - a.SpentPoints()
}

// Increment raises an attribute by one point. Returns false without
// changing state if the attribute is unknown, the score is already at
// the maximum, or the marginal cost exceeds the remaining budget.
func (a *Allocation) Increment(attr string) bool {
	return a.adjust(attr, 1)
}

// Decrement lowers an attribute by one point, refunding its cost.
// Returns false without changing state if the attribute is unknown or
// already at the minimum.
func (a *Allocation) Decrement(attr string) bool {
	return a.adjust(attr, -1)
}

func (a *Allocation) adjust(attr string, direction int) bool {
	current, ok := a.scores[attr]
	if !ok {
		return false
	}

	next := current + direction
	if next < MinBaseScore || next > MaxBaseScore {
		return false
	}

	costDiff := PointBuyCosts[next] - PointBuyCosts[current]
	if a.RemainingPoints()-costDiff < 0 {
		return false
	}

	a.scores[attr] = next
	return true
}

// SetScores replaces the allocation wholesale, validating that every
// attribute is present, in range, and that the total cost fits the
// budget. Used when a complete allocation arrives in one request
// rather than as incremental adjustments. Returns false without
// changing state on any violation.
func (a *Allocation) SetScores(scores map[string]int) bool {
	if len(scores) != len(Attributes) {
		return false
	}

	total := 0
	for _, attr := range Attributes {
		score, ok := scores[attr]
		if !ok || score < MinBaseScore || score > MaxBaseScore {
			return false
		}
		total += PointBuyCosts[score]
	}
	if total > PointBuyBudget {
		return false
	}

	for _, attr := range Attributes {
		a.scores[attr] = scores[attr]
	}
	return true
}
