package rules

import "testing"

func TestNewAllocationStartsAtMinimum(t *testing.T) {
	a := NewAllocation()

	for _, attr := range Attributes {
		if got := a.Score(attr); got != MinBaseScore {
			t.Errorf("Score(%q) = %d, want %d", attr, got, MinBaseScore)
		}
	}
	if a.SpentPoints() != 0 {
		t.Errorf("SpentPoints() = %d, want 0", a.SpentPoints())
	}
	if a.RemainingPoints() != PointBuyBudget {
		t.Errorf("RemainingPoints() = %d, want %d", a.RemainingPoints(), PointBuyBudget)
	}
}

func TestAllocationIncrementDecrement(t *testing.T) {
	a := NewAllocation()

	if !a.Increment("Strength") {
		t.Fatal("Increment(Strength) from 8 should succeed")
	}
	if a.Score("Strength") != 9 {
		t.Errorf("Score(Strength) = %d, want 9", a.Score("Strength"))
	}
	if a.SpentPoints() != 1 {
		t.Errorf("SpentPoints() = %d, want 1", a.SpentPoints())
	}

	if !a.Decrement("Strength") {
		t.Fatal("Decrement(Strength) from 9 should succeed")
	}
	if a.Score("Strength") != 8 || a.SpentPoints() != 0 {
		t.Errorf("after refund: score %d spent %d, want 8 and 0", a.Score("Strength"), a.SpentPoints())
	}

	// Below minimum is rejected silently.
	if a.Decrement("Strength") {
		t.Error("Decrement(Strength) below minimum should be rejected")
	}
	if a.Score("Strength") != MinBaseScore {
		t.Errorf("rejected decrement changed state: score %d", a.Score("Strength"))
	}

	// Unknown attribute is rejected silently.
	if a.Increment("Luck") {
		t.Error("Increment(Luck) should be rejected")
	}
}

func TestAllocationRangeBound(t *testing.T) {
	a := NewAllocation()

	for i := 0; i < MaxBaseScore-MinBaseScore; i++ {
		if !a.Increment("Dexterity") {
			t.Fatalf("Increment(Dexterity) step %d should succeed", i)
		}
	}
	if a.Score("Dexterity") != MaxBaseScore {
		t.Fatalf("Score(Dexterity) = %d, want %d", a.Score("Dexterity"), MaxBaseScore)
	}
	if a.Increment("Dexterity") {
		t.Error("Increment(Dexterity) above maximum should be rejected")
	}
	if a.SpentPoints() != PointBuyCosts[MaxBaseScore] {
		t.Errorf("SpentPoints() = %d, want %d", a.SpentPoints(), PointBuyCosts[MaxBaseScore])
	}
}

func TestAllocationBudgetBound(t *testing.T) {
	a := NewAllocation()

	// 15/15/15 costs exactly 27 points.
	for _, attr := range []string{"Strength", "Dexterity", "Constitution"} {
		for a.Score(attr) < MaxBaseScore {
			if !a.Increment(attr) {
				t.Fatalf("Increment(%s) should succeed while budget remains", attr)
			}
		}
	}

	if a.RemainingPoints() != 0 {
		t.Fatalf("RemainingPoints() = %d, want 0", a.RemainingPoints())
	}

	// No further increment is affordable anywhere without a refund.
	for _, attr := range Attributes {
		if a.Increment(attr) {
			t.Errorf("Increment(%s) with empty budget should be rejected", attr)
		}
	}

	// Refunding one step makes a cheap increment affordable again.
	if !a.Decrement("Strength") {
		t.Fatal("Decrement(Strength) should succeed")
	}
	if !a.Increment("Wisdom") {
		t.Error("Increment(Wisdom) after refund should succeed")
	}
}

func TestAllocationSetScores(t *testing.T) {
	valid := map[string]int{
		"Strength": 15, "Dexterity": 15, "Constitution": 15,
		"Intelligence": 8, "Wisdom": 8, "Charisma": 8,
	}
	overBudget := map[string]int{
		"Strength": 15, "Dexterity": 15, "Constitution": 15,
		"Intelligence": 9, "Wisdom": 8, "Charisma": 8,
	}
	outOfRange := map[string]int{
		"Strength": 16, "Dexterity": 8, "Constitution": 8,
		"Intelligence": 8, "Wisdom": 8, "Charisma": 8,
	}
	missing := map[string]int{
		"Strength": 15,
	}

	a := NewAllocation()
	if !a.SetScores(valid) {
		t.Fatal("SetScores with a 27-point allocation should succeed")
	}
	if a.RemainingPoints() != 0 {
		t.Errorf("RemainingPoints() = %d, want 0", a.RemainingPoints())
	}

	for name, scores := range map[string]map[string]int{
		"over budget":  overBudget,
		"out of range": outOfRange,
		"missing keys": missing,
	} {
		before := a.Scores()
		if a.SetScores(scores) {
			t.Errorf("SetScores should reject %s allocation", name)
		}
		for attr, score := range before {
			if a.Score(attr) != score {
				t.Errorf("rejected SetScores (%s) mutated %s: %d -> %d", name, attr, score, a.Score(attr))
			}
		}
	}
}
