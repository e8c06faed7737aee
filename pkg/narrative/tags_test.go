package narrative

import "testing"

func TestParseDamageAndCheck(t *testing.T) {
	ev, clean := Parse("You stumble. [DAMAGE: 5] [CHECK: Perception]")

	if clean != "You stumble." {
		t.Errorf("clean = %q, want %q", clean, "You stumble.")
	}
	if !ev.HasDamage || ev.Damage != 5 {
		t.Errorf("damage = (%d, %v), want (5, true)", ev.Damage, ev.HasDamage)
	}
	if ev.Check == nil {
		t.Fatal("expected a check event")
	}
	if !ev.Check.Recognized || ev.Check.Name != "Perception" {
		t.Errorf("check = %+v, want recognized Perception", ev.Check)
	}
	if ev.TimeAdvance != 0 {
		t.Errorf("TimeAdvance = %d, want 0", ev.TimeAdvance)
	}
}

func TestParseTimeAdvance(t *testing.T) {
	ev, clean := Parse("Night falls over the road. [TIME: +90]")

	if clean != "Night falls over the road." {
		t.Errorf("clean = %q", clean)
	}
	if ev.TimeAdvance != 90 {
		t.Errorf("TimeAdvance = %d, want 90", ev.TimeAdvance)
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	ev, clean := Parse("Ouch. [damage: 3] [check: stealth] [time: +10]")

	if clean != "Ouch." {
		t.Errorf("clean = %q", clean)
	}
	if ev.Damage != 3 || ev.Check == nil || ev.Check.Name != "Stealth" || ev.TimeAdvance != 10 {
		t.Errorf("events = %+v", ev)
	}
}

func TestParseFreeformCheck(t *testing.T) {
	ev, clean := Parse("[CHECK: something unusual]")

	if clean != "" {
		t.Errorf("clean = %q, want empty", clean)
	}
	if ev.Check == nil {
		t.Fatal("expected a check event")
	}
	if ev.Check.Recognized {
		t.Error("freeform check should not be marked recognized")
	}
	if ev.Check.Name != "something unusual" {
		t.Errorf("check name = %q, want verbatim trimmed text", ev.Check.Name)
	}
}

func TestParseCheckSubstringMatch(t *testing.T) {
	ev, _ := Parse("Careful now. [CHECK: make a sleight of hand attempt]")

	if ev.Check == nil || !ev.Check.Recognized || ev.Check.Name != "Sleight of Hand" {
		t.Errorf("check = %+v, want recognized Sleight of Hand", ev.Check)
	}
}

func TestParseFirstOccurrenceOnly(t *testing.T) {
	ev, clean := Parse("[DAMAGE: 2] and later [DAMAGE: 7]")

	if ev.Damage != 2 {
		t.Errorf("Damage = %d, want first occurrence 2", ev.Damage)
	}
	if clean != "and later [DAMAGE: 7]" {
		t.Errorf("clean = %q, second tag should survive", clean)
	}
}

func TestParseMalformedTags(t *testing.T) {
	tests := []string{
		"[DAMAGE: lots]",
		"[DAMAGE:]",
		"[TIME: -30]", // time advance requires a leading '+'
		"[TIME: 30]",
		"[CHECK]",
	}

	for _, text := range tests {
		ev, clean := Parse(text)
		if ev.HasDamage || ev.Check != nil || ev.TimeAdvance != 0 {
			t.Errorf("Parse(%q) produced events %+v, want none", text, ev)
		}
		if clean != text {
			t.Errorf("Parse(%q) clean = %q, malformed tag should remain", text, clean)
		}
	}
}

func TestParseNoTags(t *testing.T) {
	ev, clean := Parse("  The tavern is quiet.  ")
	if ev.HasDamage || ev.Check != nil || ev.TimeAdvance != 0 {
		t.Errorf("unexpected events %+v", ev)
	}
	if clean != "The tavern is quiet." {
		t.Errorf("clean = %q", clean)
	}
}
