package session

import (
	"errors"
	"testing"

	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/narrative"
	"github.com/jwebster45206/endless-dnd/pkg/worldclock"
)

func testSession(t *testing.T) *Session {
	t.Helper()

	sheet, err := character.Finalize(&character.Draft{
		Name:   "Korga Ironfist",
		Gender: "Female",
		Race:   "Dwarf",
		Class:  "Fighter",
		Base: map[string]int{
			"Strength": 15, "Dexterity": 10, "Constitution": 14,
			"Intelligence": 8, "Wisdom": 10, "Charisma": 8,
		},
		Skills: []string{"Athletics", "Intimidation"},
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return New(sheet)
}

func TestNewSession(t *testing.T) {
	s := testSession(t)

	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %q, want idle", s.Phase)
	}
	if s.Clock.Minutes != worldclock.StartMinutes {
		t.Errorf("Clock.Minutes = %d, want %d", s.Clock.Minutes, worldclock.StartMinutes)
	}
	if s.Position != worldclock.StartPosition {
		t.Errorf("Position = %+v, want %+v", s.Position, worldclock.StartPosition)
	}
	if len(s.Token) != tokenLength {
		t.Errorf("Token length = %d, want %d", len(s.Token), tokenLength)
	}
}

func TestTokenTag(t *testing.T) {
	tok := Token("ABCD2345")
	if got := tok.Tag("System Instruction: look around"); got != "ABCD2345 System Instruction: look around" {
		t.Errorf("Tag() = %q", got)
	}
}

func TestSanitizedStripsToken(t *testing.T) {
	s := testSession(t)
	clean := s.Sanitized()

	if clean.Token != "" {
		t.Error("Sanitized() should strip the token")
	}
	if s.Token == "" {
		t.Error("Sanitized() must not mutate the original")
	}
	if clean.ID != s.ID {
		t.Error("Sanitized() should preserve the ID")
	}
}

func TestNarrativeTurnLifecycle(t *testing.T) {
	s := testSession(t)

	if err := s.BeginNarrative(); err != nil {
		t.Fatalf("BeginNarrative() error = %v", err)
	}
	if err := s.BeginNarrative(); !errors.Is(err, ErrBusy) {
		t.Errorf("second BeginNarrative() error = %v, want ErrBusy", err)
	}

	hpBefore := s.Character.HP
	notes := s.CompleteNarrative(narrative.Events{Damage: 5, HasDamage: true, TimeAdvance: 30})

	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %q, want idle after plain narrative", s.Phase)
	}
	if s.Character.HP != hpBefore-5 {
		t.Errorf("HP = %d, want %d", s.Character.HP, hpBefore-5)
	}
	if s.Clock.Minutes != worldclock.StartMinutes+30 {
		t.Errorf("Clock.Minutes = %d, want %d", s.Clock.Minutes, worldclock.StartMinutes+30)
	}
	if len(notes) != 2 {
		t.Errorf("notifications = %+v, want damage and time", notes)
	}
}

func TestCheckLifecycle(t *testing.T) {
	s := testSession(t)

	// Roll with nothing pending is rejected.
	if err := s.BeginCheckResolution(); !errors.Is(err, ErrNoPendingCheck) {
		t.Errorf("BeginCheckResolution() error = %v, want ErrNoPendingCheck", err)
	}

	// DM commands a check.
	if err := s.BeginNarrative(); err != nil {
		t.Fatalf("BeginNarrative() error = %v", err)
	}
	s.CompleteNarrative(narrative.Events{Check: &narrative.SkillRef{Name: "Perception", Recognized: true}})

	if s.Phase != PhaseAwaitingCheck {
		t.Fatalf("Phase = %q, want awaiting_check", s.Phase)
	}
	if s.PendingCheck == nil || s.PendingCheck.Name != "Perception" {
		t.Fatalf("PendingCheck = %+v", s.PendingCheck)
	}

	// Narrative submission is blocked while the check is pending.
	if err := s.BeginNarrative(); !errors.Is(err, ErrBusy) {
		t.Errorf("BeginNarrative() while check pending = %v, want ErrBusy", err)
	}

	// Two-phase resolution: the pending check survives until the
	// continuation narrative arrives.
	if err := s.BeginCheckResolution(); err != nil {
		t.Fatalf("BeginCheckResolution() error = %v", err)
	}
	if s.PendingCheck == nil {
		t.Fatal("PendingCheck should survive until the continuation narrative")
	}

	s.CompleteNarrative(narrative.Events{})
	if s.PendingCheck != nil {
		t.Error("PendingCheck should clear after the continuation narrative")
	}
	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %q, want idle", s.Phase)
	}
}

func TestAbortNarrativePreservesState(t *testing.T) {
	s := testSession(t)

	// Plain turn failure returns to idle.
	if err := s.BeginNarrative(); err != nil {
		t.Fatal(err)
	}
	s.AbortNarrative()
	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %q, want idle after abort", s.Phase)
	}

	// Failure during check resolution returns to awaiting_check so the
	// player can retry the roll transmission.
	if err := s.BeginNarrative(); err != nil {
		t.Fatal(err)
	}
	s.CompleteNarrative(narrative.Events{Check: &narrative.SkillRef{Name: "Stealth", Recognized: true}})
	if err := s.BeginCheckResolution(); err != nil {
		t.Fatal(err)
	}
	clockBefore := s.Clock.Minutes
	hpBefore := s.Character.HP

	s.AbortNarrative()
	if s.Phase != PhaseAwaitingCheck {
		t.Errorf("Phase = %q, want awaiting_check after failed continuation", s.Phase)
	}
	if s.PendingCheck == nil {
		t.Error("PendingCheck should survive a failed continuation")
	}
	if s.Clock.Minutes != clockBefore || s.Character.HP != hpBefore {
		t.Error("abort must leave rule state untouched")
	}
}

func TestTravel(t *testing.T) {
	s := testSession(t)

	dest := worldclock.Position{X: s.Position.X + 360, Y: s.Position.Y}
	plan := worldclock.EstimateTravel(s.Position, dest)

	if err := s.Travel(plan, "Waterdeep"); err != nil {
		t.Fatalf("Travel() error = %v", err)
	}
	if s.Position != dest {
		t.Errorf("Position = %+v, want %+v", s.Position, dest)
	}
	if s.Character.CurrentLocation != "Waterdeep" {
		t.Errorf("CurrentLocation = %q, want Waterdeep", s.Character.CurrentLocation)
	}
	if s.Clock.Minutes != worldclock.StartMinutes+plan.Hours*60 {
		t.Errorf("Clock.Minutes = %d, want %d", s.Clock.Minutes, worldclock.StartMinutes+plan.Hours*60)
	}

	// Travel is rejected while a narrative is outstanding.
	if err := s.BeginNarrative(); err != nil {
		t.Fatal(err)
	}
	if err := s.Travel(plan, ""); !errors.Is(err, ErrBusy) {
		t.Errorf("Travel() while busy = %v, want ErrBusy", err)
	}
}

func TestRecentHistory(t *testing.T) {
	s := testSession(t)
	for i := 0; i < 15; i++ {
		s.AppendMessage("user", "message")
	}

	if got := len(s.RecentHistory(10)); got != 10 {
		t.Errorf("RecentHistory(10) returned %d messages", got)
	}
	if got := len(s.RecentHistory(0)); got != 15 {
		t.Errorf("RecentHistory(0) returned %d messages, want all", got)
	}
}
