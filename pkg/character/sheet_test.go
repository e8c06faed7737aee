package character

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func testDraft() *Draft {
	return &Draft{
		Name:      "Tessa Brightwood",
		Gender:    "Female",
		Race:      "Elf",
		Class:     "Rogue",
		Backstory: "Grew up picking locks in Waterdeep.",
		Base: map[string]int{
			"Strength": 8, "Dexterity": 15, "Constitution": 12,
			"Intelligence": 13, "Wisdom": 10, "Charisma": 12,
		},
		Skills: []string{"Stealth", "Sleight of Hand", "Perception", "Deception"},
	}
}

func TestFinalize(t *testing.T) {
	sheet, err := Finalize(testDraft())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	// Elf racial bonus: +2 Dexterity.
	if got := sheet.Attributes["Dexterity"]; got != 17 {
		t.Errorf("Dexterity = %d, want 17", got)
	}
	if got := sheet.Attributes["Strength"]; got != 8 {
		t.Errorf("Strength = %d, want 8", got)
	}

	// Rogue d8 + Con 12 modifier (+1).
	if sheet.MaxHP != 9 {
		t.Errorf("MaxHP = %d, want 9", sheet.MaxHP)
	}
	if sheet.HP != sheet.MaxHP {
		t.Errorf("HP = %d, want MaxHP %d", sheet.HP, sheet.MaxHP)
	}

	if sheet.Level != 1 || sheet.XP != 0 || sheet.XPToNextLevel != StartingXPToNextLevel {
		t.Errorf("progression = level %d xp %d/%d, want 1, 0/%d",
			sheet.Level, sheet.XP, sheet.XPToNextLevel, StartingXPToNextLevel)
	}
	if sheet.Gold != 10 {
		t.Errorf("Gold = %d, want 10", sheet.Gold)
	}
	if sheet.CurrentLocation != StartingLocation {
		t.Errorf("CurrentLocation = %q, want %q", sheet.CurrentLocation, StartingLocation)
	}

	// Starting equipment plus the Dagger.
	if len(sheet.Inventory) != 6 {
		t.Fatalf("Inventory has %d items, want 6: %v", len(sheet.Inventory), sheet.Inventory)
	}
	if sheet.Inventory[len(sheet.Inventory)-1] != "Dagger" {
		t.Errorf("last inventory item = %q, want Dagger", sheet.Inventory[len(sheet.Inventory)-1])
	}
}

func TestFinalizeRejectsInvalidDrafts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"empty name", func(d *Draft) { d.Name = "" }},
		{"unknown race", func(d *Draft) { d.Race = "Robot" }},
		{"unknown class", func(d *Draft) { d.Class = "Accountant" }},
		{"over budget", func(d *Draft) { d.Base["Strength"] = 15 }},
		{"out of range", func(d *Draft) { d.Base["Strength"] = 16 }},
		{"too many skills", func(d *Draft) { d.Skills = append(d.Skills, "Arcana") }},
		{"unknown skill", func(d *Draft) { d.Skills[0] = "Lockpicking" }},
		{"duplicate skill", func(d *Draft) { d.Skills[1] = "Stealth" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDraft()
			tt.mutate(d)
			if _, err := Finalize(d); err == nil {
				t.Errorf("Finalize() should reject draft with %s", tt.name)
			}
		})
	}
}

func TestApplyDamageClamps(t *testing.T) {
	sheet, err := Finalize(testDraft())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if got := sheet.ApplyDamage(4); got != sheet.MaxHP-4 {
		t.Errorf("ApplyDamage(4) = %d, want %d", got, sheet.MaxHP-4)
	}
	if got := sheet.ApplyDamage(100); got != 0 {
		t.Errorf("ApplyDamage(100) = %d, want 0 (clamped)", got)
	}
	if got := sheet.ApplyDamage(-5); got != 0 {
		t.Errorf("ApplyDamage(-5) = %d, want 0 (negative ignored)", got)
	}
	if got := sheet.Heal(3); got != 3 {
		t.Errorf("Heal(3) = %d, want 3", got)
	}
	if got := sheet.Heal(100); got != sheet.MaxHP {
		t.Errorf("Heal(100) = %d, want MaxHP %d (clamped)", got, sheet.MaxHP)
	}
}

func TestBuildActor(t *testing.T) {
	sheet, err := Finalize(testDraft())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	sheet.ApplyDamage(3)

	a, err := sheet.BuildActor()
	if err != nil {
		t.Fatalf("BuildActor() error = %v", err)
	}

	if a.MaxHP() != sheet.MaxHP {
		t.Errorf("Actor.MaxHP() = %d, want %d", a.MaxHP(), sheet.MaxHP)
	}
	if dex, ok := a.Attribute("Dexterity"); !ok || dex != 17 {
		t.Errorf("Actor.Attribute(Dexterity) = (%d, %v), want (17, true)", dex, ok)
	}
}

func TestExport(t *testing.T) {
	sheet, err := Finalize(testDraft())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if got := ExportFilename(sheet); got != "TessaBrightwood_sheet.json" {
		t.Errorf("ExportFilename() = %q, want TessaBrightwood_sheet.json", got)
	}

	data, err := ExportJSON(sheet)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	// Field names are a save-file contract.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, field := range []string{
		"name", "race", "class", "gender", "attributes", "skills",
		"hp", "maxHP", "xp", "xpToNextLevel", "level",
		"currentLocation", "backstory", "inventory", "gold",
	} {
		if _, ok := raw[field]; !ok {
			t.Errorf("export missing field %q", field)
		}
	}

	dir := t.TempDir()
	path, err := ExportFile(sheet, dir)
	if err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	if filepath.Base(path) != "TessaBrightwood_sheet.json" {
		t.Errorf("ExportFile path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	loaded, err := LoadSheet(path)
	if err != nil {
		t.Fatalf("LoadSheet() error = %v", err)
	}
	if loaded.Name != sheet.Name || loaded.MaxHP != sheet.MaxHP || loaded.Gold != sheet.Gold {
		t.Errorf("round-trip mismatch: %+v", loaded)
	}
}
