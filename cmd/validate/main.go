package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/rules"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <character_sheet.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &SheetValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Character sheet is valid!")
}

type SheetValidator struct {
	errors []string
}

func (v *SheetValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("character sheet must have .json extension: %s", baseName)
	}

	sheet, err := character.LoadSheet(filename)
	if err != nil {
		return err
	}

	// A second, strict pass over the raw bytes so a drifted save with
	// unknown fields surfaces loudly instead of half-loading.
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var strict character.Sheet
	if err := decoder.Decode(&strict); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.errors = nil
	v.validateSheet(sheet)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *SheetValidator) validateSheet(s *character.Sheet) {
	if s.Name == "" {
		v.addError("name is required")
	}
	if !rules.ValidRace(s.Race) {
		v.addError(fmt.Sprintf("unknown race '%s'", s.Race))
	}
	if !rules.ValidClass(s.Class) {
		v.addError(fmt.Sprintf("unknown class '%s'", s.Class))
	}

	v.validateAttributes(s)
	v.validateSkills(s)
	v.validateVitals(s)

	if s.CurrentLocation == "" {
		v.addError("currentLocation is required")
	}
	if s.Gold < 0 {
		v.addError(fmt.Sprintf("gold cannot be negative, got %d", s.Gold))
	}
}

func (v *SheetValidator) validateAttributes(s *character.Sheet) {
	if len(s.Attributes) == 0 {
		v.addError("attributes are required")
		return
	}

	complete := true
	for _, attr := range rules.Attributes {
		if _, ok := s.Attributes[attr]; !ok {
			v.addError(fmt.Sprintf("missing attribute '%s'", attr))
			complete = false
		}
	}
	for attr := range s.Attributes {
		if !validAttributeName(attr) {
			v.addError(fmt.Sprintf("unknown attribute '%s'", attr))
		}
	}

	// A level-1 export must trace back to a legal point-buy spread
	// once racial bonuses are subtracted.
	if s.Level == 1 && rules.ValidRace(s.Race) && complete {
		base := make(map[string]int, len(rules.Attributes))
		bonuses := rules.RacialBonuses[s.Race]
		for _, attr := range rules.Attributes {
			base[attr] = s.Attributes[attr] - bonuses[attr]
		}
		if !rules.NewAllocation().SetScores(base) {
			v.addError("attributes do not trace back to a legal point-buy allocation")
		}
	}
}

func (v *SheetValidator) validateSkills(s *character.Sheet) {
	seen := make(map[string]bool, len(s.Skills))
	for _, skill := range s.Skills {
		if !rules.ValidSkill(skill) {
			v.addError(fmt.Sprintf("unknown skill '%s'", skill))
		}
		if seen[skill] {
			v.addError(fmt.Sprintf("duplicate skill '%s'", skill))
		}
		seen[skill] = true
	}

	if limit, ok := rules.SkillLimits[s.Class]; ok && len(s.Skills) > limit {
		v.addError(fmt.Sprintf("%s allows at most %d skills, sheet has %d", s.Class, limit, len(s.Skills)))
	}
}

func (v *SheetValidator) validateVitals(s *character.Sheet) {
	if s.Level < 1 {
		v.addError(fmt.Sprintf("level must be at least 1, got %d", s.Level))
	}
	if s.MaxHP < 1 {
		v.addError(fmt.Sprintf("maxHP must be at least 1, got %d", s.MaxHP))
	}
	if s.HP < 0 || s.HP > s.MaxHP {
		v.addError(fmt.Sprintf("hp %d is outside 0..maxHP (%d)", s.HP, s.MaxHP))
	}
	if s.XP < 0 {
		v.addError(fmt.Sprintf("xp cannot be negative, got %d", s.XP))
	}
	if s.XPToNextLevel < 1 {
		v.addError(fmt.Sprintf("xpToNextLevel must be positive, got %d", s.XPToNextLevel))
	}

	// At level 1 hit points are fully determined by class and CON.
	if s.Level == 1 && rules.ValidClass(s.Class) {
		if con, ok := s.Attributes["Constitution"]; ok {
			if expected := rules.MaxHP(s.Class, con); s.MaxHP != expected {
				v.addError(fmt.Sprintf("maxHP %d does not match a level 1 %s with Constitution %d (expected %d)", s.MaxHP, s.Class, con, expected))
			}
		}
	}
}

func (v *SheetValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func validAttributeName(name string) bool {
	for _, attr := range rules.Attributes {
		if attr == name {
			return true
		}
	}
	return false
}
