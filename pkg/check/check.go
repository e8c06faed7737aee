// Package check resolves skill checks against a character sheet.
package check

import (
	"fmt"

	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/narrative"
	"github.com/jwebster45206/endless-dnd/pkg/rules"
)

// Result is a resolved skill check.
type Result struct {
	Skill       string `json:"skill"`
	Attribute   string `json:"attribute"`
	RawDie      int    `json:"raw_die"`
	Modifier    int    `json:"modifier"`
	Proficiency int    `json:"proficiency"`
	Total       int    `json:"total"`
}

// Resolve computes the final result of a skill check:
// rawDie + attribute modifier + proficiency bonus. Scores and the
// proficiency bonus are read through the sheet's runtime d20 actor.
// Freeform skill refs use Dexterity as the governing attribute and
// never earn proficiency.
func Resolve(sheet *character.Sheet, skill narrative.SkillRef, rawDie int) (Result, error) {
	if sheet == nil {
		return Result{}, fmt.Errorf("character sheet is required")
	}
	if rawDie < 1 || rawDie > 20 {
		return Result{}, fmt.Errorf("raw die must be 1-20, got %d", rawDie)
	}

	actor, err := sheet.BuildActor()
	if err != nil {
		return Result{}, err
	}

	attr := rules.GoverningAttribute(skill.Name)
	score := 10
	if v, ok := actor.Attribute(attr); ok {
		score = v
	}
	mod := rules.Modifier(score)

	prof := 0
	if skill.Recognized && sheet.Proficient(skill.Name) {
		for _, cm := range actor.GetCombatModifiers() {
			if cm.Reason == "proficiency" {
				prof = cm.Value
			}
		}
	}

	return Result{
		Skill:       skill.Name,
		Attribute:   attr,
		RawDie:      rawDie,
		Modifier:    mod,
		Proficiency: prof,
		Total:       rawDie + mod + prof,
	}, nil
}
