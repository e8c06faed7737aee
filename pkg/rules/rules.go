package rules

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Modifier returns the ability modifier for a score, rounding down
// toward negative infinity (score 8 -> -1, score 7 -> -2).
func Modifier(score int) int {
	n := score - 10
	if n < 0 && n%2 != 0 {
		return n/2 - 1
	}
	return n / 2
}

// MaxHP computes starting hit points for a class and a final (bonus
// included) Constitution score. Never less than 1.
func MaxHP(class string, conScore int) int {
	die, ok := HitDice[class]
	if !ok {
		die = DefaultHitDie
	}
	hp := die + Modifier(conScore)
	if hp < 1 {
		return 1
	}
	return hp
}

// ProficiencyBonus is the flat bonus added to checks with a proficient
// skill. Leveling is not implemented, so this does not scale.
const ProficiencyBonus = 2

// GoverningAttribute returns the attribute that governs a skill check.
// Unrecognized skill labels fall back to Dexterity.
func GoverningAttribute(skill string) string {
	if attr, ok := SkillAttributes[skill]; ok {
		return attr
	}
	return "Dexterity"
}

// ValidRace reports whether race is one of the fixed race names.
func ValidRace(race string) bool {
	for _, r := range Races {
		if r == race {
			return true
		}
	}
	return false
}

// ValidClass reports whether class is one of the fixed class names.
func ValidClass(class string) bool {
	for _, c := range Classes {
		if c == class {
			return true
		}
	}
	return false
}

// ValidSkill reports whether skill is one of the fixed 18 skills.
func ValidSkill(skill string) bool {
	_, ok := SkillAttributes[skill]
	return ok
}

// NormalizeRace canonicalizes user input ("half-orc" -> "Half-Orc") and
// returns false when the result is not a known race.
func NormalizeRace(race string) (string, bool) {
	name := titleCaser.String(strings.TrimSpace(race))
	return name, ValidRace(name)
}

// NormalizeClass canonicalizes user input and returns false when the
// result is not a known class.
func NormalizeClass(class string) (string, bool) {
	name := titleCaser.String(strings.TrimSpace(class))
	return name, ValidClass(name)
}

// MatchSkill resolves free text against the skill list by
// case-insensitive substring match, first match winning. Returns false
// when no skill matches.
func MatchSkill(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, s := range Skills {
		if strings.Contains(lower, strings.ToLower(s)) {
			return s, true
		}
	}
	return "", false
}
