package character

import (
	"fmt"
	"slices"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/endless-dnd/pkg/rules"
)

// StartingLocation is where every new character begins.
const StartingLocation = "Daggerford"

// StartingXPToNextLevel is the XP threshold for level 2. Leveling is
// display-only for now.
const StartingXPToNextLevel = 300

// Sheet is the serializable character sheet. Field names match the
// original save-file format and must not change while save/load
// compatibility is kept.
type Sheet struct {
	Name            string         `json:"name"`
	Race            string         `json:"race"`
	Class           string         `json:"class"`
	Gender          string         `json:"gender"`
	Attributes      map[string]int `json:"attributes"`
	Skills          []string       `json:"skills"`
	HP              int            `json:"hp"`
	MaxHP           int            `json:"maxHP"`
	XP              int            `json:"xp"`
	XPToNextLevel   int            `json:"xpToNextLevel"`
	Level           int            `json:"level"`
	CurrentLocation string         `json:"currentLocation"`
	Backstory       string         `json:"backstory"`
	Inventory       []string       `json:"inventory"`
	Gold            int            `json:"gold"`
}

// Draft carries the character-creation inputs before finalization.
type Draft struct {
	Name      string
	Gender    string
	Race      string
	Class     string
	Backstory string
	Base      map[string]int // base attribute scores, point-buy validated
	Skills    []string
}

// Validate checks the draft against the creation rules. Point-buy and
// range violations are reported here as errors because the draft
// arrives whole; interactive adjustment uses rules.Allocation instead.
func (d *Draft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !rules.ValidRace(d.Race) {
		return fmt.Errorf("unknown race: %s", d.Race)
	}
	if !rules.ValidClass(d.Class) {
		return fmt.Errorf("unknown class: %s", d.Class)
	}

	alloc := rules.NewAllocation()
	if !alloc.SetScores(d.Base) {
		return fmt.Errorf("attribute allocation violates point-buy rules")
	}

	limit := rules.SkillLimits[d.Class]
	if len(d.Skills) > limit {
		return fmt.Errorf("%s allows at most %d skills, got %d", d.Class, limit, len(d.Skills))
	}
	seen := make(map[string]bool, len(d.Skills))
	for _, s := range d.Skills {
		if !rules.ValidSkill(s) {
			return fmt.Errorf("unknown skill: %s", s)
		}
		if seen[s] {
			return fmt.Errorf("duplicate skill: %s", s)
		}
		seen[s] = true
	}
	return nil
}

// Finalize builds the finished sheet from a validated draft: racial
// bonuses applied, hit points computed, starting equipment and gold
// granted.
func Finalize(d *Draft) (*Sheet, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	attrs := make(map[string]int, len(rules.Attributes))
	bonuses := rules.RacialBonuses[d.Race]
	for _, attr := range rules.Attributes {
		attrs[attr] = d.Base[attr] + bonuses[attr]
	}

	maxHP := rules.MaxHP(d.Class, attrs["Constitution"])

	inventory := make([]string, 0, len(rules.StartingEquipment)+1)
	inventory = append(inventory, rules.StartingEquipment...)
	inventory = append(inventory, "Dagger")

	return &Sheet{
		Name:            d.Name,
		Race:            d.Race,
		Class:           d.Class,
		Gender:          d.Gender,
		Attributes:      attrs,
		Skills:          slices.Clone(d.Skills),
		HP:              maxHP,
		MaxHP:           maxHP,
		XP:              0,
		XPToNextLevel:   StartingXPToNextLevel,
		Level:           1,
		CurrentLocation: StartingLocation,
		Backstory:       d.Backstory,
		Inventory:       inventory,
		Gold:            rules.StartingGold,
	}, nil
}

// ApplyDamage reduces hit points by amount, clamped at zero. Negative
// amounts are ignored. Returns the new HP.
func (s *Sheet) ApplyDamage(amount int) int {
	if amount > 0 {
		s.HP -= amount
		if s.HP < 0 {
			s.HP = 0
		}
	}
	return s.HP
}

// Heal raises hit points by amount, clamped at MaxHP. Returns the new HP.
func (s *Sheet) Heal(amount int) int {
	if amount > 0 {
		s.HP += amount
		if s.HP > s.MaxHP {
			s.HP = s.MaxHP
		}
	}
	return s.HP
}

// Proficient reports whether the sheet has training in a skill.
func (s *Sheet) Proficient(skill string) bool {
	return slices.Contains(s.Skills, skill)
}

// AttributeScore returns the final score for an attribute, or 10
// (modifier 0) for an unknown attribute name.
func (s *Sheet) AttributeScore(attr string) int {
	if score, ok := s.Attributes[attr]; ok {
		return score
	}
	return 10
}

// BuildActor constructs the runtime d20 actor for the sheet. The sheet
// remains the source of truth for HP; the actor mirrors it for combat
// math.
func (s *Sheet) BuildActor() (*d20.Actor, error) {
	attrs := make(map[string]int, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[k] = v
	}

	mods := map[string]int{"proficiency": rules.ProficiencyBonus}

	actor, err := d20.NewActor(s.Name).
		WithHP(s.MaxHP).
		WithAC(10 + rules.Modifier(s.AttributeScore("Dexterity"))).
		WithAttributes(attrs).
		WithCombatModifiers(mods).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	if s.HP != s.MaxHP && s.HP > 0 {
		if err := actor.SetHP(s.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}
	return actor, nil
}
