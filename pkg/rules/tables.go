package rules

// Fixed 5e-style enumerations and tables driving character creation.
// These mirror the tabletop point-buy rules the game is built on and
// are not meant to be configurable at runtime.

// Races available at character creation.
var Races = []string{
	"Human",
	"Elf",
	"Dwarf",
	"Halfling",
	"Dragonborn",
	"Gnome",
	"Half-Elf",
	"Half-Orc",
	"Tiefling",
}

// Classes available at character creation.
var Classes = []string{
	"Barbarian",
	"Bard",
	"Cleric",
	"Druid",
	"Fighter",
	"Monk",
	"Paladin",
	"Ranger",
	"Rogue",
	"Sorcerer",
	"Warlock",
	"Wizard",
}

// Attributes are the six core ability names, in display order.
var Attributes = []string{
	"Strength",
	"Dexterity",
	"Constitution",
	"Intelligence",
	"Wisdom",
	"Charisma",
}

// Skills is the fixed 18-entry skill list.
var Skills = []string{
	"Acrobatics",
	"Animal Handling",
	"Arcana",
	"Athletics",
	"Deception",
	"History",
	"Insight",
	"Intimidation",
	"Investigation",
	"Medicine",
	"Nature",
	"Perception",
	"Performance",
	"Persuasion",
	"Religion",
	"Sleight of Hand",
	"Stealth",
	"Survival",
}

// StartingEquipment is granted to every new character, plus a Dagger
// added at finalization.
var StartingEquipment = []string{
	"Backpack",
	"Bedroll",
	"Rations (5 days)",
	"Waterskin",
	"Torches (10)",
}

// StartingGold is the gold every new character begins with.
const StartingGold = 10

// PointBuyCosts maps a base attribute score to its total point cost.
// Cost accelerates above 13 to make high stats expensive.
var PointBuyCosts = map[int]int{
	8:  0,
	9:  1,
	10: 2,
	11: 3,
	12: 4,
	13: 5,
	14: 7,
	15: 9,
}

// PointBuyBudget is the total points available across all six attributes.
const PointBuyBudget = 27

// Bounds for a base (pre-racial-bonus) attribute score.
const (
	MinBaseScore = 8
	MaxBaseScore = 15
)

// RacialBonuses maps race -> attribute -> bonus, applied additively on
// top of the base score. The point-buy budget constrains base scores
// only; the bonus is free.
var RacialBonuses = map[string]map[string]int{
	"Human": {
		"Strength": 1, "Dexterity": 1, "Constitution": 1,
		"Intelligence": 1, "Wisdom": 1, "Charisma": 1,
	},
	"Elf":        {"Dexterity": 2},
	"Dwarf":      {"Constitution": 2},
	"Halfling":   {"Dexterity": 2},
	"Dragonborn": {"Strength": 2, "Charisma": 1},
	"Gnome":      {"Intelligence": 2},
	"Half-Elf":   {"Charisma": 2, "Dexterity": 1, "Constitution": 1},
	"Half-Orc":   {"Strength": 2, "Constitution": 1},
	"Tiefling":   {"Charisma": 2, "Intelligence": 1},
}

// HitDice maps class to hit die size.
var HitDice = map[string]int{
	"Barbarian": 12,
	"Fighter":   10,
	"Paladin":   10,
	"Ranger":    10,
	"Bard":      8,
	"Cleric":    8,
	"Druid":     8,
	"Monk":      8,
	"Rogue":     8,
	"Warlock":   8,
	"Sorcerer":  6,
	"Wizard":    6,
}

// DefaultHitDie is used when a class is missing from HitDice.
const DefaultHitDie = 8

// SkillLimits maps class to the number of skills that may be chosen at
// creation. Backgrounds are not modeled, so these run low compared to
// the full tabletop rules.
var SkillLimits = map[string]int{
	"Barbarian": 2,
	"Bard":      3,
	"Cleric":    2,
	"Druid":     2,
	"Fighter":   2,
	"Monk":      2,
	"Paladin":   2,
	"Ranger":    3,
	"Rogue":     4,
	"Sorcerer":  2,
	"Warlock":   2,
	"Wizard":    2,
}

// SkillAttributes maps each skill to its governing attribute.
var SkillAttributes = map[string]string{
	"Acrobatics":      "Dexterity",
	"Animal Handling": "Wisdom",
	"Arcana":          "Intelligence",
	"Athletics":       "Strength",
	"Deception":       "Charisma",
	"History":         "Intelligence",
	"Insight":         "Wisdom",
	"Intimidation":    "Charisma",
	"Investigation":   "Intelligence",
	"Medicine":        "Wisdom",
	"Nature":          "Intelligence",
	"Perception":      "Wisdom",
	"Performance":     "Charisma",
	"Persuasion":      "Charisma",
	"Religion":        "Intelligence",
	"Sleight of Hand": "Dexterity",
	"Stealth":         "Dexterity",
	"Survival":        "Wisdom",
}
