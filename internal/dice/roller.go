// Package dice provides the random number source for skill checks.
// An interface is used so tests can inject predetermined rolls.
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RollResult holds the outcome of a single dice roll.
type RollResult struct {
	Total int   // sum of rolls plus bonus
	Rolls []int // individual die results
	Bonus int
	Count int
	Sides int
}

// Roller rolls dice.
type Roller interface {
	// Roll rolls count dice with the given sides and adds a bonus.
	Roll(count, sides, bonus int) (*RollResult, error)
}

// ParseNotation parses strings like "1d20" or "2d6+3" into count,
// sides, and bonus.
func ParseNotation(notation string) (count, sides, bonus int, err error) {
	dice := notation
	if a := strings.Split(notation, "+"); len(a) == 2 {
		bonus, err = strconv.Atoi(a[1])
		if err != nil {
			return 0, 0, 0, errors.New("invalid dice string")
		}
		dice = a[0]
	}

	parts := strings.Split(dice, "d")
	if len(parts) != 2 {
		return 0, 0, 0, errors.New("invalid dice string")
	}
	count, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, errors.New("invalid dice string")
	}
	sides, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, errors.New("invalid dice string")
	}
	return count, sides, bonus, nil
}

// RollNotation parses a dice string and rolls it with the given roller.
func RollNotation(r Roller, notation string) (*RollResult, error) {
	count, sides, bonus, err := ParseNotation(notation)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", notation, err)
	}
	return r.Roll(count, sides, bonus)
}
