package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/session"
	"github.com/jwebster45206/endless-dnd/pkg/worldclock"
)

func testSheet() *character.Sheet {
	return &character.Sheet{
		Name:  "Mira",
		Race:  "Elf",
		Class: "Rogue",
		Level: 1,
		Attributes: map[string]int{
			"Strength": 8, "Dexterity": 17, "Constitution": 12,
			"Intelligence": 13, "Wisdom": 10, "Charisma": 14,
		},
		Skills:    []string{"Stealth", "Perception"},
		Backstory: "Raised among smugglers on the Sword Coast.",
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	tok := session.Token("ABCD2345")
	gt := worldclock.NewClock().Format()

	prompt := BuildSystemPrompt(tok, testSheet(), gt)

	assert.Contains(t, prompt, "The session password for this run is: ABCD2345")
	assert.Contains(t, prompt, "Name: Mira")
	assert.Contains(t, prompt, "Class: Rogue (Level 1)")
	assert.Contains(t, prompt, "Skills: Stealth, Perception")
	assert.Contains(t, prompt, "Time: 8:00 AM")
	assert.Contains(t, prompt, "Date: 1st of Hammer, 1492 DR")
	assert.Contains(t, prompt, "[CHECK: Skill Name]")
	assert.Contains(t, prompt, "[DAMAGE: Integer]")
	assert.Contains(t, prompt, "[TIME: +Minutes]")
}

func TestCharacterPrompt_NilSheet(t *testing.T) {
	assert.Equal(t, "", CharacterPrompt(nil))
}

func TestTimePrompt_NightAndDay(t *testing.T) {
	day := TimePrompt(worldclock.GameTime{Time: "2:00 PM", Date: "1st of Hammer, 1492 DR"})
	assert.Contains(t, day, "currently daytime")

	night := TimePrompt(worldclock.GameTime{Time: "11:00 PM", Date: "1st of Hammer, 1492 DR", IsNight: true})
	assert.Contains(t, night, "currently nighttime")
}

func TestRollResultMessage(t *testing.T) {
	msg := RollResultMessage(session.Token("ABCD2345"), 14, "Stealth")
	assert.Equal(t, "ABCD2345 SYSTEM: User rolled 14 for Stealth", msg)
	assert.True(t, strings.HasPrefix(msg, "ABCD2345 "))
}
