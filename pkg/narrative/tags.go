// Package narrative extracts machine-readable control tags from
// Dungeon-Master-authored text. Recognized tags are stripped from the
// display text and surfaced as structured events.
package narrative

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jwebster45206/endless-dnd/pkg/rules"
)

// Each tag type is matched at most once per text block; a second
// occurrence of the same tag survives in the display text. This is a
// documented contract, not an accident: one narration carries at most
// one damage instance, one check request, and one time advance.
var (
	damageRe = regexp.MustCompile(`(?i)\[DAMAGE:\s*(\d+)\]`)
	checkRe  = regexp.MustCompile(`(?i)\[CHECK:\s*([^\]]+)\]`)
	timeRe   = regexp.MustCompile(`(?i)\[TIME:\s*\+(\d+)\]`)
)

// SkillRef identifies the skill named by a check tag. Recognized refs
// resolved against the fixed skill list; freeform refs carry the tag
// text verbatim so callers know the attribute mapping is a fallback.
type SkillRef struct {
	Name       string `json:"name"`
	Recognized bool   `json:"recognized"`
}

// ResolveSkill matches free text against the skill list
// (case-insensitive substring, first match wins) and falls back to the
// trimmed text verbatim.
func ResolveSkill(text string) SkillRef {
	trimmed := strings.TrimSpace(text)
	if skill, ok := rules.MatchSkill(trimmed); ok {
		return SkillRef{Name: skill, Recognized: true}
	}
	return SkillRef{Name: trimmed, Recognized: false}
}

// Events holds everything extracted from one block of narrative text.
// Zero values mean the tag was absent.
type Events struct {
	Damage      int       // HP lost; 0 when no damage tag
	HasDamage   bool
	Check       *SkillRef // nil when no check tag
	TimeAdvance int       // minutes; 0 when no time tag
}

// Parse extracts control tags from raw DM text, returning the events
// and the cleaned display text with recognized tags removed and
// surrounding whitespace trimmed. Malformed tags (non-numeric damage,
// missing '+' on time) are left in place as ordinary text.
func Parse(raw string) (Events, string) {
	var ev Events
	clean := raw

	if m := damageRe.FindStringSubmatch(clean); m != nil {
		if amount, err := strconv.Atoi(m[1]); err == nil {
			ev.Damage = amount
			ev.HasDamage = true
			clean = strings.Replace(clean, m[0], "", 1)
		}
	}

	if m := checkRe.FindStringSubmatch(clean); m != nil {
		ref := ResolveSkill(m[1])
		ev.Check = &ref
		clean = strings.Replace(clean, m[0], "", 1)
	}

	if m := timeRe.FindStringSubmatch(clean); m != nil {
		if minutes, err := strconv.Atoi(m[1]); err == nil {
			ev.TimeAdvance = minutes
			clean = strings.Replace(clean, m[0], "", 1)
		}
	}

	return ev, strings.TrimSpace(clean)
}
