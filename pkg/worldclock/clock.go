// Package worldclock keeps the in-game calendar and travel math. The
// calendar is synthetic: 12 months of 30 days, a 360-day year, starting
// 08:00 on 1 Hammer 1492 DR.
package worldclock

import "fmt"

// Months of the Calendar of Harptos, in order.
var Months = []string{
	"Hammer", "Alturiak", "Ches", "Tarsakh", "Mirtul", "Kythorn",
	"Flamerule", "Eleasis", "Eleint", "Marpenoth", "Uktar", "Nightal",
}

const (
	StartYear     = 1492
	DaysPerMonth  = 30
	DaysPerYear   = 360
	minutesPerDay = 24 * 60

	// StartMinutes is 08:00 on day 1.
	StartMinutes = 8 * 60
)

// Clock counts elapsed in-game minutes. It only moves forward.
type Clock struct {
	Minutes int `json:"minutes"`
}

// NewClock returns a clock at the campaign start time.
func NewClock() Clock {
	return Clock{Minutes: StartMinutes}
}

// Advance moves the clock forward by n minutes. Zero or negative
// amounts are a no-op; the clock never decreases.
func (c *Clock) Advance(n int) {
	if n > 0 {
		c.Minutes += n
	}
}

// AdvanceHours moves the clock forward by n whole hours.
func (c *Clock) AdvanceHours(n int) {
	if n > 0 {
		c.Minutes += n * 60
	}
}

// GameTime is the formatted calendar representation of a clock reading.
type GameTime struct {
	Time    string `json:"time"`     // "8:00 AM"
	Date    string `json:"date"`     // "1st of Hammer, 1492 DR"
	IsNight bool   `json:"is_night"` // before 6 AM or after 8 PM
}

// Format renders the current clock reading.
func (c Clock) Format() GameTime {
	return Format(c.Minutes)
}

// Format converts total elapsed minutes to the stylized calendar
// representation.
func Format(totalMinutes int) GameTime {
	minutesInDay := totalMinutes % minutesPerDay
	hour := minutesInDay / 60
	minute := minutesInDay % 60

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}

	totalDays := totalMinutes / minutesPerDay
	year := StartYear + totalDays/DaysPerYear
	dayOfYear := totalDays % DaysPerYear
	monthName := Months[dayOfYear/DaysPerMonth]
	dayOfMonth := dayOfYear%DaysPerMonth + 1

	return GameTime{
		Time:    fmt.Sprintf("%d:%02d %s", displayHour, minute, ampm),
		Date:    fmt.Sprintf("%d%s of %s, %d DR", dayOfMonth, ordinalSuffix(dayOfMonth), monthName, year),
		IsNight: hour < 6 || hour > 20,
	}
}

// ordinalSuffix follows standard English rules, with 4-20 always
// taking "th" (covers the 11th-13th exception).
func ordinalSuffix(d int) string {
	if d > 3 && d < 21 {
		return "th"
	}
	switch d % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
