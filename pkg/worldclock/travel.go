package worldclock

import (
	"fmt"
	"math"
)

// Map scale and overland pace.
const (
	PixelsPerMile  = 3.6
	TravelSpeedMPH = 3
)

// StartPosition is Daggerford on the world map, in map-pixel units.
var StartPosition = Position{X: 2050, Y: 2300}

// Position is a point on the world map in pixel coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plan is a travel estimate between two map positions. Confirming a
// plan is the caller's job: commit the destination and advance the
// clock by Hours.
type Plan struct {
	Origin      Position `json:"origin"`
	Destination Position `json:"destination"`
	Miles       int      `json:"miles"`
	Hours       int      `json:"hours"`
	Duration    string   `json:"duration"`
}

// EstimateTravel computes distance and duration between two positions.
// Distance rounds pixels to whole miles, duration rounds miles to whole
// hours; very short hops can legitimately round to 0 hours.
func EstimateTravel(origin, destination Position) Plan {
	dx := destination.X - origin.X
	dy := destination.Y - origin.Y
	pixelDist := math.Sqrt(dx*dx + dy*dy)

	miles := int(math.Round(pixelDist / PixelsPerMile))
	hours := int(math.Round(float64(miles) / TravelSpeedMPH))

	return Plan{
		Origin:      origin,
		Destination: destination,
		Miles:       miles,
		Hours:       hours,
		Duration:    FormatDuration(hours),
	}
}

// FormatDuration renders a whole-hour duration, switching to days past
// 24 hours.
func FormatDuration(hours int) string {
	if hours > 24 {
		return fmt.Sprintf("%d Days, %d Hrs", hours/24, hours%24)
	}
	return fmt.Sprintf("%d Hours", hours)
}
