// Package timefmt formats run times for display.
package timefmt

import (
	"fmt"
	"math"
)

// Format renders a run time given in seconds as MM:SS.mmm, with an HH: prefix
// only when the run took an hour or longer.
func Format(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := math.Mod(seconds, 60)

	formatted := fmt.Sprintf("%02d:%06.3f", minutes, secs)
	if hours > 0 {
		formatted = fmt.Sprintf("%02d:%s", hours, formatted)
	}

	return formatted
}
