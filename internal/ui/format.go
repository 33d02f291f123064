package ui

import (
	"fmt"
	"math"
)

// FormatTime renders a position in seconds as m:ss. Negative, NaN and
// non-finite inputs render as "0:00" so the transport display never
// shows garbage mid-seek.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	whole := int(seconds)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}
