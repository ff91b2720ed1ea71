package util

import (
	"fmt"
	"time"
)

// Helper functions
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatClock renders elapsed seconds as HH:MM:SS for the live timer display.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHours renders fractional hours with one decimal, e.g. "12.5h"
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// FormatScore renders a 0-100 score with its unit
func FormatScore(score int) string {
	return fmt.Sprintf("%d/100", score)
}

func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		if len(s) <= max {
			return s
		}
		return s[:max]
	}
	return s[:max-3] + "..."
}
