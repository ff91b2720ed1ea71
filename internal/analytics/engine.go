// Package analytics derives productivity metrics and insights from a window
// of completed time entries. Everything here is pure: the engine owns no
// state and never mutates its inputs, so results are safely discardable.
package analytics

import (
	"math"
	"time"

	"github.com/tempora/tempora/internal/core/model"
)

// Engine computes metrics over the user's local calendar. The location
// decides which calendar date an entry falls on; the now function is
// injectable for deterministic tests.
type Engine struct {
	location *time.Location
	now      func() time.Time
}

func NewEngine(location *time.Location) *Engine {
	if location == nil {
		location = time.Local
	}
	return &Engine{location: location, now: time.Now}
}

// FilterWindow returns the completed entries whose start time falls within
// the trailing windowDays. Running entries carry no authoritative duration
// and are excluded.
func (e *Engine) FilterWindow(entries []*model.TimeEntry, windowDays int) []*model.TimeEntry {
	cutoff := e.now().AddDate(0, 0, -windowDays)
	out := make([]*model.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Running {
			continue
		}
		if entry.StartTime.After(cutoff) {
			out = append(out, entry)
		}
	}
	return out
}

// ComputeMetrics derives the scored metrics record for the trailing
// windowDays. 7, 30 and 90 are the preset windows; any positive value works.
func (e *Engine) ComputeMetrics(entries []*model.TimeEntry, windowDays int) model.Metrics {
	filtered := e.FilterWindow(entries, windowDays)

	metrics := model.Metrics{WindowDays: windowDays, EntryCount: len(filtered)}

	var totalSeconds int
	hoursPerDay := make(map[string]float64)
	for _, entry := range filtered {
		totalSeconds += entry.DurationSeconds
		day := entry.StartTime.In(e.location).Format("2006-01-02")
		hoursPerDay[day] += float64(entry.DurationSeconds) / 3600
	}

	metrics.TotalHours = float64(totalSeconds) / 3600
	metrics.UniqueDays = len(hoursPerDay)

	if len(filtered) > 0 {
		metrics.AverageSessionLength = metrics.TotalHours / float64(len(filtered))
	}
	// A 2-hour average session maps to a focus score of 100.
	metrics.FocusScore = clampScore(round(metrics.AverageSessionLength / 2 * 100))

	// The consistency denominator is the smaller of the window's day
	// capacity (capped at 30) and the active-day count, never below 1: an
	// unbroken tracking streak scores 100 regardless of window length, and
	// an empty window scores 0.
	possibleDays := windowDays
	if possibleDays > 30 {
		possibleDays = 30
	}
	if possibleDays < 1 {
		possibleDays = 1
	}
	if metrics.UniqueDays > 0 {
		denominator := possibleDays
		if metrics.UniqueDays < denominator {
			denominator = metrics.UniqueDays
		}
		metrics.ConsistencyScore = clampScore(round(float64(metrics.UniqueDays) / float64(denominator) * 100))
	}

	if metrics.UniqueDays > 0 {
		dailyHours := metrics.TotalHours / float64(metrics.UniqueDays)
		// An 8-hour daily average maps to an efficiency rating of 100.
		metrics.EfficiencyRating = clampScore(round(dailyHours / 8 * 100))

		highWorkloadDays := 0
		for _, hours := range hoursPerDay {
			if hours > 10 {
				highWorkloadDays++
			}
		}
		metrics.BurnoutRisk = round(float64(highWorkloadDays) / float64(metrics.UniqueDays) * 100)
	}

	var weekdaySeconds, weekendSeconds int
	for _, entry := range filtered {
		switch entry.StartTime.In(e.location).Weekday() {
		case time.Saturday, time.Sunday:
			weekendSeconds += entry.DurationSeconds
		default:
			weekdaySeconds += entry.DurationSeconds
		}
	}
	metrics.WeekdayHours = round1(float64(weekdaySeconds) / 3600)
	metrics.WeekendHours = round1(float64(weekendSeconds) / 3600)

	return metrics
}

func round(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	return score
}
