package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempora/tempora/internal/core/model"
)

// refNow is a Wednesday at noon; every test dataset is laid out relative to it.
var refNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	engine := NewEngine(time.UTC)
	engine.now = func() time.Time { return refNow }
	return engine
}

func mkEntry(id, project string, start time.Time, hours float64) *model.TimeEntry {
	seconds := int(hours * 3600)
	end := start.Add(time.Duration(seconds) * time.Second)
	return &model.TimeEntry{
		ID:              id,
		ProjectID:       project,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: seconds,
		Running:         false,
	}
}

// tenWeekdaySessions builds 8-hour sessions on ten distinct weekdays inside
// the trailing 30 days: Mon-Fri of June 2-6 and June 9-13, 2025.
func tenWeekdaySessions() []*model.TimeEntry {
	entries := make([]*model.TimeEntry, 0, 10)
	for _, day := range []int{2, 3, 4, 5, 6, 9, 10, 11, 12, 13} {
		start := time.Date(2025, 6, day, 9, 0, 0, 0, time.UTC)
		entries = append(entries, mkEntry(fmt.Sprintf("e%d", day), "proj-1", start, 8))
	}
	return entries
}

func TestComputeMetricsEmpty(t *testing.T) {
	engine := newTestEngine()

	metrics := engine.ComputeMetrics(nil, 30)

	assert.Equal(t, 30, metrics.WindowDays)
	assert.Zero(t, metrics.EntryCount)
	assert.Zero(t, metrics.TotalHours)
	assert.Zero(t, metrics.AverageSessionLength)
	assert.Zero(t, metrics.FocusScore)
	assert.Zero(t, metrics.ConsistencyScore)
	assert.Zero(t, metrics.EfficiencyRating)
	assert.Zero(t, metrics.BurnoutRisk)
	assert.Zero(t, metrics.UniqueDays)
	assert.Zero(t, metrics.WeekdayHours)
	assert.Zero(t, metrics.WeekendHours)

	insights := engine.GenerateInsights(nil, metrics)
	assert.Empty(t, insights)
}

func TestComputeMetricsTenWeekdaySessions(t *testing.T) {
	engine := newTestEngine()
	entries := tenWeekdaySessions()

	metrics := engine.ComputeMetrics(entries, 30)

	assert.Equal(t, 10, metrics.EntryCount)
	assert.InDelta(t, 80.0, metrics.TotalHours, 1e-9)
	assert.InDelta(t, 8.0, metrics.AverageSessionLength, 1e-9)
	assert.Equal(t, 100, metrics.FocusScore)
	assert.Equal(t, 10, metrics.UniqueDays)
	assert.Equal(t, 100, metrics.ConsistencyScore)
	assert.Equal(t, 100, metrics.EfficiencyRating)
	assert.Equal(t, 0, metrics.BurnoutRisk)
	assert.InDelta(t, 80.0, metrics.WeekdayHours, 1e-9)
	assert.InDelta(t, 0.0, metrics.WeekendHours, 1e-9)

	insights := engine.GenerateInsights(entries, metrics)
	ids := insightIDs(insights)
	assert.NotContains(t, ids, "low-focus")
	assert.NotContains(t, ids, "low-consistency")
	assert.NotContains(t, ids, "burnout-risk")
	assert.Contains(t, ids, "high-efficiency")
	assert.Contains(t, ids, "high-focus")
}

func TestBurnoutRiskSingleHeavyDay(t *testing.T) {
	engine := newTestEngine()
	start := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC) // Monday
	entries := []*model.TimeEntry{mkEntry("e1", "proj-1", start, 11)}

	metrics := engine.ComputeMetrics(entries, 30)

	// 1 of 1 unique days exceeds the 10-hour threshold.
	assert.Equal(t, 100, metrics.BurnoutRisk)

	insights := engine.GenerateInsights(entries, metrics)
	assert.Contains(t, insightIDs(insights), "burnout-risk")
}

func TestBurnoutThresholdIsStrictlyAboveTenHours(t *testing.T) {
	engine := newTestEngine()
	start := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	entries := []*model.TimeEntry{mkEntry("e1", "proj-1", start, 10)}

	metrics := engine.ComputeMetrics(entries, 30)
	assert.Equal(t, 0, metrics.BurnoutRisk)
}

func TestWindowFilterExcludesOldAndRunningEntries(t *testing.T) {
	engine := newTestEngine()
	inWindow := mkEntry("recent", "proj-1", refNow.AddDate(0, 0, -3), 2)
	tooOld := mkEntry("old", "proj-1", refNow.AddDate(0, 0, -40), 2)
	running := &model.TimeEntry{
		ID:        "running",
		ProjectID: "proj-1",
		StartTime: refNow.Add(-time.Hour),
		Running:   true,
	}

	entries := []*model.TimeEntry{inWindow, tooOld, running}
	filtered := engine.FilterWindow(entries, 30)
	require.Len(t, filtered, 1)
	assert.Equal(t, "recent", filtered[0].ID)

	metrics := engine.ComputeMetrics(entries, 30)
	assert.Equal(t, 1, metrics.EntryCount)
	assert.InDelta(t, 2.0, metrics.TotalHours, 1e-9)
}

func TestWeekendSplitRounding(t *testing.T) {
	engine := newTestEngine()
	entries := []*model.TimeEntry{
		// Saturday June 14, 2025
		mkEntry("sat", "proj-1", time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC), 3.25),
		// Monday June 16, 2025
		mkEntry("mon", "proj-1", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC), 4.33),
	}

	metrics := engine.ComputeMetrics(entries, 30)
	assert.InDelta(t, 4.3, metrics.WeekdayHours, 1e-9)
	assert.InDelta(t, 3.3, metrics.WeekendHours, 1e-9)
}

func TestConsistencyStreakScoresFull(t *testing.T) {
	engine := newTestEngine()
	entries := []*model.TimeEntry{
		mkEntry("e1", "proj-1", refNow.AddDate(0, 0, -1), 2),
		mkEntry("e2", "proj-1", refNow.AddDate(0, 0, -2), 2),
		mkEntry("e3", "proj-1", refNow.AddDate(0, 0, -3), 2),
	}

	metrics := engine.ComputeMetrics(entries, 7)
	assert.Equal(t, 3, metrics.UniqueDays)
	assert.Equal(t, 100, metrics.ConsistencyScore)
}

func TestLocalDateGroupingFollowsLocation(t *testing.T) {
	// 23:30 UTC on June 16 is already June 17 in Shanghai; the two entries
	// collapse to one local date there but stay two days in UTC.
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	entries := []*model.TimeEntry{
		mkEntry("e1", "proj-1", time.Date(2025, 6, 16, 23, 30, 0, 0, time.UTC), 1),
		mkEntry("e2", "proj-1", time.Date(2025, 6, 17, 4, 0, 0, 0, time.UTC), 1),
	}

	utcEngine := newTestEngine()
	assert.Equal(t, 2, utcEngine.ComputeMetrics(entries, 30).UniqueDays)

	cnEngine := NewEngine(loc)
	cnEngine.now = func() time.Time { return refNow }
	assert.Equal(t, 1, cnEngine.ComputeMetrics(entries, 30).UniqueDays)
}

func insightIDs(insights []model.Insight) []string {
	ids := make([]string, 0, len(insights))
	for _, insight := range insights {
		ids = append(ids, insight.ID)
	}
	return ids
}
