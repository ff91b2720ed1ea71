package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempora/tempora/internal/core/model"
)

func TestLowFocusFiresOnShortSessions(t *testing.T) {
	engine := newTestEngine()
	// Five 0.9h sessions: focus = round(0.9/2*100) = 45.
	entries := make([]*model.TimeEntry, 0, 5)
	for i := 0; i < 5; i++ {
		start := refNow.AddDate(0, 0, -(i + 1))
		entries = append(entries, mkEntry(fmt.Sprintf("e%d", i), "proj-1", start, 0.9))
	}

	metrics := engine.ComputeMetrics(entries, 30)
	assert.Equal(t, 45, metrics.FocusScore)

	ids := insightIDs(engine.GenerateInsights(entries, metrics))
	assert.Contains(t, ids, "low-focus")
	assert.NotContains(t, ids, "high-focus")
}

func TestFocusMidRangeFiresNeitherRule(t *testing.T) {
	engine := newTestEngine()
	// 1.4h sessions: focus = 70, between both thresholds.
	entries := []*model.TimeEntry{
		mkEntry("e1", "proj-1", refNow.AddDate(0, 0, -1), 1.4),
		mkEntry("e2", "proj-1", refNow.AddDate(0, 0, -2), 1.4),
	}

	metrics := engine.ComputeMetrics(entries, 30)
	assert.Equal(t, 70, metrics.FocusScore)

	ids := insightIDs(engine.GenerateInsights(entries, metrics))
	assert.NotContains(t, ids, "low-focus")
	assert.NotContains(t, ids, "high-focus")
}

func TestWorkLifeBalanceFiresOnWeekendHeavyWindow(t *testing.T) {
	engine := newTestEngine()
	entries := []*model.TimeEntry{
		// Monday June 16: 5h. Saturday June 14: 4.5h. Ratio 0.9 > 0.8.
		mkEntry("mon", "proj-1", time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), 5),
		mkEntry("sat", "proj-1", time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC), 4.5),
	}

	metrics := engine.ComputeMetrics(entries, 30)
	ids := insightIDs(engine.GenerateInsights(entries, metrics))
	assert.Contains(t, ids, "work-life-balance")
}

func TestWorkLifeBalanceSkippedWithoutWeekdayHours(t *testing.T) {
	engine := newTestEngine()
	// Weekend-only tracking leaves the ratio undefined; the rule stays quiet
	// instead of dividing by zero.
	entries := []*model.TimeEntry{
		mkEntry("sat", "proj-1", time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC), 6),
		mkEntry("sun", "proj-1", time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), 6),
	}

	metrics := engine.ComputeMetrics(entries, 30)
	assert.Zero(t, metrics.WeekdayHours)

	ids := insightIDs(engine.GenerateInsights(entries, metrics))
	assert.NotContains(t, ids, "work-life-balance")
}

func TestProjectDiversityNeedsMoreThanFiveProjects(t *testing.T) {
	engine := newTestEngine()

	build := func(projects int) []*model.TimeEntry {
		entries := make([]*model.TimeEntry, 0, projects)
		for i := 0; i < projects; i++ {
			start := refNow.Add(-time.Duration(i+1) * time.Hour)
			entries = append(entries, mkEntry(fmt.Sprintf("e%d", i), fmt.Sprintf("proj-%d", i), start, 1))
		}
		return entries
	}

	five := build(5)
	ids := insightIDs(engine.GenerateInsights(five, engine.ComputeMetrics(five, 30)))
	assert.NotContains(t, ids, "project-diversity")

	six := build(6)
	ids = insightIDs(engine.GenerateInsights(six, engine.ComputeMetrics(six, 30)))
	assert.Contains(t, ids, "project-diversity")
}

func TestInsightsFollowRuleTableOrder(t *testing.T) {
	engine := newTestEngine()
	// One 11-hour day across six projects: high-focus, burnout-risk,
	// high-efficiency and project-diversity all fire at once.
	entries := make([]*model.TimeEntry, 0, 6)
	day := time.Date(2025, 6, 16, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		start := day.Add(time.Duration(i) * 110 * time.Minute)
		entries = append(entries, mkEntry(fmt.Sprintf("e%d", i), fmt.Sprintf("proj-%d", i), start, 11.0/6))
	}

	metrics := engine.ComputeMetrics(entries, 30)
	insights := engine.GenerateInsights(entries, metrics)

	ids := insightIDs(insights)
	require.Equal(t, []string{"high-focus", "burnout-risk", "high-efficiency", "project-diversity"}, ids)

	for _, insight := range insights {
		assert.NotEmpty(t, insight.Title)
		assert.NotEmpty(t, insight.Description)
		assert.NotEmpty(t, insight.Value)
		assert.NotEmpty(t, insight.Category)
	}
}

func TestLowConsistencyNeverFiresWithActivity(t *testing.T) {
	engine := newTestEngine()
	// A single tracked day in a 30-day window still counts as an unbroken
	// streak of one, so consistency stays at 100.
	entries := []*model.TimeEntry{mkEntry("e1", "proj-1", refNow.AddDate(0, 0, -5), 2)}

	metrics := engine.ComputeMetrics(entries, 30)
	assert.Equal(t, 100, metrics.ConsistencyScore)

	ids := insightIDs(engine.GenerateInsights(entries, metrics))
	assert.NotContains(t, ids, "low-consistency")
}
