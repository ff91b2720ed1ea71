package analytics

import (
	"fmt"

	"github.com/tempora/tempora/internal/core/model"
)

// insightRule produces at most one insight for a metrics window. The id is
// stable per rule so snapshot output stays deterministic.
type insightRule struct {
	id       string
	category string
	evaluate func(m model.Metrics, entries []*model.TimeEntry) (model.Insight, bool)
}

// Rules are evaluated in table order and emitted in that order; severity
// never reorders output. low-focus and high-focus are mutually exclusive by
// their disjoint thresholds; every other rule fires independently.
var insightRules = []insightRule{
	{
		id:       "low-focus",
		category: "focus",
		evaluate: func(m model.Metrics, _ []*model.TimeEntry) (model.Insight, bool) {
			if m.FocusScore >= 50 {
				return model.Insight{}, false
			}
			return model.Insight{
				Title:       "Short focus sessions",
				Description: fmt.Sprintf("Your average session lasts %.1f hours. Longer uninterrupted blocks tend to produce deeper work.", m.AverageSessionLength),
				Value:       fmt.Sprintf("%d/100", m.FocusScore),
				Trend:       model.TrendDown,
				Severity:    model.SeverityMedium,
			}, true
		},
	},
	{
		id:       "high-focus",
		category: "focus",
		evaluate: func(m model.Metrics, _ []*model.TimeEntry) (model.Insight, bool) {
			if m.FocusScore <= 80 {
				return model.Insight{}, false
			}
			return model.Insight{
				Title:       "Strong focus",
				Description: fmt.Sprintf("Your average session lasts %.1f hours. You sustain long stretches of concentrated work.", m.AverageSessionLength),
				Value:       fmt.Sprintf("%d/100", m.FocusScore),
				Trend:       model.TrendUp,
				Severity:    model.SeverityLow,
			}, true
		},
	},
	{
		id:       "burnout-risk",
		category: "workload",
		evaluate: func(m model.Metrics, _ []*model.TimeEntry) (model.Insight, bool) {
			if m.BurnoutRisk <= 30 {
				return model.Insight{}, false
			}
			return model.Insight{
				Title:       "Burnout risk",
				Description: "A large share of your working days exceed 10 tracked hours. Consider spreading the load.",
				Value:       fmt.Sprintf("%d%%", m.BurnoutRisk),
				Trend:       model.TrendUp,
				Severity:    model.SeverityHigh,
			}, true
		},
	},
	{
		id:       "low-consistency",
		category: "consistency",
		evaluate: func(m model.Metrics, _ []*model.TimeEntry) (model.Insight, bool) {
			if m.ConsistencyScore >= 60 {
				return model.Insight{}, false
			}
			return model.Insight{
				Title:       "Irregular rhythm",
				Description: fmt.Sprintf("You tracked time on %d days in this window. A steadier cadence makes estimates more reliable.", m.UniqueDays),
				Value:       fmt.Sprintf("%d/100", m.ConsistencyScore),
				Trend:       model.TrendDown,
				Severity:    model.SeverityMedium,
			}, true
		},
	},
	{
		id:       "high-efficiency",
		category: "efficiency",
		evaluate: func(m model.Metrics, _ []*model.TimeEntry) (model.Insight, bool) {
			if m.EfficiencyRating <= 85 {
				return model.Insight{}, false
			}
			return model.Insight{
				Title:       "High efficiency",
				Description: fmt.Sprintf("You average %.1f tracked hours per active day.", safeDailyHours(m)),
				Value:       fmt.Sprintf("%d/100", m.EfficiencyRating),
				Trend:       model.TrendUp,
				Severity:    model.SeverityLow,
			}, true
		},
	},
	{
		id:       "work-life-balance",
		category: "balance",
		evaluate: func(m model.Metrics, _ []*model.TimeEntry) (model.Insight, bool) {
			// No weekday hours means the ratio is undefined; skip the rule.
			if m.WeekdayHours == 0 {
				return model.Insight{}, false
			}
			ratio := m.WeekendHours / m.WeekdayHours
			if ratio <= 0.8 {
				return model.Insight{}, false
			}
			return model.Insight{
				Title:       "Weekend-heavy schedule",
				Description: fmt.Sprintf("Weekend hours (%.1fh) approach your weekday hours (%.1fh).", m.WeekendHours, m.WeekdayHours),
				Value:       fmt.Sprintf("%.2f", ratio),
				Trend:       model.TrendUp,
				Severity:    model.SeverityMedium,
			}, true
		},
	},
	{
		id:       "project-diversity",
		category: "variety",
		evaluate: func(m model.Metrics, entries []*model.TimeEntry) (model.Insight, bool) {
			projects := make(map[string]struct{})
			for _, entry := range entries {
				projects[entry.ProjectID] = struct{}{}
			}
			if len(projects) <= 5 {
				return model.Insight{}, false
			}
			return model.Insight{
				Title:       "Spread across many projects",
				Description: "Time in this window is split over more than five projects. Frequent switching costs focus.",
				Value:       fmt.Sprintf("%d projects", len(projects)),
				Trend:       model.TrendUp,
				Severity:    model.SeverityMedium,
			}, true
		},
	},
}

// GenerateInsights runs the fixed rule table against one metrics window.
// Entries must be the same filtered set the metrics were computed from.
func (e *Engine) GenerateInsights(entries []*model.TimeEntry, metrics model.Metrics) []model.Insight {
	// An empty window has nothing to observe; zero-valued metrics would
	// otherwise trip every low-threshold rule.
	if len(entries) == 0 {
		return []model.Insight{}
	}

	insights := make([]model.Insight, 0, len(insightRules))
	for _, rule := range insightRules {
		insight, ok := rule.evaluate(metrics, entries)
		if !ok {
			continue
		}
		insight.ID = rule.id
		insight.Category = rule.category
		insights = append(insights, insight)
	}
	return insights
}

func safeDailyHours(m model.Metrics) float64 {
	if m.UniqueDays == 0 {
		return 0
	}
	return m.TotalHours / float64(m.UniqueDays)
}
