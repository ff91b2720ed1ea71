package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format emits flat section/key/value records so the report stays a single
// CSV stream.
func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"Section", "Key", "Value", "Detail"}); err != nil {
		return err
	}

	m := report.Metrics
	metricRows := [][]string{
		{"metrics", "window_days", fmt.Sprintf("%d", report.WindowDays), ""},
		{"metrics", "total_hours", fmt.Sprintf("%.2f", m.TotalHours), ""},
		{"metrics", "entry_count", fmt.Sprintf("%d", m.EntryCount), ""},
		{"metrics", "average_session_hours", fmt.Sprintf("%.2f", m.AverageSessionLength), ""},
		{"metrics", "unique_days", fmt.Sprintf("%d", m.UniqueDays), ""},
		{"metrics", "focus_score", fmt.Sprintf("%d", m.FocusScore), ""},
		{"metrics", "consistency_score", fmt.Sprintf("%d", m.ConsistencyScore), ""},
		{"metrics", "efficiency_rating", fmt.Sprintf("%d", m.EfficiencyRating), ""},
		{"metrics", "burnout_risk", fmt.Sprintf("%d", m.BurnoutRisk), ""},
		{"metrics", "weekday_hours", fmt.Sprintf("%.1f", m.WeekdayHours), ""},
		{"metrics", "weekend_hours", fmt.Sprintf("%.1f", m.WeekendHours), ""},
	}
	for _, row := range metricRows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, insight := range report.Insights {
		row := []string{"insight", insight.ID, insight.Value,
			fmt.Sprintf("%s (%s, trend %s)", insight.Title, insight.Severity, insight.Trend)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, entry := range report.Entries {
		row := []string{"entry", entry.Date, entry.Duration,
			fmt.Sprintf("%s: %s", entry.Project, entry.Description)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
