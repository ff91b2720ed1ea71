package formatter

import (
	"fmt"
	"strings"

	"github.com/tempora/tempora/internal/util"
)

// SummaryFormatter is responsible for formatting a human-readable report.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(report *Report) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Tempora Productivity Report")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("Window: last %d days\n", report.WindowDays)
	fmt.Printf("Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	if report.Offline {
		fmt.Printf("Source: offline snapshot (%s old)\n", util.FormatDuration(report.SnapshotAge))
	}
	fmt.Println()

	m := report.Metrics
	fmt.Println("Totals:")
	fmt.Printf("  Tracked:          %s across %d sessions\n", util.FormatHours(m.TotalHours), m.EntryCount)
	fmt.Printf("  Average session:  %s\n", util.FormatHours(m.AverageSessionLength))
	fmt.Printf("  Active days:      %d\n", m.UniqueDays)
	fmt.Printf("  Weekday/weekend:  %s / %s\n", util.FormatHours(m.WeekdayHours), util.FormatHours(m.WeekendHours))
	fmt.Println()

	fmt.Println("Scores:")
	fmt.Printf("  Focus:            %s\n", util.FormatScore(m.FocusScore))
	fmt.Printf("  Consistency:      %s\n", util.FormatScore(m.ConsistencyScore))
	fmt.Printf("  Efficiency:       %s\n", util.FormatScore(m.EfficiencyRating))
	fmt.Printf("  Burnout risk:     %d%%\n", m.BurnoutRisk)
	fmt.Println()

	if len(report.Insights) == 0 {
		fmt.Println("No insights for this window.")
		return nil
	}

	fmt.Println("Insights:")
	for _, insight := range report.Insights {
		fmt.Printf("  [%s] %s (%s)\n", strings.ToUpper(string(insight.Severity)), insight.Title, insight.Value)
		fmt.Printf("        %s\n", insight.Description)
	}
	return nil
}
