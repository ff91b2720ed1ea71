package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/tempora/tempora/internal/util"
)

type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(report *Report) error {
	fmt.Printf("Productivity report - last %d days\n", report.WindowDays)
	if report.Offline {
		fmt.Printf("(offline: snapshot from %s ago)\n", util.FormatDuration(report.SnapshotAge))
	}
	fmt.Println()

	m := report.Metrics
	printTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Total hours", util.FormatHours(m.TotalHours)},
			{"Sessions", fmt.Sprintf("%d", m.EntryCount)},
			{"Average session", util.FormatHours(m.AverageSessionLength)},
			{"Active days", fmt.Sprintf("%d", m.UniqueDays)},
			{"Focus score", util.FormatScore(m.FocusScore)},
			{"Consistency score", util.FormatScore(m.ConsistencyScore)},
			{"Efficiency rating", util.FormatScore(m.EfficiencyRating)},
			{"Burnout risk", fmt.Sprintf("%d%%", m.BurnoutRisk)},
			{"Weekday hours", util.FormatHours(m.WeekdayHours)},
			{"Weekend hours", util.FormatHours(m.WeekendHours)},
		},
	)

	if len(report.Insights) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(report.Insights))
		for _, insight := range report.Insights {
			rows = append(rows, []string{
				string(insight.Severity),
				insight.Title,
				insight.Value,
				string(insight.Trend),
			})
		}
		printTable([]string{"Severity", "Insight", "Value", "Trend"}, rows)
	}

	if len(report.Entries) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(report.Entries))
		for _, entry := range report.Entries {
			rows = append(rows, []string{
				entry.Date,
				entry.Project,
				entry.Duration,
				util.Truncate(entry.Description, 40),
			})
		}
		printTable([]string{"Date", "Project", "Duration", "Description"}, rows)
	}

	return nil
}

func printTable(headers []string, rows [][]string) {
	widths := columnWidths(headers, rows)
	printBorder(widths)
	printRow(headers, widths)
	printBorder(widths)
	for _, row := range rows {
		printRow(row, widths)
	}
	printBorder(widths)
}

// columnWidths sizes each column to its widest cell, measured in display
// cells so wide runes align.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func printBorder(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	fmt.Println("+" + strings.Join(parts, "+") + "+")
}

func printRow(cells []string, widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = " " + runewidth.FillRight(cell, w) + " "
	}
	fmt.Println("|" + strings.Join(parts, "|") + "|")
}
