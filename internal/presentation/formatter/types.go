package formatter

import (
	"fmt"
	"time"

	"github.com/tempora/tempora/internal/core/model"
)

// Report is the fully assembled analytics output handed to a formatter.
type Report struct {
	WindowDays  int             `json:"windowDays"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Offline     bool            `json:"offline,omitempty"`
	SnapshotAge time.Duration   `json:"snapshotAge,omitempty"`
	Metrics     model.Metrics   `json:"metrics"`
	Insights    []model.Insight `json:"insights"`
	Entries     []EntryRow      `json:"entries,omitempty"`
}

// EntryRow is one pre-rendered entry line for tabular output.
type EntryRow struct {
	Date        string `json:"date"`
	Project     string `json:"project"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

// Formatter renders a report to stdout.
type Formatter interface {
	Format(report *Report) error
}

// New selects a formatter by name.
func New(format string) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format '%s' (table, json, csv, summary)", format)
	}
}
