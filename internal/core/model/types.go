package model

import "time"

// TimeEntry represents one contiguous interval of tracked time against a project.
// A running entry has no end time and its duration is not authoritative; it must
// be derived live from the start time. A stopped entry carries the
// server-assigned end time and duration.
type TimeEntry struct {
	ID              string
	ProjectID       string
	TaskID          string
	Description     string
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds int
	Running         bool
	Billable        bool
	HourlyRate      float64
	CreatedAt       time.Time
}

// Clone returns a deep copy of the entry. Store reads hand out clones so
// callers can never mutate store-owned state in place.
func (e *TimeEntry) Clone() *TimeEntry {
	c := *e
	if e.EndTime != nil {
		end := *e.EndTime
		c.EndTime = &end
	}
	return &c
}

// Duration returns the authoritative elapsed time of a stopped entry.
// Running entries return 0; their live elapsed value comes from the clock.
func (e *TimeEntry) Duration() time.Duration {
	if e.Running {
		return 0
	}
	return time.Duration(e.DurationSeconds) * time.Second
}

// EntryPatch is a partial update for a time entry. Nil fields are left
// untouched by the server.
type EntryPatch struct {
	Description *string
	ProjectID   *string
	TaskID      *string
	EndTime     *time.Time
	Billable    *bool
	HourlyRate  *float64
}

// IsZero reports whether the patch carries no changes.
func (p EntryPatch) IsZero() bool {
	return p.Description == nil && p.ProjectID == nil && p.TaskID == nil &&
		p.EndTime == nil && p.Billable == nil && p.HourlyRate == nil
}

// Project is a read-only lookup record; the client never mutates projects.
type Project struct {
	ID          string
	Name        string
	Description string
	Color       string
	Active      bool
	CreatedAt   time.Time
}

// Metrics is the derived productivity record for one analytics window.
// It has no lifecycle of its own; it is recomputed from an entry snapshot.
type Metrics struct {
	WindowDays           int     `json:"windowDays"`
	EntryCount           int     `json:"entryCount"`
	TotalHours           float64 `json:"totalHours"`
	AverageSessionLength float64 `json:"averageSessionLength"` // hours
	FocusScore           int     `json:"focusScore"`
	ConsistencyScore     int     `json:"consistencyScore"`
	EfficiencyRating     int     `json:"efficiencyRating"`
	BurnoutRisk          int     `json:"burnoutRisk"`
	UniqueDays           int     `json:"uniqueDays"`
	WeekdayHours         float64 `json:"weekdayHours"`
	WeekendHours         float64 `json:"weekendHours"`
}

// Trend indicates the direction an insight points at.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Severity ranks how urgently an insight should be surfaced.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Insight is a generated observation about a metrics window. The ID is the
// stable rule name that produced it, so snapshots stay deterministic.
type Insight struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Value       string   `json:"value"`
	Trend       Trend    `json:"trend"`
	Severity    Severity `json:"severity"`
}
