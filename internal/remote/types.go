package remote

import (
	"time"

	"github.com/tempora/tempora/internal/core/model"
)

// Wire shapes for the time-tracking service API (snake_case JSON).

type timeEntryDTO struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	TaskID          string     `json:"task_id,omitempty"`
	Description     string     `json:"description,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	IsRunning       bool       `json:"is_running"`
	Billable        bool       `json:"billable,omitempty"`
	HourlyRate      float64    `json:"hourly_rate,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type projectDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type createEntryRequest struct {
	ProjectID   string     `json:"project_id"`
	Description string     `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
}

type updateEntryRequest struct {
	Description *string    `json:"description,omitempty"`
	ProjectID   *string    `json:"project_id,omitempty"`
	TaskID      *string    `json:"task_id,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Billable    *bool      `json:"billable,omitempty"`
	HourlyRate  *float64   `json:"hourly_rate,omitempty"`
}

type apiError struct {
	Detail string `json:"detail"`
}

func (d *timeEntryDTO) toModel() *model.TimeEntry {
	entry := &model.TimeEntry{
		ID:              d.ID,
		ProjectID:       d.ProjectID,
		TaskID:          d.TaskID,
		Description:     d.Description,
		StartTime:       d.StartTime,
		DurationSeconds: d.DurationSeconds,
		Running:         d.IsRunning,
		Billable:        d.Billable,
		HourlyRate:      d.HourlyRate,
		CreatedAt:       d.CreatedAt,
	}
	if d.EndTime != nil {
		end := *d.EndTime
		entry.EndTime = &end
	}
	return entry
}

func (d *projectDTO) toModel() *model.Project {
	return &model.Project{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Color:       d.Color,
		Active:      d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

func patchToRequest(patch model.EntryPatch) updateEntryRequest {
	return updateEntryRequest{
		Description: patch.Description,
		ProjectID:   patch.ProjectID,
		TaskID:      patch.TaskID,
		EndTime:     patch.EndTime,
		Billable:    patch.Billable,
		HourlyRate:  patch.HourlyRate,
	}
}
