package dto

import (
	"strings"
	"time"

	"hotelops/internal/domains/task/model"
	"hotelops/shared/validator"
)

type CreateTaskRequest struct {
	Title             string         `json:"title"             validate:"required,max=200"`
	Description       string         `json:"description"       validate:"omitempty,max=2000"`
	Type              string         `json:"type"              validate:"omitempty,max=50"`
	RoomID            *int64         `json:"roomId"            validate:"omitempty,gt=0"`
	AssignedTo        string         `json:"assignedTo"        validate:"omitempty,max=100"`
	Priority          model.Priority `json:"priority"          validate:"omitempty,oneof=Low Medium High Urgent"`
	Status            model.Status   `json:"status"            validate:"omitempty,oneof=Pending 'In Progress' Completed Cancelled"`
	ScheduledDate     time.Time      `json:"scheduledDate"`
	EstimatedDuration int            `json:"estimatedDuration" validate:"omitempty,gte=0"`
}

func (c *CreateTaskRequest) ToModel(now time.Time) model.Task {
	task := model.Task{
		Title:             strings.TrimSpace(c.Title),
		Description:       c.Description,
		Type:              c.Type,
		RoomID:            c.RoomID,
		AssignedTo:        strings.TrimSpace(c.AssignedTo),
		Priority:          c.Priority,
		Status:            c.Status,
		ScheduledDate:     c.ScheduledDate,
		EstimatedDuration: c.EstimatedDuration,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	if task.Status == "" {
		task.Status = model.StatusPending
	}

	if task.ScheduledDate.IsZero() {
		task.ScheduledDate = now
	}

	if task.Status == model.StatusCompleted {
		task.CompletedAt = &now
	}

	return task
}

type UpdateTaskRequest struct {
	Title             *string         `json:"title"             validate:"omitempty,min=1,max=200"`
	Description       *string         `json:"description"       validate:"omitempty,max=2000"`
	Type              *string         `json:"type"              validate:"omitempty,max=50"`
	RoomID            *int64          `json:"roomId"            validate:"omitempty,gt=0"`
	AssignedTo        *string         `json:"assignedTo"        validate:"omitempty,max=100"`
	Priority          *model.Priority `json:"priority"          validate:"omitempty,oneof=Low Medium High Urgent"`
	Status            *model.Status   `json:"status"            validate:"omitempty,oneof=Pending 'In Progress' Completed Cancelled"`
	ScheduledDate     *time.Time      `json:"scheduledDate"`
	EstimatedDuration *int            `json:"estimatedDuration" validate:"omitempty,gte=0"`
}

// TaskFilter narrows a task listing. Status and priority compare case-insensitively and
// assignee matches any part of the staff name.
type TaskFilter struct {
	RoomID     int64
	Status     string
	AssignedTo string
	Priority   string
}

func (f TaskFilter) Validate() error {
	if err := validator.ValidateParam("status", strings.ToLower(f.Status), "omitempty,oneof=pending 'in progress' completed cancelled"); err != nil {
		return err //nolint:wrapcheck
	}

	return validator.ValidateParam("priority", strings.ToLower(f.Priority), "omitempty,oneof=low medium high urgent") //nolint:wrapcheck
}

func (f TaskFilter) Match(task model.Task) bool {
	if f.RoomID > 0 && (task.RoomID == nil || *task.RoomID != f.RoomID) {
		return false
	}

	if f.Status != "" && !strings.EqualFold(string(task.Status), f.Status) {
		return false
	}

	if f.Priority != "" && !strings.EqualFold(string(task.Priority), f.Priority) {
		return false
	}

	if f.AssignedTo != "" && !strings.Contains(strings.ToLower(task.AssignedTo), strings.ToLower(f.AssignedTo)) {
		return false
	}

	return true
}
