package model

import (
	"time"
)

const (
	TableName  = "tasks"
	EntityName = "task"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

type Task struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Type              string     `json:"type"`
	RoomID            *int64     `json:"roomId"`
	AssignedTo        string     `json:"assignedTo"`
	Priority          Priority   `json:"priority"`
	Status            Status     `json:"status"`
	ScheduledDate     time.Time  `json:"scheduledDate"`
	EstimatedDuration int        `json:"estimatedDuration"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (t Task) Identity() int64 {
	return t.ID
}

func (t Task) WithIdentity(id int64) Task {
	t.ID = id

	return t
}

func (t Task) Clone() Task {
	if t.RoomID != nil {
		roomID := *t.RoomID
		t.RoomID = &roomID
	}

	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		t.CompletedAt = &completedAt
	}

	return t
}
