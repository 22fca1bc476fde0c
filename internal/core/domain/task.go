package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
// "overdue" is derived at query time from the due date; it is never
// stored as a transition of its own.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

var ErrTaskNotFound = errors.New("task not found")

// Task is a unit of work assigned to a user, optionally tied to a lead.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	AssignedTo     string       `json:"assignedTo"`
	AssignedToName string       `json:"assignedToName,omitempty"`
	CreatedBy      string       `json:"createdBy"`
	CreatedByName  string       `json:"createdByName,omitempty"`
	DueDate        time.Time    `json:"dueDate"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
	RelatedLead    string       `json:"relatedLead,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
