package tasks

import (
	"time"

	"smart-task-backend/internal/classifier"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

type HistoryAction string

const (
	ActionCreated       HistoryAction = "created"
	ActionUpdated       HistoryAction = "updated"
	ActionStatusChanged HistoryAction = "status_changed"
	ActionCompleted     HistoryAction = "completed"
)

type Task struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Category          classifier.Category `json:"category"`
	Priority          classifier.Priority `json:"priority"`
	Status            Status              `json:"status"`
	AssignedTo        *string             `json:"assigned_to"`
	DueDate           *time.Time          `json:"due_date"`
	ExtractedEntities classifier.Entities `json:"extracted_entities"`
	SuggestedActions  []string            `json:"suggested_actions"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type TaskHistory struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"task_id"`
	Action    HistoryAction `json:"action"`
	OldValue  *Task         `json:"old_value"`
	NewValue  *Task         `json:"new_value"`
	ChangedBy string        `json:"changed_by"`
	ChangedAt time.Time     `json:"changed_at"`
}

type TaskWithHistory struct {
	Task    Task          `json:"task"`
	History []TaskHistory `json:"history"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest is a partial update; nil fields are left alone.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Category    *classifier.Category `json:"category"`
	Priority    *classifier.Priority `json:"priority"`
	Status      *Status              `json:"status"`
	AssignedTo  *string              `json:"assigned_to"`
	DueDate     *time.Time           `json:"due_date"`
}

func (r UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Category == nil &&
		r.Priority == nil && r.Status == nil && r.AssignedTo == nil && r.DueDate == nil
}

type TaskListResponse struct {
	Tasks   []Task `json:"tasks"`
	Total   int    `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	HasMore bool   `json:"has_more"`
}

type DeleteTaskResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type ListParams struct {
	Status    *Status
	Category  *classifier.Category
	Priority  *classifier.Priority
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}
