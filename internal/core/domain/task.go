package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

const MaxTitleLength = 120

// TaskStatuses lists every legal status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Next returns the status that follows s in the lifecycle, wrapping around.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusPending:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusCompleted
	default:
		return TaskStatusPending
	}
}

type Task struct {
	ID          int64
	Title       string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil
}

func IsNonEmptyTitle(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ClampTitle trims s and cuts it to MaxTitleLength characters.
func ClampTitle(s string) string {
	title := strings.TrimSpace(s)
	if utf8.RuneCountInString(title) <= MaxTitleLength {
		return title
	}
	return string([]rune(title)[:MaxTitleLength])
}

func IsValidStatus(s string) bool {
	return TaskStatus(s).Valid()
}
