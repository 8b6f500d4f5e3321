package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task belongs to a task list. TasklistID is nullable: tasks orphaned by
// client flows are kept. SortOrder ranks the task within
// (tasklist, is_completed); flipping IsCompleted moves the task to the other
// scope without renumbering either.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	TasklistID  *uuid.UUID
	IsCompleted bool
	Reminder    *time.Time
	DueDate     *time.Time
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	Steps []Step
}

// Step is an unordered child item of a task.
type Step struct {
	ID          uuid.UUID
	Title       string
	Description string
	IsCompleted bool
	TaskID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
