package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest may carry inline steps created with the task.
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required,min=1,max=120"`
	Description string              `json:"description" binding:"max=1000"`
	Reminder    *time.Time          `json:"reminder"`
	DueDate     *time.Time          `json:"due_date"`
	Steps       []CreateStepRequest `json:"steps" binding:"omitempty,dive"`
}

// PartialUpdateTaskRequest applies only the fields present in the body.
type PartialUpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Reminder    *time.Time `json:"reminder"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}

type TaskResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	TasklistID  *uuid.UUID     `json:"tasklist_id"`
	IsCompleted bool           `json:"is_completed"`
	Reminder    *time.Time     `json:"reminder"`
	DueDate     *time.Time     `json:"due_date"`
	Order       int            `json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at"`
	Steps       []StepResponse `json:"steps"`
}
