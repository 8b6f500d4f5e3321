package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskListRequest doubles as the PUT replace body.
type CreateTaskListRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateOrderRequest moves an item of the addressed scope to a new rank.
// Shared by tasklist and task reorders.
type UpdateOrderRequest struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Order int       `json:"order" binding:"required,gt=0"`
}

type TaskListResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
