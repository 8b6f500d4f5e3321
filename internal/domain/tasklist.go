package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskList is an ordered collection of tasks owned by one user.
// SortOrder is a positive rank, dense within the owner's set; gaps appear
// after deletes and are closed by the next reorder.
type TaskList struct {
	ID          uuid.UUID
	Title       string
	Description string
	UserID      uuid.UUID
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
