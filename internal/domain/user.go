package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity for an account. Owns zero or more task lists.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
