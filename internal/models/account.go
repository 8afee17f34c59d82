package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the sign-in identity kept in PostgreSQL (email + password hash only).
type Account struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}
