// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User owns assets and records. Email is stored lower-cased.
type User struct {
	ID            uuid.UUID
	Email         string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates an unverified user.
func NewUser(email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MarkVerified flags the user's email as verified.
func (u *User) MarkVerified() {
	u.EmailVerified = true
	u.touch()
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(hash string) {
	u.PasswordHash = hash
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}
