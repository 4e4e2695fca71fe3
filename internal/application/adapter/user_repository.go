// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/domain/entity"
)

// UserRepository persists accounts. Lookups by email ignore case.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateAccount writes the password hash and verification flag.
	UpdateAccount(ctx context.Context, user *entity.User) error

	// Delete removes the user row only. Assets, records and tokens are
	// removed by the caller in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
