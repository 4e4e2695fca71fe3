// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// LedgerLock serializes balance mutations for a single user across API instances.
type LedgerLock interface {
	// Acquire blocks until the user's ledger is locked or the wait budget runs out.
	// The returned release func must be called exactly once.
	Acquire(ctx context.Context, userID uuid.UUID) (release func(), err error)
}
