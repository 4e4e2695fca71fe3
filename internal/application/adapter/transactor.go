// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Transactor runs a unit of work atomically. Repository calls made with the
// context passed to fn join the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
