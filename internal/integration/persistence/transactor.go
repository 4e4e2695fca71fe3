// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/dompet/ledger/internal/application/adapter"
)

type txContextKey struct{}

// transactor implements the adapter.Transactor interface on top of gorm transactions.
type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor instance.
func NewTransactor(db *gorm.DB) adapter.Transactor {
	return &transactor{
		db: db,
	}
}

// WithinTransaction runs fn in a transaction that repositories pick up from ctx.
// A nested call joins the outer transaction.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or the base connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
