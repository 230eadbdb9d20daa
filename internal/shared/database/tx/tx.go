package tx

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey struct{}

// Transactor runs a function with all repository calls bound to one
// database transaction. Booking and cancellation use this to keep seat
// transitions, payments, tickets and mile mutations atomic.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Manager implements Transactor on top of GORM transactions.
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// WithinTransaction executes fn within a transaction. The transaction
// handle is injected into the context; repositories pick it up via
// FromContext. Returning an error rolls everything back.
func (m *Manager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		return fn(context.WithValue(ctx, ctxKey{}, txn))
	})
}

// FromContext returns the transaction bound to ctx, or fallback when the
// call is not part of a transaction. This lets repositories serve both
// transactional and standalone callers with the same code.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if txn, ok := ctx.Value(ctxKey{}).(*gorm.DB); ok {
		return txn
	}
	return fallback.WithContext(ctx)
}

var _ Transactor = (*Manager)(nil)
