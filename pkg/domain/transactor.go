package common

import "context"

// Transactor wraps a block of repository calls in a single database
// transaction. : "All writes go through a single transaction per
// request; refresh rotation must be serialized per session id (row lock)."
// Implemented by pkg/infra/db/postgres using sqlx.Tx; use cases call it
// instead of reaching for a driver-specific transaction type.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
