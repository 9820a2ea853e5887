package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager opens and closes database transactions. The repository
// facades use it to run multi-table writes (ledger saves, reservations,
// adjustments) atomically.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back an already finished
	// transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
