package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner scopes one serializable transaction around fn. The deferred
// rollback guarantees no transaction is ever left open, whatever path fn
// exits through; rollback after a successful commit is a no-op.
type TxRunner interface {
	RunSerializable(ctx context.Context, fn func(q Querier) error) error
}

type PGTxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *PGTxRunner {
	return &PGTxRunner{pool: pool}
}

// RunSerializable is not reentrant: fn must not start another transaction.
// A serialization abort surfaces as the commit error; callers treat it like
// any other store failure and may retry the whole logical operation.
func (r *PGTxRunner) RunSerializable(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ TxRunner = (*PGTxRunner)(nil)
