package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxFunc is executed inside a transaction. Returning an error rolls back.
type TxFunc func(pgx.Tx) error

// WithTransactionOptions runs fn inside a transaction started on pool with opts.
// It rolls back on error or panic and commits otherwise.
func WithTransactionOptions(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn TxFunc) (err error) {
	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			// ctx may already be cancelled; rollback must still reach the server.
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// TxManager opens units of work. Services depend on this instead of a pool
// so tests can run the callback without a database.
type TxManager interface {
	WithTransaction(ctx context.Context, fn TxFunc) error
}

type poolTxManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxManager returns a TxManager that begins transactions on pool with opts.
func NewTxManager(pool *pgxpool.Pool, opts pgx.TxOptions) TxManager {
	return &poolTxManager{pool: pool, opts: opts}
}

func (m *poolTxManager) WithTransaction(ctx context.Context, fn TxFunc) error {
	return WithTransactionOptions(ctx, m.pool, m.opts, fn)
}
