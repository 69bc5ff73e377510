// Package dbx carries the small database plumbing the repository layer
// builds on: DBTX, a query interface satisfied by *sql.DB and *sql.Tx
// alike, and WithTx for running multi-statement writes atomically.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the handle repositories query through. Passing a *sql.Tx scopes a
// repository to a transaction; passing a *sql.DB runs it in autocommit mode.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx opens a transaction and runs fn against it, committing when fn
// returns nil and rolling back otherwise. A panic inside fn rolls back and
// then propagates.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	done = true
	return nil
}
