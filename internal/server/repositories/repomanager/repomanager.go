// Package repomanager vends repository implementations bound to a database
// handle or transaction, plus a schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/fieldpass/fieldpass/internal/dbx"
	"github.com/fieldpass/fieldpass/internal/server/repositories/coupons"
	"github.com/fieldpass/fieldpass/internal/server/repositories/users"
)

// RepositoryManager produces repositories bound to the provided DBTX, which
// lets services run repository calls inside a shared transaction via
// dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Coupons(db dbx.DBTX) coupons.Repository
}
