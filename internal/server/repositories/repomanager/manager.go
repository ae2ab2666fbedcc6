package repomanager

import (
	"context"
	"database/sql"

	"github.com/stnkworkshop/auth-service/internal/dbx"
	"github.com/stnkworkshop/auth-service/internal/server/repositories/tokens"
	"github.com/stnkworkshop/auth-service/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can run
// them against the shared pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
}
