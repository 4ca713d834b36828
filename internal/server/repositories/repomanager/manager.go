package repomanager

import (
	"context"
	"database/sql"

	"github.com/linguoapp/linguo/internal/dbx"
	"github.com/linguoapp/linguo/internal/server/repositories/decks"
	"github.com/linguoapp/linguo/internal/server/repositories/reviewmeta"
	"github.com/linguoapp/linguo/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	ReviewMeta(db dbx.DBTX) reviewmeta.Repository
	Decks(db dbx.DBTX) decks.Repository
}
