// Package storage opens the client's local database, applies embedded schema
// migrations, and bundles the collection repositories. Missing collections are
// created by migrations without touching existing ones, so a schema upgrade
// never destroys downloaded data.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linguoapp/linguo/internal/client/migrations"
	"github.com/linguoapp/linguo/internal/client/repositories/catalog"
	"github.com/linguoapp/linguo/internal/client/repositories/decks"
	"github.com/linguoapp/linguo/internal/client/repositories/reviewmeta"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the three local collections.
type Repositories struct {
	Decks      decks.Repository
	ReviewMeta reviewmeta.Repository
	Catalog    catalog.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the sqlite database at dsn, migrates it,
// and returns the repository bundle.
func Open(ctx context.Context, dsn string) (*Repositories, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	repos := &Repositories{
		Decks:      decks.NewSQLiteRepository(db),
		ReviewMeta: reviewmeta.NewSQLiteRepository(db),
		Catalog:    catalog.NewSQLiteRepository(db),
	}
	return repos, db, nil
}
