package repository

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/vornexz/pay/internal/server/models"
)

// OpenDB opens a sqlite backed bun.DB using the given DSN,
// e.g. "file:vornexz.db?cache=shared" or ":memory:"
func OpenDB(dsn string) (*bun.DB, error) {
	db, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	// sqlite misbehaves with concurrent writers on a shared cache
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	if _, err := bunDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, err
	}

	return bunDB, nil
}

// CreateTables bootstraps the schema for all registered models
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*models.User)(nil),
		(*models.Transaction)(nil),
		(*models.Card)(nil),
		(*models.Company)(nil),
		(*models.ContentSection)(nil),
		(*models.SiteConfig)(nil),
		(*models.EmailCode)(nil),
	}

	for _, table := range tables {
		_, err := db.NewCreateTable().
			Model(table).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}
