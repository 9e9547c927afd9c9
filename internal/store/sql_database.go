package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/migrations"
)

// Supported values of config.DB.Driver.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DB is a database handle bundled with the dialect details the blob
// repository needs.
type DB struct {
	*sql.DB
	driver             string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case DriverPostgres, "postgres", "":
		return NewConnectPostgres(ctx, cfg, log)
	case DriverSQLite, "sqlite":
		return NewConnectSQLite(ctx, cfg, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
}

// Migrate brings the schema up to date.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect())
}

func (db *DB) dialect() string {
	if db.driver == DriverSQLite {
		return migrations.DialectSQLite
	}
	return migrations.DialectPostgres
}
