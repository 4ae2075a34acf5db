package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/migrations"
	"github.com/Masterminds/squirrel"
)

// sqliteScheme prefixes DSNs that select the SQLite backend.
const sqliteScheme = "sqlite://"

// DB is an open connection pool together with the dialect-specific pieces
// repositories need: the query builder placeholder format and the driver
// error classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            squirrel.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the backend named by cfg.DSN: "sqlite://<path>" selects
// SQLite, "postgres://" or "postgresql://" URLs and key=value strings select
// PostgreSQL.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if path, ok := strings.CutPrefix(cfg.DSN, sqliteScheme); ok {
		return NewConnectSQLite(ctx, path, log)
	}

	if cfg.DSN == "" {
		return nil, ErrUnsupportedDSN
	}
	if scheme, _, found := strings.Cut(cfg.DSN, "://"); found && scheme != "postgres" && scheme != "postgresql" {
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedDSN, scheme)
	}

	return NewConnectPostgres(ctx, cfg, log)
}

// Migrate applies the embedded schema migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the goose dialect name of the backend.
func (db *DB) Dialect() string {
	return db.dialect
}

func newDB(conn *sql.DB, dialect string, placeholder squirrel.PlaceholderFormat, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}
