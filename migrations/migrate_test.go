// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Rejects(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tests := []struct {
		name    string
		db      *sql.DB
		dialect string
		wantMsg string
	}{
		{name: "nil db", db: nil, dialect: DialectPostgres, wantMsg: "db is nil"},
		{name: "unknown dialect", db: db, dialect: "oracle", wantMsg: `unsupported dialect "oracle"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Migrate(tt.db, tt.dialect)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMigrate_PostgresQueryFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery(".*").WillReturnError(errors.New("connection reset"))
	mock.ExpectExec(".*").WillReturnError(errors.New("connection reset"))

	err = Migrate(db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_SQLiteSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db, DialectSQLite))
	require.NoError(t, Migrate(db, DialectSQLite), "second run must be a no-op")

	rows, err := db.Query(`SELECT name FROM pragma_table_info('users') ORDER BY cid`)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rows.Close() })

	var columns []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{
		"user_id", "username", "email", "password_hash",
		"display_name", "created_at", "updated_at",
	}, columns)

	_, err = db.Exec(`INSERT INTO users (user_id, username, email, password_hash) VALUES ('a', 'bob', 'x', 'h')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (user_id, username, email, password_hash) VALUES ('b', 'bob', 'y', 'h')`)
	assert.Error(t, err, "username must be unique")
}
