// Package testutil provides an in-memory relational database with the same
// tables as migrations/postgres, for tests of the relational stores.
package testutil

import (
	"database/sql"
	"testing"

	"tickoff/infras/postgres"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" //nolint:revive
)

const schema = `
CREATE TABLE users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT      NOT NULL UNIQUE,
    password_hash TEXT      NOT NULL,
    created_at    TIMESTAMP NOT NULL,
    modified_at   TIMESTAMP NOT NULL
);

CREATE TABLE todo_items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT      NOT NULL,
    is_complete BOOLEAN   NOT NULL DEFAULT FALSE,
    owner_id    INTEGER   NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    version     INTEGER   NOT NULL DEFAULT 1,
    created_at  TIMESTAMP NOT NULL,
    modified_at TIMESTAMP NOT NULL
);

CREATE INDEX idx_todo_items_owner_id ON todo_items (owner_id);
`

// NewConnection returns a Connection whose read and write pools share one
// fresh in-memory database. The database is closed when the test ends.
func NewConnection(t testing.TB) *postgres.Connection {
	t.Helper()

	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty database
	raw.SetMaxOpenConns(1)

	db := sqlx.NewDb(raw, "sqlite3")

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = db.Exec(schema)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return &postgres.Connection{Read: db, Write: db}
}
