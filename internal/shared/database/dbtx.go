package database

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the postgres repositories use.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Pinger is implemented by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SQLDB is what a repository needs from a pooled handle.
type SQLDB interface {
	DBTX
	Pinger
}
