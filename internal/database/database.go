// Package database opens the Postgres handle shared by every store.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool limits sized for a single-team deployment; requests are short and
// per-handler, nothing holds a connection across calls.
const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxIdleTime = 10 * time.Minute
)

// New opens the pool and verifies connectivity before the server starts
// taking traffic.
func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
