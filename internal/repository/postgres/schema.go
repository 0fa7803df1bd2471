package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
)

// Table names owned by each store.
const (
	TableUsers          = "users"
	TableEvents         = "events"
	TableInvitations    = "invitations"
	TableCalendarShares = "calendar_shares"
)

// schemas holds the DDL for each table. Statements are idempotent.
var schemas = map[string]string{
	TableUsers: `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    salt TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	TableEvents: `
CREATE TABLE IF NOT EXISTS events (
    id BIGSERIAL PRIMARY KEY,
    date DATE NOT NULL,
    organizer TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    is_public BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_events_is_public ON events(is_public)`,
	TableInvitations: `
CREATE TABLE IF NOT EXISTS invitations (
    id BIGSERIAL PRIMARY KEY,
    event_id BIGINT NOT NULL,
    invitee TEXT NOT NULL,
    status TEXT NOT NULL,
    UNIQUE (event_id, invitee)
);
CREATE INDEX IF NOT EXISTS idx_invitations_invitee_status ON invitations(invitee, status)`,
	TableCalendarShares: `
CREATE TABLE IF NOT EXISTS calendar_shares (
    owner TEXT NOT NULL,
    shared_with TEXT NOT NULL,
    PRIMARY KEY (owner, shared_with)
)`,
}

// AllTables lists every table in creation order.
var AllTables = []string{TableUsers, TableEvents, TableInvitations, TableCalendarShares}

// Open opens a postgres connection pool and verifies it is reachable.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate creates the given tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB, tables ...string) error {
	for _, table := range tables {
		ddl, ok := schemas[table]
		if !ok {
			return fmt.Errorf("unknown table %q", table)
		}
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}
