// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Driver names as registered by lib/pq and modernc.org/sqlite.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Rebind rewrites ? placeholders to $1, $2, ... for Postgres.
// Queries in this package never contain a literal '?'.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Portable between SQLite and Postgres: no NOW(), no JSONB.
const schema = `
-- Candidate tally inputs, edited by the back office
CREATE TABLE IF NOT EXISTS elections (
    id TEXT PRIMARY KEY,
    position TEXT NOT NULL,
    candidate_name TEXT NOT NULL,
    votes BIGINT NOT NULL DEFAULT 0 CHECK (votes >= 0),
    base_votes BIGINT NOT NULL DEFAULT 0 CHECK (base_votes >= 0),
    daily_increment BIGINT NOT NULL DEFAULT 0 CHECK (daily_increment >= 0),
    start_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_elections_position ON elections(position);

-- Single settings row for the donation progress figures
CREATE TABLE IF NOT EXISTS donation_settings (
    id TEXT PRIMARY KEY,
    total_raised BIGINT NOT NULL DEFAULT 0,
    target_goal BIGINT NOT NULL DEFAULT 0,
    total_donors BIGINT NOT NULL DEFAULT 0,
    avg_per_mosque BIGINT NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Donations, listed newest first in the back office
CREATE TABLE IF NOT EXISTS donations (
    id TEXT PRIMARY KEY,
    amount BIGINT NOT NULL CHECK (amount >= 0),
    donor_name TEXT,
    email TEXT,
    country TEXT,
    frequency TEXT,
    purpose TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_donations_created_at ON donations(created_at);
`
