// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and the SQL used by the rest of the server.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - elections: Candidate tally inputs (votes, base_votes, daily_increment, start_date)
  - donation_settings: One row of donation progress figures
  - donations: Individual donations, newest first in listings

# Drivers

The same SQL runs on SQLite (modernc.org/sqlite, driver "sqlite") and
PostgreSQL (lib/pq, driver "postgres"). Queries are written with ?
placeholders; Queries rewrites them with Rebind when the driver is Postgres.

	q := db.NewQueries(conn, cfg.DatabaseType)
	rows, err := q.ListElections(ctx)

# Admin Writes

UpdateElection sets base_votes equal to the edited votes, matching what the
back office has always done: an edit resets the accrual floor.
*/
package db
