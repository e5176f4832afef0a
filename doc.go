// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tally board API server.

The server keeps the vote counts shown on the election pages. Each
candidate's count grows by a daily increment from an epoch, visitors can
cast ballots, and the back office can edit the inputs. A displayed count
never goes down, whatever the inputs do.

# Starting the Server

The server reads a .env file if present, then environment variables or CLI flags:

	ADMIN_KEY_SALT=... DATABASE_URL=tally.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt ...

Print the back-office key and exit:

	go run . -admin-salt ... -print-admin-key

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for the admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - EPOCH_DB_PATH (-epoch-db): bbolt file holding accrual epochs (default: epochs.db)
  - ELECTIONS_FILE (-elections): YAML replacing the built-in election pages
  - RECOMPUTE_INTERVAL (-interval): Time between recompute passes (default: 60s)

# Architecture

  - tally: accrual, monotonic store, ballots, recompute scheduler
  - kvstore: persistent epoch anchors (bbolt)
  - handlers: HTTP request handlers (elections, admin, settings)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin key check, JSON helpers
  - metrics: Prometheus collectors
  - models: Request/response types
  - auth: Admin key and ID generation
  - db: Schema and queries
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
