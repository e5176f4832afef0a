// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for the back-office key HMAC (required)
  - EpochDBPath: Local bbolt file holding election start anchors (default: epochs.db)
  - ElectionsFile: YAML nominee list replacing the built-in one (optional)
  - RecomputeInterval: Time between tally recompute passes (default: 60s)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-epoch-db         Epoch anchor file
	-elections        Election pages YAML
	-interval         Recompute interval
	-admin-salt       Admin key salt
	-print-admin-key  Print the admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	EPOCH_DB_PATH      → -epoch-db
	ELECTIONS_FILE     → -elections
	RECOMPUTE_INTERVAL → -interval
	ADMIN_KEY_SALT     → -admin-salt

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing, if one exists.

# Validation

ParseFlags returns an error if required values are missing:

  - ADMIN_KEY_SALT must be provided
  - DATABASE_URL must be provided, unless -print-admin-key is set
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
