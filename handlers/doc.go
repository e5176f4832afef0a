// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the tally board API.

# Handler Types

  - ElectionHandler: public standings and ballot casting, backed by *tally.Engine
  - AdminHandler: back-office edits of the elections table and donation figures
  - SettingsHandler: public donation progress

	elections := handlers.NewElectionHandler(engine)
	admin := handlers.NewAdminHandler(queries, engine)

# Displayed Counts

Standings are read through the engine's tally store, never straight from the
database. A displayed count only moves up: accrual, cast ballots and admin
edits can raise it, nothing lowers it.

	GET  /elections                      → ListElections
	GET  /elections/{position}           → GetElection
	POST /elections/{position}/ballots   → CastBallot

A ballot bumps the displayed count at once and is then written to the
candidate's registry. If that write fails the response says synced=false.

# Admin Operations

Every admin write runs a recompute pass before responding, so edits show up
without waiting for the scheduler.

	GET    /admin/elections          → ListElections
	POST   /admin/elections          → CreateElection
	PUT    /admin/elections/{id}     → UpdateElection
	DELETE /admin/elections/{id}     → DeleteElection
	PUT    /admin/donation-settings  → UpdateDonationSettings
	GET    /admin/donations          → ListDonations

Admin routes require the X-Admin-Key header (see middleware.RequireAdmin).
*/
package handlers
