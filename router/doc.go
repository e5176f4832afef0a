// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the tally board API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(queries, engine, cfg, promRegistry)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Election pages (public):

	GET  /elections                    - All positions with standings
	GET  /elections/{position}         - One position
	POST /elections/{position}/ballots - Cast a ballot

Donation progress (public):

	GET /donation-settings

Back office (requires X-Admin-Key):

	GET    /admin/elections
	POST   /admin/elections
	PUT    /admin/elections/{id}
	DELETE /admin/elections/{id}
	PUT    /admin/donation-settings
	GET    /admin/donations

Position names contain spaces and arrive URL-encoded; the mux decodes them
before they reach the handlers.
*/
package router
