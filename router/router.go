// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/db"
	"github.com/danielhkuo/tally-board/handlers"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/tally"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(q *db.Queries, engine *tally.Engine, cfg cliparse.Config, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(engine)
	adminHandler := handlers.NewAdminHandler(q, engine)
	settingsHandler := handlers.NewSettingsHandler(q)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKeySalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election pages (public)
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{position}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("POST /elections/{position}/ballots", middleware.WithLogging(electionHandler.CastBallot))

	// Donation progress (public)
	mux.HandleFunc("GET /donation-settings", middleware.WithLogging(settingsHandler.GetDonationSettings))

	// Back office (requires X-Admin-Key)
	mux.HandleFunc("GET /admin/elections", admin(adminHandler.ListElections))
	mux.HandleFunc("POST /admin/elections", admin(adminHandler.CreateElection))
	mux.HandleFunc("PUT /admin/elections/{id}", admin(adminHandler.UpdateElection))
	mux.HandleFunc("DELETE /admin/elections/{id}", admin(adminHandler.DeleteElection))
	mux.HandleFunc("PUT /admin/donation-settings", admin(adminHandler.UpdateDonationSettings))
	mux.HandleFunc("GET /admin/donations", admin(adminHandler.ListDonations))

	// Prometheus exposition
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tally-board API v1"))
	})

	return mux
}
