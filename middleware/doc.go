// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Logging Middleware

Wrap handlers to log each request with its status and duration:

	mux.HandleFunc("GET /elections", middleware.WithLogging(handler))

# Admin Middleware

Back-office routes require the X-Admin-Key header:

	mux.HandleFunc("PUT /admin/elections/{id}",
		middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKeySalt, h.UpdateElection)))

Rejections are logged with a hashed client IP, never the raw address.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and X-Admin-Key. Preflight requests get 204.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Bodies are capped at 64 KiB and must hold exactly one JSON value.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr without its port.
*/
package middleware
