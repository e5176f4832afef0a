// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/tally-board/auth"
	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/db"
	"github.com/danielhkuo/tally-board/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// TestDBURL opens a private in-memory SQLite database per connection.
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open(db.DriverSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is its own database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestQueries is SetupTestDB wrapped in a query set
func SetupTestQueries(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()
	conn := SetupTestDB(t)
	return conn, db.NewQueries(conn, db.DriverSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       TestDBURL,
		DatabaseType:      db.DriverSQLite,
		AdminKeySalt:      "test-admin-salt",
		EpochDBPath:       "epochs.db",
		RecomputeInterval: time.Minute,
	}
}

// AdminHeaders returns the header map carrying a valid admin key
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		"X-Admin-Key": auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt),
	}
}

// CreateTestElection inserts a candidate row starting at start and returns its ID
func CreateTestElection(t *testing.T, q *db.Queries, position, name string, votes, dailyIncrement int64, start time.Time) string {
	t.Helper()

	id := uuid.New().String()
	err := q.CreateElection(context.Background(), models.Election{
		ID:             id,
		Position:       position,
		CandidateName:  name,
		Votes:          votes,
		DailyIncrement: dailyIncrement,
		StartDate:      start,
		CreatedAt:      start,
		UpdatedAt:      start,
	})
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return id
}

// CreateTestDonation inserts a donation and returns its ID
func CreateTestDonation(t *testing.T, conn *sql.DB, amount int64, donor string, createdAt time.Time) string {
	t.Helper()

	id := uuid.New().String()
	_, err := conn.Exec(`
		INSERT INTO donations (id, amount, donor_name, created_at)
		VALUES (?, ?, ?, ?)
	`, id, amount, donor, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test donation: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
