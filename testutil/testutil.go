// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/drivencracy/db"
	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/models"
)

// TestDBURL is a private in-memory SQLite database. db.Open pins it to a
// single connection so every query sees the same database.
const TestDBURL = ":memory:"

// FixedNow is the clock used by TestEngine
var FixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// TestEngine returns an engine over conn whose clock is frozen at FixedNow
func TestEngine(conn *sql.DB, opts ...engine.Option) *engine.Engine {
	opts = append([]engine.Option{engine.WithClock(func() time.Time { return FixedNow })}, opts...)
	return engine.New(db.NewSQLStore(conn), opts...)
}

// OpenPollExpiry is an expireAt still in the future at FixedNow
func OpenPollExpiry() string {
	return FixedNow.AddDate(0, 0, 1).Format(models.TimeLayout)
}

// ExpiredPollExpiry is an expireAt already past at FixedNow
func ExpiredPollExpiry() string {
	return FixedNow.Add(-time.Hour).Format(models.TimeLayout)
}

// CreateTestPoll inserts a poll and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, title, expireAt string) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, title, expire_at)
		VALUES ($1, $2, $3)
	`, pollID, title, expireAt)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestChoice adds a choice to a poll and returns the choice ID
func AddTestChoice(t *testing.T, conn *sql.DB, pollID, title string) string {
	t.Helper()

	choiceID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO choice (id, poll_id, title)
		VALUES ($1, $2, $3)
	`, choiceID, pollID, title)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// AddTestVotes records n votes for a choice
func AddTestVotes(t *testing.T, conn *sql.DB, choiceID string, n int) {
	t.Helper()

	var pollID, title string
	err := conn.QueryRow(`SELECT poll_id, title FROM choice WHERE id = $1`, choiceID).Scan(&pollID, &title)
	if err != nil {
		t.Fatalf("Failed to find test choice: %v", err)
	}

	for i := 0; i < n; i++ {
		_, err := conn.Exec(`
			INSERT INTO vote (id, choice_id, choice_title, poll_id, vote, cast_at)
			VALUES ($1, $2, $3, $4, 1, $5)
		`, uuid.NewString(), choiceID, title, pollID, FixedNow.Format(models.TimeLayout))
		if err != nil {
			t.Fatalf("Failed to create test vote: %v", err)
		}
	}
}

// CountRows counts the rows of a table matching column = value
func CountRows(t *testing.T, conn *sql.DB, table, column, value string) int {
	t.Helper()

	var n int
	err := conn.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE "+column+" = $1", value).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
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
