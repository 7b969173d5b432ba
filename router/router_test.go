// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/drivencracy/metrics"
	"github.com/danielhkuo/drivencracy/models"
	"github.com/danielhkuo/drivencracy/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(testutil.TestEngine(db), nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(testutil.TestEngine(db), nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "drivencracy API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(testutil.TestEngine(db), nil)

	// Routes must reach their handler; 400, 404 and 422 are valid answers
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"POST", "/poll"},
		{"GET", "/poll"},
		{"POST", "/choice"},
		{"GET", "/poll/test-id/choice"},
		{"POST", "/choice/test-id/vote"},
		{"GET", "/poll/test-id/result"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(testutil.TestEngine(db), nil)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/poll"},
		{"PUT", "/choice"},
		{"GET", "/choice/test-id/vote"},
		{"POST", "/poll/test-id/result"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(testutil.TestEngine(db), nil)

	req := httptest.NewRequest("GET", "/polls", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	t.Run("disabled without metrics", func(t *testing.T) {
		mux := NewRouter(testutil.TestEngine(db), nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("exposes request durations", func(t *testing.T) {
		m := metrics.New("drivencracy")
		mux := NewRouter(testutil.TestEngine(db), m)

		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/poll", nil))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, `drivencracy_http_request_duration_seconds_count{route="GET /poll",status="200"} 1`) {
			t.Errorf("Expected request duration for GET /poll, got:\n%s", body)
		}
	})
}

// TestFullVotingWorkflow drives every route in order:
// create poll, add choices, vote, read the result.
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(testutil.TestEngine(db), nil)

	do := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Step 1: create a poll
	w := do(testutil.MakeRequest("POST", "/poll", models.CreatePollRequest{Title: "Team lunch"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)

	// Step 2: it shows up in the list
	w = do(testutil.MakeRequest("GET", "/poll", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var polls []models.Poll
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 1 || polls[0] != poll {
		t.Fatalf("Expected [%+v], got %+v", poll, polls)
	}

	// Step 3: no choices yet
	w = do(testutil.MakeRequest("GET", "/poll/"+poll.ID+"/choice", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// Step 4: add choices
	choiceIDs := map[string]string{}
	for _, title := range []string{"Burgers", "Salad", "Curry"} {
		w = do(testutil.MakeRequest("POST", "/choice", models.CreateChoiceRequest{Title: title, PollID: poll.ID}, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)
		var choice models.Choice
		testutil.AssertJSON(t, w, &choice)
		choiceIDs[title] = choice.ID
	}

	w = do(testutil.MakeRequest("POST", "/choice", models.CreateChoiceRequest{Title: "Salad", PollID: poll.ID}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = do(testutil.MakeRequest("GET", "/poll/"+poll.ID+"/choice", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var choices []models.Choice
	testutil.AssertJSON(t, w, &choices)
	if len(choices) != 3 {
		t.Fatalf("Expected 3 choices, got %d", len(choices))
	}

	// Step 5: vote
	votes := map[string]int{"Burgers": 1, "Salad": 2, "Curry": 2}
	for title, n := range votes {
		for i := 0; i < n; i++ {
			w = do(testutil.MakeRequest("POST", "/choice/"+choiceIDs[title]+"/vote", nil, nil))
			testutil.AssertStatus(t, w, http.StatusCreated)
		}
	}

	// Step 6: Salad and Curry tie; Salad was added first
	w = do(testutil.MakeRequest("GET", "/poll/"+poll.ID+"/result", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var result models.PollResult
	testutil.AssertJSON(t, w, &result)
	if result.Poll != poll {
		t.Errorf("Expected poll %+v, got %+v", poll, result.Poll)
	}
	if result.Result != (models.Result{Title: "Salad", Votes: 2}) {
		t.Errorf("Expected {Salad 2}, got %+v", result.Result)
	}
}
