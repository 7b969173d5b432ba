// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/handlers"
	"github.com/danielhkuo/drivencracy/metrics"
	"github.com/danielhkuo/drivencracy/middleware"
)

// NewRouter registers every route. m may be nil, in which case /metrics is
// not served and request durations are not recorded.
func NewRouter(eng *engine.Engine, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(eng)
	choiceHandler := handlers.NewChoiceHandler(eng)
	votingHandler := handlers.NewVotingHandler(eng)
	resultsHandler := handlers.NewResultsHandler(eng)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(m, pattern, middleware.WithLogging(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	// Polls
	handle("POST /poll", pollHandler.CreatePoll)
	handle("GET /poll", pollHandler.ListPolls)

	// Choices
	handle("POST /choice", choiceHandler.CreateChoice)
	handle("GET /poll/{id}/choice", choiceHandler.ListChoices)

	// Voting
	handle("POST /choice/{id}/vote", votingHandler.CastVote)

	// Results
	handle("GET /poll/{id}/result", resultsHandler.GetResult)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("drivencracy API v1"))
	})

	return mux
}
