// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the drivencracy API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(eng, m)

Passing a nil *metrics.Metrics turns off /metrics and request timing.

# Endpoints

Health and monitoring:

	GET /health
	GET /metrics

Polls:

	POST /poll              - Create poll
	GET  /poll              - List polls

Choices:

	POST /choice            - Add choice to a poll
	GET  /poll/{id}/choice  - List choices of a poll

Votes and results:

	POST /choice/{id}/vote  - Cast a vote
	GET  /poll/{id}/result  - Winning choice

Every API route is wrapped in request logging and request metrics, labelled
by its pattern.
*/
package router
