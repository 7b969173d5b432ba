// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the drivencracy API.

# Handler Types

Each handler is a thin struct around the shared *engine.Engine:

  - PollHandler: create and list polls
  - ChoiceHandler: add choices to a poll and list them
  - VotingHandler: cast a vote for a choice
  - ResultsHandler: the winning choice of a poll

Handlers decode the request, call the engine and encode the answer:

	pollHandler := handlers.NewPollHandler(eng)

# Routes

	POST /poll               → CreatePoll (expireAt defaults to 30 days out)
	GET  /poll               → ListPolls
	POST /choice             → CreateChoice (title unique across all polls)
	GET  /poll/{id}/choice   → ListChoices
	POST /choice/{id}/vote   → CastVote
	GET  /poll/{id}/result   → GetResult

# Errors

Engine errors map onto status codes in one place (errors.go):

	malformed JSON           400
	validation               422 (also fields of the wrong JSON type)
	unknown poll or choice   404
	poll without choices     404
	duplicate choice title   409
	expired poll             403
	anything else            500 (logged, body says "Database error")
*/
package handlers
