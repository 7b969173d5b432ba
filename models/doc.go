// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase and identifiers are exposed as "_id",
the same shape the documents have in MongoDB.

# Request Types

  - CreatePollRequest: title, expireAt (optional)
  - CreateChoiceRequest: title, pollId

# Domain Types

  - Poll: titled question with an expiry timestamp
  - Choice: candidate answer belonging to one poll
  - Vote: snapshot of a choice at the moment it was voted for
  - Result: winning choice title and its vote count
  - PollResult: Poll with an embedded Result
  - Tally: per-choice vote count used while computing a result

# Timestamps

expireAt and date are strings in TimeLayout:

	2006/01/02 15:04

Polls without an explicit expireAt close DefaultPollDays after creation.
*/
package models
