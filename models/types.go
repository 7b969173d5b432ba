// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// TimeLayout is the minute-precision layout used for expireAt and vote dates.
// It sorts lexically in chronological order.
const TimeLayout = "2006/01/02 15:04"

// DefaultPollDays is how long a poll stays open when no expireAt is given
const DefaultPollDays = 30

// Request types

type CreatePollRequest struct {
	Title    string `json:"title"`
	ExpireAt string `json:"expireAt"`
}

type CreateChoiceRequest struct {
	Title  string `json:"title"`
	PollID string `json:"pollId"`
}

// Domain types

type Poll struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	ExpireAt string `json:"expireAt"`
}

type Choice struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	PollID string `json:"pollId"`
}

// Vote is a snapshot of the choice at the moment it was cast.
// ChoiceTitle and PollID are copied, never looked up again.
type Vote struct {
	ID          string `json:"_id"`
	ChoiceID    string `json:"choiceId"`
	ChoiceTitle string `json:"choiceTitle"`
	PollID      string `json:"pollId"`
	Vote        int    `json:"vote"`
	Date        string `json:"date"`
}

// Result is the winning choice of a poll
type Result struct {
	Title string `json:"title"`
	Votes int    `json:"votes"`
}

// PollResult is a poll augmented with its result
type PollResult struct {
	Poll
	Result Result `json:"result"`
}

// Tally is the vote count of a single choice
type Tally struct {
	ChoiceID string `json:"choiceId"`
	Title    string `json:"title"`
	Votes    int    `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
