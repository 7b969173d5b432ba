// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements poll lifecycle, voting eligibility and result
tallying on top of a Store.

# Operations

	eng := engine.New(store, engine.WithCache(cache), engine.WithMetrics(m))

	poll, err := eng.CreatePoll(ctx, "Lunch?", "")         // expires in 30 days
	choice, err := eng.CreateChoice(ctx, "Pizza", poll.ID)
	vote, err := eng.CastVote(ctx, choice.ID)
	result, err := eng.ComputeResult(ctx, poll.ID)

# Eligibility

Choices and votes are rejected with ErrPollExpired once the current time is
after the poll's expireAt. Choice titles are unique across all polls;
CreateChoice checks poll existence, then title uniqueness, then expiry.

# Results

Results are computed on demand by counting votes per choice. The choice with
the most votes wins; ties go to the choice created first. A poll without
choices fails with ErrNoChoices.

When a ResultCache is configured, results are cached per poll generation and
CastVote moves the generation before storing the vote and again after it,
so a caller always sees its own vote. A vote is refused with ErrStorage when
the first move fails.

# Errors

All failures match one of the sentinel errors with errors.Is:
ErrValidation, ErrPollNotFound, ErrChoiceNotFound, ErrDuplicateChoice,
ErrPollExpired, ErrNoChoices or ErrStorage.
*/
package engine
