// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/drivencracy/metrics"
	"github.com/danielhkuo/drivencracy/models"
)

// Store is the persistence port of the engine.
// Lookups return ErrNotFound when nothing matches and inserts return
// ErrDuplicate when a unique constraint rejects the document.
// List operations return documents in insertion order.
type Store interface {
	InsertPoll(ctx context.Context, poll *models.Poll) error
	FindPoll(ctx context.Context, id string) (*models.Poll, error)
	ListPolls(ctx context.Context) ([]models.Poll, error)

	InsertChoice(ctx context.Context, choice *models.Choice) error
	FindChoice(ctx context.Context, id string) (*models.Choice, error)
	FindChoiceByTitle(ctx context.Context, title string) (*models.Choice, error)
	ListChoices(ctx context.Context, pollID string) ([]models.Choice, error)

	InsertVote(ctx context.Context, vote *models.Vote) error
	CountVotes(ctx context.Context, choiceID string) (int, error)
}

// ResultCache stores computed results under a per-poll generation.
// Invalidate must move the generation forward so results computed
// before it are never served again.
type ResultCache interface {
	Generation(ctx context.Context, pollID string) (int64, error)
	Get(ctx context.Context, pollID string, gen int64) (*models.PollResult, bool, error)
	Put(ctx context.Context, pollID string, gen int64, result *models.PollResult) error
	Invalidate(ctx context.Context, pollID string) error
}

// Operation names used for metrics labels
const (
	OpCreatePoll    = "create_poll"
	OpListPolls     = "list_polls"
	OpCreateChoice  = "create_choice"
	OpListChoices   = "list_choices"
	OpCastVote      = "cast_vote"
	OpComputeResult = "compute_result"
)

type Engine struct {
	store   Store
	cache   ResultCache
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Engine)

// WithCache enables result caching
func WithCache(cache ResultCache) Option {
	return func(e *Engine) { e.cache = cache }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock replaces time.Now. Timestamps are parsed and formatted in the
// location of the returned time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreatePoll stores a new poll. An empty expireAt defaults to
// DefaultPollDays from now; a supplied one is kept verbatim but must parse.
func (e *Engine) CreatePoll(ctx context.Context, title, expireAt string) (*models.Poll, error) {
	if strings.TrimSpace(title) == "" {
		return nil, e.reject(OpCreatePoll, fmt.Errorf("%w: title is required", ErrValidation))
	}

	if strings.TrimSpace(expireAt) == "" {
		expireAt = e.now().AddDate(0, 0, models.DefaultPollDays).Format(models.TimeLayout)
	} else if _, err := e.parseTime(expireAt); err != nil {
		return nil, e.reject(OpCreatePoll, fmt.Errorf("%w: expireAt must match %q", ErrValidation, models.TimeLayout))
	}

	poll := &models.Poll{Title: title, ExpireAt: expireAt}
	if err := e.store.InsertPoll(ctx, poll); err != nil {
		return nil, e.reject(OpCreatePoll, storageError("insert poll", err))
	}

	e.metrics.ObserveCreated("poll")
	return poll, nil
}

func (e *Engine) ListPolls(ctx context.Context) ([]models.Poll, error) {
	polls, err := e.store.ListPolls(ctx)
	if err != nil {
		return nil, e.reject(OpListPolls, storageError("list polls", err))
	}
	return polls, nil
}

// CreateChoice adds a choice to an open poll.
// Checks run in a fixed order: poll existence, title uniqueness, expiry.
func (e *Engine) CreateChoice(ctx context.Context, title, pollID string) (*models.Choice, error) {
	if strings.TrimSpace(title) == "" {
		return nil, e.reject(OpCreateChoice, fmt.Errorf("%w: title is required", ErrValidation))
	}
	if strings.TrimSpace(pollID) == "" {
		return nil, e.reject(OpCreateChoice, fmt.Errorf("%w: pollId is required", ErrValidation))
	}

	poll, err := e.findPoll(ctx, pollID)
	if err != nil {
		return nil, e.reject(OpCreateChoice, err)
	}

	// Titles are unique across all polls. The store's unique index backs
	// this check up when two requests race past it.
	_, err = e.store.FindChoiceByTitle(ctx, title)
	if err == nil {
		return nil, e.reject(OpCreateChoice, ErrDuplicateChoice)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, e.reject(OpCreateChoice, storageError("find choice by title", err))
	}

	if err := e.checkOpen(poll); err != nil {
		return nil, e.reject(OpCreateChoice, err)
	}

	choice := &models.Choice{Title: title, PollID: poll.ID}
	if err := e.store.InsertChoice(ctx, choice); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, e.reject(OpCreateChoice, ErrDuplicateChoice)
		}
		return nil, e.reject(OpCreateChoice, storageError("insert choice", err))
	}

	e.metrics.ObserveCreated("choice")
	return choice, nil
}

// ListChoices returns the choices of a poll. A missing poll yields
// ErrPollNotFound, an existing poll without choices ErrNoChoices.
func (e *Engine) ListChoices(ctx context.Context, pollID string) ([]models.Choice, error) {
	poll, err := e.findPoll(ctx, pollID)
	if err != nil {
		return nil, e.reject(OpListChoices, err)
	}

	choices, err := e.store.ListChoices(ctx, poll.ID)
	if err != nil {
		return nil, e.reject(OpListChoices, storageError("list choices", err))
	}
	if len(choices) == 0 {
		return nil, e.reject(OpListChoices, ErrNoChoices)
	}
	return choices, nil
}

// CastVote records one vote for a choice of an open poll.
func (e *Engine) CastVote(ctx context.Context, choiceID string) (*models.Vote, error) {
	choice, err := e.store.FindChoice(ctx, choiceID)
	if errors.Is(err, ErrNotFound) {
		return nil, e.reject(OpCastVote, ErrChoiceNotFound)
	}
	if err != nil {
		return nil, e.reject(OpCastVote, storageError("find choice", err))
	}

	poll, err := e.findPoll(ctx, choice.PollID)
	if err != nil {
		return nil, e.reject(OpCastVote, err)
	}

	// Best effort: a vote racing the cutoff can still land.
	if err := e.checkOpen(poll); err != nil {
		return nil, e.reject(OpCastVote, err)
	}

	// Results cached under the current generation must never be served once
	// the vote is stored. A vote that cannot move the generation is refused
	// before anything is written.
	if e.cache != nil {
		if err := e.cache.Invalidate(ctx, choice.PollID); err != nil {
			return nil, e.reject(OpCastVote, storageError("invalidate result cache", err))
		}
	}

	vote := &models.Vote{
		ChoiceID:    choice.ID,
		ChoiceTitle: choice.Title,
		PollID:      choice.PollID,
		Vote:        1,
		Date:        e.now().Format(models.TimeLayout),
	}
	if err := e.store.InsertVote(ctx, vote); err != nil {
		return nil, e.reject(OpCastVote, storageError("insert vote", err))
	}

	// Move again past any result computed between the first move and the insert
	if e.cache != nil {
		if err := e.cache.Invalidate(ctx, vote.PollID); err != nil {
			slog.Warn("failed to invalidate result cache", "error", err, "poll_id", vote.PollID)
		}
	}

	e.metrics.ObserveCreated("vote")
	return vote, nil
}

// ComputeResult tallies the votes of every choice of a poll and returns the
// poll with its winning choice.
func (e *Engine) ComputeResult(ctx context.Context, pollID string) (*models.PollResult, error) {
	start := time.Now()
	defer func() { e.metrics.ObserveResult(time.Since(start)) }()

	gen, cacheable := e.generation(ctx, pollID)
	if cacheable {
		if res, ok := e.cached(ctx, pollID, gen); ok {
			return res, nil
		}
	}

	poll, err := e.findPoll(ctx, pollID)
	if err != nil {
		return nil, e.reject(OpComputeResult, err)
	}

	tallies, err := e.tally(ctx, poll.ID)
	if err != nil {
		return nil, e.reject(OpComputeResult, err)
	}

	winner, ok := Winner(tallies)
	if !ok {
		return nil, e.reject(OpComputeResult, ErrNoChoices)
	}

	res := &models.PollResult{
		Poll:   *poll,
		Result: models.Result{Title: winner.Title, Votes: winner.Votes},
	}

	if cacheable {
		if err := e.cache.Put(ctx, pollID, gen, res); err != nil {
			slog.Warn("failed to cache result", "error", err, "poll_id", pollID)
		}
	}
	return res, nil
}

// Winner returns the tally with the most votes. Ties go to the tally that
// comes first. ok is false when tallies is empty.
func Winner(tallies []models.Tally) (winner models.Tally, ok bool) {
	if len(tallies) == 0 {
		return models.Tally{}, false
	}
	winner = tallies[0]
	for _, t := range tallies[1:] {
		if t.Votes > winner.Votes {
			winner = t
		}
	}
	return winner, true
}

func (e *Engine) tally(ctx context.Context, pollID string) ([]models.Tally, error) {
	choices, err := e.store.ListChoices(ctx, pollID)
	if err != nil {
		return nil, storageError("list choices", err)
	}

	tallies := make([]models.Tally, 0, len(choices))
	for _, c := range choices {
		n, err := e.store.CountVotes(ctx, c.ID)
		if err != nil {
			return nil, storageError("count votes", err)
		}
		tallies = append(tallies, models.Tally{ChoiceID: c.ID, Title: c.Title, Votes: n})
	}
	return tallies, nil
}

func (e *Engine) findPoll(ctx context.Context, id string) (*models.Poll, error) {
	poll, err := e.store.FindPoll(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, storageError("find poll", err)
	}
	return poll, nil
}

// checkOpen fails with ErrPollExpired once the current time is past expireAt
func (e *Engine) checkOpen(poll *models.Poll) error {
	expireAt, err := e.parseTime(poll.ExpireAt)
	if err != nil {
		return fmt.Errorf("%w: poll %s has malformed expireAt %q", ErrStorage, poll.ID, poll.ExpireAt)
	}
	if e.now().After(expireAt) {
		return ErrPollExpired
	}
	return nil
}

func (e *Engine) parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(models.TimeLayout, s, e.now().Location())
}

func (e *Engine) generation(ctx context.Context, pollID string) (int64, bool) {
	if e.cache == nil {
		return 0, false
	}
	gen, err := e.cache.Generation(ctx, pollID)
	if err != nil {
		slog.Warn("failed to read result cache generation", "error", err, "poll_id", pollID)
		return 0, false
	}
	return gen, true
}

func (e *Engine) cached(ctx context.Context, pollID string, gen int64) (*models.PollResult, bool) {
	res, ok, err := e.cache.Get(ctx, pollID, gen)
	if err != nil {
		slog.Warn("failed to read result cache", "error", err, "poll_id", pollID)
		ok = false
	}
	e.metrics.ObserveCache(ok)
	return res, ok
}

func (e *Engine) reject(op string, err error) error {
	e.metrics.ObserveRejected(op, reasonFor(err))
	return err
}

func storageError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, action, err)
}
