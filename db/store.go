// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/models"
)

// SQLStore implements engine.Store on PostgreSQL or SQLite.
// Queries use $N placeholders, which both drivers accept.
type SQLStore struct {
	db *sql.DB
}

var _ engine.Store = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) InsertPoll(ctx context.Context, poll *models.Poll) error {
	poll.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poll (id, title, expire_at)
		VALUES ($1, $2, $3)
	`, poll.ID, poll.Title, poll.ExpireAt)
	return insertError(err)
}

func (s *SQLStore) FindPoll(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, expire_at FROM poll WHERE id = $1
	`, id).Scan(&poll.ID, &poll.Title, &poll.ExpireAt)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	return &poll, nil
}

func (s *SQLStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, expire_at FROM poll ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(&poll.ID, &poll.Title, &poll.ExpireAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

func (s *SQLStore) InsertChoice(ctx context.Context, choice *models.Choice) error {
	choice.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO choice (id, poll_id, title)
		VALUES ($1, $2, $3)
	`, choice.ID, choice.PollID, choice.Title)
	return insertError(err)
}

func (s *SQLStore) FindChoice(ctx context.Context, id string) (*models.Choice, error) {
	return s.findChoice(ctx, "id", id)
}

func (s *SQLStore) FindChoiceByTitle(ctx context.Context, title string) (*models.Choice, error) {
	return s.findChoice(ctx, "title", title)
}

// column is never user input
func (s *SQLStore) findChoice(ctx context.Context, column, value string) (*models.Choice, error) {
	var choice models.Choice
	err := s.db.QueryRowContext(ctx,
		"SELECT id, poll_id, title FROM choice WHERE "+column+" = $1",
		value,
	).Scan(&choice.ID, &choice.PollID, &choice.Title)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query choice: %w", err)
	}
	return &choice, nil
}

func (s *SQLStore) ListChoices(ctx context.Context, pollID string) ([]models.Choice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, title
		FROM choice
		WHERE poll_id = $1
		ORDER BY seq
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var choice models.Choice
		if err := rows.Scan(&choice.ID, &choice.PollID, &choice.Title); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, choice)
	}
	return choices, rows.Err()
}

func (s *SQLStore) InsertVote(ctx context.Context, vote *models.Vote) error {
	vote.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, choice_id, choice_title, poll_id, vote, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.ChoiceID, vote.ChoiceTitle, vote.PollID, vote.Vote, vote.Date)
	return insertError(err)
}

func (s *SQLStore) CountVotes(ctx context.Context, choiceID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE choice_id = $1
	`, choiceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func insertError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", engine.ErrDuplicate, err)
	}
	return fmt.Errorf("failed to insert: %w", err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
