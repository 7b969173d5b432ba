// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "errors"

// Errors returned by Store implementations
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

// Errors returned by Engine operations
var (
	ErrValidation      = errors.New("validation failed")
	ErrPollNotFound    = errors.New("poll not found")
	ErrChoiceNotFound  = errors.New("choice not found")
	ErrDuplicateChoice = errors.New("choice title already exists")
	ErrPollExpired     = errors.New("poll has expired")
	ErrNoChoices       = errors.New("poll has no choices")
	ErrStorage         = errors.New("storage error")
)

// rejection reasons reported to metrics
const (
	reasonValidation = "validation"
	reasonNotFound   = "not_found"
	reasonDuplicate  = "duplicate"
	reasonExpired    = "expired"
	reasonNoChoices  = "no_choices"
	reasonStorage    = "storage"
)

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return reasonValidation
	case errors.Is(err, ErrPollNotFound), errors.Is(err, ErrChoiceNotFound):
		return reasonNotFound
	case errors.Is(err, ErrDuplicateChoice):
		return reasonDuplicate
	case errors.Is(err, ErrPollExpired):
		return reasonExpired
	case errors.Is(err, ErrNoChoices):
		return reasonNoChoices
	default:
		return reasonStorage
	}
}
