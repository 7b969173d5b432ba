// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/middleware"
)

// statusFor maps engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrPollNotFound),
		errors.Is(err, engine.ErrChoiceNotFound),
		errors.Is(err, engine.ErrNoChoices):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrDuplicateChoice):
		return http.StatusConflict
	case errors.Is(err, engine.ErrPollExpired):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeDecodeError answers a request body that could not be decoded.
// Well-formed JSON with a field of the wrong type is a validation failure.
func writeDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
		return
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
}

// writeError writes the error response for an engine failure.
// Storage details are logged, never sent to the client.
func writeError(w http.ResponseWriter, err error, msg string, args ...any) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(msg, append([]any{"error", err}, args...)...)
		middleware.ErrorResponse(w, status, "Database error")
		return
	}

	message := err.Error()
	if errors.Is(err, engine.ErrValidation) {
		message = strings.TrimPrefix(message, engine.ErrValidation.Error()+": ")
	}
	middleware.ErrorResponse(w, status, message)
}
