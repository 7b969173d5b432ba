// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/middleware"
	"github.com/danielhkuo/drivencracy/models"
)

type PollHandler struct {
	engine *engine.Engine
}

func NewPollHandler(eng *engine.Engine) *PollHandler {
	return &PollHandler{engine: eng}
}

// CreatePoll handles POST /poll
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	poll, err := h.engine.CreatePoll(r.Context(), req.Title, req.ExpireAt)
	if err != nil {
		writeError(w, err, "failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "expire_at", poll.ExpireAt)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPolls handles GET /poll
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.engine.ListPolls(r.Context())
	if err != nil {
		writeError(w, err, "failed to list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}
