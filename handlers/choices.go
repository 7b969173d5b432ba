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

type ChoiceHandler struct {
	engine *engine.Engine
}

func NewChoiceHandler(eng *engine.Engine) *ChoiceHandler {
	return &ChoiceHandler{engine: eng}
}

// CreateChoice handles POST /choice
func (h *ChoiceHandler) CreateChoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	choice, err := h.engine.CreateChoice(r.Context(), req.Title, req.PollID)
	if err != nil {
		writeError(w, err, "failed to create choice", "poll_id", req.PollID)
		return
	}

	slog.Info("choice created", "poll_id", choice.PollID, "choice_id", choice.ID)

	middleware.JSONResponse(w, http.StatusCreated, choice)
}

// ListChoices handles GET /poll/{id}/choice
func (h *ChoiceHandler) ListChoices(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	choices, err := h.engine.ListChoices(r.Context(), pollID)
	if err != nil {
		writeError(w, err, "failed to list choices", "poll_id", pollID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, choices)
}
