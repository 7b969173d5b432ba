// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/middleware"
)

type VotingHandler struct {
	engine *engine.Engine
}

func NewVotingHandler(eng *engine.Engine) *VotingHandler {
	return &VotingHandler{engine: eng}
}

// CastVote handles POST /choice/{id}/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	choiceID := r.PathValue("id")
	if choiceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice id is required")
		return
	}

	vote, err := h.engine.CastVote(r.Context(), choiceID)
	if err != nil {
		writeError(w, err, "failed to cast vote", "choice_id", choiceID)
		return
	}

	slog.Info("vote cast", "poll_id", vote.PollID, "choice_id", vote.ChoiceID, "vote_id", vote.ID)

	middleware.JSONResponse(w, http.StatusCreated, vote)
}
