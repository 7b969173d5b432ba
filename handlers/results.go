// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/middleware"
)

type ResultsHandler struct {
	engine *engine.Engine
}

func NewResultsHandler(eng *engine.Engine) *ResultsHandler {
	return &ResultsHandler{engine: eng}
}

// GetResult handles GET /poll/{id}/result
// Returns the poll with its winning choice; ties go to the oldest choice
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	result, err := h.engine.ComputeResult(r.Context(), pollID)
	if err != nil {
		writeError(w, err, "failed to compute result", "poll_id", pollID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
