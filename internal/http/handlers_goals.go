package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		s.upsertGoal(w, r)
	case http.MethodGet:
		s.listGoals(w, r)
	case http.MethodDelete:
		s.deleteGoal(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// upsertGoal sets the spending limit for a (category, month) pair,
// replacing any existing limit.
func (s *Server) upsertGoal(w http.ResponseWriter, r *http.Request) {
	var payload goalPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal := payload.toCore()
	if err := s.store.UpsertGoal(r.Context(), goal); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Goal upsert error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save goal")
		return
	}

	writeJSON(w, http.StatusOK, buildGoalJSON(goal))
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))

	goals, err := s.store.ListGoals(r.Context(), month)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Goal list error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}

	out := make([]goalJSON, len(goals))
	for i, g := range goals {
		out[i] = buildGoalJSON(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if category == "" || month == "" {
		writeError(w, http.StatusUnprocessableEntity, "category and month query parameters are required")
		return
	}

	if err := s.store.DeleteGoal(r.Context(), category, month); err != nil {
		slog.ErrorContext(r.Context(), "Goal delete error", "error", err,
			"category", category, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCopyGoals copies the current month's goals into the next month.
func (s *Server) handleCopyGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	count, err := s.store.CopyGoalsToNextMonth(r.Context(), time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Goal copy error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to copy goals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"copied": count})
}
