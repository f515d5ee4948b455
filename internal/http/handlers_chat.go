package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"budgeteer/internal/analysis"
	"budgeteer/internal/core"
)

// handleChat answers one free-form question about the posted budget data.
// The route is rate limited per session; without an enricher it is 503.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.enricher == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	transactions := make([]core.Transaction, len(req.Transactions))
	for i, p := range req.Transactions {
		transactions[i] = p.toCore()
	}
	balance := core.Money{Cents: core.CentsFromFloat(req.StartingBalance)}
	summary := analysis.PrepareBudgetDataForAI(balance, transactions)

	ctx, cancel := context.WithTimeout(r.Context(), s.enrichTimeout)
	defer cancel()

	reply, err := s.enricher.Chat(ctx, summary, sanitizeInput(req.Message))
	if err != nil {
		slog.ErrorContext(r.Context(), "Chat error", "error", err)
		writeError(w, http.StatusBadGateway, "assistant is unavailable, please try again")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
