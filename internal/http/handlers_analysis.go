package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"budgeteer/internal/analysis"
	"budgeteer/internal/cache"
	"budgeteer/internal/core"
)

// handleAnalysis runs the deterministic analysis over the posted
// transactions. No state is read or written.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req analysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance := core.Money{Cents: core.CentsFromFloat(req.StartingBalance)}
	result := analysis.PerformFullAnalysis(balance, req.coreTransactions())
	writeJSON(w, http.StatusOK, buildAnalysisResponse(result))
}

// handleEnrichedAnalysis runs the local analysis and layers AI commentary on
// top. Responses are cached by request body hash; enrichment failure
// degrades to the local result, never to an error.
func (s *Server) handleEnrichedAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := cache.HashKey(body)
	if resp, found := s.enrichedCache.Get(key); found {
		slog.DebugContext(r.Context(), "Enriched analysis cache hit")
		resp.Cached = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	var req analysisRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance := core.Money{Cents: core.CentsFromFloat(req.StartingBalance)}
	transactions := req.coreTransactions()
	resp := enrichedAnalysisResponse{
		analysisResponse: buildAnalysisResponse(analysis.PerformFullAnalysis(balance, transactions)),
	}

	enrichFailed := false
	if s.enricher != nil {
		ctx, cancel := context.WithTimeout(r.Context(), s.enrichTimeout)
		summary := analysis.PrepareBudgetDataForAI(balance, transactions)
		commentary, err := s.enricher.EnrichAnalysis(ctx, summary)
		cancel()
		if err != nil {
			enrichFailed = true
			slog.WarnContext(r.Context(), "Enrichment failed, returning local analysis",
				"error", err)
		} else {
			resp.AICommentary = commentary
		}
	}

	// A degraded response is not cached, so a recovered enricher is
	// consulted on the next identical request instead of after the TTL.
	if !enrichFailed {
		s.enrichedCache.Set(key, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProgress computes budget-goal progress for the posted transactions
// and goals in one month.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req progressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := core.ValidateMonth(req.Month); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "month must be in YYYY-MM format")
		return
	}

	transactions := make([]core.Transaction, len(req.Transactions))
	for i, p := range req.Transactions {
		transactions[i] = p.toCore()
	}
	goals := make([]core.BudgetGoal, len(req.Goals))
	for i, p := range req.Goals {
		goals[i] = p.toCore()
	}

	progress := analysis.CalculateBudgetProgress(transactions, goals, req.Month)
	writeJSON(w, http.StatusOK, buildProgressResponse(progress))
}
