package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"budgeteer/internal/core"
	"budgeteer/internal/services"
	"budgeteer/internal/storage"
)

// handleReports serves /api/reports/{month}. POST requests async report
// generation; GET fetches the stored report.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if month == "" || strings.Contains(month, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := core.ValidateMonth(month); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "month must be in YYYY-MM format")
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.requestReport(w, r, month)
	case http.MethodGet:
		s.getReport(w, r, month)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) requestReport(w http.ResponseWriter, r *http.Request, month string) {
	if err := s.store.RequestReport(r.Context(), month); err != nil {
		if errors.Is(err, services.ErrReportsUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Report request error", "error", err, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to request report")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"month":  month,
		"status": "requested",
	})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request, month string) {
	report, err := s.store.GetReport(r.Context(), month)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrReportNotFound):
			writeError(w, http.StatusNotFound, "no report generated for this month")
		case errors.Is(err, services.ErrReportsUnavailable):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Report fetch error", "error", err, "month", month)
			writeError(w, http.StatusInternalServerError, "failed to fetch report")
		}
		return
	}

	writeJSON(w, http.StatusOK, buildReportJSON(report))
}
