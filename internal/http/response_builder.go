package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"budgeteer/internal/analysis"
	"budgeteer/internal/core"
	"budgeteer/internal/storage"
)

// Responses carry amounts as decimal dollars, mirroring the request format.

type categorySpendingJSON struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type analysisResponse struct {
	TotalIncome       float64                `json:"total_income"`
	TotalExpenses     float64                `json:"total_expenses"`
	NetSavings        float64                `json:"net_savings"`
	SavingsRate       float64                `json:"savings_rate"`
	CategoryBreakdown []categorySpendingJSON `json:"category_breakdown"`
	Recommendations   []string               `json:"recommendations"`
	Insights          []string               `json:"insights"`
	Alerts            []string               `json:"alerts"`
}

type enrichedAnalysisResponse struct {
	analysisResponse
	AICommentary string `json:"ai_commentary"`
	Cached       bool   `json:"cached"`
}

type budgetProgressJSON struct {
	Category   string  `json:"category"`
	Spent      float64 `json:"spent"`
	Limit      float64 `json:"limit"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	Status     string  `json:"status"`
}

type transactionJSON struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

type goalJSON struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthly_limit"`
	Month        string  `json:"month"`
}

type reportJSON struct {
	Month       string `json:"month"`
	Body        string `json:"body"`
	AISummary   string `json:"ai_summary,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func buildAnalysisResponse(a analysis.BudgetAnalysis) analysisResponse {
	breakdown := make([]categorySpendingJSON, len(a.CategoryBreakdown))
	for i, c := range a.CategoryBreakdown {
		breakdown[i] = categorySpendingJSON{
			Category:   c.Category,
			Amount:     c.Amount.Dollars(),
			Percentage: c.Percentage,
		}
	}
	return analysisResponse{
		TotalIncome:       a.TotalIncome.Dollars(),
		TotalExpenses:     a.TotalExpenses.Dollars(),
		NetSavings:        a.NetSavings.Dollars(),
		SavingsRate:       a.SavingsRate,
		CategoryBreakdown: breakdown,
		Recommendations:   emptyIfNil(a.Recommendations),
		Insights:          emptyIfNil(a.Insights),
		Alerts:            emptyIfNil(a.Alerts),
	}
}

func buildProgressResponse(progress []analysis.BudgetProgress) []budgetProgressJSON {
	out := make([]budgetProgressJSON, len(progress))
	for i, p := range progress {
		out[i] = budgetProgressJSON{
			Category:   p.Category,
			Spent:      p.Spent.Dollars(),
			Limit:      p.Limit.Dollars(),
			Percentage: p.Percentage,
			Remaining:  p.Remaining.Dollars(),
			Status:     string(p.Status),
		}
	}
	return out
}

func buildTransactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Date:        tx.Date,
		Amount:      tx.Amount.Dollars(),
		Category:    tx.Category,
		Description: tx.Description,
	}
}

func buildGoalJSON(goal core.BudgetGoal) goalJSON {
	return goalJSON{
		Category:     goal.Category,
		MonthlyLimit: goal.MonthlyLimit.Dollars(),
		Month:        goal.Month,
	}
}

func buildReportJSON(report storage.Report) reportJSON {
	return reportJSON{
		Month:       report.Month,
		Body:        report.Body,
		AISummary:   report.AISummary,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
	}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
