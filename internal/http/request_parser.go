// Package http exposes the JSON API for the analysis engine and the
// stored-data endpoints backed by the budget service.
//
// This file implements utilities for parsing and validating request
// payloads. Amounts arrive as decimal dollars and are converted to cents
// at the boundary; the engine only ever sees cents.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"budgeteer/internal/core"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type transactionPayload struct {
	ID          string  `json:"id,omitempty"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (p transactionPayload) toCore() core.Transaction {
	return core.Transaction{
		ID:          strings.TrimSpace(p.ID),
		Type:        core.TransactionType(strings.TrimSpace(p.Type)),
		Date:        strings.TrimSpace(p.Date),
		Amount:      core.Money{Cents: core.CentsFromFloat(p.Amount)},
		Category:    sanitizeInput(p.Category),
		Description: sanitizeInput(p.Description),
	}
}

type goalPayload struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthly_limit"`
	Month        string  `json:"month"`
}

func (p goalPayload) toCore() core.BudgetGoal {
	return core.BudgetGoal{
		Category:     sanitizeInput(p.Category),
		MonthlyLimit: core.Money{Cents: core.CentsFromFloat(p.MonthlyLimit)},
		Month:        strings.TrimSpace(p.Month),
	}
}

type analysisRequest struct {
	StartingBalance float64              `json:"starting_balance"`
	Transactions    []transactionPayload `json:"transactions"`
}

func (r analysisRequest) coreTransactions() []core.Transaction {
	out := make([]core.Transaction, len(r.Transactions))
	for i, p := range r.Transactions {
		out[i] = p.toCore()
	}
	return out
}

type progressRequest struct {
	Transactions []transactionPayload `json:"transactions"`
	Goals        []goalPayload        `json:"goals"`
	Month        string               `json:"month"`
}

type chatRequest struct {
	Message         string               `json:"message"`
	StartingBalance float64              `json:"starting_balance"`
	Transactions    []transactionPayload `json:"transactions"`
}

// decodeJSON reads and decodes a JSON request body with a size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
