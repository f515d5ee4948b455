// Package worker generates monthly analysis reports requested over AMQP.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"budgeteer/internal/advisor"
	"budgeteer/internal/amqp"
	"budgeteer/internal/analysis"
	"budgeteer/internal/core"
	"budgeteer/internal/storage"
)

// ReportStorage is the slice of the SQLite repository the worker needs.
type ReportStorage interface {
	GetTransactionsByMonth(ctx context.Context, month string) ([]core.Transaction, error)
	ListGoals(ctx context.Context, month string) ([]core.BudgetGoal, error)
	SaveReport(ctx context.Context, report storage.Report) error
}

// ReportWorker turns report requests into stored reports. The enricher is
// optional; without one reports carry only the locally computed analysis.
type ReportWorker struct {
	storage       ReportStorage
	enricher      advisor.Enricher
	enrichTimeout time.Duration
	now           func() time.Time
}

func NewReportWorker(storage ReportStorage, enricher advisor.Enricher, enrichTimeout time.Duration) *ReportWorker {
	if enrichTimeout <= 0 {
		enrichTimeout = 20 * time.Second
	}
	return &ReportWorker{
		storage:       storage,
		enricher:      enricher,
		enrichTimeout: enrichTimeout,
		now:           time.Now,
	}
}

// HandleReportRequest processes a single report request from AMQP.
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequestMessage) error {
	transactions, err := w.storage.GetTransactionsByMonth(ctx, msg.Month)
	if err != nil {
		return fmt.Errorf("get transactions for report: %w", err)
	}

	goals, err := w.storage.ListGoals(ctx, msg.Month)
	if err != nil {
		return fmt.Errorf("get goals for report: %w", err)
	}

	result := analysis.PerformFullAnalysis(core.Money{}, transactions)
	progress := analysis.CalculateBudgetProgress(transactions, goals, msg.Month)
	body := renderReportBody(msg.Month, result, progress)

	// Enrichment failures never block the report; the local analysis is
	// always persisted.
	aiSummary := ""
	if w.enricher != nil {
		summary, err := w.enrichReport(ctx, transactions)
		if err != nil {
			slog.WarnContext(ctx, "Report enrichment failed, storing local analysis only",
				"month", msg.Month, "error", err)
		} else {
			aiSummary = summary
		}
	}

	report := storage.Report{
		Month:       msg.Month,
		Body:        body,
		AISummary:   aiSummary,
		GeneratedAt: w.now(),
	}
	if err := w.storage.SaveReport(ctx, report); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	slog.InfoContext(ctx, "Report generated",
		"month", msg.Month,
		"transactions", len(transactions),
		"goals", len(goals),
		"enriched", aiSummary != "")

	return nil
}

func (w *ReportWorker) enrichReport(ctx context.Context, transactions []core.Transaction) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.enrichTimeout)
	defer cancel()

	summary := analysis.PrepareBudgetDataForAI(core.Money{}, transactions)
	return w.enricher.EnrichAnalysis(ctx, summary)
}

func renderReportBody(month string, a analysis.BudgetAnalysis, progress []analysis.BudgetProgress) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Budget report for %s\n\n", month)
	fmt.Fprintf(&b, "Total income: %s\n", core.FormatDollars(a.TotalIncome.Cents))
	fmt.Fprintf(&b, "Total expenses: %s\n", core.FormatDollars(a.TotalExpenses.Cents))
	fmt.Fprintf(&b, "Net savings: %s\n", core.FormatDollars(a.NetSavings.Cents))
	fmt.Fprintf(&b, "Savings rate: %.1f%%\n", a.SavingsRate)

	if len(a.CategoryBreakdown) > 0 {
		b.WriteString("\nSpending by category:\n")
		for _, c := range a.CategoryBreakdown {
			fmt.Fprintf(&b, "- %s: %s (%.1f%%)\n",
				c.Category, core.FormatDollars(c.Amount.Cents), c.Percentage)
		}
	}

	if len(progress) > 0 {
		b.WriteString("\nBudget goals:\n")
		for _, p := range progress {
			fmt.Fprintf(&b, "- %s: %s of %s (%.1f%%, %s)\n",
				p.Category,
				core.FormatDollars(p.Spent.Cents),
				core.FormatDollars(p.Limit.Cents),
				p.Percentage,
				p.Status)
		}
	}

	writeSection(&b, "Insights", a.Insights)
	writeSection(&b, "Recommendations", a.Recommendations)
	writeSection(&b, "Alerts", a.Alerts)

	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
}
