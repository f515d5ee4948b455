package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"budgeteer/internal/amqp"
	"budgeteer/internal/core"
	"budgeteer/internal/storage"
)

type fakeStorage struct {
	transactions []core.Transaction
	goals        []core.BudgetGoal
	saved        []storage.Report
	saveErr      error
}

func (f *fakeStorage) GetTransactionsByMonth(ctx context.Context, month string) ([]core.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeStorage) ListGoals(ctx context.Context, month string) ([]core.BudgetGoal, error) {
	return f.goals, nil
}

func (f *fakeStorage) SaveReport(ctx context.Context, report storage.Report) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, report)
	return nil
}

type fakeEnricher struct {
	response string
	err      error
	calls    int
}

func (f *fakeEnricher) EnrichAnalysis(ctx context.Context, summary string) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeEnricher) Chat(ctx context.Context, summary, message string) (string, error) {
	return f.response, f.err
}

func marchTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: "t1", Type: core.Income, Date: "2026-03-01", Amount: core.Money{Cents: 320000}},
		{ID: "t2", Type: core.Expense, Date: "2026-03-02", Amount: core.Money{Cents: 120000}, Category: "Housing"},
		{ID: "t3", Type: core.Expense, Date: "2026-03-10", Amount: core.Money{Cents: 15000}, Category: "Food"},
	}
}

func TestHandleReportRequestStoresReport(t *testing.T) {
	store := &fakeStorage{
		transactions: marchTransactions(),
		goals: []core.BudgetGoal{
			{Category: "Food", Month: "2026-03", MonthlyLimit: core.Money{Cents: 40000}},
		},
	}
	w := NewReportWorker(store, nil, time.Second)

	err := w.HandleReportRequest(context.Background(), &amqp.ReportRequestMessage{Month: "2026-03"})
	if err != nil {
		t.Fatalf("HandleReportRequest() error = %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(store.saved))
	}

	report := store.saved[0]
	if report.Month != "2026-03" {
		t.Fatalf("month = %q, want 2026-03", report.Month)
	}
	if report.AISummary != "" {
		t.Fatalf("expected empty AI summary without enricher, got %q", report.AISummary)
	}

	for _, fragment := range []string{
		"Total income: $3200.00",
		"Total expenses: $1350.00",
		"Savings rate: 57.8%",
		"Housing: $1200.00",
		"Budget goals:",
		"Food: $150.00 of $400.00",
	} {
		if !strings.Contains(report.Body, fragment) {
			t.Errorf("report body missing %q:\n%s", fragment, report.Body)
		}
	}
}

func TestHandleReportRequestWithEnricher(t *testing.T) {
	store := &fakeStorage{transactions: marchTransactions()}
	enricher := &fakeEnricher{response: "Consider a housing budget."}
	w := NewReportWorker(store, enricher, time.Second)

	err := w.HandleReportRequest(context.Background(), &amqp.ReportRequestMessage{Month: "2026-03"})
	if err != nil {
		t.Fatalf("HandleReportRequest() error = %v", err)
	}
	if enricher.calls != 1 {
		t.Fatalf("enricher calls = %d, want 1", enricher.calls)
	}
	if store.saved[0].AISummary != "Consider a housing budget." {
		t.Fatalf("AI summary = %q", store.saved[0].AISummary)
	}
}

func TestHandleReportRequestEnricherFailureFallsBack(t *testing.T) {
	store := &fakeStorage{transactions: marchTransactions()}
	enricher := &fakeEnricher{err: errors.New("model unavailable")}
	w := NewReportWorker(store, enricher, time.Second)

	err := w.HandleReportRequest(context.Background(), &amqp.ReportRequestMessage{Month: "2026-03"})
	if err != nil {
		t.Fatalf("enricher failure must not fail the report, got %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(store.saved))
	}
	report := store.saved[0]
	if report.AISummary != "" {
		t.Fatalf("expected empty AI summary on enrichment failure, got %q", report.AISummary)
	}
	if !strings.Contains(report.Body, "Total income: $3200.00") {
		t.Fatalf("local analysis missing from body:\n%s", report.Body)
	}
}

func TestHandleReportRequestSaveFailurePropagates(t *testing.T) {
	store := &fakeStorage{
		transactions: marchTransactions(),
		saveErr:      errors.New("disk full"),
	}
	w := NewReportWorker(store, nil, time.Second)

	err := w.HandleReportRequest(context.Background(), &amqp.ReportRequestMessage{Month: "2026-03"})
	if err == nil {
		t.Fatal("expected save error to propagate for requeue")
	}
}
