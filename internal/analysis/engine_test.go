package analysis

import (
	"reflect"
	"strings"
	"testing"

	"budgeteer/internal/core"
)

func TestPerformFullAnalysisIdempotent(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Income, 320000, "", "2024-05-01"),
		tx(core.Expense, 120000, "Housing", "2024-05-02"),
		tx(core.Expense, 15000, "Food", "2024-05-03"),
	}
	first := PerformFullAnalysis(core.Money{Cents: 50000}, txns)
	second := PerformFullAnalysis(core.Money{Cents: 50000}, txns)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must yield structurally identical results")
	}
}

func TestPerformFullAnalysisEmptyInput(t *testing.T) {
	a := PerformFullAnalysis(core.Money{}, nil)
	if a.TotalIncome.Cents != 0 || a.TotalExpenses.Cents != 0 || a.NetSavings.Cents != 0 || a.SavingsRate != 0 {
		t.Fatalf("expected zeroed totals, got %+v", a)
	}
	if len(a.CategoryBreakdown) != 0 || len(a.Insights) != 0 || len(a.Alerts) != 0 {
		t.Fatalf("expected empty breakdown/insights/alerts, got %+v", a)
	}
	// A zero savings rate falls in [0,10) and therefore still triggers the
	// "save more" nudge even with zero activity.
	if len(a.Recommendations) != 1 || !strings.Contains(a.Recommendations[0], "at least 10%") {
		t.Fatalf("recommendations = %v, want exactly the save-more nudge", a.Recommendations)
	}
}

func TestPerformFullAnalysisDoesNotMutateInput(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Expense, 200, "B", "2024-05-01"),
		tx(core.Expense, 100, "A", "2024-05-02"),
	}
	snapshot := make([]core.Transaction, len(txns))
	copy(snapshot, txns)
	_ = PerformFullAnalysis(core.Money{}, txns)
	if !reflect.DeepEqual(txns, snapshot) {
		t.Fatalf("input transactions were mutated")
	}
}

func TestPrepareBudgetDataForAI(t *testing.T) {
	txns := []core.Transaction{
		{ID: "tx-secret-id", Type: core.Income, Date: "2024-05-01", Amount: core.Money{Cents: 320000}, Description: "employer payroll deposit"},
		{ID: "tx-2", Type: core.Expense, Date: "2024-05-02", Amount: core.Money{Cents: 120000}, Category: "Housing", Description: "rent to landlord John"},
	}
	got := PrepareBudgetDataForAI(core.Money{Cents: 50000}, txns)

	for _, want := range []string{"$3200.00", "$1200.00", "Housing", "Savings rate", "$500.00"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
	// Privacy projection: descriptions and IDs never appear.
	for _, leak := range []string{"tx-secret-id", "payroll", "landlord", "John"} {
		if strings.Contains(got, leak) {
			t.Fatalf("summary leaked %q:\n%s", leak, got)
		}
	}
}
