package analysis

import (
	"testing"

	"budgeteer/internal/core"
)

func tx(typ core.TransactionType, cents int64, category, date string) core.Transaction {
	return core.Transaction{
		Type:     typ,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	}
}

func TestComputeTotals(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Income, 320000, "", "2024-05-01"),
		tx(core.Expense, 120000, "Housing", "2024-05-02"),
		tx(core.Expense, 15000, "Food", "2024-05-03"),
		tx("transfer", 99999, "Misc", "2024-05-04"), // unrecognized type excluded
	}
	got := ComputeTotals(txns)
	if got.Income.Cents != 320000 {
		t.Fatalf("income = %d, want 320000", got.Income.Cents)
	}
	if got.Expenses.Cents != 135000 {
		t.Fatalf("expenses = %d, want 135000", got.Expenses.Cents)
	}
	// Conservation: included amounts sum to income+expenses
	if got.Income.Cents+got.Expenses.Cents != 455000 {
		t.Fatalf("included sum = %d, want 455000", got.Income.Cents+got.Expenses.Cents)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil)
	if got.Income.Cents != 0 || got.Expenses.Cents != 0 {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestGroupByCategoryFirstSeenOrder(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Expense, 100, "B", "2024-05-01"),
		tx(core.Expense, 200, "A", "2024-05-02"),
		tx(core.Expense, 50, "B", "2024-05-03"),
		tx(core.Income, 999, "A", "2024-05-04"), // wrong type, skipped
	}
	got := GroupByCategory(txns, core.Expense)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Category != "B" || got[0].Total.Cents != 150 {
		t.Fatalf("first group = %+v, want B/150", got[0])
	}
	if got[1].Category != "A" || got[1].Total.Cents != 200 {
		t.Fatalf("second group = %+v, want A/200", got[1])
	}
}

func TestGroupByCategoryCaseSensitive(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Expense, 100, "food", "2024-05-01"),
		tx(core.Expense, 100, "Food", "2024-05-01"),
	}
	if got := GroupByCategory(txns, core.Expense); len(got) != 2 {
		t.Fatalf("expected case-sensitive grouping to keep 2 groups, got %d", len(got))
	}
}

func TestCalculateBudgetProgressClassification(t *testing.T) {
	cases := []struct {
		spent  int64
		limit  int64
		pct    float64
		status ProgressStatus
	}{
		{0, 10000, 0, StatusSafe},
		{7900, 10000, 79, StatusSafe},
		{8000, 10000, 80, StatusWarning},
		{10000, 10000, 100, StatusWarning}, // at limit is not exceeded
		{10001, 10000, 100.01, StatusExceeded},
		{12000, 10000, 120, StatusExceeded},
	}
	for i, tc := range cases {
		txns := []core.Transaction{tx(core.Expense, tc.spent, "Food", "2024-05-10")}
		goals := []core.BudgetGoal{{Category: "Food", MonthlyLimit: core.Money{Cents: tc.limit}, Month: "2024-05"}}
		got := CalculateBudgetProgress(txns, goals, "2024-05")
		if len(got) != 1 {
			t.Fatalf("case %d: expected 1 progress entry, got %d", i, len(got))
		}
		p := got[0]
		if p.Status != tc.status {
			t.Fatalf("case %d: status = %s, want %s", i, p.Status, tc.status)
		}
		if p.Percentage != tc.pct {
			t.Fatalf("case %d: percentage = %v, want %v", i, p.Percentage, tc.pct)
		}
		if p.Remaining.Cents != tc.limit-tc.spent {
			t.Fatalf("case %d: remaining = %d, want %d", i, p.Remaining.Cents, tc.limit-tc.spent)
		}
	}
}

func TestCalculateBudgetProgressExceededScenario(t *testing.T) {
	txns := []core.Transaction{tx(core.Expense, 12000, "Food", "2024-05-14")}
	goals := []core.BudgetGoal{{Category: "Food", MonthlyLimit: core.Money{Cents: 10000}, Month: "2024-05"}}

	got := CalculateBudgetProgress(txns, goals, "2024-05")
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	p := got[0]
	if p.Spent.Cents != 12000 || p.Limit.Cents != 10000 {
		t.Fatalf("spent/limit = %d/%d", p.Spent.Cents, p.Limit.Cents)
	}
	if p.Percentage != 120 {
		t.Fatalf("percentage = %v, want 120", p.Percentage)
	}
	if p.Remaining.Cents != -2000 {
		t.Fatalf("remaining = %d, want -2000", p.Remaining.Cents)
	}
	if p.Status != StatusExceeded {
		t.Fatalf("status = %s, want exceeded", p.Status)
	}
}

func TestCalculateBudgetProgressFiltering(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Expense, 5000, "Food", "2024-04-30"), // wrong month
		tx(core.Income, 5000, "Food", "2024-05-01"),  // wrong type
		tx(core.Expense, 3000, "Food", "2024-05-02"),
	}
	goals := []core.BudgetGoal{
		{Category: "Food", MonthlyLimit: core.Money{Cents: 10000}, Month: "2024-05"},
		{Category: "Food", MonthlyLimit: core.Money{Cents: 9999}, Month: "2024-06"}, // excluded, not an error
		{Category: "Travel", MonthlyLimit: core.Money{Cents: 20000}, Month: "2024-05"},
	}
	got := CalculateBudgetProgress(txns, goals, "2024-05")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for matching month, got %d", len(got))
	}
	if got[0].Spent.Cents != 3000 {
		t.Fatalf("food spent = %d, want 3000", got[0].Spent.Cents)
	}
	// No transactions in Travel: spending defaults to zero
	if got[1].Spent.Cents != 0 || got[1].Status != StatusSafe {
		t.Fatalf("travel progress = %+v, want zero spent and safe", got[1])
	}
}

func TestCalculateBudgetProgressZeroLimit(t *testing.T) {
	goals := []core.BudgetGoal{{Category: "Food", MonthlyLimit: core.Money{Cents: 0}, Month: "2024-05"}}
	got := CalculateBudgetProgress(nil, goals, "2024-05")
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Percentage != 0 {
		t.Fatalf("percentage with zero limit = %v, want 0", got[0].Percentage)
	}
}

func TestCalculateBudgetProgressNoGoals(t *testing.T) {
	// Missing goals for a queried month yield an empty list, not an error.
	if got := CalculateBudgetProgress(nil, nil, "2024-05"); len(got) != 0 {
		t.Fatalf("expected empty progress, got %d entries", len(got))
	}
}
