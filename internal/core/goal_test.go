package core

import (
	"testing"
	"time"
)

func TestBudgetGoalValidate(t *testing.T) {
	good := BudgetGoal{Category: "Food", MonthlyLimit: Money{Cents: 10000}, Month: "2024-05"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []BudgetGoal{
		{Category: "", MonthlyLimit: Money{Cents: 1}, Month: "2024-05"},
		{Category: "Food", MonthlyLimit: Money{Cents: 0}, Month: "2024-05"},
		{Category: "Food", MonthlyLimit: Money{Cents: -1}, Month: "2024-05"},
		{Category: "Food", MonthlyLimit: Money{Cents: 1}, Month: "2024-13"},
		{Category: "Food", MonthlyLimit: Money{Cents: 1}, Month: "may 2024"},
	}
	for i, g := range bads {
		if err := g.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNextMonth(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-05", "2024-06"},
		{"2024-12", "2025-01"},
		{"2024-01", "2024-02"},
	}
	for _, tc := range cases {
		got, err := NextMonth(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
	}
	if _, err := NextMonth("garbage"); err == nil {
		t.Fatalf("expected error for malformed month")
	}
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)
	if got := CurrentMonth(now); got != "2024-05" {
		t.Fatalf("expected 2024-05, got %s", got)
	}
}
