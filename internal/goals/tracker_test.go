package goals

import (
	"testing"
	"time"

	"budgeteer/internal/analysis"
	"budgeteer/internal/core"
)

func goal(category, month string, cents int64) core.BudgetGoal {
	return core.BudgetGoal{Category: category, Month: month, MonthlyLimit: core.Money{Cents: cents}}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	tr := NewTracker()
	tr.Upsert(goal("Food", "2024-05", 10000))
	tr.Upsert(goal("Food", "2024-05", 20000))

	got := tr.List("2024-05")
	if len(got) != 1 {
		t.Fatalf("expected 1 goal after upsert, got %d", len(got))
	}
	if got[0].MonthlyLimit.Cents != 20000 {
		t.Fatalf("limit = %d, want the replacement 20000", got[0].MonthlyLimit.Cents)
	}
}

func TestRemove(t *testing.T) {
	tr := NewTracker()
	tr.Upsert(goal("Food", "2024-05", 10000))
	tr.Remove("Food", "2024-05")
	if tr.Len() != 0 {
		t.Fatalf("expected empty tracker, got %d goals", tr.Len())
	}
	// Removing a missing goal is a no-op
	tr.Remove("Food", "2024-05")
}

func TestListFiltersAndSorts(t *testing.T) {
	tr := NewTracker()
	tr.Upsert(goal("Travel", "2024-05", 1))
	tr.Upsert(goal("Food", "2024-05", 1))
	tr.Upsert(goal("Food", "2024-06", 1))

	may := tr.List("2024-05")
	if len(may) != 2 || may[0].Category != "Food" || may[1].Category != "Travel" {
		t.Fatalf("may goals = %+v", may)
	}
	if all := tr.List(""); len(all) != 3 {
		t.Fatalf("expected 3 goals in total, got %d", len(all))
	}
}

func TestCopyToNextMonth(t *testing.T) {
	tr := NewTracker()
	tr.Upsert(goal("Food", "2024-05", 10000))
	tr.Upsert(goal("Travel", "2024-05", 30000))
	tr.Upsert(goal("Food", "2024-04", 7777)) // other month, untouched

	now := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)
	copied, err := tr.CopyToNextMonth(now)
	if err != nil || copied != 2 {
		t.Fatalf("copied = %d (err=%v), want 2", copied, err)
	}

	june := tr.List("2024-06")
	if len(june) != 2 {
		t.Fatalf("june goals = %+v", june)
	}

	// Copying again must not create duplicates
	if _, err := tr.CopyToNextMonth(now); err != nil {
		t.Fatalf("second copy: %v", err)
	}
	if got := tr.List("2024-06"); len(got) != 2 {
		t.Fatalf("expected 2 june goals after repeated copy, got %d", len(got))
	}
}

func TestCopyToNextMonthYearRollover(t *testing.T) {
	tr := NewTracker()
	tr.Upsert(goal("Food", "2024-12", 10000))
	if _, err := tr.CopyToNextMonth(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got := tr.List("2025-01"); len(got) != 1 {
		t.Fatalf("expected january goal, got %+v", got)
	}
}

func TestProgressDelegation(t *testing.T) {
	tr := NewTracker()
	tr.Upsert(goal("Food", "2024-05", 10000))

	txns := []core.Transaction{
		{Type: core.Expense, Date: "2024-05-10", Amount: core.Money{Cents: 12000}, Category: "Food"},
	}
	got := tr.Progress(txns, "2024-05")
	if len(got) != 1 || got[0].Status != analysis.StatusExceeded {
		t.Fatalf("progress = %+v, want exceeded", got)
	}
}
