package analysis

import (
	"sort"

	"budgeteer/internal/core"
)

type (
	// CategorySpending is one category's share of total expenses.
	CategorySpending struct {
		Category   string
		Amount     core.Money
		Percentage float64
	}

	// BudgetAnalysis is the full derived snapshot. It is recomputed on every
	// call; the engine guarantees no caching of its own.
	BudgetAnalysis struct {
		TotalIncome       core.Money
		TotalExpenses     core.Money
		NetSavings        core.Money
		SavingsRate       float64
		CategoryBreakdown []CategorySpending
		Recommendations   []string
		Insights          []string
		Alerts            []string
	}
)

// AnalyzeBudget derives the analysis snapshot (minus the three guidance
// lists) from a starting balance and transaction set.
//
// startingBalance is accepted for callers that track an opening balance but
// is currently inert: savings rate and net savings are computed purely from
// transaction totals. Division-by-zero policy: SavingsRate and each category
// percentage are exactly 0 when their denominator is 0, never NaN or Inf.
//
// CategoryBreakdown carries no ordering contract beyond first-seen encounter
// order; any consumer that wants "top" categories must sort by amount first.
func AnalyzeBudget(startingBalance core.Money, transactions []core.Transaction) BudgetAnalysis {
	_ = startingBalance

	totals := ComputeTotals(transactions)
	net := core.Money{Cents: totals.Income.Cents - totals.Expenses.Cents}

	var rate float64
	if totals.Income.Cents != 0 {
		rate = float64(net.Cents) / float64(totals.Income.Cents) * 100
	}

	var breakdown []CategorySpending
	for _, ct := range GroupByCategory(transactions, core.Expense) {
		var pct float64
		if totals.Expenses.Cents != 0 {
			pct = float64(ct.Total.Cents) / float64(totals.Expenses.Cents) * 100
		}
		breakdown = append(breakdown, CategorySpending{
			Category:   ct.Category,
			Amount:     ct.Total,
			Percentage: pct,
		})
	}

	return BudgetAnalysis{
		TotalIncome:       totals.Income,
		TotalExpenses:     totals.Expenses,
		NetSavings:        net,
		SavingsRate:       rate,
		CategoryBreakdown: breakdown,
	}
}

// TopCategories returns the n largest entries of the breakdown by amount,
// descending. The input is not modified.
func TopCategories(breakdown []CategorySpending, n int) []CategorySpending {
	sorted := make([]CategorySpending, len(breakdown))
	copy(sorted, breakdown)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.Cents > sorted[j].Amount.Cents
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
