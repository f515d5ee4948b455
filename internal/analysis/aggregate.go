// Package analysis implements the budget analysis engine: pure, synchronous
// computations that turn a snapshot of transactions and goals into totals,
// category breakdowns, goal progress, and rule-based guidance. Nothing in
// this package performs I/O, mutates its input, or retains state between
// calls, so it is safe for concurrent callers without locking.
package analysis

import "budgeteer/internal/core"

const (
	StatusSafe     ProgressStatus = "safe"
	StatusWarning  ProgressStatus = "warning"
	StatusExceeded ProgressStatus = "exceeded"
)

type (
	ProgressStatus string

	Totals struct {
		Income   core.Money
		Expenses core.Money
	}

	CategoryTotal struct {
		Category string
		Total    core.Money
	}

	// BudgetProgress is derived per goal for a queried month, never stored.
	BudgetProgress struct {
		Category   string
		Spent      core.Money
		Limit      core.Money
		Percentage float64
		Remaining  core.Money
		Status     ProgressStatus
	}
)

// ComputeTotals reduces a transaction collection into income and expense
// totals in a single pass. Transactions with an unrecognized type are
// silently excluded from both totals; no error is raised.
func ComputeTotals(transactions []core.Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		switch tx.Type {
		case core.Income:
			t.Income.Cents += tx.Amount.Cents
		case core.Expense:
			t.Expenses.Cents += tx.Amount.Cents
		}
	}
	return t
}

// GroupByCategory filters to the requested type and accumulates amounts into
// per-category totals. Entries are emitted in first-seen order of the input;
// callers that need significance order must sort by amount themselves.
// Category names group by exact string match, case-sensitive.
func GroupByCategory(transactions []core.Transaction, typ core.TransactionType) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, tx := range transactions {
		if tx.Type != typ {
			continue
		}
		if i, ok := index[tx.Category]; ok {
			out[i].Total.Cents += tx.Amount.Cents
			continue
		}
		index[tx.Category] = len(out)
		out = append(out, CategoryTotal{Category: tx.Category, Total: tx.Amount})
	}
	return out
}

// CalculateBudgetProgress computes spending-vs-limit progress for every goal
// whose month matches. Transactions are filtered to expenses dated in the
// month; a category with no spending defaults to zero. Goals for other months
// are silently excluded from the result.
//
// Classification is total and mutually exclusive: exceeded iff spent > limit,
// else warning iff percentage >= 80, else safe. A category both over 80% and
// over limit is exceeded.
func CalculateBudgetProgress(transactions []core.Transaction, goals []core.BudgetGoal, month string) []BudgetProgress {
	var monthExpenses []core.Transaction
	for _, tx := range transactions {
		if tx.Type == core.Expense && tx.MonthKey() == month {
			monthExpenses = append(monthExpenses, tx)
		}
	}

	spent := make(map[string]core.Money)
	for _, ct := range GroupByCategory(monthExpenses, core.Expense) {
		spent[ct.Category] = ct.Total
	}

	var out []BudgetProgress
	for _, goal := range goals {
		if goal.Month != month {
			continue
		}
		s := spent[goal.Category]
		limit := goal.MonthlyLimit

		var pct float64
		if limit.Cents > 0 {
			pct = float64(s.Cents) / float64(limit.Cents) * 100
		}

		status := StatusSafe
		switch {
		case s.Cents > limit.Cents:
			status = StatusExceeded
		case pct >= 80:
			status = StatusWarning
		}

		out = append(out, BudgetProgress{
			Category:   goal.Category,
			Spent:      s,
			Limit:      limit,
			Percentage: pct,
			Remaining:  core.Money{Cents: limit.Cents - s.Cents},
			Status:     status,
		})
	}
	return out
}
