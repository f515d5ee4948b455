package analysis

import (
	"fmt"
	"strings"

	"budgeteer/internal/core"
)

// PerformFullAnalysis is the single entry point for a one-shot analysis: it
// derives the snapshot and then the three guidance lists in fixed order.
// Calling it twice with identical arguments yields structurally identical
// results.
func PerformFullAnalysis(startingBalance core.Money, transactions []core.Transaction) BudgetAnalysis {
	a := AnalyzeBudget(startingBalance, transactions)
	a.Recommendations = GenerateRecommendations(a)
	a.Insights = GenerateInsights(a)
	a.Alerts = GenerateAlerts(a, transactions)
	return a
}

// PrepareBudgetDataForAI renders a privacy-preserving text projection of the
// analysis for handoff to an external enrichment provider. It contains only
// aggregate numbers and category names/amounts/percentages; transaction
// descriptions and IDs never leave this process.
func PrepareBudgetDataForAI(startingBalance core.Money, transactions []core.Transaction) string {
	a := AnalyzeBudget(startingBalance, transactions)

	var b strings.Builder
	b.WriteString("Budget summary\n")
	fmt.Fprintf(&b, "Starting balance: %s\n", startingBalance)
	fmt.Fprintf(&b, "Total income: %s\n", a.TotalIncome)
	fmt.Fprintf(&b, "Total expenses: %s\n", a.TotalExpenses)
	fmt.Fprintf(&b, "Net savings: %s\n", a.NetSavings)
	fmt.Fprintf(&b, "Savings rate: %.1f%%\n", a.SavingsRate)
	fmt.Fprintf(&b, "Transactions: %d\n", len(transactions))

	if len(a.CategoryBreakdown) > 0 {
		b.WriteString("Spending by category:\n")
		for _, c := range a.CategoryBreakdown {
			fmt.Fprintf(&b, "- %s: %s (%.1f%%)\n", c.Category, c.Amount, c.Percentage)
		}
	}

	return b.String()
}
