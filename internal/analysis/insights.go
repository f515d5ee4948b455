package analysis

import (
	"fmt"
	"strings"

	"budgeteer/internal/core"
)

// Heuristic thresholds for the guidance generators.
const (
	lowSavingsRate      = 10.0
	goodSavingsRate     = 20.0
	housingShareLimit   = 35.0
	foodShareLimit      = 15.0
	dominantShareLimit  = 50.0
	largeExpenseShare   = 0.20
	maxDistinctSpending = 10
)

// GenerateRecommendations produces the ordered heuristic recommendation list
// for an analysis snapshot. All applicable messages are appended; the
// savings-rate tiers are mutually exclusive and exhaustive over
// (-inf,0), [0,10), and [20,inf), with [10,20) producing no message.
func GenerateRecommendations(a BudgetAnalysis) []string {
	recs := []string{}

	switch {
	case a.SavingsRate < 0:
		recs = append(recs, "You are spending more than you earn. Review your expenses urgently to stop the shortfall from growing.")
	case a.SavingsRate < lowSavingsRate:
		recs = append(recs, fmt.Sprintf("Your savings rate is %.1f%%. Try to set aside at least 10%% of your income each month.", a.SavingsRate))
	case a.SavingsRate >= goodSavingsRate:
		recs = append(recs, fmt.Sprintf("Great work: you are saving %.1f%% of your income. Keep it up.", a.SavingsRate))
	}

	if c, ok := findCategory(a.CategoryBreakdown, HousingRule); ok && c.Percentage > housingShareLimit {
		recs = append(recs, fmt.Sprintf("Housing takes up %.1f%% of your spending. Keeping it under 35%% leaves more room for everything else.", c.Percentage))
	}

	if c, ok := findCategory(a.CategoryBreakdown, FoodRule); ok && c.Percentage > foodShareLimit {
		recs = append(recs, fmt.Sprintf("Food accounts for %.1f%% of your spending. Meal planning can bring this under 15%%.", c.Percentage))
	}

	if top := TopCategories(a.CategoryBreakdown, 1); len(top) > 0 && top[0].Percentage > dominantShareLimit {
		recs = append(recs, fmt.Sprintf("More than half of your spending (%.1f%%) goes to %s. Spreading expenses across categories makes your budget more resilient.", top[0].Percentage, top[0].Category))
	}

	return recs
}

// GenerateInsights produces descriptive statements about the snapshot:
// an income/expense summary when there is income, a savings-or-deficit
// statement depending on the sign of net savings (zero triggers neither),
// and a top-3 category summary when the breakdown is non-empty.
func GenerateInsights(a BudgetAnalysis) []string {
	insights := []string{}

	if a.TotalIncome.Cents > 0 {
		insights = append(insights, fmt.Sprintf("You earned %s and spent %s this period.", a.TotalIncome, a.TotalExpenses))
	}

	if a.NetSavings.Cents > 0 {
		insights = append(insights, fmt.Sprintf("You came out ahead by %s.", a.NetSavings))
	} else if a.NetSavings.Cents < 0 {
		insights = append(insights, fmt.Sprintf("You spent %s more than you earned.", core.Money{Cents: -a.NetSavings.Cents}))
	}

	if len(a.CategoryBreakdown) > 0 {
		top := TopCategories(a.CategoryBreakdown, 3)
		parts := make([]string, len(top))
		for i, c := range top {
			parts[i] = fmt.Sprintf("%s (%s)", c.Category, c.Amount)
		}
		insights = append(insights, "Your top spending categories: "+strings.Join(parts, ", ")+".")
	}

	return insights
}

// GenerateAlerts scans the snapshot and the raw transaction list for
// conditions worth flagging: unusually large single expenses, a negative
// balance for the period, and category sprawl.
func GenerateAlerts(a BudgetAnalysis, transactions []core.Transaction) []string {
	alerts := []string{}

	if a.TotalExpenses.Cents > 0 {
		threshold := int64(float64(a.TotalExpenses.Cents) * largeExpenseShare)
		count := 0
		for _, tx := range transactions {
			if tx.Type == core.Expense && tx.Amount.Cents > threshold {
				count++
			}
		}
		if count > 0 {
			alerts = append(alerts, fmt.Sprintf("%d transaction(s) each exceed 20%% of your total spending (%s).", count, core.Money{Cents: threshold}))
		}
	}

	if a.NetSavings.Cents < 0 {
		alerts = append(alerts, "Your expenses exceed your income for this period.")
	}

	distinct := make(map[string]struct{})
	for _, tx := range transactions {
		if tx.Type == core.Expense {
			distinct[tx.Category] = struct{}{}
		}
	}
	if len(distinct) > maxDistinctSpending {
		alerts = append(alerts, fmt.Sprintf("You are spending across %d categories. Consolidating similar ones makes trends easier to spot.", len(distinct)))
	}

	return alerts
}
