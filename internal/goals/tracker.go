// Package goals owns the budget-goal collection lifecycle: upsert, removal,
// copy-to-next-month, and progress queries. Progress computation itself is
// delegated to the analysis engine.
package goals

import (
	"sort"
	"sync"
	"time"

	"budgeteer/internal/analysis"
	"budgeteer/internal/core"
)

// Tracker is an in-memory goal collection keyed by (category, month).
// Keying by the pair makes duplicate goals structurally impossible: an
// upsert for an existing pair replaces the entry in place. Safe for
// concurrent use.
type Tracker struct {
	mu    sync.RWMutex
	goals map[core.GoalKey]core.BudgetGoal
}

func NewTracker() *Tracker {
	return &Tracker{
		goals: make(map[core.GoalKey]core.BudgetGoal),
	}
}

// Upsert adds the goal, replacing any existing goal for the same
// (category, month) pair.
func (t *Tracker) Upsert(goal core.BudgetGoal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.goals[goal.Key()] = goal
}

// Remove deletes the goal for the pair. Removing a missing goal is a no-op.
func (t *Tracker) Remove(category, month string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.goals, core.GoalKey{Category: category, Month: month})
}

// List returns the goals for a month, or all goals when month is empty.
// Results are ordered by month then category for stable output.
func (t *Tracker) List(month string) []core.BudgetGoal {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []core.BudgetGoal
	for _, g := range t.goals {
		if month == "" || g.Month == month {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CopyToNextMonth duplicates every goal of the current month (derived from
// now, not from transaction data) into the following calendar month.
// Because the collection is keyed by (category, month), repeated copies
// replace rather than duplicate. Returns the number of goals copied.
func (t *Tracker) CopyToNextMonth(now time.Time) (int, error) {
	from := core.CurrentMonth(now)
	to, err := core.NextMonth(from)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	copied := 0
	for _, g := range t.goals {
		if g.Month != from {
			continue
		}
		dup := g
		dup.Month = to
		t.goals[dup.Key()] = dup
		copied++
	}
	return copied, nil
}

// Progress computes spending-vs-limit progress for the month against the
// tracked goals.
func (t *Tracker) Progress(transactions []core.Transaction, month string) []analysis.BudgetProgress {
	return analysis.CalculateBudgetProgress(transactions, t.List(month), month)
}

// Len returns the number of tracked goals.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.goals)
}
