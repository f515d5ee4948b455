package core

import (
	"errors"
	"strings"
	"time"
)

// BudgetGoal is a user-defined monthly spending ceiling for one category.
// At most one goal exists per (category, month) pair.
type BudgetGoal struct {
	Category     string
	MonthlyLimit Money
	Month        string // YYYY-MM
}

// GoalKey identifies a goal within a collection. Goals are keyed by the
// (category, month) pair so duplicates are structurally impossible.
type GoalKey struct {
	Category string
	Month    string
}

var (
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidLimit = errors.New("monthly limit must be positive")
)

// Key returns the collection key for the goal.
func (g BudgetGoal) Key() GoalKey {
	return GoalKey{Category: g.Category, Month: g.Month}
}

func (g BudgetGoal) Validate() error {
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if err := ValidateMonth(g.Month); err != nil {
		return err
	}
	if g.MonthlyLimit.Cents <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// ValidateMonth checks that s is a parseable YYYY-MM month.
func ValidateMonth(s string) error {
	if _, err := time.Parse("2006-01", s); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// NextMonth returns the calendar month one month after the given YYYY-MM
// month. December rolls over into January of the following year.
func NextMonth(month string) (string, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return t.AddDate(0, 1, 0).Format("2006-01"), nil
}

// CurrentMonth returns the YYYY-MM bucket of the given time.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}
