package core

import (
	"errors"
	"strings"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is an immutable record of one financial event. Amount is a
	// non-negative magnitude; the sign is implied by Type, not encoded in the
	// value. Date is an ISO-8601 string and is only ever sliced for month
	// bucketing; callers must supply dates whose first 7 characters already
	// represent the intended local month.
	Transaction struct {
		ID          string
		Type        TransactionType
		Date        string
		Amount      Money
		Category    string
		Description string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")

	// ErrTransactionNotFound is returned by backends on lookups for an
	// unknown transaction ID.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// IsValid reports whether the type is one of the recognized transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// MonthKey returns the YYYY-MM month bucket of the transaction date, or the
// empty string for dates shorter than 7 characters. No timezone normalization
// is performed beyond string slicing.
func (t Transaction) MonthKey() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// Validate checks a transaction for use at the transport boundary. The
// analysis engine itself never validates input; rejecting malformed records
// before they reach it is the caller's responsibility.
func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if err := ValidateMonth(t.MonthKey()); err != nil {
		return ErrInvalidDate
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" && t.Type == Expense {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// Dollars returns the dollar value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// CentsFromFloat converts a decimal amount to cents with half-away-from-zero
// rounding. Used when decoding JSON payloads that carry amounts as decimals.
func CentsFromFloat(v float64) int64 {
	if v < 0 {
		return -CentsFromFloat(-v)
	}
	return int64(v*100 + 0.5)
}
