// Package memory provides an in-memory data backend for running the server
// without SQLite. Transactions live in a slice guarded by a mutex; goals are
// delegated to the goal tracker.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"budgeteer/internal/core"
	"budgeteer/internal/goals"
)

type Store struct {
	mu           sync.RWMutex
	transactions []core.Transaction
	tracker      *goals.Tracker
}

func NewStore() *Store {
	return &Store{
		tracker: goals.NewTracker(),
	}
}

// CreateTransaction assigns an ID if the caller did not supply one and
// stores the record.
func (s *Store) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
	return tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, core.ErrTransactionNotFound
}

// ListTransactions returns a copy of the stored transactions, ordered by
// date ascending.
func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// GetTransactionsByMonth returns transactions whose date falls in the
// YYYY-MM month bucket.
func (s *Store) GetTransactionsByMonth(ctx context.Context, month string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, tx := range s.transactions {
		if tx.MonthKey() == month {
			out = append(out, tx)
		}
	}
	return out, nil
}

// DeleteTransaction removes the transaction with the given ID. Deleting a
// missing ID is a no-op, matching last-write-wins blob-store semantics.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) UpsertGoal(ctx context.Context, goal core.BudgetGoal) error {
	s.tracker.Upsert(goal)
	return nil
}

func (s *Store) ListGoals(ctx context.Context, month string) ([]core.BudgetGoal, error) {
	return s.tracker.List(month), nil
}

func (s *Store) DeleteGoal(ctx context.Context, category, month string) error {
	s.tracker.Remove(category, month)
	return nil
}

func (s *Store) CopyGoalsToNextMonth(ctx context.Context, now time.Time) (int, error) {
	return s.tracker.CopyToNextMonth(now)
}
