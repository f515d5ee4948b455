package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"budgeteer/internal/amqp"
	"budgeteer/internal/core"
	"budgeteer/internal/storage"
)

// ErrReportsUnavailable is returned when report operations are requested but
// the service is running without SQLite or without a message broker.
var ErrReportsUnavailable = errors.New("reports require the sqlite backend and an AMQP connection")

// Store is the data backend the service writes through. Both the in-memory
// store and the SQLite repository implement it.
type Store interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	GetTransactionsByMonth(ctx context.Context, month string) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	UpsertGoal(ctx context.Context, goal core.BudgetGoal) error
	ListGoals(ctx context.Context, month string) ([]core.BudgetGoal, error)
	DeleteGoal(ctx context.Context, category, month string) error
	CopyGoalsToNextMonth(ctx context.Context, now time.Time) (int, error)
}

// ReportStore persists generated reports. Only the SQLite backend provides
// one; with the memory backend report operations are unavailable.
type ReportStore interface {
	SaveReport(ctx context.Context, report storage.Report) error
	GetReport(ctx context.Context, month string) (storage.Report, error)
}

// BudgetService orchestrates budget operations across the data backend
// and AMQP.
type BudgetService struct {
	store      Store
	reports    ReportStore
	amqpClient *amqp.Client
}

func NewBudgetService(store Store, reports ReportStore, amqpClient *amqp.Client) *BudgetService {
	return &BudgetService{
		store:      store,
		reports:    reports,
		amqpClient: amqpClient,
	}
}

// CreateTransaction validates and stores a transaction.
func (s *BudgetService) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	return created, nil
}

func (s *BudgetService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *BudgetService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *BudgetService) GetTransactionsByMonth(ctx context.Context, month string) ([]core.Transaction, error) {
	if err := core.ValidateMonth(month); err != nil {
		return nil, err
	}
	return s.store.GetTransactionsByMonth(ctx, month)
}

func (s *BudgetService) DeleteTransaction(ctx context.Context, id string) error {
	return s.store.DeleteTransaction(ctx, id)
}

// UpsertGoal validates and stores a goal, replacing any existing limit for
// the same category and month.
func (s *BudgetService) UpsertGoal(ctx context.Context, goal core.BudgetGoal) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.store.UpsertGoal(ctx, goal)
}

func (s *BudgetService) ListGoals(ctx context.Context, month string) ([]core.BudgetGoal, error) {
	if month != "" {
		if err := core.ValidateMonth(month); err != nil {
			return nil, err
		}
	}
	return s.store.ListGoals(ctx, month)
}

func (s *BudgetService) DeleteGoal(ctx context.Context, category, month string) error {
	return s.store.DeleteGoal(ctx, category, month)
}

func (s *BudgetService) CopyGoalsToNextMonth(ctx context.Context, now time.Time) (int, error) {
	return s.store.CopyGoalsToNextMonth(ctx, now)
}

// RequestReport publishes an async report generation request for a month.
// The worker picks it up and writes the result to the reports table.
func (s *BudgetService) RequestReport(ctx context.Context, month string) error {
	if err := core.ValidateMonth(month); err != nil {
		return err
	}
	if s.reports == nil || s.amqpClient == nil {
		return ErrReportsUnavailable
	}

	if err := s.amqpClient.PublishReportRequest(ctx, month); err != nil {
		return fmt.Errorf("publish report request: %w", err)
	}

	slog.InfoContext(ctx, "Report requested", "month", month)
	return nil
}

func (s *BudgetService) GetReport(ctx context.Context, month string) (storage.Report, error) {
	if s.reports == nil {
		return storage.Report{}, ErrReportsUnavailable
	}
	return s.reports.GetReport(ctx, month)
}

// Close closes the data backend and the AMQP connection.
func (s *BudgetService) Close() error {
	var errs []error

	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close budget service: %v", errs)
	}

	return nil
}
