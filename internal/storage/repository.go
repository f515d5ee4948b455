package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"budgeteer/internal/core"
)

// ErrReportNotFound is returned when no report has been generated for a month.
var ErrReportNotFound = errors.New("report not found")

// Report is a stored monthly analysis report.
type Report struct {
	Month       string
	Body        string
	AISummary   string
	GeneratedAt time.Time
}

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction assigns an ID if the caller did not supply one and
// persists the record.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Date:        tx.Date,
		AmountCents: tx.Amount.Cents,
		Category:    tx.Category,
		Description: tx.Description,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return tx, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrTransactionNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return transactionFromRow(row), nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactionsFromRows(rows), nil
}

func (r *SQLiteRepository) GetTransactionsByMonth(ctx context.Context, month string) ([]core.Transaction, error) {
	rows, err := r.queries.GetTransactionsByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("get transactions by month: %w", err)
	}
	return transactionsFromRows(rows), nil
}

// DeleteTransaction removes a transaction. Deleting a missing ID is a no-op.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := r.queries.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertGoal(ctx context.Context, goal core.BudgetGoal) error {
	err := r.queries.UpsertGoal(ctx, UpsertGoalParams{
		Category:   goal.Category,
		Month:      goal.Month,
		LimitCents: goal.MonthlyLimit.Cents,
	})
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, month string) ([]core.BudgetGoal, error) {
	rows, err := r.queries.ListGoals(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals := make([]core.BudgetGoal, len(rows))
	for i, g := range rows {
		goals[i] = core.BudgetGoal{
			Category:     g.Category,
			Month:        g.Month,
			MonthlyLimit: core.Money{Cents: g.LimitCents},
		}
	}
	return goals, nil
}

// DeleteGoal removes a goal. Deleting a missing goal is a no-op.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, category, month string) error {
	if _, err := r.queries.DeleteGoal(ctx, category, month); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// CopyGoalsToNextMonth copies the current month's goals into the next month,
// overwriting any limits already defined there.
func (r *SQLiteRepository) CopyGoalsToNextMonth(ctx context.Context, now time.Time) (int, error) {
	from := core.CurrentMonth(now)
	to, err := core.NextMonth(from)
	if err != nil {
		return 0, fmt.Errorf("next month: %w", err)
	}

	rows, err := r.queries.ListGoals(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("list goals for copy: %w", err)
	}

	for _, g := range rows {
		err := r.queries.UpsertGoal(ctx, UpsertGoalParams{
			Category:   g.Category,
			Month:      to,
			LimitCents: g.LimitCents,
		})
		if err != nil {
			return 0, fmt.Errorf("copy goal %s: %w", g.Category, err)
		}
	}

	slog.InfoContext(ctx, "Goals copied to next month",
		"from", from, "to", to, "count", len(rows))

	return len(rows), nil
}

func (r *SQLiteRepository) SaveReport(ctx context.Context, report Report) error {
	err := r.queries.UpsertReport(ctx, UpsertReportParams{
		Month:       report.Month,
		Body:        report.Body,
		AISummary:   report.AISummary,
		GeneratedAt: report.GeneratedAt,
	})
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	slog.InfoContext(ctx, "Report saved", "month", report.Month)
	return nil
}

func (r *SQLiteRepository) GetReport(ctx context.Context, month string) (Report, error) {
	row, err := r.queries.GetReport(ctx, month)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrReportNotFound
	}
	if err != nil {
		return Report{}, fmt.Errorf("get report: %w", err)
	}
	return Report{
		Month:       row.Month,
		Body:        row.Body,
		AISummary:   row.AISummary,
		GeneratedAt: row.GeneratedAt,
	}, nil
}

func transactionFromRow(row TransactionRow) core.Transaction {
	return core.Transaction{
		ID:          row.ID,
		Type:        core.TransactionType(row.Type),
		Date:        row.Date,
		Amount:      core.Money{Cents: row.AmountCents},
		Category:    row.Category,
		Description: row.Description,
	}
}

func transactionsFromRows(rows []TransactionRow) []core.Transaction {
	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		out[i] = transactionFromRow(row)
	}
	return out
}
