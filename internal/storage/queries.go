package storage

import (
	"context"
	"database/sql"
	"time"
)

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// TransactionRow mirrors the transactions table.
type TransactionRow struct {
	ID          string
	Type        string
	Date        string
	AmountCents int64
	Category    string
	Description string
	CreatedAt   time.Time
}

// GoalRow mirrors the budget_goals table.
type GoalRow struct {
	Category   string
	Month      string
	LimitCents int64
}

// ReportRow mirrors the reports table.
type ReportRow struct {
	Month       string
	Body        string
	AISummary   string
	GeneratedAt time.Time
}

const createTransaction = `
INSERT INTO transactions (id, type, date, amount_cents, category, description)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateTransactionParams struct {
	ID          string
	Type        string
	Date        string
	AmountCents int64
	Category    string
	Description string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.ExecContext(ctx, createTransaction,
		arg.ID, arg.Type, arg.Date, arg.AmountCents, arg.Category, arg.Description)
	return err
}

const getTransaction = `
SELECT id, type, date, amount_cents, category, description, created_at
FROM transactions
WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id string) (TransactionRow, error) {
	var row TransactionRow
	err := q.db.QueryRowContext(ctx, getTransaction, id).Scan(
		&row.ID, &row.Type, &row.Date, &row.AmountCents, &row.Category, &row.Description, &row.CreatedAt)
	return row, err
}

const listTransactions = `
SELECT id, type, date, amount_cents, category, description, created_at
FROM transactions
ORDER BY date, id
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

const getTransactionsByMonth = `
SELECT id, type, date, amount_cents, category, description, created_at
FROM transactions
WHERE substr(date, 1, 7) = ?
ORDER BY date, id
`

func (q *Queries) GetTransactionsByMonth(ctx context.Context, month string) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, getTransactionsByMonth, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

const deleteTransaction = `
DELETE FROM transactions WHERE id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const upsertGoal = `
INSERT INTO budget_goals (category, month, limit_cents)
VALUES (?, ?, ?)
ON CONFLICT(category, month) DO UPDATE SET
    limit_cents = excluded.limit_cents,
    updated_at = CURRENT_TIMESTAMP
`

type UpsertGoalParams struct {
	Category   string
	Month      string
	LimitCents int64
}

func (q *Queries) UpsertGoal(ctx context.Context, arg UpsertGoalParams) error {
	_, err := q.db.ExecContext(ctx, upsertGoal, arg.Category, arg.Month, arg.LimitCents)
	return err
}

const listGoals = `
SELECT category, month, limit_cents
FROM budget_goals
ORDER BY month, category
`

const listGoalsByMonth = `
SELECT category, month, limit_cents
FROM budget_goals
WHERE month = ?
ORDER BY category
`

func (q *Queries) ListGoals(ctx context.Context, month string) ([]GoalRow, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if month == "" {
		rows, err = q.db.QueryContext(ctx, listGoals)
	} else {
		rows, err = q.db.QueryContext(ctx, listGoalsByMonth, month)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []GoalRow
	for rows.Next() {
		var g GoalRow
		if err := rows.Scan(&g.Category, &g.Month, &g.LimitCents); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

const deleteGoal = `
DELETE FROM budget_goals WHERE category = ? AND month = ?
`

func (q *Queries) DeleteGoal(ctx context.Context, category, month string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteGoal, category, month)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const upsertReport = `
INSERT INTO reports (month, body, ai_summary, generated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(month) DO UPDATE SET
    body = excluded.body,
    ai_summary = excluded.ai_summary,
    generated_at = excluded.generated_at
`

type UpsertReportParams struct {
	Month       string
	Body        string
	AISummary   string
	GeneratedAt time.Time
}

func (q *Queries) UpsertReport(ctx context.Context, arg UpsertReportParams) error {
	_, err := q.db.ExecContext(ctx, upsertReport, arg.Month, arg.Body, arg.AISummary, arg.GeneratedAt)
	return err
}

const getReport = `
SELECT month, body, ai_summary, generated_at
FROM reports
WHERE month = ?
`

func (q *Queries) GetReport(ctx context.Context, month string) (ReportRow, error) {
	var row ReportRow
	err := q.db.QueryRowContext(ctx, getReport, month).Scan(
		&row.Month, &row.Body, &row.AISummary, &row.GeneratedAt)
	return row, err
}

func scanTransactions(rows *sql.Rows) ([]TransactionRow, error) {
	var out []TransactionRow
	for rows.Next() {
		var row TransactionRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Date, &row.AmountCents,
			&row.Category, &row.Description, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
