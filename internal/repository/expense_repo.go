package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository/db"
)

type ExpenseRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewExpenseRepository(conn *sql.DB, d db.Dialect) *ExpenseRepository {
	return &ExpenseRepository{db: conn, dialect: d}
}

var _ Expenses = (*ExpenseRepository)(nil)

const (
	expenseColumns = `id, user_id, title, amount_cents, category, spent_on, description, created_at, updated_at`

	insertExpenseSQL = `INSERT INTO expenses (user_id, title, amount_cents, category, spent_on, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	selectExpenseSQL = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ? AND user_id = ?`
	listExpensesSQL  = `SELECT ` + expenseColumns + ` FROM expenses`

	updateExpenseSQL = `UPDATE expenses SET title = ?, amount_cents = ?, category = ?, spent_on = ?, description = ?, updated_at = ?
WHERE id = ? AND user_id = ?`

	deleteExpenseSQL = `DELETE FROM expenses WHERE id = ? AND user_id = ?`

	totalsByCategorySQL = `SELECT category, SUM(amount_cents), COUNT(*) FROM expenses`
)

// Create inserts e and returns its ID. Missing timestamps are set to now (UTC).
func (r *ExpenseRepository) Create(ctx context.Context, e models.Expense) (int64, error) {
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}

	var id int64
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertExpenseSQL),
		e.UserID, e.Title, e.AmountCents, e.Category, e.Date, e.Description, e.CreatedAt, e.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert expense for user %d: %w", e.UserID, err)
	}
	return id, nil
}

// Get returns (nil, nil) when the expense does not exist or belongs to another user.
func (r *ExpenseRepository) Get(ctx context.Context, userID, id int64) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(selectExpenseSQL), id, userID)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select expense %d: %w", id, err)
	}
	return &e, nil
}

// List returns the user's expenses filtered by [From, To] (inclusive) and category,
// newest first.
func (r *ExpenseRepository) List(ctx context.Context, userID int64, f models.ExpenseFilter) ([]models.Expense, error) {
	where, args := filterClause(userID, f)
	q := listExpensesSQL + where + ` ORDER BY spent_on DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Expense, 0, 32)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// Update overwrites the mutable fields of e. Reports false when no owned row matched.
func (r *ExpenseRepository) Update(ctx context.Context, e models.Expense) (bool, error) {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(updateExpenseSQL),
		e.Title, e.AmountCents, e.Category, e.Date, e.Description, e.UpdatedAt, e.ID, e.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update expense %d rows affected: %w", e.ID, err)
	}
	return n > 0, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteExpenseSQL), id, userID)
	if err != nil {
		return false, fmt.Errorf("delete expense %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete expense %d rows affected: %w", id, err)
	}
	return n > 0, nil
}

// TotalsByCategory sums the user's spending per category, largest first.
func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, userID int64, f models.ExpenseFilter) ([]models.CategoryTotal, error) {
	where, args := filterClause(userID, f)
	q := totalsByCategorySQL + where + ` GROUP BY category ORDER BY SUM(amount_cents) DESC, category ASC`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("totals by category for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.TotalCents, &ct.Count); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		ct.Total = models.CentsToAmount(ct.TotalCents)
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return out, nil
}

// filterClause builds the WHERE clause shared by List and TotalsByCategory.
func filterClause(userID int64, f models.ExpenseFilter) (string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if f.From != "" {
		conds = append(conds, "spent_on >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		conds = append(conds, "spent_on <= ?")
		args = append(args, f.To)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		conds = append(conds, "category = ?")
		args = append(args, c)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(s rowScanner) (models.Expense, error) {
	var (
		e    models.Expense
		desc sql.NullString
	)
	err := s.Scan(&e.ID, &e.UserID, &e.Title, &e.AmountCents, &e.Category, &e.Date, &desc, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Expense{}, err
	}
	if desc.Valid {
		d := desc.String
		e.Description = &d
	}
	e.Amount = models.CentsToAmount(e.AmountCents)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
