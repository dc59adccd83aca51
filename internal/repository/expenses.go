package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Dan9191/tutor-service/internal/models"
)

// CreateExpense inserts an expense
func (r *Repository) CreateExpense(ctx context.Context, e *models.Expense) error {
	query := `
		INSERT INTO tutor.expenses (id, user_id, description, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5::date, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, e.ID, e.UserID, e.Description, e.Amount, e.Date).Scan(&e.CreatedAt)
	if err != nil {
		return wrap("create expense", err)
	}
	return nil
}

// UpdateExpense rewrites an expense owned by e.UserID
func (r *Repository) UpdateExpense(ctx context.Context, e *models.Expense) error {
	query := `
		UPDATE tutor.expenses
		SET description = $3, amount = $4, date = $5::date
		WHERE id = $1 AND user_id = $2
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, e.ID, e.UserID, e.Description, e.Amount, e.Date).Scan(&e.CreatedAt)
	if err != nil {
		return wrap("update expense", err)
	}
	return nil
}

// DeleteExpense removes an expense owned by userID
func (r *Repository) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tutor.expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap("delete expense", err)
	}
	return affected("delete expense", res)
}

// ListExpenses returns the expenses of userID, newest first
func (r *Repository) ListExpenses(ctx context.Context, userID uuid.UUID, rng models.DateRange) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, description, amount, date, created_at
		FROM tutor.expenses
		WHERE user_id = $1`
	query, args := dateFilter(query, []any{userID}, rng.From, rng.To)
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("list expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var date time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &date, &e.CreatedAt); err != nil {
			return nil, wrap("scan expense", err)
		}
		e.Date = date.Format(models.DateLayout)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list expenses", err)
	}
	return expenses, nil
}
