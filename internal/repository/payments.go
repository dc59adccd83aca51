package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Dan9191/tutor-service/internal/models"
)

// CreatePayment inserts a payment
func (r *Repository) CreatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO tutor.payments (id, user_id, student_name, group_name, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.UserID, p.StudentName, p.GroupName, p.Amount, p.Date).
		Scan(&p.CreatedAt)
	if err != nil {
		return wrap("create payment", err)
	}
	return nil
}

// UpdatePayment rewrites a payment owned by p.UserID
func (r *Repository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		UPDATE tutor.payments
		SET student_name = $3, group_name = $4, amount = $5, date = $6::date
		WHERE id = $1 AND user_id = $2
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.UserID, p.StudentName, p.GroupName, p.Amount, p.Date).
		Scan(&p.CreatedAt)
	if err != nil {
		return wrap("update payment", err)
	}
	return nil
}

// DeletePayment removes a payment owned by userID
func (r *Repository) DeletePayment(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tutor.payments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap("delete payment", err)
	}
	return affected("delete payment", res)
}

// ListPayments returns the payments of userID, newest first
func (r *Repository) ListPayments(ctx context.Context, userID uuid.UUID, rng models.DateRange) ([]models.Payment, error) {
	query := `
		SELECT id, user_id, student_name, group_name, amount, date, created_at
		FROM tutor.payments
		WHERE user_id = $1`
	query, args := dateFilter(query, []any{userID}, rng.From, rng.To)
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("list payments", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var date time.Time
		if err := rows.Scan(&p.ID, &p.UserID, &p.StudentName, &p.GroupName, &p.Amount, &date, &p.CreatedAt); err != nil {
			return nil, wrap("scan payment", err)
		}
		p.Date = date.Format(models.DateLayout)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list payments", err)
	}
	return payments, nil
}
