package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dan9191/tutor-service/internal/models"
)

const userColumns = `id, name, phone, login, password_hash, guest_code, reminder_days, notify_email, confirmed_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Phone, &user.Login, &user.PasswordHash,
		&user.GuestCode, &user.ReminderDays, &user.NotifyEmail, &user.ConfirmedAt, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a new tutor profile in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO tutor.profiles (id, name, phone, login, password_hash, reminder_days, confirmed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Phone, user.Login,
		user.PasswordHash, user.ReminderDays, user.ConfirmedAt).Scan(&user.CreatedAt)
	if err != nil {
		return wrap("create user", err)
	}
	return nil
}

// FindUserByLogin retrieves a profile by its login address
func (r *Repository) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM tutor.profiles WHERE login = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, login))
	if err != nil {
		return nil, wrap("find user", err)
	}
	return user, nil
}

// FindUserByID retrieves a profile by id
func (r *Repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM tutor.profiles WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap("find user", err)
	}
	return user, nil
}

// FindUserByGuestCode retrieves the profile owning a guest code
func (r *Repository) FindUserByGuestCode(ctx context.Context, code string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM tutor.profiles WHERE guest_code = $1 AND guest_code IS NOT NULL`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, wrap("find user by guest code", err)
	}
	return user, nil
}

// SetGuestCode stores or clears (nil) the guest code of a profile
func (r *Repository) SetGuestCode(ctx context.Context, id uuid.UUID, code *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tutor.profiles SET guest_code = $2 WHERE id = $1`, id, code)
	if err != nil {
		return wrap("set guest code", err)
	}
	return affected("set guest code", res)
}

// UpdateSettings stores the reminder preferences of a profile
func (r *Repository) UpdateSettings(ctx context.Context, id uuid.UUID, reminderDays int, notifyEmail *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tutor.profiles SET reminder_days = $2, notify_email = $3 WHERE id = $1`,
		id, reminderDays, notifyEmail)
	if err != nil {
		return wrap("update settings", err)
	}
	return affected("update settings", res)
}

// ConfirmUser marks the profile as confirmed
func (r *Repository) ConfirmUser(ctx context.Context, login string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tutor.profiles SET confirmed_at = CURRENT_TIMESTAMP WHERE login = $1 AND confirmed_at IS NULL`,
		login)
	if err != nil {
		return wrap("confirm user", err)
	}
	return affected("confirm user", res)
}

// ListNotifiableUsers returns the profiles that want reminder digests
func (r *Repository) ListNotifiableUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM tutor.profiles
		WHERE notify_email IS NOT NULL AND notify_email <> '' AND confirmed_at IS NOT NULL
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, wrap("scan user", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list users", err)
	}
	return users, nil
}
