package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dan9191/tutor-service/internal/models"
)

// CreateGroup inserts a group; a duplicate name for the owner yields ErrDuplicate
func (r *Repository) CreateGroup(ctx context.Context, g *models.Group) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tutor.groups (id, user_id, name) VALUES ($1, $2, $3)`,
		g.ID, g.UserID, g.Name)
	if err != nil {
		return wrap("create group", err)
	}
	return nil
}

// DeleteGroup removes a group owned by userID
func (r *Repository) DeleteGroup(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tutor.groups WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap("delete group", err)
	}
	return affected("delete group", res)
}

// ListGroups returns the groups of userID ordered by name
func (r *Repository) ListGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name FROM tutor.groups WHERE user_id = $1 ORDER BY name ASC`, userID)
	if err != nil {
		return nil, wrap("list groups", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name); err != nil {
			return nil, wrap("scan group", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list groups", err)
	}
	return groups, nil
}
