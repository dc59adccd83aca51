package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/tutor-service/internal/models"
	"github.com/Dan9191/tutor-service/internal/repository"
)

// CreatePayment records a payment received from a student
func (s *Service) CreatePayment(ctx context.Context, p models.Payment) (*models.Payment, error) {
	sess, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	normalizePayment(&p)
	if err := s.validate(p); err != nil {
		return nil, err
	}

	p.ID = uuid.New()
	p.UserID = sess.UserID
	if err := s.repo.CreatePayment(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.log.Infof("Payment created: %s for %s on %s", p.ID, p.StudentName, p.Date)
	return &p, nil
}

// UpdatePayment replaces the editable fields of an existing payment
func (s *Service) UpdatePayment(ctx context.Context, id uuid.UUID, p models.Payment) (*models.Payment, error) {
	sess, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	normalizePayment(&p)
	if err := s.validate(p); err != nil {
		return nil, err
	}

	p.ID = id
	p.UserID = sess.UserID
	if err := s.repo.UpdatePayment(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return &p, nil
}

// DeletePayment removes one of the owner's payments
func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	sess, err := owner(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePayment(ctx, sess.UserID, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	s.log.Infof("Payment deleted: %s", id)
	return nil
}

// ListPayments returns every payment of the owner, newest first
func (s *Service) ListPayments(ctx context.Context) ([]models.Payment, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, sess.UserID, models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func normalizePayment(p *models.Payment) {
	p.StudentName = strings.TrimSpace(p.StudentName)
	p.GroupName = strings.TrimSpace(p.GroupName)
	p.Date = strings.TrimSpace(p.Date)
	p.Amount = cents(p.Amount)
}

func normalizeExpense(e *models.Expense) {
	e.Description = strings.TrimSpace(e.Description)
	e.Date = strings.TrimSpace(e.Date)
	e.Amount = cents(e.Amount)
}

// cents rounds an amount to the two decimals the store keeps, so a value that
// rounds to zero fails validation instead of the database check.
func cents(amount float64) float64 {
	return money(decimal.NewFromFloat(amount))
}

// CreateExpense records an operating expense
func (s *Service) CreateExpense(ctx context.Context, e models.Expense) (*models.Expense, error) {
	sess, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	normalizeExpense(&e)
	if err := s.validate(e); err != nil {
		return nil, err
	}

	e.ID = uuid.New()
	e.UserID = sess.UserID
	if err := s.repo.CreateExpense(ctx, &e); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.log.Infof("Expense created: %s on %s", e.ID, e.Date)
	return &e, nil
}

// UpdateExpense replaces the editable fields of an existing expense
func (s *Service) UpdateExpense(ctx context.Context, id uuid.UUID, e models.Expense) (*models.Expense, error) {
	sess, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	normalizeExpense(&e)
	if err := s.validate(e); err != nil {
		return nil, err
	}

	e.ID = id
	e.UserID = sess.UserID
	if err := s.repo.UpdateExpense(ctx, &e); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return &e, nil
}

// DeleteExpense removes one of the owner's expenses
func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	sess, err := owner(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteExpense(ctx, sess.UserID, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.log.Infof("Expense deleted: %s", id)
	return nil
}

// ListExpenses returns every expense of the owner, newest first
func (s *Service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpenses(ctx, sess.UserID, models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// AddGroup creates a student group
func (s *Service) AddGroup(ctx context.Context, name string) (*models.Group, error) {
	sess, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	g := models.Group{ID: uuid.New(), UserID: sess.UserID, Name: strings.TrimSpace(name)}
	if err := s.validate(g); err != nil {
		return nil, err
	}

	if err := s.repo.CreateGroup(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrGroupExists
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.log.Infof("Group created: %s", g.Name)
	return &g, nil
}

// DeleteGroup removes a group unless it is the last one left
func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	sess, err := owner(ctx)
	if err != nil {
		return err
	}

	groups, err := s.repo.ListGroups(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	found := false
	for _, g := range groups {
		if g.ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	if len(groups) <= 1 {
		return ErrLastGroup
	}

	if err := s.repo.DeleteGroup(ctx, sess.UserID, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	s.log.Infof("Group deleted: %s", id)
	return nil
}

// ListGroups returns the owner's groups ordered by name
func (s *Service) ListGroups(ctx context.Context) ([]models.Group, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.repo.ListGroups(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}
