package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/models"
	"github.com/Dan9191/tutor-service/internal/paystatus"
	"github.com/Dan9191/tutor-service/internal/repository"
	"github.com/Dan9191/tutor-service/internal/session"
)

// Repository is the storage the service runs on. Both the PostgreSQL
// repository and the in-memory store satisfy it.
type Repository interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByGuestCode(ctx context.Context, code string) (*models.User, error)
	SetGuestCode(ctx context.Context, id uuid.UUID, code *string) error
	UpdateSettings(ctx context.Context, id uuid.UUID, reminderDays int, notifyEmail *string) error
	ConfirmUser(ctx context.Context, login string) error
	ListNotifiableUsers(ctx context.Context) ([]models.User, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	UpdatePayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, userID, id uuid.UUID) error
	ListPayments(ctx context.Context, userID uuid.UUID, rng models.DateRange) ([]models.Payment, error)

	CreateExpense(ctx context.Context, e *models.Expense) error
	UpdateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error
	ListExpenses(ctx context.Context, userID uuid.UUID, rng models.DateRange) ([]models.Expense, error)

	CreateGroup(ctx context.Context, g *models.Group) error
	DeleteGroup(ctx context.Context, userID, id uuid.UUID) error
	ListGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error)
}

// TextGenerator produces text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service handles business logic
type Service struct {
	repo      Repository
	log       *logrus.Logger
	config    *config.Config
	validator *validator.Validate
	generator TextGenerator
	nowFunc   func() time.Time
}

// NewService initializes a new service
func NewService(repo Repository, log *logrus.Logger, cfg *config.Config, validate *validator.Validate, generator TextGenerator) *Service {
	return &Service{
		repo:      repo,
		log:       log,
		config:    cfg,
		validator: validate,
		generator: generator,
		nowFunc:   time.Now,
	}
}

// Ping checks the storage backend.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// today is the current calendar date in the configured time zone.
func (s *Service) today() time.Time {
	loc := s.config.Location
	if loc == nil {
		loc = time.Local
	}
	return paystatus.Midnight(s.nowFunc().In(loc))
}

// viewer returns the session of any caller, owner or guest. A guest session
// stays valid only while the owner's guest code is the one it was opened with.
func (s *Service) viewer(ctx context.Context) (session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return session.Session{}, ErrUnauthorized
	}
	if !sess.Guest {
		return sess, nil
	}

	user, err := s.repo.FindUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return session.Session{}, ErrGuestSessionRevoked
		}
		return session.Session{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if user.GuestCode == nil || sess.CodeDigest == "" ||
		subtle.ConstantTimeCompare([]byte(session.CodeDigest(*user.GuestCode)), []byte(sess.CodeDigest)) != 1 {
		return session.Session{}, ErrGuestSessionRevoked
	}
	return sess, nil
}

// owner returns the session only when it belongs to the account owner.
func owner(ctx context.Context) (session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return session.Session{}, ErrUnauthorized
	}
	if sess.Guest {
		return sess, ErrGuestForbidden
	}
	return sess, nil
}
