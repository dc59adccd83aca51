package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/tutor-service/internal/models"
	"github.com/Dan9191/tutor-service/internal/repository"
	"github.com/Dan9191/tutor-service/internal/session"
	"github.com/Dan9191/tutor-service/internal/utils"
)

const (
	guestCodeLength   = 6
	guestCodeAttempts = 5
)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GuestLoginInput carries a shared guest code.
type GuestLoginInput struct {
	Code string `json:"code" validate:"required"`
}

// SettingsInput holds the owner-editable profile settings.
type SettingsInput struct {
	ReminderDays int     `json:"reminder_days" validate:"gte=0,lte=365"`
	NotifyEmail  *string `json:"notify_email" validate:"omitempty,email"`
}

// Register creates a new tutor account with a hashed password
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validate(in); err != nil {
		return nil, err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Phone:        in.Phone,
		Login:        utils.LoginAddress(in.Phone, s.config.LoginDomain),
		PasswordHash: string(hashedPassword),
		ReminderDays: s.config.DefaultReminderDays,
	}
	if !s.config.RequireConfirmation {
		now := s.nowFunc().UTC()
		user.ConfirmedAt = &now
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Infof("User registered: %s", user.ID)
	return user, nil
}

// Login authenticates a tutor and returns a JWT token
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validate(in); err != nil {
		return "", err
	}

	user, err := s.repo.FindUserByLogin(ctx, utils.LoginAddress(in.Phone, s.config.LoginDomain))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.Confirmed() {
		return "", ErrAccountNotConfirmed
	}

	token, err := session.Issue([]byte(s.config.JWTSecret), session.Session{UserID: user.ID}, s.config.TokenTTL, s.nowFunc())
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.ID)
	return token, nil
}

// LoginAsGuest exchanges a guest code for a read-only token
func (s *Service) LoginAsGuest(ctx context.Context, in GuestLoginInput) (string, error) {
	in.Code = utils.NormalizeCode(in.Code)
	if err := s.validate(in); err != nil {
		return "", err
	}

	user, err := s.repo.FindUserByGuestCode(ctx, in.Code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidGuestCode
		}
		return "", fmt.Errorf("failed to find guest code: %w", err)
	}

	token, err := session.Issue([]byte(s.config.JWTSecret), session.Session{UserID: user.ID, Guest: true, CodeDigest: session.CodeDigest(in.Code)}, s.config.GuestTokenTTL, s.nowFunc())
	if err != nil {
		return "", err
	}

	s.log.Infof("Guest logged in for user %s", user.ID)
	return token, nil
}

// ConfirmUser activates an account registered with the given phone
func (s *Service) ConfirmUser(ctx context.Context, phone string) error {
	login := utils.LoginAddress(phone, s.config.LoginDomain)
	if err := s.repo.ConfirmUser(ctx, login); err != nil {
		return fmt.Errorf("failed to confirm %s: %w", login, err)
	}
	s.log.Infof("User confirmed: %s", login)
	return nil
}

// Profile returns the profile whose data the session may see
func (s *Service) Profile(ctx context.Context) (*models.User, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUserByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if sess.Guest {
		// guests must not learn the code they could otherwise pass on
		user.GuestCode = nil
		user.NotifyEmail = nil
	}
	return user, nil
}

// UpdateSettings stores the reminder window and digest address
func (s *Service) UpdateSettings(ctx context.Context, in SettingsInput) (*models.User, error) {
	sess, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	if in.NotifyEmail != nil {
		trimmed := strings.TrimSpace(*in.NotifyEmail)
		in.NotifyEmail = &trimmed
		if trimmed == "" {
			in.NotifyEmail = nil
		}
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSettings(ctx, sess.UserID, in.ReminderDays, in.NotifyEmail); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return s.repo.FindUserByID(ctx, sess.UserID)
}

// GenerateGuestCode creates (or replaces) the owner's guest code
func (s *Service) GenerateGuestCode(ctx context.Context) (string, error) {
	sess, err := owner(ctx)
	if err != nil {
		return "", err
	}

	for attempt := 1; attempt <= guestCodeAttempts; attempt++ {
		code, err := utils.GenerateCode(guestCodeLength)
		if err != nil {
			return "", err
		}
		err = s.repo.SetGuestCode(ctx, sess.UserID, &code)
		if err == nil {
			s.log.Infof("Guest code generated for user %s", sess.UserID)
			return code, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return "", fmt.Errorf("failed to store guest code: %w", err)
		}
		s.log.Warnf("Guest code collision, attempt %d", attempt)
	}
	return "", fmt.Errorf("failed to generate a unique guest code after %d attempts", guestCodeAttempts)
}

// RevokeGuestCode clears the owner's guest code
func (s *Service) RevokeGuestCode(ctx context.Context) error {
	sess, err := owner(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.SetGuestCode(ctx, sess.UserID, nil); err != nil {
		return fmt.Errorf("failed to revoke guest code: %w", err)
	}
	s.log.Infof("Guest code revoked for user %s", sess.UserID)
	return nil
}
