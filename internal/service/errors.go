package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dan9191/tutor-service/internal/repository"
)

var (
	ErrUnauthorized        = errors.New("missing session")
	ErrGuestForbidden      = errors.New("guest sessions are read-only")
	ErrGuestSessionRevoked = errors.New("guest code was revoked or replaced")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotConfirmed = errors.New("account not confirmed")
	ErrPhoneTaken          = errors.New("phone already registered")
	ErrInvalidGuestCode    = errors.New("invalid guest code")
	ErrGroupExists         = errors.New("group already exists")
	ErrLastGroup           = errors.New("cannot delete the last group")
	ErrNoDataForAnalysis   = errors.New("no payments to analyse")
	ErrNotFound            = repository.ErrNotFound
)

// ValidationError carries the field failures of a rejected input.
type ValidationError struct {
	Errs validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errs))
	for _, fe := range e.Errs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// validate runs struct validation and converts failures into *ValidationError.
func (s *Service) validate(v any) error {
	err := s.validator.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return &ValidationError{Errs: errs}
	}
	return err
}
