package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/locale"
	"github.com/Dan9191/tutor-service/internal/models"
	"github.com/Dan9191/tutor-service/internal/repository/memory"
	"github.com/Dan9191/tutor-service/internal/session"
)

type fakeGenerator struct {
	prompt string
	text   string
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memory.Store, *fakeGenerator) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		GuestTokenTTL:       10 * time.Minute,
		LoginDomain:         "tutor.test",
		DefaultReminderDays: 7,
		Location:            time.UTC,
	}
	store := memory.New()
	gen := &fakeGenerator{text: "Looks healthy."}
	svc := NewService(store, logger, cfg, locale.New().Validator(), gen)
	svc.nowFunc = func() time.Time { return fixedNow }
	return svc, store, gen
}

// ownerContext registers a tutor and returns a context carrying their session.
func ownerContext(t *testing.T, svc *Service) (context.Context, *models.User) {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{Name: "Islam", Phone: "0100", Password: "secret1"})
	require.NoError(t, err)
	return session.WithSession(context.Background(), session.Session{UserID: user.ID}), user
}

// guestOf opens a guest session on the owner's current guest code, creating
// one if the owner has none yet.
func guestOf(t *testing.T, svc *Service, ctx context.Context) context.Context {
	t.Helper()
	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	var code string
	if profile.GuestCode != nil {
		code = *profile.GuestCode
	} else {
		code, err = svc.GenerateGuestCode(ctx)
		require.NoError(t, err)
	}
	token, err := svc.LoginAsGuest(context.Background(), GuestLoginInput{Code: code})
	require.NoError(t, err)
	sess, err := session.ParseAt([]byte(svc.config.JWTSecret), token, fixedNow)
	require.NoError(t, err)
	return session.WithSession(context.Background(), sess)
}

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	var fields []string
	for _, fe := range verr.Errs {
		fields = append(fields, fe.Field())
	}
	return fields
}
