package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/models"
)

type fakeReporter struct {
	users   []models.User
	reports map[uuid.UUID]*models.PaymentStatusReport
	fail    map[uuid.UUID]bool
}

func (f *fakeReporter) NotifiableUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeReporter) PaymentStatusesFor(ctx context.Context, user models.User) (*models.PaymentStatusReport, error) {
	if f.fail[user.ID] {
		return nil, errors.New("bad date")
	}
	return f.reports[user.ID], nil
}

type fakeNotifier struct {
	sent   []string
	days   []string
	failTo string
}

func (f *fakeNotifier) SendPaymentDigest(to, name string, report models.PaymentStatusReport) error {
	if to == f.failTo {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, to)
	f.days = append(f.days, report.Today)
	return nil
}

func user(email string) models.User {
	u := models.User{ID: uuid.New(), Name: "Tutor"}
	if email != "" {
		u.NotifyEmail = &email
	}
	return u
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestScheduler_RunOnce(t *testing.T) {
	due := &models.PaymentStatusReport{
		Today:    "2024-03-15",
		Overdue:  []models.PaymentStatus{{StudentName: "Ali", GroupName: "G1", DueDate: "2024-03-10", DiffDays: -5, Days: 5}},
		Upcoming: []models.PaymentStatus{},
	}
	empty := &models.PaymentStatusReport{Overdue: []models.PaymentStatus{}, Upcoming: []models.PaymentStatus{}}

	a, b, c, d, e := user("a@x.test"), user("b@x.test"), user("c@x.test"), user("d@x.test"), user("")
	reporter := &fakeReporter{
		users: []models.User{a, b, c, d, e},
		reports: map[uuid.UUID]*models.PaymentStatusReport{
			a.ID: due, b.ID: due, c.ID: empty,
		},
		fail: map[uuid.UUID]bool{d.ID: true},
	}
	notifier := &fakeNotifier{failTo: "b@x.test"}

	s := New(&config.Config{ReminderCron: "0 8 * * *", Location: time.UTC}, reporter, notifier, quietLogger())
	res, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Result{Checked: 4, Sent: 1, Failed: 2}, res)
	assert.Equal(t, []string{"a@x.test"}, notifier.sent)
	assert.Equal(t, []string{"2024-03-15"}, notifier.days)
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := New(&config.Config{ReminderCron: "not a cron"}, &fakeReporter{}, &fakeNotifier{}, quietLogger())
	assert.Error(t, s.Start())

	s = New(&config.Config{ReminderCron: "@every 1h"}, &fakeReporter{}, &fakeNotifier{}, quietLogger())
	require.NoError(t, s.Start())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
