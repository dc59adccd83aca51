// Package scheduler sends the periodic payment reminder digests.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/models"
)

// Reporter computes the payment status of one tutor.
type Reporter interface {
	NotifiableUsers(ctx context.Context) ([]models.User, error)
	PaymentStatusesFor(ctx context.Context, user models.User) (*models.PaymentStatusReport, error)
}

// Notifier delivers a digest.
type Notifier interface {
	SendPaymentDigest(to, name string, report models.PaymentStatusReport) error
}

// Result summarises one digest run.
type Result struct {
	Checked int
	Sent    int
	Failed  int
}

type Scheduler struct {
	cron     *cron.Cron
	schedule string
	reporter Reporter
	notifier Notifier
	log      *logrus.Logger
}

// New builds a scheduler running on cfg.ReminderCron in cfg.Location.
func New(cfg *config.Config, reporter Reporter, notifier Notifier, log *logrus.Logger) *Scheduler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.ReminderCron,
		reporter: reporter,
		notifier: notifier,
		log:      log,
	}
}

// Start registers the digest job and starts the cron goroutine.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Errorf("Reminder run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminders %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.log.Infof("Reminder digests scheduled: %s", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Reminder job still running at shutdown")
	}
}

// RunOnce sends one digest per tutor who has something to hear about. A
// failure for one tutor is logged and the run moves on.
func (s *Scheduler) RunOnce(ctx context.Context) (Result, error) {
	var res Result
	users, err := s.reporter.NotifiableUsers(ctx)
	if err != nil {
		return res, err
	}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if user.NotifyEmail == nil || *user.NotifyEmail == "" {
			continue
		}
		res.Checked++

		entry := s.log.WithField("user_id", user.ID)
		report, err := s.reporter.PaymentStatusesFor(ctx, user)
		if err != nil {
			entry.Errorf("Failed to compute payment status: %v", err)
			res.Failed++
			continue
		}
		if report.Empty() {
			continue
		}
		if err := s.notifier.SendPaymentDigest(*user.NotifyEmail, user.Name, *report); err != nil {
			entry.Errorf("Failed to send digest: %v", err)
			res.Failed++
			continue
		}
		res.Sent++
	}

	s.log.Infof("Reminder run finished: %d checked, %d sent, %d failed", res.Checked, res.Sent, res.Failed)
	return res, nil
}
