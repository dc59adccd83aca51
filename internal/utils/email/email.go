package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendPaymentDigest emails a tutor the students who are overdue or due soon
func (s *Sender) SendPaymentDigest(to, name string, report models.PaymentStatusReport) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = DigestSubject(report)
	e.Text = []byte(DigestBody(name, report))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send payment digest to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// DigestSubject summarises the report counts in one line
func DigestSubject(report models.PaymentStatusReport) string {
	return fmt.Sprintf("Payment reminders for %s: %d overdue, %d upcoming",
		report.Today, len(report.Overdue), len(report.Upcoming))
}

// DigestBody renders the plain-text digest
func DigestBody(name string, report models.PaymentStatusReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)

	if len(report.Overdue) > 0 {
		b.WriteString("Overdue payments:\n")
		for _, st := range report.Overdue {
			fmt.Fprintf(&b, "  - %s (%s): %d day(s) late, was due on %s\n",
				st.StudentName, st.GroupName, st.Days, st.DueDate)
		}
		b.WriteString("\n")
	}
	if len(report.Upcoming) > 0 {
		b.WriteString("Upcoming payments:\n")
		for _, st := range report.Upcoming {
			when := fmt.Sprintf("in %d day(s)", st.Days)
			if st.Days == 0 {
				when = "today"
			}
			fmt.Fprintf(&b, "  - %s (%s): due %s, on %s\n", st.StudentName, st.GroupName, when, st.DueDate)
		}
		b.WriteString("\n")
	}

	b.WriteString("Best regards,\nTutor Service")
	return b.String()
}
