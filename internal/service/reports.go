package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/tutor-service/internal/models"
	"github.com/Dan9191/tutor-service/internal/paystatus"
)

// MonthInput selects a calendar month.
type MonthInput struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
}

// PromptInput is a free-form text generation request.
type PromptInput struct {
	Prompt string `json:"prompt" validate:"required,max=8000"`
}

func (s *Service) monthRange(month string) (models.DateRange, error) {
	in := MonthInput{Month: strings.TrimSpace(month)}
	if err := s.validate(in); err != nil {
		return models.DateRange{}, err
	}
	return models.Month(in.Month)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// AvailableMonths lists the months that have records, plus the current one, newest first
func (s *Service) AvailableMonths(ctx context.Context) ([]string, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, sess.UserID, models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	expenses, err := s.repo.ListExpenses(ctx, sess.UserID, models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	seen := map[string]bool{s.today().Format("2006-01"): true}
	for _, p := range payments {
		if len(p.Date) >= 7 {
			seen[p.Date[:7]] = true
		}
	}
	for _, e := range expenses {
		if len(e.Date) >= 7 {
			seen[e.Date[:7]] = true
		}
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// MonthlySummary totals income and expenses of one month
func (s *Service) MonthlySummary(ctx context.Context, month string) (*models.MonthlySummary, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	rng, err := s.monthRange(month)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.ListPayments(ctx, sess.UserID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	expenses, err := s.repo.ListExpenses(ctx, sess.UserID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	income, spent := decimal.Zero, decimal.Zero
	students := make(map[string]struct{})
	for _, p := range payments {
		income = income.Add(decimal.NewFromFloat(p.Amount))
		students[strings.TrimSpace(p.StudentName)] = struct{}{}
	}
	for _, e := range expenses {
		spent = spent.Add(decimal.NewFromFloat(e.Amount))
	}

	return &models.MonthlySummary{
		Month:     strings.TrimSpace(month),
		Income:    money(income),
		Expenses:  money(spent),
		NetIncome: money(income.Sub(spent)),
		Students:  len(students),
	}, nil
}

// PaymentReport filters a month's payments by student or group name
func (s *Service) PaymentReport(ctx context.Context, month, search string) (*models.PaymentReport, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	rng, err := s.monthRange(month)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, sess.UserID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	search = strings.TrimSpace(search)
	needle := strings.ToLower(search)
	report := &models.PaymentReport{
		Month:       strings.TrimSpace(month),
		Search:      search,
		Payments:    []models.Payment{},
		GroupTotals: []models.GroupTotal{},
	}
	total := decimal.Zero
	byGroup := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.StudentName), needle) &&
			!strings.Contains(strings.ToLower(p.GroupName), needle) {
			continue
		}
		report.Payments = append(report.Payments, p)
		amount := decimal.NewFromFloat(p.Amount)
		total = total.Add(amount)
		byGroup[p.GroupName] = byGroup[p.GroupName].Add(amount)
	}

	report.Count = len(report.Payments)
	report.Total = money(total)
	for name, t := range byGroup {
		report.GroupTotals = append(report.GroupTotals, models.GroupTotal{GroupName: name, Total: money(t)})
	}
	sort.Slice(report.GroupTotals, func(i, j int) bool {
		a, b := report.GroupTotals[i], report.GroupTotals[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.GroupName < b.GroupName
	})
	return report, nil
}

// ExpenseReport filters a month's expenses by description
func (s *Service) ExpenseReport(ctx context.Context, month, search string) (*models.ExpenseReport, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	rng, err := s.monthRange(month)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpenses(ctx, sess.UserID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	search = strings.TrimSpace(search)
	needle := strings.ToLower(search)
	report := &models.ExpenseReport{Month: strings.TrimSpace(month), Search: search, Expenses: []models.Expense{}}
	total := decimal.Zero
	for _, e := range expenses {
		if needle != "" && !strings.Contains(strings.ToLower(e.Description), needle) {
			continue
		}
		report.Expenses = append(report.Expenses, e)
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	report.Count = len(report.Expenses)
	report.Total = money(total)
	return report, nil
}

// PaymentStatuses classifies students as overdue or due soon. A nil window
// falls back to the profile's reminder_days.
func (s *Service) PaymentStatuses(ctx context.Context, reminderDays *int) (*models.PaymentStatusReport, error) {
	sess, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUserByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	window := user.ReminderDays
	if reminderDays != nil {
		window = *reminderDays
	}
	return s.statusesFor(ctx, user.ID, window)
}

// PaymentStatusesFor computes the report for a profile outside a request, as
// the reminder digests do.
func (s *Service) PaymentStatusesFor(ctx context.Context, user models.User) (*models.PaymentStatusReport, error) {
	return s.statusesFor(ctx, user.ID, user.ReminderDays)
}

func (s *Service) statusesFor(ctx context.Context, userID uuid.UUID, window int) (*models.PaymentStatusReport, error) {
	payments, err := s.repo.ListPayments(ctx, userID, models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	report, err := paystatus.Compute(payments, window, s.today())
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Analyze asks the text generator to comment on a month's income
func (s *Service) Analyze(ctx context.Context, month string) (*models.Analysis, error) {
	report, err := s.PaymentReport(ctx, month, "")
	if err != nil {
		return nil, err
	}
	if report.Count == 0 {
		return nil, ErrNoDataForAnalysis
	}

	summary := analysisSummary(report)
	prompt := "You are an assistant for an independent tutor. Analyse the following monthly " +
		"income report, point out notable trends between groups and suggest two practical " +
		"actions. Answer in the language the group names are written in, in under 200 words.\n\n" + summary

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Analysis generated for %s", report.Month)
	return &models.Analysis{Month: report.Month, Summary: summary, Text: text}, nil
}

func analysisSummary(report *models.PaymentReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Month: %s\n", report.Month)
	fmt.Fprintf(&b, "Total income: %.2f\n", report.Total)
	fmt.Fprintf(&b, "Payments: %d\n", report.Count)
	b.WriteString("Income by group:\n")
	for _, g := range report.GroupTotals {
		share := 0.0
		if report.Total > 0 {
			share = g.Total / report.Total * 100
		}
		fmt.Fprintf(&b, "- %s: %.2f (%.1f%%)\n", g.GroupName, g.Total, share)
	}
	return b.String()
}

// Generate passes a raw prompt to the text generator
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if _, err := s.viewer(ctx); err != nil {
		return "", err
	}
	in := PromptInput{Prompt: strings.TrimSpace(prompt)}
	if err := s.validate(in); err != nil {
		return "", err
	}
	return s.generator.Generate(ctx, in.Prompt)
}

// NotifiableUsers lists the confirmed profiles that asked for reminder digests
func (s *Service) NotifiableUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListNotifiableUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifiable users: %w", err)
	}
	return users, nil
}
