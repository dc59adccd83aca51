package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/tutor-service/internal/models"
	"github.com/Dan9191/tutor-service/internal/paystatus"
)

func seed(t *testing.T, svc *Service, ctx context.Context) {
	t.Helper()
	payments := []models.Payment{
		{StudentName: "Ali", GroupName: "Grade 9", Amount: 100.1, Date: "2024-02-10"},
		{StudentName: "Mona", GroupName: "Grade 8", Amount: 50.2, Date: "2024-02-20"},
		{StudentName: "ali ", GroupName: "Grade 9", Amount: 100, Date: "2024-02-25"},
		{StudentName: "Sara", GroupName: "Grade 8", Amount: 80, Date: "2024-01-05"},
	}
	for _, p := range payments {
		_, err := svc.CreatePayment(ctx, p)
		require.NoError(t, err)
	}
	_, err := svc.CreateExpense(ctx, models.Expense{Description: "Hall rent", Amount: 70.3, Date: "2024-02-01"})
	require.NoError(t, err)
	_, err = svc.CreateExpense(ctx, models.Expense{Description: "Printing", Amount: 10, Date: "2023-12-28"})
	require.NoError(t, err)
}

func TestService_AvailableMonths(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)

	months, err := svc.AvailableMonths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03"}, months)

	seed(t, svc, ctx)
	months, err = svc.AvailableMonths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03", "2024-02", "2024-01", "2023-12"}, months)
}

func TestService_MonthlySummary(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)
	seed(t, svc, ctx)

	summary, err := svc.MonthlySummary(guestOf(t, svc, ctx), "2024-02")
	require.NoError(t, err)
	assert.Equal(t, &models.MonthlySummary{
		Month:     "2024-02",
		Income:    250.3,
		Expenses:  70.3,
		NetIncome: 180,
		Students:  3,
	}, summary)

	_, err = svc.MonthlySummary(ctx, "February")
	assert.Equal(t, []string{"month"}, validationFields(t, err))
}

func TestService_PaymentReport(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)
	seed(t, svc, ctx)

	report, err := svc.PaymentReport(ctx, "2024-02", "")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count)
	assert.Equal(t, 250.3, report.Total)
	assert.Equal(t, "2024-02-25", report.Payments[0].Date)
	assert.Equal(t, []models.GroupTotal{
		{GroupName: "Grade 9", Total: 200.1},
		{GroupName: "Grade 8", Total: 50.2},
	}, report.GroupTotals)

	report, err = svc.PaymentReport(ctx, "2024-02", " ALI")
	require.NoError(t, err)
	assert.Equal(t, "ALI", report.Search)
	assert.Equal(t, 2, report.Count)
	assert.Equal(t, 200.1, report.Total)

	report, err = svc.PaymentReport(ctx, "2024-02", "grade 8")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count)

	report, err = svc.PaymentReport(ctx, "2024-02", "nobody")
	require.NoError(t, err)
	assert.NotNil(t, report.Payments)
	assert.Zero(t, report.Count)
}

func TestService_ExpenseReport(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)
	seed(t, svc, ctx)

	report, err := svc.ExpenseReport(ctx, "2024-02", "rent")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, 70.3, report.Total)

	report, err = svc.ExpenseReport(ctx, "2023-12", "")
	require.NoError(t, err)
	assert.Equal(t, 10.0, report.Total)
}

func TestService_PaymentStatuses(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)
	// today is 2024-03-15
	for _, p := range []models.Payment{
		{StudentName: "Ali", GroupName: "G1", Amount: 1, Date: "2024-02-10"},
		{StudentName: "Mona", GroupName: "G2", Amount: 1, Date: "2024-02-15"},
		{StudentName: "Sara", GroupName: "G2", Amount: 1, Date: "2024-02-20"},
		{StudentName: "Omar", GroupName: "G1", Amount: 1, Date: "2024-03-01"},
	} {
		_, err := svc.CreatePayment(ctx, p)
		require.NoError(t, err)
	}

	report, err := svc.PaymentStatuses(guestOf(t, svc, ctx), nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", report.Today)
	require.Len(t, report.Overdue, 1)
	assert.Equal(t, "Ali", report.Overdue[0].StudentName)
	assert.Equal(t, 5, report.Overdue[0].Days)
	require.Len(t, report.Upcoming, 2)
	assert.Equal(t, "Mona", report.Upcoming[0].StudentName)
	assert.Equal(t, "Sara", report.Upcoming[1].StudentName)

	window := 20
	report, err = svc.PaymentStatuses(ctx, &window)
	require.NoError(t, err)
	assert.Len(t, report.Upcoming, 3)

	negative := -1
	_, err = svc.PaymentStatuses(ctx, &negative)
	assert.ErrorIs(t, err, paystatus.ErrNegativeWindow)
}

func TestService_Analyze(t *testing.T) {
	svc, _, gen := newTestService(t)
	ctx, _ := ownerContext(t, svc)

	_, err := svc.Analyze(ctx, "2024-02")
	assert.ErrorIs(t, err, ErrNoDataForAnalysis)

	seed(t, svc, ctx)
	analysis, err := svc.Analyze(guestOf(t, svc, ctx), "2024-02")
	require.NoError(t, err)
	assert.Equal(t, "Looks healthy.", analysis.Text)
	assert.Contains(t, analysis.Summary, "Total income: 250.30")
	assert.Contains(t, analysis.Summary, "- Grade 9: 200.10 (79.9%)")
	assert.Contains(t, gen.prompt, analysis.Summary)
}

func TestService_Generate(t *testing.T) {
	svc, _, gen := newTestService(t)
	ctx, _ := ownerContext(t, svc)

	text, err := svc.Generate(guestOf(t, svc, ctx), " hello ")
	require.NoError(t, err)
	assert.Equal(t, "Looks healthy.", text)
	assert.Equal(t, "hello", gen.prompt)

	_, err = svc.Generate(ctx, "  ")
	assert.Equal(t, []string{"prompt"}, validationFields(t, err))
}
