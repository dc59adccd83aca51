package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/tutor-service/internal/models"
)

func TestService_PaymentCRUD(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, user := ownerContext(t, svc)

	p, err := svc.CreatePayment(ctx, models.Payment{StudentName: " Ali ", GroupName: " G1 ", Amount: 150, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, "Ali", p.StudentName)
	assert.Equal(t, "G1", p.GroupName)

	updated, err := svc.UpdatePayment(ctx, p.ID, models.Payment{StudentName: "Ali", GroupName: "G2", Amount: 200, Date: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)

	list, err := svc.ListPayments(guestOf(t, svc, ctx))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "G2", list[0].GroupName)
	assert.Equal(t, 200.0, list[0].Amount)

	_, err = svc.UpdatePayment(ctx, uuid.New(), models.Payment{StudentName: "Ali", GroupName: "G2", Amount: 1, Date: "2024-03-02"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeletePayment(ctx, p.ID))
	assert.ErrorIs(t, svc.DeletePayment(ctx, p.ID), ErrNotFound)
}

func TestService_Payment_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)

	_, err := svc.CreatePayment(ctx, models.Payment{StudentName: "  ", GroupName: "G1", Amount: 0, Date: "01/03/2024"})
	assert.ElementsMatch(t, []string{"student_name", "amount", "date"}, validationFields(t, err))

	list, err := svc.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_AmountPrecision(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)

	p, err := svc.CreatePayment(ctx, models.Payment{StudentName: "Ali", GroupName: "G1", Amount: 10.456, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 10.46, p.Amount)

	p, err = svc.UpdatePayment(ctx, p.ID, models.Payment{StudentName: "Ali", GroupName: "G1", Amount: 0.005, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 0.01, p.Amount)

	_, err = svc.UpdatePayment(ctx, p.ID, models.Payment{StudentName: "Ali", GroupName: "G1", Amount: 0.001, Date: "2024-03-01"})
	assert.Equal(t, []string{"amount"}, validationFields(t, err))

	top, err := svc.CreatePayment(ctx, models.Payment{StudentName: "Ali", GroupName: "G1", Amount: 9999999999.99, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 9999999999.99, top.Amount)
	_, err = svc.CreatePayment(ctx, models.Payment{StudentName: "Ali", GroupName: "G1", Amount: 1e10, Date: "2024-03-01"})
	assert.Equal(t, []string{"amount"}, validationFields(t, err))

	_, err = svc.CreateExpense(ctx, models.Expense{Description: "Pens", Amount: 0.004, Date: "2024-03-01"})
	assert.Equal(t, []string{"amount"}, validationFields(t, err))
	e, err := svc.CreateExpense(ctx, models.Expense{Description: "Pens", Amount: 3.333, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 3.33, e.Amount)

	list, err := svc.ListPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_GuestCannotWrite(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)
	guest := guestOf(t, svc, ctx)

	_, err := svc.CreatePayment(guest, models.Payment{StudentName: "Ali", GroupName: "G1", Amount: 1, Date: "2024-03-01"})
	assert.ErrorIs(t, err, ErrGuestForbidden)
	_, err = svc.CreateExpense(guest, models.Expense{Description: "Rent", Amount: 1, Date: "2024-03-01"})
	assert.ErrorIs(t, err, ErrGuestForbidden)
	_, err = svc.AddGroup(guest, "G1")
	assert.ErrorIs(t, err, ErrGuestForbidden)
	assert.ErrorIs(t, svc.DeleteGroup(guest, uuid.New()), ErrGuestForbidden)
}

func TestService_ExpenseCRUD(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)

	e, err := svc.CreateExpense(ctx, models.Expense{Description: " Rent ", Amount: 500, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "Rent", e.Description)

	_, err = svc.UpdateExpense(ctx, e.ID, models.Expense{Description: "Rent", Amount: 450, Date: "2024-03-01"})
	require.NoError(t, err)

	list, err := svc.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 450.0, list[0].Amount)

	_, err = svc.CreateExpense(ctx, models.Expense{Amount: -1, Date: "2024-03-01"})
	assert.ElementsMatch(t, []string{"description", "amount"}, validationFields(t, err))

	require.NoError(t, svc.DeleteExpense(ctx, e.ID))
	assert.ErrorIs(t, svc.DeleteExpense(ctx, e.ID), ErrNotFound)
}

func TestService_Groups(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, _ := ownerContext(t, svc)

	g9, err := svc.AddGroup(ctx, " Grade 9 ")
	require.NoError(t, err)
	assert.Equal(t, "Grade 9", g9.Name)

	_, err = svc.AddGroup(ctx, "Grade 9")
	assert.ErrorIs(t, err, ErrGroupExists)
	_, err = svc.AddGroup(ctx, "   ")
	assert.Equal(t, []string{"name"}, validationFields(t, err))

	assert.ErrorIs(t, svc.DeleteGroup(ctx, g9.ID), ErrLastGroup)

	g8, err := svc.AddGroup(ctx, "Grade 8")
	require.NoError(t, err)

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Grade 8", groups[0].Name)

	require.NoError(t, svc.DeleteGroup(ctx, g9.ID))
	assert.ErrorIs(t, svc.DeleteGroup(ctx, g9.ID), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteGroup(ctx, g8.ID), ErrLastGroup)
}
