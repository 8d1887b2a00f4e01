package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lromero/cajaclinic/internal/model"
)

func TestCreateExpenseValidation(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseRepo())
	ctx := context.Background()

	base := CreateExpenseInput{
		UserID:        "u-1",
		ValidDate:     day("2026-03-10"),
		Category:      model.CategorySupplies,
		PaymentMethod: model.PaymentCash,
		Description:   "abatelenguas",
		Amount:        dec("120"),
	}

	created, err := svc.Create(ctx, base)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	bad := base
	bad.Category = "snacks"
	_, err = svc.Create(ctx, bad)
	assert.Error(t, err)

	bad = base
	bad.PaymentMethod = "cheque"
	_, err = svc.Create(ctx, bad)
	assert.Error(t, err)

	bad = base
	bad.Description = "   "
	_, err = svc.Create(ctx, bad)
	assert.Error(t, err)

	bad = base
	bad.Amount = dec("0")
	_, err = svc.Create(ctx, bad)
	assert.Error(t, err)
}

func TestUpdateExpensePartial(t *testing.T) {
	repo := newFakeExpenseRepo()
	repo.expenses["e-1"] = model.Expense{
		ID:            "e-1",
		Category:      model.CategorySupplies,
		PaymentMethod: model.PaymentCash,
		Description:   "garrafones",
		Amount:        dec("80"),
	}
	svc := NewExpenseService(repo)

	global := true
	amount := dec("95")
	updated, err := svc.Update(context.Background(), "e-1", UpdateExpenseInput{
		Amount:   &amount,
		IsGlobal: &global,
	})
	require.NoError(t, err)

	assert.True(t, updated.Amount.Equal(dec("95")))
	assert.True(t, updated.IsGlobal)
	// untouched fields survive
	assert.Equal(t, model.CategorySupplies, updated.Category)
	assert.Equal(t, "garrafones", updated.Description)
}

func TestUpdateExpenseMissing(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseRepo())
	_, err := svc.Update(context.Background(), "nope", UpdateExpenseInput{})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestDeleteExpense(t *testing.T) {
	repo := newFakeExpenseRepo()
	repo.expenses["e-1"] = model.Expense{ID: "e-1"}
	svc := NewExpenseService(repo)

	require.NoError(t, svc.Delete(context.Background(), "e-1"))
	assert.Empty(t, repo.expenses)

	assert.ErrorIs(t, svc.Delete(context.Background(), "e-1"), ErrExpenseNotFound)
}
