package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lromero/cajaclinic/internal/model"
	"github.com/lromero/cajaclinic/internal/repository"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseService struct {
	repo repository.ExpenseRepo
}

func NewExpenseService(repo repository.ExpenseRepo) *ExpenseService {
	return &ExpenseService{repo: repo}
}

type CreateExpenseInput struct {
	UserID        string
	UserName      string
	ValidDate     time.Time
	Category      model.ExpenseCategory
	PaymentMethod model.PaymentMethod
	Description   string
	Amount        decimal.Decimal
	IsGlobal      bool
}

func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*model.Expense, error) {
	if !input.Category.Valid() {
		return nil, fmt.Errorf("unknown category %q", input.Category)
	}
	if !input.PaymentMethod.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", input.PaymentMethod)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.New("description is required")
	}
	if input.Amount.Sign() <= 0 {
		return nil, errors.New("amount must be positive")
	}

	id, _ := uuid.NewV7()
	expense := &model.Expense{
		ID:            id.String(),
		UserID:        input.UserID,
		UserName:      input.UserName,
		ValidDate:     input.ValidDate.UTC(),
		CreatedAt:     time.Now().UTC(),
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		Description:   strings.TrimSpace(input.Description),
		Amount:        input.Amount,
		IsGlobal:      input.IsGlobal,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, filter repository.ExpenseFilter) ([]model.Expense, error) {
	return s.repo.List(ctx, filter)
}

// UpdateExpenseInput carries partial updates; nil means leave unchanged.
type UpdateExpenseInput struct {
	Category      *model.ExpenseCategory
	PaymentMethod *model.PaymentMethod
	Description   *string
	Amount        *decimal.Decimal
	IsGlobal      *bool
}

func (s *ExpenseService) Update(ctx context.Context, expenseID string, input UpdateExpenseInput) (*model.Expense, error) {
	existing, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q", *input.Category)
		}
		existing.Category = *input.Category
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.Valid() {
			return nil, fmt.Errorf("unknown payment method %q", *input.PaymentMethod)
		}
		existing.PaymentMethod = *input.PaymentMethod
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, errors.New("description is required")
		}
		existing.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		if input.Amount.Sign() <= 0 {
			return nil, errors.New("amount must be positive")
		}
		existing.Amount = *input.Amount
	}
	if input.IsGlobal != nil {
		existing.IsGlobal = *input.IsGlobal
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	if _, err := s.repo.GetByID(ctx, expenseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, expenseID)
}
