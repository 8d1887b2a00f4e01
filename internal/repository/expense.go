package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lromero/cajaclinic/internal/model"
)

// ExpenseFilter composes the expense list query. Nil pointers mean "no
// constraint"; Global filters on the shared-fund flag.
type ExpenseFilter struct {
	From      *time.Time
	To        *time.Time
	Date      *time.Time
	Category  model.ExpenseCategory
	Global    *bool
	Ascending bool
}

// ExpenseRepo is the store surface for expenditure entries.
type ExpenseRepo interface {
	Create(ctx context.Context, expense *model.Expense) error
	CreateBatch(ctx context.Context, expenses []model.Expense) error
	GetByID(ctx context.Context, id string) (*model.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id string) error
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepo {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepo) CreateBatch(ctx context.Context, expenses []model.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&expenses).Error
}

func (r *expenseRepo) GetByID(ctx context.Context, id string) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepo) List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	q := r.db.WithContext(ctx).Model(&model.Expense{})
	if filter.From != nil {
		q = q.Where("valid_date >= ?", filter.From.UTC().Format(dayLayout))
	}
	if filter.To != nil {
		q = q.Where("valid_date <= ?", filter.To.UTC().Format(dayLayout))
	}
	if filter.Date != nil {
		q = q.Where("valid_date = ?", filter.Date.UTC().Format(dayLayout))
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Global != nil {
		q = q.Where("is_global = ?", *filter.Global)
	}
	order := "valid_date DESC, created_at DESC"
	if filter.Ascending {
		order = "valid_date ASC, created_at ASC"
	}

	var expenses []model.Expense
	if err := q.Order(order).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepo) Update(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Expense{}).Error
}
