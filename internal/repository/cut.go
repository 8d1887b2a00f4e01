package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lromero/cajaclinic/internal/model"
)

const dayLayout = "2006-01-02"

// CutFilter composes the list query: from AND to AND exact date, all
// inclusive, on the business date.
type CutFilter struct {
	From      *time.Time
	To        *time.Time
	Date      *time.Time
	Ascending bool
}

// CutRepo is the store surface for cash closings.
type CutRepo interface {
	Create(ctx context.Context, cut *model.Cut) error
	GetByID(ctx context.Context, id string) (*model.Cut, error)
	List(ctx context.Context, filter CutFilter) ([]model.Cut, error)
	// UpdateFields writes the named review fields of one record. No
	// optimistic locking: concurrent reviewer saves are last write wins.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type cutRepo struct {
	db *gorm.DB
}

func NewCutRepo(db *gorm.DB) CutRepo {
	return &cutRepo{db: db}
}

func (r *cutRepo) Create(ctx context.Context, cut *model.Cut) error {
	return r.db.WithContext(ctx).Create(cut).Error
}

func (r *cutRepo) GetByID(ctx context.Context, id string) (*model.Cut, error) {
	var cut model.Cut
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cut).Error; err != nil {
		return nil, err
	}
	return &cut, nil
}

func (r *cutRepo) List(ctx context.Context, filter CutFilter) ([]model.Cut, error) {
	q := r.db.WithContext(ctx).Model(&model.Cut{})
	if filter.From != nil {
		q = q.Where("valid_date >= ?", filter.From.UTC().Format(dayLayout))
	}
	if filter.To != nil {
		q = q.Where("valid_date <= ?", filter.To.UTC().Format(dayLayout))
	}
	if filter.Date != nil {
		q = q.Where("valid_date = ?", filter.Date.UTC().Format(dayLayout))
	}
	order := "valid_date DESC, created_at DESC"
	if filter.Ascending {
		order = "valid_date ASC, created_at ASC"
	}

	var cuts []model.Cut
	if err := q.Order(order).Find(&cuts).Error; err != nil {
		return nil, err
	}
	return cuts, nil
}

func (r *cutRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Cut{}).Where("id = ?", id).Updates(fields).Error
}

func (r *cutRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Cut{}).Error
}
