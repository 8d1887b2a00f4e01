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
	"github.com/lromero/cajaclinic/internal/reconcile"
	"github.com/lromero/cajaclinic/internal/repository"
)

var ErrCutNotFound = errors.New("cut not found")

type CutService struct {
	cuts     repository.CutRepo
	expenses repository.ExpenseRepo
}

func NewCutService(cuts repository.CutRepo, expenses repository.ExpenseRepo) *CutService {
	return &CutService{cuts: cuts, expenses: expenses}
}

// SubmitExpenseLine is one expenditure entered alongside a closing. It
// inherits the cut's business date; intake never flags expenses global.
type SubmitExpenseLine struct {
	Category      model.ExpenseCategory
	PaymentMethod model.PaymentMethod
	Description   string
	Amount        decimal.Decimal
}

type SubmitCutInput struct {
	UserID         string
	UserName       string
	ValidDate      time.Time
	CashCounted    decimal.Decimal
	VoucherCounted decimal.Decimal
	Expenses       []SubmitExpenseLine
}

// Submit records a blind closing. The total is computed here so the stored
// invariant totalCounted == cashCounted + voucherCounted holds at creation,
// and the returned record is for confirmation display only — the intake flow
// never reads or shows expected amounts. Every line is validated before the
// first write so a bad line persists nothing, not even the cut.
func (s *CutService) Submit(ctx context.Context, input SubmitCutInput) (*model.Cut, error) {
	if input.CashCounted.Sign() < 0 || input.VoucherCounted.Sign() < 0 {
		return nil, errors.New("counted amounts must be non-negative")
	}
	for _, line := range input.Expenses {
		if !line.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q", line.Category)
		}
		if !line.PaymentMethod.Valid() {
			return nil, fmt.Errorf("unknown payment method %q", line.PaymentMethod)
		}
		if strings.TrimSpace(line.Description) == "" {
			return nil, errors.New("description is required")
		}
		if line.Amount.Sign() <= 0 {
			return nil, errors.New("amount must be positive")
		}
	}

	id, _ := uuid.NewV7()
	now := time.Now().UTC()
	cut := &model.Cut{
		ID:             id.String(),
		UserID:         input.UserID,
		UserName:       input.UserName,
		ValidDate:      input.ValidDate.UTC(),
		CreatedAt:      now,
		CashCounted:    decimal.NewNullDecimal(input.CashCounted),
		VoucherCounted: decimal.NewNullDecimal(input.VoucherCounted),
		TotalCounted:   input.CashCounted.Add(input.VoucherCounted),
		Status:         model.StatusPending,
	}
	if err := s.cuts.Create(ctx, cut); err != nil {
		return nil, err
	}

	lines := make([]model.Expense, 0, len(input.Expenses))
	for _, line := range input.Expenses {
		eid, _ := uuid.NewV7()
		lines = append(lines, model.Expense{
			ID:            eid.String(),
			UserID:        input.UserID,
			UserName:      input.UserName,
			ValidDate:     cut.ValidDate,
			CreatedAt:     now,
			Category:      line.Category,
			PaymentMethod: line.PaymentMethod,
			Description:   line.Description,
			Amount:        line.Amount,
		})
	}
	if err := s.expenses.CreateBatch(ctx, lines); err != nil {
		return nil, fmt.Errorf("cut saved but expense lines failed: %w", err)
	}
	return cut, nil
}

// ListReconciled returns cuts in the optional date window, newest first,
// each row carrying the combined and per-channel discrepancies.
func (s *CutService) ListReconciled(ctx context.Context, from, to *time.Time) ([]ReconciledCut, error) {
	cf := repository.CutFilter{From: from, To: to}
	ef := repository.ExpenseFilter{From: from, To: to}

	cuts, expenses, err := fetchRange(ctx, s.cuts, s.expenses, cf, ef)
	if err != nil {
		return nil, err
	}
	return reconcileRows(cuts, expenses), nil
}

type ReviewInput struct {
	ExpectedCash    decimal.NullDecimal
	ExpectedVoucher decimal.NullDecimal
	Expected        decimal.NullDecimal // legacy rows only
	Status          model.CutStatus
	Notes           *string
}

// Review saves a reviewer's verdict. Only the review fields change; counted
// amounts stay immutable. Two reviewers saving the same cut is last write
// wins — acceptable at single-clinic volumes.
func (s *CutService) Review(ctx context.Context, cutID string, input ReviewInput) error {
	if !input.Status.Valid() {
		return fmt.Errorf("invalid status %q", input.Status)
	}

	cut, err := s.cuts.GetByID(ctx, cutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCutNotFound
		}
		return err
	}

	fields := map[string]interface{}{
		"status":         input.Status,
		"reviewer_notes": input.Notes,
		"reviewed_at":    time.Now().UTC(),
	}
	// The two schema generations take different targets; never mix them.
	if reconcile.Normalize(cut).Variant == reconcile.VariantLegacy {
		if input.ExpectedCash.Valid || input.ExpectedVoucher.Valid {
			return errors.New("legacy cut takes a single expected amount")
		}
		fields["system_expected"] = input.Expected
	} else {
		if input.Expected.Valid {
			return errors.New("split cut takes per-channel expected amounts")
		}
		fields["expected_cash"] = input.ExpectedCash
		fields["expected_voucher"] = input.ExpectedVoucher
	}

	return s.cuts.UpdateFields(ctx, cutID, fields)
}

// Delete hard-deletes a cut. Irreversible; the admin gate sits in the
// middleware.
func (s *CutService) Delete(ctx context.Context, cutID string) error {
	if _, err := s.cuts.GetByID(ctx, cutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCutNotFound
		}
		return err
	}
	return s.cuts.Delete(ctx, cutID)
}
