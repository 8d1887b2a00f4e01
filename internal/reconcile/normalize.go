// Package reconcile is the reconciliation engine: it turns counted money,
// recorded expenses and reviewer-entered targets into signed, classified
// discrepancies, per channel and per period. Everything here is pure; the
// store and the HTTP layer live elsewhere.
package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lromero/cajaclinic/internal/model"
)

// SchemaVariant tags which generation of the cut schema a row came from.
type SchemaVariant string

const (
	// VariantSplit rows carry separate cash and voucher counts and reconcile
	// per channel.
	VariantSplit SchemaVariant = "split"
	// VariantLegacy rows predate the split: a single counted total plus a
	// free-form adjustments list, reconciled against one expected figure.
	VariantLegacy SchemaVariant = "legacy"
)

// NormalizedCut is the one in-memory shape the calculator operates on. Both
// stored schemas map into it on read; the variant tag keeps the two amount
// models from being silently merged.
type NormalizedCut struct {
	Variant   SchemaVariant
	ID        string
	UserID    string
	UserName  string
	ValidDate time.Time
	CreatedAt time.Time

	CashCounted    decimal.Decimal // zero for legacy rows
	VoucherCounted decimal.Decimal // zero for legacy rows
	TotalCounted   decimal.Decimal

	ExpectedCash    decimal.NullDecimal
	ExpectedVoucher decimal.NullDecimal
	Expected        decimal.NullDecimal // legacy single target

	Adjustments model.AdjustmentList
	Status      model.CutStatus
}

// Normalize maps a stored cut into the canonical shape. A row counts as
// split only when both counted channels are present; anything else is
// treated as legacy, including partial rows left by interrupted migrations.
func Normalize(c *model.Cut) NormalizedCut {
	n := NormalizedCut{
		ID:           c.ID,
		UserID:       c.UserID,
		UserName:     c.UserName,
		ValidDate:    c.ValidDate,
		CreatedAt:    c.CreatedAt,
		TotalCounted: c.TotalCounted,
		Expected:     c.Expected,
		Adjustments:  c.Adjustments,
		Status:       c.Status,
	}
	if c.CashCounted.Valid && c.VoucherCounted.Valid {
		n.Variant = VariantSplit
		n.CashCounted = c.CashCounted.Decimal
		n.VoucherCounted = c.VoucherCounted.Decimal
		n.ExpectedCash = c.ExpectedCash
		n.ExpectedVoucher = c.ExpectedVoucher
	} else {
		n.Variant = VariantLegacy
	}
	return n
}

// NormalizeAll maps a result set, preserving order.
func NormalizeAll(cuts []model.Cut) []NormalizedCut {
	out := make([]NormalizedCut, 0, len(cuts))
	for i := range cuts {
		out = append(out, Normalize(&cuts[i]))
	}
	return out
}

// AdjustmentsTotal is the effective legacy-deductions total for the cut.
// Always zero-safe; split rows simply have no adjustments.
func (n NormalizedCut) AdjustmentsTotal() decimal.Decimal {
	return SumAdjustments(n.Adjustments)
}

// EffectiveExpected returns the reviewer target the given view mode
// reconciles against, or invalid when that target has not been entered yet.
// Legacy rows have a single target regardless of mode.
func (n NormalizedCut) EffectiveExpected(mode ViewMode) decimal.NullDecimal {
	if n.Variant == VariantLegacy {
		return n.Expected
	}
	switch mode {
	case ModeCash:
		return n.ExpectedCash
	case ModeVoucher:
		return n.ExpectedVoucher
	case ModeGlobal:
		if !n.ExpectedCash.Valid && !n.ExpectedVoucher.Valid {
			return decimal.NullDecimal{}
		}
		sum := decimal.Zero
		if n.ExpectedCash.Valid {
			sum = sum.Add(n.ExpectedCash.Decimal)
		}
		if n.ExpectedVoucher.Valid {
			sum = sum.Add(n.ExpectedVoucher.Decimal)
		}
		return decimal.NullDecimal{Decimal: sum, Valid: true}
	}
	return decimal.NullDecimal{}
}
