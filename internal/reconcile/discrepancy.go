package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/lromero/cajaclinic/internal/model"
)

// ViewMode is the channel scope a discrepancy is computed under. It is always
// passed explicitly; there is no ambient mode state.
type ViewMode string

const (
	ModeCash    ViewMode = "cash"
	ModeVoucher ViewMode = "voucher"
	ModeGlobal  ViewMode = "global"
)

func (m ViewMode) Valid() bool {
	switch m {
	case ModeCash, ModeVoucher, ModeGlobal:
		return true
	}
	return false
}

// State classifies a discrepancy. Unset means the reviewer has not entered a
// target yet; it is deliberately distinct from a real zero expected amount so
// an unreviewed cut shows no traffic light.
type State string

const (
	StateUnset     State = "unset"
	StateBalanced  State = "balanced"
	StateShortfall State = "shortfall"
	StateOverage   State = "overage"
)

// Label is the user-facing badge text.
func (s State) Label() string {
	switch s {
	case StateBalanced:
		return "Cuadra"
	case StateShortfall:
		return "Faltante"
	case StateOverage:
		return "Sobrante"
	}
	return "Sin calcular"
}

// tolerance under which a difference counts as balanced.
var tolerance = decimal.RequireFromString("0.01")

// Result is the outcome of reconciling one cut under one view mode.
// Difference is accounted-for minus expected: negative means money missing.
type Result struct {
	Difference decimal.NullDecimal `json:"difference"`
	State      State               `json:"state"`
	Label      string              `json:"label"`
}

func unset() Result {
	return Result{State: StateUnset, Label: StateUnset.Label()}
}

func resolved(diff decimal.Decimal) Result {
	state := classify(diff)
	return Result{
		Difference: decimal.NullDecimal{Decimal: diff, Valid: true},
		State:      state,
		Label:      state.Label(),
	}
}

func classify(diff decimal.Decimal) State {
	switch {
	case diff.Abs().LessThan(tolerance):
		return StateBalanced
	case diff.Sign() < 0:
		return StateShortfall
	default:
		return StateOverage
	}
}

// Calculate reconciles one cut against its expected amounts under the given
// view mode. expenses may be any superset of the day's entries: the function
// selects same-date, non-global lines itself, so callers can hand it a whole
// period's worth.
//
// Cash-channel expenses are added back to the counted cash (money that left
// the drawer for a documented reason still counts as accounted for); non-cash
// expenses never adjust the voucher channel. Legacy cuts reconcile their
// single counted total plus adjustments against the single expected figure,
// and only in global mode — the channel split does not exist for them, so
// cash and voucher modes report unset.
//
// Never fails: missing targets yield StateUnset rather than a spurious
// zero-expected computation.
func Calculate(cut NormalizedCut, expenses []model.Expense, mode ViewMode) Result {
	if cut.Variant == VariantLegacy {
		if mode != ModeGlobal {
			return unset()
		}
		expected := cut.Expected
		if !expected.Valid {
			return unset()
		}
		accounted := cut.TotalCounted.Add(cut.AdjustmentsTotal())
		return resolved(accounted.Sub(expected.Decimal))
	}

	cashExpenses := SumAmounts(DayExpenses(expenses, cut.ValidDate, BucketCash))

	expected := cut.EffectiveExpected(mode)
	if !expected.Valid {
		return unset()
	}

	var accounted decimal.Decimal
	switch mode {
	case ModeCash:
		accounted = cut.CashCounted.Add(cashExpenses)
	case ModeVoucher:
		accounted = cut.VoucherCounted
	case ModeGlobal:
		accounted = cut.CashCounted.Add(cashExpenses).Add(cut.VoucherCounted)
	default:
		return unset()
	}
	return resolved(accounted.Sub(expected.Decimal))
}

// RowReport carries the combined result plus the independent per-channel
// results so a listing can render cash and voucher sub-lines under the
// combined total.
type RowReport struct {
	Global  Result `json:"global"`
	Cash    Result `json:"cash"`
	Voucher Result `json:"voucher"`
}

// Report computes all three view modes for one cut.
func Report(cut NormalizedCut, expenses []model.Expense) RowReport {
	return RowReport{
		Global:  Calculate(cut, expenses, ModeGlobal),
		Cash:    Calculate(cut, expenses, ModeCash),
		Voucher: Calculate(cut, expenses, ModeVoucher),
	}
}
