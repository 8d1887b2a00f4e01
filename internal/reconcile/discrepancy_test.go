package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lromero/cajaclinic/internal/model"
)

func splitCut(dateStr, cash, voucher string, expectedCash, expectedVoucher *string) model.Cut {
	c := model.Cut{
		ID:             "c-1",
		ValidDate:      day(dateStr),
		CashCounted:    decimal.NewNullDecimal(dec(cash)),
		VoucherCounted: decimal.NewNullDecimal(dec(voucher)),
		TotalCounted:   dec(cash).Add(dec(voucher)),
		Status:         model.StatusPending,
	}
	if expectedCash != nil {
		c.ExpectedCash = decimal.NewNullDecimal(dec(*expectedCash))
	}
	if expectedVoucher != nil {
		c.ExpectedVoucher = decimal.NewNullDecimal(dec(*expectedVoucher))
	}
	return c
}

func strp(s string) *string { return &s }

func TestCalculateSplitCutNoExpenses(t *testing.T) {
	n := Normalize(ptr(splitCut("2026-03-10", "500", "200", strp("450"), strp("200"))))

	cash := Calculate(n, nil, ModeCash)
	require.True(t, cash.Difference.Valid)
	assert.True(t, cash.Difference.Decimal.Equal(dec("50")))
	assert.Equal(t, StateOverage, cash.State)

	voucher := Calculate(n, nil, ModeVoucher)
	require.True(t, voucher.Difference.Valid)
	assert.True(t, voucher.Difference.Decimal.IsZero())
	assert.Equal(t, StateBalanced, voucher.State)

	global := Calculate(n, nil, ModeGlobal)
	require.True(t, global.Difference.Valid)
	assert.True(t, global.Difference.Decimal.Equal(dec("50")))
	assert.Equal(t, StateOverage, global.State)
}

func ptr(c model.Cut) *model.Cut { return &c }

func TestCalculateCashExpensesAddBack(t *testing.T) {
	n := Normalize(ptr(splitCut("2026-03-10", "500", "200", strp("450"), strp("200"))))
	expenses := []model.Expense{
		expense("2026-03-10", "50", model.PaymentCash, false),
	}

	cash := Calculate(n, expenses, ModeCash)
	require.True(t, cash.Difference.Valid)
	assert.True(t, cash.Difference.Decimal.Equal(dec("100")), "500+50-450")
	assert.Equal(t, StateOverage, cash.State)

	// voucher channel unaffected by cash expenses
	voucher := Calculate(n, expenses, ModeVoucher)
	assert.Equal(t, StateBalanced, voucher.State)
}

func TestCalculateNonCashExpensesNeverAdjust(t *testing.T) {
	n := Normalize(ptr(splitCut("2026-03-10", "500", "200", strp("500"), strp("200"))))
	expenses := []model.Expense{
		expense("2026-03-10", "50", model.PaymentTransfer, false),
		expense("2026-03-10", "30", model.PaymentCard, false),
	}

	assert.Equal(t, StateBalanced, Calculate(n, expenses, ModeCash).State)
	assert.Equal(t, StateBalanced, Calculate(n, expenses, ModeVoucher).State)
	assert.Equal(t, StateBalanced, Calculate(n, expenses, ModeGlobal).State)
}

func TestCalculateGlobalExpensesExcludedDaily(t *testing.T) {
	n := Normalize(ptr(splitCut("2026-03-10", "500", "0", strp("500"), nil)))
	expenses := []model.Expense{
		expense("2026-03-10", "200", model.PaymentCash, true),
	}
	assert.Equal(t, StateBalanced, Calculate(n, expenses, ModeCash).State)
}

func TestCalculateUnsetWhenExpectedMissing(t *testing.T) {
	n := Normalize(ptr(splitCut("2026-03-10", "500", "200", nil, nil)))

	for _, mode := range []ViewMode{ModeCash, ModeVoucher, ModeGlobal} {
		res := Calculate(n, nil, mode)
		assert.Equal(t, StateUnset, res.State, "mode %s", mode)
		assert.False(t, res.Difference.Valid)
		assert.Equal(t, "Sin calcular", res.Label)
	}
}

func TestCalculateGlobalWithOneSideUnset(t *testing.T) {
	// expectedCash missing: cash mode unset, but global still computes with
	// the missing side as zero while its counted side participates
	n := Normalize(ptr(splitCut("2026-03-10", "40", "300", nil, strp("300"))))

	assert.Equal(t, StateUnset, Calculate(n, nil, ModeCash).State)
	assert.Equal(t, StateBalanced, Calculate(n, nil, ModeVoucher).State)

	global := Calculate(n, nil, ModeGlobal)
	require.True(t, global.Difference.Valid)
	// accountedFor = 40 + 300, expected = 0 + 300
	assert.True(t, global.Difference.Decimal.Equal(dec("40")))
	assert.Equal(t, StateOverage, global.State)
}

func TestCalculateSignConvention(t *testing.T) {
	tests := []struct {
		name     string
		counted  string
		expected string
		state    State
	}{
		{"shortfall is negative", "400", "450", StateShortfall},
		{"overage is positive", "500", "450", StateOverage},
		{"within tolerance balances", "450.005", "450", StateBalanced},
		{"exact match balances", "450", "450", StateBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(ptr(splitCut("2026-03-10", tt.counted, "0", strp(tt.expected), nil)))
			res := Calculate(n, nil, ModeCash)
			require.True(t, res.Difference.Valid)
			assert.Equal(t, tt.state, res.State)
			switch tt.state {
			case StateShortfall:
				assert.Negative(t, res.Difference.Decimal.Sign())
			case StateOverage:
				assert.Positive(t, res.Difference.Decimal.Sign())
			case StateBalanced:
				assert.True(t, res.Difference.Decimal.Abs().LessThan(dec("0.01")))
			}
		})
	}
}

func TestCalculateLegacyCut(t *testing.T) {
	legacy := model.Cut{
		ID:           "c-legacy",
		ValidDate:    day("2023-01-01"),
		TotalCounted: dec("1200"),
		Expected:     decimal.NewNullDecimal(dec("1300")),
		Adjustments: model.AdjustmentList{
			{Description: "propina repartidor", Amount: dec("60")},
			{Description: "garrafones", Amount: dec("40")},
		},
	}
	n := Normalize(&legacy)
	require.Equal(t, VariantLegacy, n.Variant)

	global := Calculate(n, nil, ModeGlobal)
	require.True(t, global.Difference.Valid)
	// 1200 + 100 - 1300
	assert.True(t, global.Difference.Decimal.IsZero())
	assert.Equal(t, StateBalanced, global.State)

	// the channel split does not exist on legacy rows
	assert.Equal(t, StateUnset, Calculate(n, nil, ModeCash).State)
	assert.Equal(t, StateUnset, Calculate(n, nil, ModeVoucher).State)
}

func TestCalculateLegacyCutWithoutExpected(t *testing.T) {
	n := Normalize(&model.Cut{TotalCounted: dec("800")})
	assert.Equal(t, StateUnset, Calculate(n, nil, ModeGlobal).State)
}

func TestCalculateIsPure(t *testing.T) {
	n := Normalize(ptr(splitCut("2026-03-10", "500", "200", strp("450"), strp("180"))))
	expenses := []model.Expense{
		expense("2026-03-10", "25", model.PaymentCash, false),
	}
	first := Calculate(n, expenses, ModeGlobal)
	second := Calculate(n, expenses, ModeGlobal)
	assert.Equal(t, first.State, second.State)
	assert.True(t, first.Difference.Decimal.Equal(second.Difference.Decimal))
}

func TestReportCarriesPerChannelTriples(t *testing.T) {
	n := Normalize(ptr(splitCut("2026-03-10", "500", "200", strp("450"), strp("200"))))
	rep := Report(n, nil)

	assert.Equal(t, StateOverage, rep.Global.State)
	assert.Equal(t, StateOverage, rep.Cash.State)
	assert.Equal(t, StateBalanced, rep.Voucher.State)
	assert.True(t, rep.Global.Difference.Decimal.Equal(dec("50")))
}
