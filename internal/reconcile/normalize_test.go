package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lromero/cajaclinic/internal/model"
)

func TestNormalizeSplitRow(t *testing.T) {
	cut := splitCut("2026-03-10", "500", "200", strp("450"), nil)
	n := Normalize(&cut)

	assert.Equal(t, VariantSplit, n.Variant)
	assert.True(t, n.CashCounted.Equal(dec("500")))
	assert.True(t, n.VoucherCounted.Equal(dec("200")))
	assert.True(t, n.TotalCounted.Equal(dec("700")))
	assert.True(t, n.ExpectedCash.Valid)
	assert.False(t, n.ExpectedVoucher.Valid)
}

func TestNormalizeLegacyRow(t *testing.T) {
	cut := model.Cut{
		TotalCounted: dec("900"),
		Expected:     decimal.NewNullDecimal(dec("950")),
		Adjustments: model.AdjustmentList{
			{Description: "papelería", Amount: dec("30")},
		},
	}
	n := Normalize(&cut)

	assert.Equal(t, VariantLegacy, n.Variant)
	assert.True(t, n.CashCounted.IsZero())
	assert.True(t, n.VoucherCounted.IsZero())
	assert.True(t, n.AdjustmentsTotal().Equal(dec("30")))
}

func TestNormalizePartialSplitTreatedAsLegacy(t *testing.T) {
	// only one counted channel present: do not guess, fall back to legacy
	cut := model.Cut{
		CashCounted:  decimal.NewNullDecimal(dec("500")),
		TotalCounted: dec("500"),
	}
	assert.Equal(t, VariantLegacy, Normalize(&cut).Variant)
}

func TestEffectiveExpected(t *testing.T) {
	split := splitCut("2026-03-10", "100", "50", strp("90"), strp("60"))
	n := Normalize(&split)

	cash := n.EffectiveExpected(ModeCash)
	require.True(t, cash.Valid)
	assert.True(t, cash.Decimal.Equal(dec("90")))

	global := n.EffectiveExpected(ModeGlobal)
	require.True(t, global.Valid)
	assert.True(t, global.Decimal.Equal(dec("150")))

	// missing side treated as zero in the global sum
	oneSided := splitCut("2026-03-10", "100", "50", nil, strp("60"))
	n = Normalize(&oneSided)
	global = n.EffectiveExpected(ModeGlobal)
	require.True(t, global.Valid)
	assert.True(t, global.Decimal.Equal(dec("60")))
	assert.False(t, n.EffectiveExpected(ModeCash).Valid)

	// both sides missing: unset, not zero
	blank := splitCut("2026-03-10", "100", "50", nil, nil)
	assert.False(t, Normalize(&blank).EffectiveExpected(ModeGlobal).Valid)
}

func TestEffectiveExpectedLegacyIgnoresMode(t *testing.T) {
	cut := model.Cut{
		TotalCounted: dec("700"),
		Expected:     decimal.NewNullDecimal(dec("700")),
	}
	n := Normalize(&cut)
	for _, mode := range []ViewMode{ModeCash, ModeVoucher, ModeGlobal} {
		exp := n.EffectiveExpected(mode)
		require.True(t, exp.Valid, "mode %s", mode)
		assert.True(t, exp.Decimal.Equal(dec("700")))
	}
}
