package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lromero/cajaclinic/internal/model"
)

// PaymentBucket narrows day expenses to one reconciliation channel.
type PaymentBucket int

const (
	BucketAll PaymentBucket = iota
	BucketCash
	BucketVoucher
)

// SumAdjustments totals a legacy adjustments list. Nil or empty lists total
// zero; unparseable amounts were already coerced to zero on decode.
func SumAdjustments(list model.AdjustmentList) decimal.Decimal {
	sum := decimal.Zero
	for _, adj := range list {
		sum = sum.Add(adj.Amount)
	}
	return sum
}

// DateKey is the canonical day key used to associate expenses with cuts.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayExpenses selects the expenses that count against a single day's drawer:
// same valid date, not global, optionally restricted to one payment bucket.
// Global expenses never participate here regardless of bucket.
func DayExpenses(expenses []model.Expense, day time.Time, bucket PaymentBucket) []model.Expense {
	key := DateKey(day)
	var out []model.Expense
	for _, e := range expenses {
		if e.IsGlobal || DateKey(e.ValidDate) != key {
			continue
		}
		switch bucket {
		case BucketCash:
			if !e.PaymentMethod.IsCashBucket() {
				continue
			}
		case BucketVoucher:
			if e.PaymentMethod.IsCashBucket() {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// SumAmounts totals the amounts of a set of expenses.
func SumAmounts(expenses []model.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// IndexByDate builds the per-query date index that stands in for the missing
// expense→cut foreign key. Recomputed per aggregation call, never stored.
func IndexByDate(expenses []model.Expense) map[string][]model.Expense {
	idx := make(map[string][]model.Expense)
	for _, e := range expenses {
		key := DateKey(e.ValidDate)
		idx[key] = append(idx[key], e)
	}
	return idx
}

// BreakdownRow is one group in a reporting breakdown.
type BreakdownRow struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
}

// BreakdownByCategory groups expenses by category and sums per group,
// descending by total. Reporting only; the group totals sum to the input
// total.
func BreakdownByCategory(expenses []model.Expense) []BreakdownRow {
	return breakdown(expenses, func(e model.Expense) string { return string(e.Category) })
}

// BreakdownByMethod groups expenses by payment method, descending by total.
func BreakdownByMethod(expenses []model.Expense) []BreakdownRow {
	return breakdown(expenses, func(e model.Expense) string { return string(e.PaymentMethod) })
}

func breakdown(expenses []model.Expense, keyOf func(model.Expense) string) []BreakdownRow {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		key := keyOf(e)
		totals[key] = totals[key].Add(e.Amount)
	}
	rows := make([]BreakdownRow, 0, len(totals))
	for key, total := range totals {
		rows = append(rows, BreakdownRow{Key: key, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// MonthlyNetCash computes the aggregate cash balance for a period:
//
//	sum(cashCounted over cuts) − sum(expenses paid in cash OR flagged global)
//
// This is the one computation where global expenses participate: they are
// real cash leaving the till even though no single day's closing owns them.
// Legacy cuts contribute nothing on the income side (they have no cash
// split). Bounds are inclusive.
func MonthlyNetCash(cuts []NormalizedCut, expenses []model.Expense, period Period) decimal.Decimal {
	net := decimal.Zero
	for _, c := range cuts {
		if !period.Contains(c.ValidDate) {
			continue
		}
		net = net.Add(c.CashCounted)
	}
	for _, e := range expenses {
		if !period.Contains(e.ValidDate) {
			continue
		}
		if e.PaymentMethod.IsCashBucket() || e.IsGlobal {
			net = net.Sub(e.Amount)
		}
	}
	return net
}
