package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CutStatus is the review state of a cash closing. Transitions happen only
// through an explicit reviewer save, never automatically.
type CutStatus string

const (
	StatusPending  CutStatus = "pending"
	StatusReviewed CutStatus = "reviewed"
	StatusDisputed CutStatus = "disputed"
)

func (s CutStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusDisputed:
		return true
	}
	return false
}

// Adjustment is one ad hoc deduction line from the legacy submission form.
// Newer submissions record Expense rows instead; these stay readable so old
// cuts keep reconciling.
type Adjustment struct {
	Description string          `json:"desc"`
	Amount      decimal.Decimal `json:"amount"`
}

// UnmarshalJSON tolerates junk amounts in legacy rows (strings, nulls,
// missing keys) by coercing them to zero instead of failing the read.
func (a *Adjustment) UnmarshalJSON(b []byte) error {
	var raw struct {
		Description string          `json:"desc"`
		Amount      json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	a.Description = raw.Description
	a.Amount = decimal.Zero
	if len(raw.Amount) > 0 {
		var s string
		if err := json.Unmarshal(raw.Amount, &s); err != nil {
			// not a string, try a plain number
			s = string(raw.Amount)
		}
		if d, err := decimal.NewFromString(s); err == nil {
			a.Amount = d
		}
	}
	return nil
}

// AdjustmentList is stored as a JSON column on cuts.
type AdjustmentList []Adjustment

func (l AdjustmentList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *AdjustmentList) Scan(v interface{}) error {
	*l = nil
	if v == nil {
		return nil
	}
	var raw []byte
	switch data := v.(type) {
	case []byte:
		raw = data
	case string:
		raw = []byte(data)
	default:
		return fmt.Errorf("adjustments: unsupported column type %T", v)
	}
	if len(raw) == 0 {
		return nil
	}
	// Some legacy rows carry non-list JSON here; treat that as no adjustments
	// rather than poisoning the whole read.
	var list []Adjustment
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	*l = list
	return nil
}

// Cut is one submitted cash-closing record.
//
// Two schema generations coexist in the table. Split rows carry
// CashCounted/VoucherCounted and reconcile against ExpectedCash and
// ExpectedVoucher. Legacy rows carry only TotalCounted plus Adjustments and
// reconcile against the single Expected figure. The reconcile package
// normalizes both on read; nothing downstream touches the raw union.
type Cut struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index" json:"user_id"`
	UserName  string    `gorm:"type:varchar(100)" json:"user_name"`
	ValidDate time.Time `gorm:"type:date;index" json:"valid_date"`
	CreatedAt time.Time `json:"created_at"`

	// Counted amounts are immutable after submission. The submitter enters
	// them blind: the intake flow never reads the expected fields.
	CashCounted    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"cash_counted"`
	VoucherCounted decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"voucher_counted"`
	TotalCounted   decimal.Decimal     `gorm:"type:decimal(12,2)" json:"total_counted"`

	// Reviewer-entered targets. Null means not yet reconciled for that
	// channel, which is distinct from an expected amount of zero.
	ExpectedCash    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"expected_cash"`
	ExpectedVoucher decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"expected_voucher"`
	Expected        decimal.NullDecimal `gorm:"column:system_expected;type:decimal(12,2)" json:"system_expected"`

	Status        CutStatus      `gorm:"type:varchar(16);default:pending" json:"status"`
	ReviewerNotes *string        `gorm:"type:text" json:"reviewer_notes"`
	ReviewedAt    *time.Time     `json:"reviewed_at"`
	Adjustments   AdjustmentList `gorm:"type:json" json:"adjustments"`
}

func (Cut) TableName() string {
	return "cuts"
}
