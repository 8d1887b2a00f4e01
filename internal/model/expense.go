package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the fixed category set for expenditure entries.
type ExpenseCategory string

const (
	CategoryRent           ExpenseCategory = "rent"
	CategoryDentalMaterial ExpenseCategory = "dental-material"
	CategorySupplies       ExpenseCategory = "supplies"
	CategoryPayroll        ExpenseCategory = "payroll"
	CategoryCommissions    ExpenseCategory = "commissions"
	CategoryUtilities      ExpenseCategory = "utilities"
	CategoryMaintenance    ExpenseCategory = "maintenance"
	CategoryOther          ExpenseCategory = "other"
)

// Categories lists every valid category, in display order.
var Categories = []ExpenseCategory{
	CategoryRent, CategoryDentalMaterial, CategorySupplies, CategoryPayroll,
	CategoryCommissions, CategoryUtilities, CategoryMaintenance, CategoryOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCard:
		return true
	}
	return false
}

// IsCashBucket reports whether the method reconciles against the cash drawer.
// Transfer and card are lumped into a single non-cash bucket that settles
// against the voucher expected figure. Splitting that into three channels is
// a product decision, so the rule lives here and nowhere else.
func (m PaymentMethod) IsCashBucket() bool {
	return m == PaymentCash
}

// Expense is a single expenditure entry. It associates with a Cut only by
// sharing its ValidDate; the store enforces no referential integrity.
type Expense struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index" json:"user_id"`
	UserName  string    `gorm:"type:varchar(100)" json:"user_name"`
	ValidDate time.Time `gorm:"type:date;index" json:"valid_date"`
	CreatedAt time.Time `json:"created_at"`

	Category      ExpenseCategory `gorm:"type:varchar(32)" json:"category"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(16)" json:"payment_method"`
	Description   string          `gorm:"type:text" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`

	// IsGlobal marks shared overhead not attributable to a single day's
	// drawer: excluded from daily reconciliation, still deducted from the
	// monthly cash balance.
	IsGlobal bool `json:"is_global"`
}

func (Expense) TableName() string {
	return "expenses"
}
