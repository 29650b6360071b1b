package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BillingCycleMonthly = "monthly"
	BillingCycleOneTime = "one_time"

	InvoiceTypeAutomatic = "automatic"
	InvoiceTypeManual    = "manual"
)

// BillItem is a reusable billable-item template owned by estate admins,
// e.g. "Water Bill", 15000.00 NGN per month due on the 10th.
type BillItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	BillingCycle  string          `gorm:"size:20;not null" json:"billing_cycle"` // monthly, one_time
	DueDay        *int            `json:"due_day"`                               // day of month, monthly bills only
	InvoiceType   string          `gorm:"size:20;default:'manual'" json:"invoice_type"` // automatic, manual
	GenerationDay *int            `json:"generation_day"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
}

// TableName overrides the table name
func (BillItem) TableName() string {
	return "billable_items"
}

// DueDateFor resolves the template's due date within a billing month.
// Monthly bills fall due on their configured day of that month; one-time
// bills fall due at the end of the billing period.
func (b *BillItem) DueDateFor(invoiceMonth, periodEnd time.Time) time.Time {
	if b.BillingCycle == BillingCycleMonthly && b.DueDay != nil {
		return time.Date(invoiceMonth.Year(), invoiceMonth.Month(), *b.DueDay, 0, 0, 0, 0, time.UTC)
	}
	return periodEnd
}
