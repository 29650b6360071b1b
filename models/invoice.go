package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InvoiceStatusPending       = "pending"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusOverdue       = "overdue"
)

// Invoice is a charge assigned to a single tenant, trackable through
// partial payment to settlement. Invariants: balance_due equals
// total_amount - amount_paid and never goes negative; status is derived
// from the two amounts plus the due date.
type Invoice struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
	TenantID     uint            `gorm:"not null;index" json:"tenant_id"`
	Tenant       Tenant          `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	BillID       *uint           `gorm:"index" json:"bill_id"` // special invoices may not reference a bill
	Bill         *BillItem       `gorm:"foreignKey:BillID" json:"bill,omitempty"`
	InvoiceMonth time.Time       `gorm:"not null" json:"invoice_month"`
	DueDate      *time.Time      `json:"due_date"`
	Status       string          `gorm:"size:20;default:'pending'" json:"status"` // pending, partially_paid, paid, overdue
	TotalAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"amount_paid"`
	BalanceDue   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"balance_due"`
	Items        []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName overrides the table name
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a line item on a resident invoice.
type InvoiceItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	InvoiceID uint            `gorm:"not null;index" json:"invoice_id"`
	ItemName  string          `gorm:"size:255;not null" json:"item_name"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Quantity  int             `gorm:"default:1" json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
}

// TableName overrides the table name
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Recompute re-derives balance_due and status from the paid and total
// amounts. Call after every mutation of AmountPaid.
func (inv *Invoice) Recompute(now time.Time) {
	inv.BalanceDue = inv.TotalAmount.Sub(inv.AmountPaid)
	if inv.BalanceDue.IsNegative() {
		inv.BalanceDue = decimal.Zero
	}

	switch {
	case inv.BalanceDue.IsZero():
		inv.Status = InvoiceStatusPaid
	case inv.AmountPaid.IsPositive():
		inv.Status = InvoiceStatusPartiallyPaid
	default:
		inv.Status = InvoiceStatusPending
	}

	if inv.Status != InvoiceStatusPaid && inv.pastDue(now) {
		inv.Status = InvoiceStatusOverdue
	}
}

// ApplyPayment credits amount against the invoice and re-derives balance
// and status. Rejects non-positive amounts and overpayment before touching
// the invoice.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if inv.Status == InvoiceStatusPaid {
		return ErrAlreadyPaid
	}
	if inv.AmountPaid.Add(amount).GreaterThan(inv.TotalAmount) {
		return fmt.Errorf("%w: payment of %s exceeds balance due %s", ErrValidation, amount, inv.BalanceDue)
	}

	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.Recompute(now)
	return nil
}

func (inv *Invoice) pastDue(now time.Time) bool {
	return inv.DueDate != nil && now.After(*inv.DueDate) && inv.BalanceDue.IsPositive()
}
