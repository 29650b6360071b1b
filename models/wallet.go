package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	WalletDirectionIn  = "in"
	WalletDirectionOut = "out"

	WalletTxTopup          = "topup"
	WalletTxDeduction      = "deduction"
	WalletTxInvoicePayment = "invoice_payment"
	WalletTxReversal       = "reversal"
)

// WalletTransaction is the audit row written for every wallet mutation.
// The wallet balance on the tenant is authoritative; these rows exist so a
// balance can always be explained.
type WalletTransaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
	TenantID  uint            `gorm:"not null;index" json:"tenant_id"`
	Tenant    Tenant          `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Direction string          `gorm:"size:5;not null" json:"direction"` // in, out
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Kind      string          `gorm:"size:30;not null" json:"kind"` // topup, deduction, invoice_payment, reversal
	Reference string          `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	InvoiceID *uint           `gorm:"index" json:"invoice_id"`
	Note      string          `gorm:"type:text" json:"note"`
}

// TableName overrides the table name
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
