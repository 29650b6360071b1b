package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CalcMethodEqual         = "EQUAL"
	CalcMethodByUnitType    = "BY_UNIT_TYPE"
	CalcMethodByConsumption = "BY_CONSUMPTION"
	CalcMethodBySquareMeter = "BY_SQUARE_METER"
	CalcMethodCustomFormula = "CUSTOM_FORMULA"
)

// EstateInvoice is a charge raised against the estate as a whole, typically
// a supplier bill, recorded alongside the per-tenant invoices it was
// allocated into.
type EstateInvoice struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
	BillID            *uint           `gorm:"index" json:"bill_id"` // one-off invoices may not reference a bill
	Bill              *BillItem       `gorm:"foreignKey:BillID" json:"bill,omitempty"`
	BillName          string          `gorm:"size:255" json:"bill_name"`
	SupplierName      string          `gorm:"size:255;not null" json:"supplier_name"`
	CalculationMethod string          `gorm:"size:30;not null" json:"calculation_method"` // EQUAL, BY_UNIT_TYPE, BY_CONSUMPTION, BY_SQUARE_METER, CUSTOM_FORMULA
	TotalAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	PeriodStart       time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd         time.Time       `gorm:"not null" json:"period_end"`
	Notes             string          `gorm:"type:text" json:"notes"`
	CreatedBy         uint            `json:"created_by"`
}

// TableName overrides the table name
func (EstateInvoice) TableName() string {
	return "estate_invoices"
}

// ValidCalculationMethod reports whether m names a known allocation
// strategy.
func ValidCalculationMethod(m string) bool {
	switch m {
	case CalcMethodEqual, CalcMethodByUnitType, CalcMethodByConsumption,
		CalcMethodBySquareMeter, CalcMethodCustomFormula:
		return true
	}
	return false
}

// ParseCalculationMethod validates m, returning it unchanged on success.
func ParseCalculationMethod(m string) (string, error) {
	if !ValidCalculationMethod(m) {
		return "", fmt.Errorf("%w: unknown calculation method %q", ErrValidation, m)
	}
	return m, nil
}
