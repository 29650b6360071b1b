package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	UnitTypeStudio       = "studio"
	UnitTypeOneBedroom   = "one_bedroom"
	UnitTypeTwoBedroom   = "two_bedroom"
	UnitTypeThreeBedroom = "three_bedroom"
	UnitTypeDuplex       = "duplex"
)

// Tenant is a resident of the estate. The billing pipeline treats tenants
// as invoice recipients; unit_type, floor_area_sqm and meter readings feed
// the estate-invoice allocation strategies.
type Tenant struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Email         string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash  string          `gorm:"size:255;not null" json:"-"`
	Unit          string          `gorm:"size:50;not null" json:"unit"`
	Block         string          `gorm:"size:50" json:"block"`
	UnitType      string          `gorm:"size:30;default:'studio'" json:"unit_type"`
	FloorAreaSqm  decimal.Decimal `gorm:"type:decimal(10,2)" json:"floor_area_sqm"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"wallet_balance"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
}

// TableName overrides the table name
func (Tenant) TableName() string {
	return "tenants"
}

// MeterReading records metered consumption for a tenant over a billing
// period. BY_CONSUMPTION allocation weights tenants by these readings.
type MeterReading struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	TenantID    uint            `gorm:"not null;index" json:"tenant_id"`
	Tenant      Tenant          `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	PeriodStart time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time       `gorm:"not null" json:"period_end"`
	Consumption decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"consumption"`
}

// TableName overrides the table name
func (MeterReading) TableName() string {
	return "meter_readings"
}
