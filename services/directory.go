package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

// TenantDirectory is the billing core's read-only view of tenant records.
// Allocation strategies pull recipients and per-tenant weighting data
// (floor area, metered consumption) through this interface.
type TenantDirectory interface {
	ActiveTenants() ([]models.Tenant, error)
	TenantByID(id uint) (*models.Tenant, error)
	ConsumptionFor(tenantID uint, periodStart, periodEnd time.Time) (decimal.Decimal, error)
}

type gormTenantDirectory struct {
	db *gorm.DB
}

// NewTenantDirectory returns a TenantDirectory backed by the tenants and
// meter_readings tables.
func NewTenantDirectory(db *gorm.DB) TenantDirectory {
	return &gormTenantDirectory{db: db}
}

// ActiveTenants lists active tenants ordered by ID. The allocation
// remainder policy depends on this ordering.
func (d *gormTenantDirectory) ActiveTenants() ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := d.db.Where("is_active = ?", true).Order("id ASC").Find(&tenants).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return tenants, nil
}

func (d *gormTenantDirectory) TenantByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := d.db.First(&tenant, id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &tenant, nil
}

// ConsumptionFor returns the most recent meter reading overlapping the
// billing period.
func (d *gormTenantDirectory) ConsumptionFor(tenantID uint, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	var reading models.MeterReading
	err := d.db.
		Where("tenant_id = ? AND period_start <= ? AND period_end >= ?", tenantID, periodEnd, periodStart).
		Order("period_end DESC").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, fmt.Errorf("%w: no meter reading for tenant %d in billing period", models.ErrValidation, tenantID)
	}
	if err != nil {
		return decimal.Zero, wrapDBError(err)
	}
	return reading.Consumption, nil
}

// wrapDBError translates storage failures into the domain taxonomy: a
// missing row is NotFound, anything else is a retryable I/O failure.
func wrapDBError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%w: %v", models.ErrTransient, err)
}
