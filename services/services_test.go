package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/config"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTenants(t *testing.T, db *gorm.DB, n int) []models.Tenant {
	t.Helper()
	unitTypes := []string{models.UnitTypeStudio, models.UnitTypeTwoBedroom, models.UnitTypeDuplex}
	tenants := make([]models.Tenant, 0, n)
	for i := 0; i < n; i++ {
		tenant := models.Tenant{
			Name:          "Tenant " + string(rune('A'+i)),
			Email:         "tenant" + string(rune('a'+i)) + "@estate.test",
			PasswordHash:  "x",
			Unit:          "10" + string(rune('1'+i)),
			Block:         "B",
			UnitType:      unitTypes[i%len(unitTypes)],
			FloorAreaSqm:  decimal.NewFromInt(int64(50 + 25*i)),
			WalletBalance: decimal.Zero,
			IsActive:      true,
		}
		if err := db.Create(&tenant).Error; err != nil {
			t.Fatalf("seed tenant: %v", err)
		}
		tenants = append(tenants, tenant)
	}
	return tenants
}

func seedBill(t *testing.T, db *gorm.DB, name string, amount int64, dueDay int) models.BillItem {
	t.Helper()
	day := dueDay
	bill := models.BillItem{
		Name:         name,
		Amount:       decimal.NewFromInt(amount),
		BillingCycle: models.BillingCycleMonthly,
		DueDay:       &day,
		InvoiceType:  models.InvoiceTypeManual,
		IsActive:     true,
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}
	return bill
}

// stubDirectory serves canned tenants and consumption figures so
// allocation tests do not depend on the database.
type stubDirectory struct {
	tenants     []models.Tenant
	consumption map[uint]decimal.Decimal
}

func (s *stubDirectory) ActiveTenants() ([]models.Tenant, error) {
	return s.tenants, nil
}

func (s *stubDirectory) TenantByID(id uint) (*models.Tenant, error) {
	for i := range s.tenants {
		if s.tenants[i].ID == id {
			return &s.tenants[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *stubDirectory) ConsumptionFor(tenantID uint, _, _ time.Time) (decimal.Decimal, error) {
	c, ok := s.consumption[tenantID]
	if !ok {
		return decimal.Zero, models.ErrValidation
	}
	return c, nil
}
