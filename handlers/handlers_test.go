package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

// testRouter returns a router whose auth context is preset, standing in
// for JwtAuthMiddleware.
func testRouter(userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	})
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func createTenant(t *testing.T, db *gorm.DB, name, email, unit string, balance int64) models.Tenant {
	t.Helper()
	tenant := models.Tenant{
		Name:          name,
		Email:         email,
		PasswordHash:  "x",
		Unit:          unit,
		UnitType:      models.UnitTypeStudio,
		WalletBalance: decimal.NewFromInt(balance),
		IsActive:      true,
	}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	return tenant
}

func createBill(t *testing.T, db *gorm.DB, name string, amount int64, dueDay int) models.BillItem {
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
		t.Fatalf("create bill: %v", err)
	}
	return bill
}
