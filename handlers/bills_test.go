package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/estate-billing/models"
)

func TestCreateBill(t *testing.T) {
	db := setupTestDB(t)
	handler := NewBillHandler(db)
	router := testRouter(1, models.RoleAdmin)
	router.POST("/bills", handler.CreateBill)

	t.Run("Valid Monthly Bill", func(t *testing.T) {
		w := doJSON(router, "POST", "/bills", gin.H{
			"name":          "Water Bill",
			"amount":        15000,
			"billing_cycle": "monthly",
			"due_day":       10,
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var bill models.BillItem
		db.First(&bill)
		assert.Equal(t, "Water Bill", bill.Name)
		assert.True(t, bill.IsActive)
		assert.Equal(t, 10, *bill.DueDay)
	})

	t.Run("Due Day Zero Rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/bills", gin.H{
			"name":          "Security Levy",
			"amount":        5000,
			"billing_cycle": "monthly",
			"due_day":       0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Due Day TwentyNine Rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/bills", gin.H{
			"name":          "Security Levy",
			"amount":        5000,
			"billing_cycle": "monthly",
			"due_day":       29,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Monthly Without Due Day Rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/bills", gin.H{
			"name":          "Security Levy",
			"amount":        5000,
			"billing_cycle": "monthly",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("One Time Needs No Due Day", func(t *testing.T) {
		w := doJSON(router, "POST", "/bills", gin.H{
			"name":          "Plumbing Repair Fee",
			"amount":        12000,
			"billing_cycle": "one_time",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Non Positive Amount Rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/bills", gin.H{
			"name":          "Cleaning",
			"amount":        -100,
			"billing_cycle": "one_time",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestToggleAndDeleteBill(t *testing.T) {
	db := setupTestDB(t)
	handler := NewBillHandler(db)
	router := testRouter(1, models.RoleAdmin)
	router.PUT("/bills/:id/toggle", handler.ToggleBill)
	router.DELETE("/bills/:id", handler.DeleteBill)

	bill := createBill(t, db, "Waste Management", 8000, 5)

	t.Run("Toggle Flips Active Flag", func(t *testing.T) {
		w := doJSON(router, "PUT", fmt.Sprintf("/bills/%d/toggle", bill.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var fresh models.BillItem
		db.First(&fresh, bill.ID)
		assert.False(t, fresh.IsActive)

		w = doJSON(router, "PUT", fmt.Sprintf("/bills/%d/toggle", bill.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		db.First(&fresh, bill.ID)
		assert.True(t, fresh.IsActive)
	})

	t.Run("Delete Removes Catalog Entry Only", func(t *testing.T) {
		invoice := models.Invoice{TenantID: 1, BillID: &bill.ID, TotalAmount: bill.Amount, BalanceDue: bill.Amount}
		assert.NoError(t, db.Create(&invoice).Error)

		w := doJSON(router, "DELETE", fmt.Sprintf("/bills/%d", bill.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.BillItem{}).Count(&count)
		assert.EqualValues(t, 0, count)

		db.Model(&models.Invoice{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Delete Missing Bill Is NotFound", func(t *testing.T) {
		w := doJSON(router, "DELETE", "/bills/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListBills(t *testing.T) {
	db := setupTestDB(t)
	handler := NewBillHandler(db)
	router := testRouter(1, models.RoleAdmin)
	router.GET("/bills", handler.ListBills)

	active := createBill(t, db, "Water Bill", 15000, 10)
	inactive := createBill(t, db, "Old Levy", 1000, 1)
	db.Model(&inactive).Update("is_active", false)

	t.Run("All Bills", func(t *testing.T) {
		w := doJSON(router, "GET", "/bills", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Bills []models.BillItem `json:"bills"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Bills, 2)
	})

	t.Run("Active Only", func(t *testing.T) {
		w := doJSON(router, "GET", "/bills?active=true", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Bills []models.BillItem `json:"bills"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Bills, 1)
		assert.Equal(t, active.ID, resp.Bills[0].ID)
	})

	t.Run("Storage Failure Is Service Unavailable", func(t *testing.T) {
		assert.NoError(t, db.Migrator().DropTable(&models.BillItem{}))

		w := doJSON(router, "GET", "/bills", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "SQL")
	})
}
