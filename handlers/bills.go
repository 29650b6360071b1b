package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

type BillHandler struct {
	db *gorm.DB
}

func NewBillHandler(db *gorm.DB) *BillHandler {
	return &BillHandler{db: db}
}

type CreateBillRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	BillingCycle  string  `json:"billing_cycle" binding:"required,oneof=monthly one_time"`
	DueDay        *int    `json:"due_day"`
	InvoiceType   string  `json:"invoice_type" binding:"omitempty,oneof=automatic manual"`
	GenerationDay *int    `json:"generation_day"`
}

func (h *BillHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateDueDay(req.BillingCycle, req.DueDay); err != nil {
		respondError(c, err)
		return
	}

	invoiceType := req.InvoiceType
	if invoiceType == "" {
		invoiceType = models.InvoiceTypeManual
	}

	bill := models.BillItem{
		Name:          req.Name,
		Description:   req.Description,
		Amount:        decimal.NewFromFloat(req.Amount).Round(2),
		BillingCycle:  req.BillingCycle,
		DueDay:        req.DueDay,
		InvoiceType:   invoiceType,
		GenerationDay: req.GenerationDay,
		IsActive:      true,
	}

	if err := h.db.Create(&bill).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusCreated, bill)
}

type UpdateBillRequest struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Amount       *float64 `json:"amount" binding:"omitempty,gt=0"`
	BillingCycle string   `json:"billing_cycle" binding:"omitempty,oneof=monthly one_time"`
	DueDay       *int     `json:"due_day"`
}

func (h *BillHandler) UpdateBill(c *gin.Context) {
	var bill models.BillItem
	if err := h.db.First(&bill, c.Param("id")).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		bill.Name = req.Name
	}
	if req.Description != nil {
		bill.Description = *req.Description
	}
	if req.Amount != nil {
		bill.Amount = decimal.NewFromFloat(*req.Amount).Round(2)
	}
	if req.BillingCycle != "" {
		bill.BillingCycle = req.BillingCycle
	}
	if req.DueDay != nil {
		bill.DueDay = req.DueDay
	}
	if err := validateDueDay(bill.BillingCycle, bill.DueDay); err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.Save(&bill).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusOK, bill)
}

// ToggleBill flips the active flag. Existing invoices are untouched; only
// future generation runs see the change.
func (h *BillHandler) ToggleBill(c *gin.Context) {
	var bill models.BillItem
	if err := h.db.First(&bill, c.Param("id")).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	bill.IsActive = !bill.IsActive
	if err := h.db.Save(&bill).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusOK, bill)
}

// DeleteBill removes the catalog entry only. Invoices already generated
// from it keep their history.
func (h *BillHandler) DeleteBill(c *gin.Context) {
	var bill models.BillItem
	if err := h.db.First(&bill, c.Param("id")).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	if err := h.db.Delete(&bill).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted"})
}

func (h *BillHandler) ListBills(c *gin.Context) {
	q := h.db.Order("created_at ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var bills []models.BillItem
	if err := q.Find(&bills).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

func validateDueDay(billingCycle string, dueDay *int) error {
	if billingCycle != models.BillingCycleMonthly {
		return nil
	}
	if dueDay == nil {
		return fmt.Errorf("%w: monthly bills require a due day", models.ErrValidation)
	}
	if *dueDay < 1 || *dueDay > 28 {
		return fmt.Errorf("%w: due day must be between 1 and 28", models.ErrValidation)
	}
	return nil
}
