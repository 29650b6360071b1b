package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
	"github.com/yourusername/estate-billing/services"
)

type InvoiceHandler struct {
	generator *services.InvoiceGenerator
	ledger    *services.InvoiceLedger
}

func NewInvoiceHandler(generator *services.InvoiceGenerator, ledger *services.InvoiceLedger) *InvoiceHandler {
	return &InvoiceHandler{generator: generator, ledger: ledger}
}

// ListInvoices returns the caller's invoices for residents and the whole
// ledger (optionally filtered) for admins, newest first.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	userID := c.GetUint("userID")
	role := c.GetString("role")

	var filter services.InvoiceFilter
	if role == models.RoleResident {
		filter.TenantID = &userID
	} else if raw := c.Query("tenant_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant_id"})
			return
		}
		tenantID := uint(id)
		filter.TenantID = &tenantID
	}
	filter.Status = c.Query("status")

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		filter.To = &to
	}

	invoices, err := h.ledger.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	invoice, err := h.ledger.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	// Residents only ever see their own invoices.
	if c.GetString("role") == models.RoleResident && invoice.TenantID != c.GetUint("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) ListEstateInvoices(c *gin.Context) {
	invoices, err := h.ledger.ListEstate()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"estateInvoices": invoices})
}

// CreateEstateInvoiceRequest mirrors the wire shape the estate dashboard
// posts; field casing is inherited from that contract.
type CreateEstateInvoiceRequest struct {
	BillID            uint     `json:"billId" binding:"required"`
	CalculationMethod string   `json:"calculationMethod" binding:"required"`
	PeriodStart       string   `json:"periodStart" binding:"required"`
	PeriodEnd         string   `json:"periodEnd" binding:"required"`
	SupplierName      string   `json:"supplier_name" binding:"required"`
	Notes             string   `json:"notes"`
	InvoiceType       string   `json:"invoice_type" binding:"required,oneof=general specific"`
	TenantID          *uint    `json:"tenantId"`
	Amount            *float64 `json:"amount" binding:"omitempty,gt=0"`
}

// CreateEstateInvoice runs the invoice generator: general scope fans the
// bill out across active tenants, specific scope targets one tenant.
func (h *InvoiceHandler) CreateEstateInvoice(c *gin.Context) {
	var req CreateEstateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid periodStart, expected YYYY-MM-DD", models.ErrValidation))
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid periodEnd, expected YYYY-MM-DD", models.ErrValidation))
		return
	}

	genReq := services.GenerateRequest{
		BillID:            req.BillID,
		CalculationMethod: req.CalculationMethod,
		Scope:             req.InvoiceType,
		TenantID:          req.TenantID,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		SupplierName:      req.SupplierName,
		Notes:             req.Notes,
		CreatedBy:         c.GetUint("userID"),
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount).Round(2)
		genReq.Amount = &amount
	}

	result, err := h.generator.Generate(genReq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// RecordPayment credits a manual payment (e.g. bank transfer) against an
// invoice.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.ledger.RecordPayment(uint(id), decimal.NewFromFloat(req.Amount).Round(2))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}
