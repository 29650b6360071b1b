package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
	"github.com/yourusername/estate-billing/services"
)

type WalletHandler struct {
	wallets *services.WalletService
}

func NewWalletHandler(wallets *services.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

type WalletRequest struct {
	UserID uint    `json:"userId" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Type   string  `json:"type" binding:"omitempty,oneof=tenant admin"`
}

func (h *WalletHandler) TopUp(c *gin.Context) {
	req, ok := h.bindWalletRequest(c)
	if !ok {
		return
	}
	amount := decimal.NewFromFloat(req.Amount).Round(2)

	if req.Type == "admin" {
		user, err := h.wallets.TopUpAdmin(req.UserID, amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	tenant, err := h.wallets.TopUpTenant(req.UserID, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *WalletHandler) Deduct(c *gin.Context) {
	req, ok := h.bindWalletRequest(c)
	if !ok {
		return
	}
	amount := decimal.NewFromFloat(req.Amount).Round(2)

	if req.Type == "admin" {
		user, err := h.wallets.DeductAdmin(req.UserID, amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	tenant, err := h.wallets.DeductTenant(req.UserID, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// PayInvoice settles an invoice from the calling tenant's wallet. Only
// resident tokens may reach the wallet: the userID claim of an admin token
// identifies a row in a different table and must never be resolved as a
// tenant.
func (h *WalletHandler) PayInvoice(c *gin.Context) {
	if c.GetString("role") != models.RoleResident {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	invoice, err := h.wallets.PayInvoice(c.GetUint("userID"), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// bindWalletRequest parses the shared top-up/deduct body and enforces that
// residents only ever touch their own wallet.
func (h *WalletHandler) bindWalletRequest(c *gin.Context) (WalletRequest, bool) {
	var req WalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if req.Type == "" {
		req.Type = "tenant"
	}

	if c.GetString("role") == models.RoleResident {
		if req.Type != "tenant" || req.UserID != c.GetUint("userID") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return req, false
		}
	}
	return req, true
}
