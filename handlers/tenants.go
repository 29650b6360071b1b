package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

type TenantHandler struct {
	db *gorm.DB
}

func NewTenantHandler(db *gorm.DB) *TenantHandler {
	return &TenantHandler{db: db}
}

// ListTenants returns the tenant directory for admin dashboards.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	q := h.db.Order("id ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var tenants []models.Tenant
	if err := q.Find(&tenants).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

// ToggleTenant flips the active flag. Deactivated tenants keep their
// invoices and wallet but drop out of future estate-invoice fan-outs.
func (h *TenantHandler) ToggleTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := h.db.First(&tenant, c.Param("id")).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	tenant.IsActive = !tenant.IsActive
	if err := h.db.Save(&tenant).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// DeleteTenant removes a tenant from the directory, e.g. after a move-out.
// Invoices already raised against them keep their history.
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := h.db.First(&tenant, c.Param("id")).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	if err := h.db.Delete(&tenant).Error; err != nil {
		respondError(c, dbError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tenant removed"})
}
