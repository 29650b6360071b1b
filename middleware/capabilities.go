package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-billing/models"
)

// Capability names one thing a caller is allowed to do. Route guards check
// capabilities rather than comparing role strings, so role-to-permission
// mapping lives in exactly one place.
type Capability string

const (
	CapManageBills      Capability = "manage_bills"
	CapGenerateInvoices Capability = "generate_invoices"
	CapViewAllInvoices  Capability = "view_all_invoices"
	CapRecordPayments   Capability = "record_payments"
	CapManageTenants    Capability = "manage_tenants"
	CapManageWallets    Capability = "manage_wallets"
	CapPayInvoices      Capability = "pay_invoices"
)

// Wallet settlement stays resident-only: admin accounts live in a separate
// table, so an admin ID passed through as a tenant ID would hit whichever
// tenant happens to share the number.
var roleCapabilities = map[string][]Capability{
	models.RoleResident: {
		CapPayInvoices,
	},
	models.RoleAdmin: {
		CapManageBills, CapGenerateInvoices, CapViewAllInvoices,
		CapRecordPayments, CapManageTenants, CapManageWallets,
	},
	models.RoleSuperadmin: {
		CapManageBills, CapGenerateInvoices, CapViewAllInvoices,
		CapRecordPayments, CapManageTenants, CapManageWallets,
	},
}

// HasCapability reports whether the role grants the capability.
func HasCapability(role string, cap Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == cap {
			return true
		}
	}
	return false
}

// RequireCapability rejects callers whose role does not grant the
// capability. Must run after JwtAuthMiddleware.
func RequireCapability(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context"})
			c.Abort()
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid role type in context"})
			c.Abort()
			return
		}

		if !HasCapability(roleStr, cap) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
