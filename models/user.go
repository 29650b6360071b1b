package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleResident   = "resident"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User is an estate administrator account. Residents authenticate through
// the Tenant table; both carry a prepaid wallet balance.
type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
	Email         string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	PasswordHash  string          `gorm:"size:255;not null" json:"-"`
	Role          string          `gorm:"size:20;default:'admin'" json:"role"` // admin, superadmin
	WalletBalance decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"wallet_balance"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "estate_admin_users"
}
