package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

// WalletService applies prepaid wallet balances against invoices and
// handles top-ups and deductions. The wallet debit, the invoice status
// update and the audit row commit in one transaction, so the settlement is
// atomic from the caller's point of view.
type WalletService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db, now: time.Now}
}

// PayInvoice settles the invoice's full balance due from the tenant's
// wallet. Checks run in order: the invoice must exist and belong to the
// tenant, must not already be paid, and the wallet must cover the balance.
func (s *WalletService) PayInvoice(tenantID, invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", models.ErrNotFound, invoiceID)
			}
			return err
		}
		if invoice.TenantID != tenantID {
			return fmt.Errorf("%w: invoice %d", models.ErrNotFound, invoiceID)
		}
		if invoice.Status == models.InvoiceStatusPaid {
			return models.ErrAlreadyPaid
		}

		var tenant models.Tenant
		if err := tx.First(&tenant, tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: tenant %d", models.ErrNotFound, tenantID)
			}
			return err
		}

		due := invoice.BalanceDue
		if tenant.WalletBalance.LessThan(due) {
			return fmt.Errorf("%w: balance %s, due %s", models.ErrInsufficientFunds, tenant.WalletBalance, due)
		}

		tenant.WalletBalance = tenant.WalletBalance.Sub(due)
		if err := tx.Model(&tenant).Update("wallet_balance", tenant.WalletBalance).Error; err != nil {
			return err
		}

		if err := invoice.ApplyPayment(due, s.now()); err != nil {
			return err
		}
		if err := tx.Save(&invoice).Error; err != nil {
			return err
		}

		audit := models.WalletTransaction{
			TenantID:  tenantID,
			Direction: models.WalletDirectionOut,
			Amount:    due,
			Kind:      models.WalletTxInvoicePayment,
			Reference: uuid.NewString(),
			InvoiceID: &invoice.ID,
			Note:      fmt.Sprintf("settlement of invoice %d", invoice.ID),
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, wrapDBError(err)
	}
	return &invoice, nil
}

// TopUpTenant credits a tenant wallet.
func (s *WalletService) TopUpTenant(tenantID uint, amount decimal.Decimal) (*models.Tenant, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: top-up amount must be positive", models.ErrValidation)
	}

	var tenant models.Tenant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, tenantID).Error; err != nil {
			return err
		}
		tenant.WalletBalance = tenant.WalletBalance.Add(amount)
		if err := tx.Model(&tenant).Update("wallet_balance", tenant.WalletBalance).Error; err != nil {
			return err
		}
		audit := models.WalletTransaction{
			TenantID:  tenantID,
			Direction: models.WalletDirectionIn,
			Amount:    amount,
			Kind:      models.WalletTxTopup,
			Reference: uuid.NewString(),
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return nil, wrapDBError(err)
	}
	return &tenant, nil
}

// DeductTenant debits a tenant wallet outside of invoice settlement, e.g.
// an administrative correction. Fails without side effects when the wallet
// cannot cover the amount.
func (s *WalletService) DeductTenant(tenantID uint, amount decimal.Decimal) (*models.Tenant, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deduction amount must be positive", models.ErrValidation)
	}

	var tenant models.Tenant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, tenantID).Error; err != nil {
			return err
		}
		if tenant.WalletBalance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s, requested %s", models.ErrInsufficientFunds, tenant.WalletBalance, amount)
		}
		tenant.WalletBalance = tenant.WalletBalance.Sub(amount)
		if err := tx.Model(&tenant).Update("wallet_balance", tenant.WalletBalance).Error; err != nil {
			return err
		}
		audit := models.WalletTransaction{
			TenantID:  tenantID,
			Direction: models.WalletDirectionOut,
			Amount:    amount,
			Kind:      models.WalletTxDeduction,
			Reference: uuid.NewString(),
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, wrapDBError(err)
	}
	return &tenant, nil
}

// TopUpAdmin credits an estate admin's wallet.
func (s *WalletService) TopUpAdmin(userID uint, amount decimal.Decimal) (*models.User, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: top-up amount must be positive", models.ErrValidation)
	}
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.WalletBalance = user.WalletBalance.Add(amount)
		return tx.Model(&user).Update("wallet_balance", user.WalletBalance).Error
	})
	if err != nil {
		return nil, wrapDBError(err)
	}
	return &user, nil
}

// DeductAdmin debits an estate admin's wallet.
func (s *WalletService) DeductAdmin(userID uint, amount decimal.Decimal) (*models.User, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deduction amount must be positive", models.ErrValidation)
	}
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.WalletBalance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s, requested %s", models.ErrInsufficientFunds, user.WalletBalance, amount)
		}
		user.WalletBalance = user.WalletBalance.Sub(amount)
		return tx.Model(&user).Update("wallet_balance", user.WalletBalance).Error
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, wrapDBError(err)
	}
	return &user, nil
}
