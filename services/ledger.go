package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

// InvoiceFilter narrows a ledger listing.
type InvoiceFilter struct {
	TenantID *uint
	Status   string
	From     *time.Time
	To       *time.Time
}

// InvoiceLedger stores generated invoices and keeps their balances and
// statuses consistent with the payment history.
type InvoiceLedger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewInvoiceLedger(db *gorm.DB) *InvoiceLedger {
	return &InvoiceLedger{db: db, now: time.Now}
}

// List returns invoices newest-first, with tenant identity and line items
// attached. Overdue statuses are swept before the query so the listing
// reflects the calendar.
func (l *InvoiceLedger) List(filter InvoiceFilter) ([]models.Invoice, error) {
	if err := l.MarkOverdue(l.now()); err != nil {
		return nil, err
	}

	q := l.db.Preload("Tenant").Preload("Items").Order("created_at DESC")
	if filter.TenantID != nil {
		q = q.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("invoice_month >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("invoice_month <= ?", *filter.To)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return invoices, nil
}

func (l *InvoiceLedger) Get(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := l.db.Preload("Tenant").Preload("Items").First(&invoice, id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &invoice, nil
}

// ListEstate returns estate-wide invoices newest-first.
func (l *InvoiceLedger) ListEstate() ([]models.EstateInvoice, error) {
	var invoices []models.EstateInvoice
	if err := l.db.Preload("Bill").Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return invoices, nil
}

// RecordPayment credits amount against an invoice, recomputing balance and
// status. Rejected payments leave the invoice untouched.
func (l *InvoiceLedger) RecordPayment(invoiceID uint, amount decimal.Decimal) (*models.Invoice, error) {
	var invoice models.Invoice
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", models.ErrNotFound, invoiceID)
			}
			return err
		}
		if err := invoice.ApplyPayment(amount, l.now()); err != nil {
			return err
		}
		return tx.Save(&invoice).Error
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, wrapDBError(err)
	}
	return &invoice, nil
}

// MarkOverdue flips pending and partially paid invoices whose due date has
// passed. Payment moves an overdue invoice back through ApplyPayment.
func (l *InvoiceLedger) MarkOverdue(now time.Time) error {
	err := l.db.Model(&models.Invoice{}).
		Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
			[]string{models.InvoiceStatusPending, models.InvoiceStatusPartiallyPaid}, now).
		Update("status", models.InvoiceStatusOverdue).Error
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, models.ErrValidation) ||
		errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrInsufficientFunds) ||
		errors.Is(err, models.ErrAlreadyPaid)
}
