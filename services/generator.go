package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

const (
	ScopeGeneral  = "general"
	ScopeSpecific = "specific"
)

// GenerateRequest carries everything the generator needs to turn a bill
// catalog entry into invoices.
type GenerateRequest struct {
	BillID            uint
	CalculationMethod string
	Scope             string // general, specific
	TenantID          *uint  // required when Scope is specific
	PeriodStart       time.Time
	PeriodEnd         time.Time
	SupplierName      string
	Notes             string
	Amount            *decimal.Decimal // CUSTOM_FORMULA override
	CreatedBy         uint
}

// GenerateResult holds the persisted output of a generation run: the
// estate invoice for general scope, the resident invoices fanned out from
// it (or the single invoice for specific scope).
type GenerateResult struct {
	EstateInvoice *models.EstateInvoice `json:"estate_invoice,omitempty"`
	Invoices      []models.Invoice      `json:"invoices"`
}

// InvoiceGenerator turns bill catalog entries into ledger entries. A
// general-scope run writes one estate invoice plus one resident invoice
// per active tenant in a single transaction; a partial fan-out is never
// left behind.
type InvoiceGenerator struct {
	db        *gorm.DB
	directory TenantDirectory
	now       func() time.Time
}

func NewInvoiceGenerator(db *gorm.DB, directory TenantDirectory) *InvoiceGenerator {
	return &InvoiceGenerator{db: db, directory: directory, now: time.Now}
}

func (g *InvoiceGenerator) Generate(req GenerateRequest) (*GenerateResult, error) {
	if _, err := models.ParseCalculationMethod(req.CalculationMethod); err != nil {
		return nil, err
	}
	if req.Scope != ScopeGeneral && req.Scope != ScopeSpecific {
		return nil, fmt.Errorf("%w: invoice scope must be general or specific", models.ErrValidation)
	}
	if req.Scope == ScopeSpecific && req.TenantID == nil {
		return nil, fmt.Errorf("%w: specific invoices require a tenant", models.ErrValidation)
	}
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end precedes period start", models.ErrValidation)
	}
	if req.CalculationMethod == models.CalcMethodCustomFormula {
		if req.Amount == nil || !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: CUSTOM_FORMULA requires a positive amount", models.ErrValidation)
		}
	}

	var bill models.BillItem
	if err := g.db.First(&bill, req.BillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %d", models.ErrNotFound, req.BillID)
		}
		return nil, wrapDBError(err)
	}
	if !bill.IsActive {
		return nil, fmt.Errorf("%w: bill %d is inactive", models.ErrNotFound, req.BillID)
	}

	amount := bill.Amount
	if req.CalculationMethod == models.CalcMethodCustomFormula {
		amount = *req.Amount
	}

	invoiceMonth := time.Date(req.PeriodStart.Year(), req.PeriodStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	dueDate := bill.DueDateFor(invoiceMonth, req.PeriodEnd)

	if req.Scope == ScopeSpecific {
		return g.generateSpecific(req, &bill, amount, invoiceMonth, dueDate)
	}
	return g.generateGeneral(req, &bill, amount, invoiceMonth, dueDate)
}

func (g *InvoiceGenerator) generateSpecific(req GenerateRequest, bill *models.BillItem,
	amount decimal.Decimal, invoiceMonth, dueDate time.Time) (*GenerateResult, error) {

	tenant, err := g.directory.TenantByID(*req.TenantID)
	if err != nil {
		return nil, err
	}

	invoice := newResidentInvoice(bill, tenant.ID, amount, invoiceMonth, dueDate, g.now())
	if err := g.db.Create(&invoice).Error; err != nil {
		return nil, wrapDBError(err)
	}

	return &GenerateResult{Invoices: []models.Invoice{invoice}}, nil
}

func (g *InvoiceGenerator) generateGeneral(req GenerateRequest, bill *models.BillItem,
	amount decimal.Decimal, invoiceMonth, dueDate time.Time) (*GenerateResult, error) {

	estate := models.EstateInvoice{
		BillID:            &bill.ID,
		BillName:          bill.Name,
		SupplierName:      req.SupplierName,
		CalculationMethod: req.CalculationMethod,
		TotalAmount:       amount,
		PeriodStart:       req.PeriodStart,
		PeriodEnd:         req.PeriodEnd,
		Notes:             req.Notes,
		CreatedBy:         req.CreatedBy,
	}

	var invoices []models.Invoice
	if req.CalculationMethod != models.CalcMethodCustomFormula {
		tenants, err := g.directory.ActiveTenants()
		if err != nil {
			return nil, err
		}
		shares, err := AllocateShares(req.CalculationMethod, amount, tenants, g.directory, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			return nil, err
		}
		for _, share := range shares {
			invoices = append(invoices, newResidentInvoice(bill, share.TenantID, share.Amount, invoiceMonth, dueDate, g.now()))
		}
	}

	// The estate invoice and the whole fan-out commit together or not at
	// all.
	err := g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&estate).Error; err != nil {
			return err
		}
		for i := range invoices {
			if err := tx.Create(&invoices[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapDBError(err)
	}

	return &GenerateResult{EstateInvoice: &estate, Invoices: invoices}, nil
}

func newResidentInvoice(bill *models.BillItem, tenantID uint, amount decimal.Decimal,
	invoiceMonth, dueDate, now time.Time) models.Invoice {

	invoice := models.Invoice{
		TenantID:     tenantID,
		BillID:       &bill.ID,
		InvoiceMonth: invoiceMonth,
		DueDate:      &dueDate,
		TotalAmount:  amount,
		AmountPaid:   decimal.Zero,
		Items: []models.InvoiceItem{{
			ItemName: bill.Name,
			Amount:   amount,
			Quantity: 1,
			Total:    amount,
		}},
	}
	invoice.Recompute(now)
	return invoice
}
