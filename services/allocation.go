package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/models"
)

// Share is one tenant's slice of an estate-wide charge.
type Share struct {
	TenantID uint
	Amount   decimal.Decimal
}

// unitTypeWeights maps a unit type to its billing weight for BY_UNIT_TYPE
// allocation. Larger units carry a larger share of estate charges.
var unitTypeWeights = map[string]decimal.Decimal{
	models.UnitTypeStudio:       decimal.NewFromFloat(1.0),
	models.UnitTypeOneBedroom:   decimal.NewFromFloat(1.5),
	models.UnitTypeTwoBedroom:   decimal.NewFromFloat(2.0),
	models.UnitTypeThreeBedroom: decimal.NewFromFloat(3.0),
	models.UnitTypeDuplex:       decimal.NewFromFloat(4.0),
}

// AllocateShares apportions total across tenants using the given
// calculation method. Shares are truncated to the smallest currency unit
// (2 decimal places); whatever remainder the truncation leaves goes to the
// tenant with the lowest ID, so the shares always sum to total exactly.
//
// Tenants must arrive ordered by ID ascending (see TenantDirectory) and
// non-empty. CUSTOM_FORMULA never reaches this function: the caller
// supplies an explicit amount and no automatic allocation happens.
func AllocateShares(method string, total decimal.Decimal, tenants []models.Tenant,
	directory TenantDirectory, periodStart, periodEnd time.Time) ([]Share, error) {

	if len(tenants) == 0 {
		return nil, fmt.Errorf("%w: no active tenants to allocate across", models.ErrValidation)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: allocation total must be positive", models.ErrValidation)
	}

	weights, err := tenantWeights(method, tenants, directory, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	totalWeight := decimal.Zero
	for _, w := range weights {
		totalWeight = totalWeight.Add(w)
	}
	if !totalWeight.IsPositive() {
		return nil, fmt.Errorf("%w: tenant weights sum to zero for method %s", models.ErrValidation, method)
	}

	shares := make([]Share, len(tenants))
	allocated := decimal.Zero
	for i, t := range tenants {
		amount := total.Mul(weights[i]).Div(totalWeight).RoundDown(2)
		shares[i] = Share{TenantID: t.ID, Amount: amount}
		allocated = allocated.Add(amount)
	}

	// Truncation remainder lands on the first (lowest-ID) tenant.
	if remainder := total.Sub(allocated); remainder.IsPositive() {
		shares[0].Amount = shares[0].Amount.Add(remainder)
	}

	return shares, nil
}

func tenantWeights(method string, tenants []models.Tenant,
	directory TenantDirectory, periodStart, periodEnd time.Time) ([]decimal.Decimal, error) {

	weights := make([]decimal.Decimal, len(tenants))
	for i, t := range tenants {
		switch method {
		case models.CalcMethodEqual:
			weights[i] = decimal.NewFromInt(1)
		case models.CalcMethodByUnitType:
			w, ok := unitTypeWeights[t.UnitType]
			if !ok {
				return nil, fmt.Errorf("%w: tenant %d has unknown unit type %q", models.ErrValidation, t.ID, t.UnitType)
			}
			weights[i] = w
		case models.CalcMethodBySquareMeter:
			if !t.FloorAreaSqm.IsPositive() {
				return nil, fmt.Errorf("%w: tenant %d has no floor area on record", models.ErrValidation, t.ID)
			}
			weights[i] = t.FloorAreaSqm
		case models.CalcMethodByConsumption:
			consumption, err := directory.ConsumptionFor(t.ID, periodStart, periodEnd)
			if err != nil {
				return nil, err
			}
			weights[i] = consumption
		default:
			return nil, fmt.Errorf("%w: method %s does not support automatic allocation", models.ErrValidation, method)
		}
	}
	return weights, nil
}
