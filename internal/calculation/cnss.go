package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/internal/domain"
	"github.com/rimpay/payroll-calculator/pkg/money"
)

// CNSSCalculator computes Caisse Nationale de Sécurité Sociale contributions:
// 1% employee and 1% employer on the taxable base, capped at the monthly
// ceiling (statutory default 15000).
type CNSSCalculator struct {
	Ceiling      decimal.Decimal
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
}

// NewCNSSCalculator creates a CNSS calculator with the statutory defaults.
func NewCNSSCalculator() *CNSSCalculator {
	return &CNSSCalculator{
		Ceiling:      decimal.NewFromInt(15000),
		EmployeeRate: decimal.NewFromFloat(0.01),
		EmployerRate: decimal.NewFromFloat(0.01),
	}
}

// NewCNSSCalculatorWithConfig creates a CNSS calculator using the configured
// ceiling.
func NewCNSSCalculatorWithConfig(params domain.SystemTaxParameters) *CNSSCalculator {
	c := NewCNSSCalculator()
	c.Ceiling = params.EffectiveCNSSCeiling()
	return c
}

// cappedBase converts the taxable amount at the currency rate and applies the
// ceiling. Negative inputs are not re-clamped here: callers pre-clamp via
// TaxableBases.Clamped; the ceiling-min passes a negative through unchanged.
func (c *CNSSCalculator) cappedBase(taxableAmount, currencyRate decimal.Decimal) decimal.Decimal {
	converted := taxableAmount.Mul(normalizeCurrencyRate(currencyRate))
	return money.Min(converted, c.Ceiling)
}

// EmployeeContribution computes the employee share: 1% of the ceiling-capped
// base, rounded to 2 decimals. The year parameter is accepted for future
// rate-table extensibility and is currently ignored.
func (c *CNSSCalculator) EmployeeContribution(taxableAmount, currencyRate decimal.Decimal, year int) decimal.Decimal {
	_ = year
	return money.Round(c.cappedBase(taxableAmount, currencyRate).Mul(c.EmployeeRate))
}

// EmployerContribution computes the employer share: 1% of the capped base,
// multiplied by (1 + reimbursementRate/100). The reimbursement rate is a
// bonus multiplier, not a discount: a 50% rate makes the employer front 150%
// of the base contribution, the extra being reimbursed by a third party.
func (c *CNSSCalculator) EmployerContribution(taxableAmount, reimbursementRate, currencyRate decimal.Decimal, year int) decimal.Decimal {
	_ = year
	base := c.cappedBase(taxableAmount, currencyRate).Mul(c.EmployerRate)
	multiplier := decimal.NewFromInt(1).Add(reimbursementRate.Div(decimal.NewFromInt(100)))
	return money.Round(base.Mul(multiplier))
}

// ReimbursementCredit computes the reimbursable share of the employee
// contribution for a configured reimbursement percentage.
func (c *CNSSCalculator) ReimbursementCredit(taxableAmount, reimbursementRate, currencyRate decimal.Decimal, year int) decimal.Decimal {
	employee := c.EmployeeContribution(taxableAmount, currencyRate, year)
	return money.Round(money.Percentage(employee, reimbursementRate))
}

// normalizeCurrencyRate substitutes the default rate of 1 for an unset rate.
func normalizeCurrencyRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.NewFromInt(1)
	}
	return rate
}
