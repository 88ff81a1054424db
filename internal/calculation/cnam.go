package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/pkg/money"
)

// CNAMCalculator computes Caisse Nationale d'Assurance Maladie contributions:
// 4% employee and 5% employer, with no ceiling on the base.
//
// The 4% employee rate is the corrected statutory figure (an earlier revision
// carried a defective 0.5%); 5% employer is 4% x 1.25.
type CNAMCalculator struct {
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
}

// NewCNAMCalculator creates a CNAM calculator with the statutory rates.
func NewCNAMCalculator() *CNAMCalculator {
	return &CNAMCalculator{
		EmployeeRate: decimal.NewFromFloat(0.04),
		EmployerRate: decimal.NewFromFloat(0.05),
	}
}

// EmployeeContribution computes the employee share: 4% of the uncapped base.
func (c *CNAMCalculator) EmployeeContribution(taxableAmount, currencyRate decimal.Decimal, year int) decimal.Decimal {
	_ = year
	converted := taxableAmount.Mul(normalizeCurrencyRate(currencyRate))
	return money.Round(converted.Mul(c.EmployeeRate))
}

// EmployerContribution computes the employer share: 5% of the uncapped base,
// multiplied by (1 + reimbursementRate/100) as in CNSS.
func (c *CNAMCalculator) EmployerContribution(taxableAmount, reimbursementRate, currencyRate decimal.Decimal, year int) decimal.Decimal {
	_ = year
	converted := taxableAmount.Mul(normalizeCurrencyRate(currencyRate))
	base := converted.Mul(c.EmployerRate)
	multiplier := decimal.NewFromInt(1).Add(reimbursementRate.Div(decimal.NewFromInt(100)))
	return money.Round(base.Mul(multiplier))
}

// ReimbursementCredit computes the reimbursable share of the employee
// contribution for a configured reimbursement percentage.
func (c *CNAMCalculator) ReimbursementCredit(taxableAmount, reimbursementRate, currencyRate decimal.Decimal, year int) decimal.Decimal {
	employee := c.EmployeeContribution(taxableAmount, currencyRate, year)
	return money.Round(money.Percentage(employee, reimbursementRate))
}
