package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/internal/domain"
	"github.com/rimpay/payroll-calculator/pkg/money"
)

// ITS bracket thresholds (monthly, MRU). The schedule is three tranches:
// [0, 9000), [9000, 21000), [21000, inf).
var (
	itsBracket1Ceiling = decimal.NewFromInt(9000)
	itsBracket2Ceiling = decimal.NewFromInt(21000)
)

// ITSInput carries every input of one progressive ITS computation.
type ITSInput struct {
	TaxableIncome  decimal.Decimal
	CNSSAmount     decimal.Decimal
	CNAMAmount     decimal.Decimal
	BaseSalary     decimal.Decimal
	BenefitsInKind decimal.Decimal
	CurrencyRate   decimal.Decimal
	Expatriate     bool
	Year           int
	DeductCNSS     bool
	DeductCNAM     bool
	Abatement      decimal.Decimal
	Mode           domain.TaxMode
}

// ITSBreakdown is the tranche-by-tranche result of one ITS computation.
// Total == Tranche1 + Tranche2 + Tranche3 always holds.
type ITSBreakdown struct {
	Total         decimal.Decimal
	Tranche1      decimal.Decimal
	Tranche2      decimal.Decimal
	Tranche3      decimal.Decimal
	TaxableIncome decimal.Decimal
}

// ITSReimbursementRates are per-tranche reimbursement percentages.
type ITSReimbursementRates struct {
	Tranche1 decimal.Decimal
	Tranche2 decimal.Decimal
	Tranche3 decimal.Decimal
}

// ITSCalculator computes the Impôt sur les Traitements et Salaires, the
// three-bracket progressive payroll income tax.
type ITSCalculator struct{}

// NewITSCalculator creates an ITS calculator.
func NewITSCalculator() *ITSCalculator {
	return &ITSCalculator{}
}

// TaxBrackets returns the ITS rate table for a year, residency status and tax
// mode. Expatriate rates are a flat half of the national ones. Mode "T"
// collapses tranches 2 and 3 to a single 20% rate; any unrecognized mode
// falls through to the "G" table, which existing configurations rely on.
// The year parameter is accepted for future schedules and currently ignored.
func TaxBrackets(year int, expatriate bool, mode domain.TaxMode) []domain.TaxBracket {
	_ = year

	rate1 := decimal.NewFromFloat(0.15)
	rate2 := decimal.NewFromFloat(0.25)
	rate3 := decimal.NewFromFloat(0.40)
	if mode == domain.TaxModeTerritorial {
		rate2 = decimal.NewFromFloat(0.20)
		rate3 = decimal.NewFromFloat(0.20)
	}
	if expatriate {
		half := decimal.NewFromInt(2)
		rate1 = rate1.Div(half)
		rate2 = rate2.Div(half)
		rate3 = rate3.Div(half)
	}

	return []domain.TaxBracket{
		{Min: decimal.Zero, Max: &itsBracket1Ceiling, Rate: rate1},
		{Min: itsBracket1Ceiling, Max: &itsBracket2Ceiling, Rate: rate2},
		{Min: itsBracket2Ceiling, Max: nil, Rate: rate3},
	}
}

// adjustedTaxableIncome applies the deduction chain to the raw taxable
// income: CNSS/CNAM toggles, the abatement, and the benefits-in-kind 20%
// rule, clamping to zero at each stage.
func (c *ITSCalculator) adjustedTaxableIncome(in ITSInput) decimal.Decimal {
	adjusted := in.TaxableIncome

	if in.DeductCNSS {
		adjusted = adjusted.Sub(in.CNSSAmount)
	}
	if in.DeductCNAM {
		adjusted = adjusted.Sub(in.CNAMAmount)
	}

	adjusted = money.ZeroFloor(adjusted.Sub(in.Abatement))

	// Benefits-in-kind 20% rule: when in-kind compensation exceeds 20% of
	// the cash salary, only 60% of it is deductible. This penalizes
	// disproportionate in-kind packages with partial relief only.
	if in.BenefitsInKind.IsPositive() {
		threshold := in.BaseSalary.Sub(in.BenefitsInKind).Mul(decimal.NewFromFloat(0.20))
		if in.BenefitsInKind.GreaterThan(threshold) {
			adjusted = adjusted.Sub(in.BenefitsInKind.Mul(decimal.NewFromFloat(0.60)))
		} else {
			adjusted = adjusted.Sub(in.BenefitsInKind)
		}
	}

	return money.ZeroFloor(adjusted)
}

// CalculateProgressive walks the bracket table low to high, consuming the
// adjusted taxable income and accumulating tax per tranche. Each tranche's
// tax is rounded independently; the total is their exact sum.
func (c *ITSCalculator) CalculateProgressive(in ITSInput) ITSBreakdown {
	adjusted := c.adjustedTaxableIncome(in)
	brackets := TaxBrackets(in.Year, in.Expatriate, in.Mode)
	currencyRate := normalizeCurrencyRate(in.CurrencyRate)

	tranches := make([]decimal.Decimal, len(brackets))
	remaining := adjusted
	for i, bracket := range brackets {
		if !remaining.IsPositive() {
			tranches[i] = decimal.Zero
			continue
		}
		taxableInBracket := remaining
		if width := bracket.Width(); width != nil {
			taxableInBracket = money.Min(remaining, *width)
		}
		tranches[i] = money.Round(money.SafeDivide(taxableInBracket.Mul(bracket.Rate), currencyRate))
		remaining = remaining.Sub(taxableInBracket)
	}

	total := tranches[0].Add(tranches[1]).Add(tranches[2])
	return ITSBreakdown{
		Total:         total,
		Tranche1:      tranches[0],
		Tranche2:      tranches[1],
		Tranche3:      tranches[2],
		TaxableIncome: money.Round(adjusted),
	}
}

// CalculateReimbursement reruns the progressive computation and applies the
// per-tranche reimbursement percentages independently. This models schemes
// that reimburse different fractions of the tax owed per income bracket.
func (c *ITSCalculator) CalculateReimbursement(in ITSInput, rates ITSReimbursementRates) decimal.Decimal {
	breakdown := c.CalculateProgressive(in)
	reimbursement := money.Percentage(breakdown.Tranche1, rates.Tranche1).
		Add(money.Percentage(breakdown.Tranche2, rates.Tranche2)).
		Add(money.Percentage(breakdown.Tranche3, rates.Tranche3))
	return money.Round(reimbursement)
}
