package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rimpay/payroll-calculator/internal/domain"
)

// bareITSInput builds an input with no deductions so the taxable income hits
// the brackets unadjusted.
func bareITSInput(taxableIncome string, expatriate bool, mode domain.TaxMode) ITSInput {
	return ITSInput{
		TaxableIncome: decimal.RequireFromString(taxableIncome),
		CurrencyRate:  decimal.NewFromInt(1),
		Expatriate:    expatriate,
		Year:          2025,
		Mode:          mode,
	}
}

func TestITSProgressiveNational(t *testing.T) {
	calc := NewITSCalculator()

	tests := []struct {
		name             string
		taxableIncome    string
		expectedTranche1 string
		expectedTranche2 string
		expectedTranche3 string
		expectedTotal    string
	}{
		{
			name:             "income within first bracket",
			taxableIncome:    "5000",
			expectedTranche1: "750.00",
			expectedTranche2: "0.00",
			expectedTranche3: "0.00",
			expectedTotal:    "750.00",
		},
		{
			name:             "income at first boundary",
			taxableIncome:    "9000",
			expectedTranche1: "1350.00",
			expectedTranche2: "0.00",
			expectedTranche3: "0.00",
			expectedTotal:    "1350.00",
		},
		{
			name:             "income across two brackets",
			taxableIncome:    "15000",
			expectedTranche1: "1350.00",
			expectedTranche2: "1500.00",
			expectedTranche3: "0.00",
			expectedTotal:    "2850.00",
		},
		{
			name:             "income across all three brackets",
			taxableIncome:    "30000",
			expectedTranche1: "1350.00",
			expectedTranche2: "3000.00",
			expectedTranche3: "3600.00",
			expectedTotal:    "7950.00",
		},
		{
			name:             "zero income",
			taxableIncome:    "0",
			expectedTranche1: "0.00",
			expectedTranche2: "0.00",
			expectedTranche3: "0.00",
			expectedTotal:    "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateProgressive(bareITSInput(tt.taxableIncome, false, domain.TaxModeGeneral))
			assert.Equal(t, tt.expectedTranche1, got.Tranche1.StringFixed(2))
			assert.Equal(t, tt.expectedTranche2, got.Tranche2.StringFixed(2))
			assert.Equal(t, tt.expectedTranche3, got.Tranche3.StringFixed(2))
			assert.Equal(t, tt.expectedTotal, got.Total.StringFixed(2))
		})
	}
}

func TestITSExpatriateHalvedRates(t *testing.T) {
	calc := NewITSCalculator()

	got := calc.CalculateProgressive(bareITSInput("15000", true, domain.TaxModeGeneral))
	assert.Equal(t, "675.00", got.Tranche1.StringFixed(2))
	assert.Equal(t, "750.00", got.Tranche2.StringFixed(2))
	assert.Equal(t, "1425.00", got.Total.StringFixed(2))
}

func TestITSTerritorialMode(t *testing.T) {
	calc := NewITSCalculator()

	// Mode "T" collapses the upper tranches to 20%.
	got := calc.CalculateProgressive(bareITSInput("30000", false, domain.TaxModeTerritorial))
	assert.Equal(t, "1350.00", got.Tranche1.StringFixed(2))
	assert.Equal(t, "2400.00", got.Tranche2.StringFixed(2))
	assert.Equal(t, "1800.00", got.Tranche3.StringFixed(2))
	assert.Equal(t, "5550.00", got.Total.StringFixed(2))
}

func TestITSUnknownModeFallsBackToGeneral(t *testing.T) {
	calc := NewITSCalculator()

	unknown := calc.CalculateProgressive(bareITSInput("15000", false, domain.TaxMode("X")))
	general := calc.CalculateProgressive(bareITSInput("15000", false, domain.TaxModeGeneral))
	assert.Equal(t, general.Total.StringFixed(2), unknown.Total.StringFixed(2))
}

func TestITSDeductionChain(t *testing.T) {
	calc := NewITSCalculator()

	in := ITSInput{
		TaxableIncome: decimal.NewFromInt(15000),
		CNSSAmount:    decimal.NewFromInt(150),
		CNAMAmount:    decimal.NewFromInt(600),
		CurrencyRate:  decimal.NewFromInt(1),
		Year:          2025,
		DeductCNSS:    true,
		DeductCNAM:    true,
		Abatement:     decimal.NewFromInt(250),
		Mode:          domain.TaxModeGeneral,
	}

	got := calc.CalculateProgressive(in)
	// 15000 - 150 - 600 - 250 = 14000.
	assert.Equal(t, "14000.00", got.TaxableIncome.StringFixed(2))
	// 9000*0.15 + 5000*0.25.
	assert.Equal(t, "2600.00", got.Total.StringFixed(2))
}

func TestITSAbatementFloorsAtZero(t *testing.T) {
	calc := NewITSCalculator()

	in := bareITSInput("5000", false, domain.TaxModeGeneral)
	in.Abatement = decimal.NewFromInt(6000)

	got := calc.CalculateProgressive(in)
	assert.Equal(t, "0.00", got.Total.StringFixed(2))
	assert.Equal(t, "0.00", got.TaxableIncome.StringFixed(2))
}

func TestITSBenefitsInKindRule(t *testing.T) {
	calc := NewITSCalculator()

	tests := []struct {
		name            string
		baseSalary      string
		benefitsInKind  string
		expectedTaxable string
	}{
		{
			// Threshold = (10000-3000)*0.20 = 1400; 3000 exceeds it, so only
			// 60% of the benefits is deducted.
			name:            "benefits above threshold deduct 60 percent",
			baseSalary:      "10000",
			benefitsInKind:  "3000",
			expectedTaxable: "8200.00",
		},
		{
			// Threshold = (10000-1000)*0.20 = 1800; 1000 is within it.
			name:            "benefits within threshold deduct fully",
			baseSalary:      "10000",
			benefitsInKind:  "1000",
			expectedTaxable: "9000.00",
		},
		{
			// Threshold = (120000-20000)*0.20 = 20000; equality is not an
			// excess, full deduction applies.
			name:            "benefits exactly at threshold deduct fully",
			baseSalary:      "120000",
			benefitsInKind:  "20000",
			expectedTaxable: "100000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bareITSInput(tt.baseSalary, false, domain.TaxModeGeneral)
			in.BaseSalary = decimal.RequireFromString(tt.baseSalary)
			in.BenefitsInKind = decimal.RequireFromString(tt.benefitsInKind)

			got := calc.CalculateProgressive(in)
			assert.Equal(t, tt.expectedTaxable, got.TaxableIncome.StringFixed(2))
		})
	}
}

// The total must equal the sum of the tranches at every income level; the
// declaration exports rely on it.
func TestITSTrancheSumInvariant(t *testing.T) {
	calc := NewITSCalculator()

	for income := int64(0); income <= 100000; income += 777 {
		for _, expat := range []bool{false, true} {
			for _, mode := range []domain.TaxMode{domain.TaxModeGeneral, domain.TaxModeTerritorial} {
				in := ITSInput{
					TaxableIncome: decimal.NewFromInt(income),
					CurrencyRate:  decimal.NewFromInt(1),
					Expatriate:    expat,
					Year:          2025,
					Mode:          mode,
				}
				got := calc.CalculateProgressive(in)
				sum := got.Tranche1.Add(got.Tranche2).Add(got.Tranche3)
				assert.True(t, got.Total.Equal(sum),
					"income %d expat %v mode %s: total %s != tranche sum %s",
					income, expat, mode, got.Total, sum)
			}
		}
	}
}

// Progressive tax never decreases with more income.
func TestITSMonotonicity(t *testing.T) {
	calc := NewITSCalculator()

	previous := decimal.NewFromInt(-1)
	for income := int64(0); income <= 100000; income += 500 {
		got := calc.CalculateProgressive(bareITSInput(decimal.NewFromInt(income).String(), false, domain.TaxModeGeneral))
		assert.True(t, got.Total.GreaterThanOrEqual(previous),
			"total decreased at income %d: %s < %s", income, got.Total, previous)
		previous = got.Total
	}
}

// For income fully inside tranche 2, the expatriate tranche is exactly half
// the national one.
func TestITSExpatriateHalvingProperty(t *testing.T) {
	calc := NewITSCalculator()

	for _, income := range []string{"10000", "14500", "20998"} {
		national := calc.CalculateProgressive(bareITSInput(income, false, domain.TaxModeGeneral))
		expat := calc.CalculateProgressive(bareITSInput(income, true, domain.TaxModeGeneral))
		assert.True(t, national.Tranche2.Div(decimal.NewFromInt(2)).Equal(expat.Tranche2),
			"income %s: national tranche2 %s, expatriate %s", income, national.Tranche2, expat.Tranche2)
	}
}

func TestITSReimbursementPerTranche(t *testing.T) {
	calc := NewITSCalculator()

	in := bareITSInput("15000", false, domain.TaxModeGeneral)
	rates := ITSReimbursementRates{
		Tranche2: decimal.NewFromInt(50),
	}

	// Tranche 2 owes 1500.00; 50% of it is reimbursed.
	got := calc.CalculateReimbursement(in, rates)
	assert.Equal(t, "750.00", got.StringFixed(2))

	full := calc.CalculateReimbursement(in, ITSReimbursementRates{
		Tranche1: decimal.NewFromInt(100),
		Tranche2: decimal.NewFromInt(100),
		Tranche3: decimal.NewFromInt(100),
	})
	assert.Equal(t, "2850.00", full.StringFixed(2))

	none := calc.CalculateReimbursement(in, ITSReimbursementRates{})
	assert.Equal(t, "0.00", none.StringFixed(2))
}

func TestTaxBracketsShape(t *testing.T) {
	brackets := TaxBrackets(2025, false, domain.TaxModeGeneral)
	assert.Len(t, brackets, 3)

	assert.True(t, brackets[0].Min.IsZero())
	assert.True(t, decimal.NewFromInt(9000).Equal(*brackets[0].Max))
	assert.True(t, decimal.NewFromInt(9000).Equal(brackets[1].Min))
	assert.True(t, decimal.NewFromInt(21000).Equal(*brackets[1].Max))
	assert.True(t, decimal.NewFromInt(21000).Equal(brackets[2].Min))
	assert.Nil(t, brackets[2].Max)

	assert.True(t, decimal.NewFromFloat(0.15).Equal(brackets[0].Rate))
	assert.True(t, decimal.NewFromFloat(0.25).Equal(brackets[1].Rate))
	assert.True(t, decimal.NewFromFloat(0.40).Equal(brackets[2].Rate))
}
