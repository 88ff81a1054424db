package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rimpay/payroll-calculator/internal/domain"
)

func allSubjectProfile() domain.EmployeeTaxProfile {
	return domain.EmployeeTaxProfile{
		SubjectToCNSS: true,
		SubjectToCNAM: true,
		SubjectToITS:  true,
	}
}

func uniformBases(amount int64) domain.TaxableBases {
	base := decimal.NewFromInt(amount)
	return domain.TaxableBases{CNSS: base, CNAM: base, ITS: base}
}

func TestCalculateNationalEmployee(t *testing.T) {
	service := NewTaxCalculationService(domain.DefaultSystemTaxParameters())

	result := service.Calculate(allSubjectProfile(), uniformBases(45000), 2025)

	// CNSS capped at the 15000 ceiling, CNAM uncapped.
	assert.Equal(t, "150.00", result.CNSSEmployee.StringFixed(2))
	assert.Equal(t, "150.00", result.CNSSEmployer.StringFixed(2))
	assert.Equal(t, "1800.00", result.CNAMEmployee.StringFixed(2))
	assert.Equal(t, "2250.00", result.CNAMEmployer.StringFixed(2))

	// ITS on 45000 - 150 - 1800 = 43050.
	assert.Equal(t, "43050.00", result.TaxableIncome.StringFixed(2))
	assert.Equal(t, "1350.00", result.ITSTranche1.StringFixed(2))
	assert.Equal(t, "3000.00", result.ITSTranche2.StringFixed(2))
	assert.Equal(t, "8820.00", result.ITSTranche3.StringFixed(2))
	assert.Equal(t, "13170.00", result.ITSTotal.StringFixed(2))

	assert.Equal(t, "15120.00", result.TotalEmployeeWithholding().StringFixed(2))
	assert.Equal(t, "2400.00", result.TotalEmployerCharge().StringFixed(2))
}

func TestCalculateExpatriateWithBenefitsInKind(t *testing.T) {
	service := NewTaxCalculationService(domain.DefaultSystemTaxParameters())

	profile := allSubjectProfile()
	profile.Expatriate = true
	profile.ITSTranche2ReimbursementRate = decimal.NewFromInt(50)

	bases := uniformBases(120000)
	bases.BenefitsInKind = decimal.NewFromInt(20000)

	result := service.Calculate(profile, bases, 2025)

	assert.Equal(t, "150.00", result.CNSSEmployee.StringFixed(2))
	assert.Equal(t, "4800.00", result.CNAMEmployee.StringFixed(2))

	// 120000 - 150 - 4800 = 115050; benefits sit exactly at the 20% threshold
	// so they deduct in full: 95050 taxable at halved expatriate rates.
	assert.Equal(t, "95050.00", result.TaxableIncome.StringFixed(2))
	assert.Equal(t, "675.00", result.ITSTranche1.StringFixed(2))
	assert.Equal(t, "1500.00", result.ITSTranche2.StringFixed(2))
	assert.Equal(t, "14810.00", result.ITSTranche3.StringFixed(2))
	assert.Equal(t, "16985.00", result.ITSTotal.StringFixed(2))

	// Half of the tranche 2 tax comes back as reimbursement.
	assert.Equal(t, "750.00", result.ITSReimbursement.StringFixed(2))
}

func TestCalculateEligibilityGates(t *testing.T) {
	service := NewTaxCalculationService(domain.DefaultSystemTaxParameters())
	bases := uniformBases(45000)

	t.Run("nothing applies when all flags off", func(t *testing.T) {
		result := service.Calculate(domain.EmployeeTaxProfile{}, bases, 2025)
		assert.True(t, result.CNSSEmployee.IsZero())
		assert.True(t, result.CNAMEmployee.IsZero())
		assert.True(t, result.ITSTotal.IsZero())
	})

	t.Run("ITS only skips contribution deductions", func(t *testing.T) {
		profile := domain.EmployeeTaxProfile{SubjectToITS: true}
		result := service.Calculate(profile, bases, 2025)
		assert.True(t, result.CNSSEmployee.IsZero())
		assert.True(t, result.CNAMEmployee.IsZero())
		// Nothing was withheld, so the full 45000 is taxable.
		assert.Equal(t, "45000.00", result.TaxableIncome.StringFixed(2))
	})
}

func TestCalculateClampsNegativeBases(t *testing.T) {
	service := NewTaxCalculationService(domain.DefaultSystemTaxParameters())

	bases := domain.TaxableBases{
		CNSS: decimal.NewFromInt(-5000),
		CNAM: decimal.NewFromInt(-5000),
		ITS:  decimal.NewFromInt(-5000),
	}
	result := service.Calculate(allSubjectProfile(), bases, 2025)

	assert.True(t, result.CNSSEmployee.IsZero())
	assert.True(t, result.CNAMEmployee.IsZero())
	assert.True(t, result.ITSTotal.IsZero())
	assert.False(t, result.TotalEmployeeWithholding().IsNegative())
}

func TestResultMapKeys(t *testing.T) {
	service := NewTaxCalculationService(domain.DefaultSystemTaxParameters())
	result := service.Calculate(allSubjectProfile(), uniformBases(45000), 2025)

	m := result.Map()
	for _, key := range []string{
		"cnss_employee", "cnss_employer", "cnss_reimbursement",
		"cnam_employee", "cnam_employer", "cnam_reimbursement",
		"its_total", "its_tranche1", "its_tranche2", "its_tranche3",
		"its_reimbursement", "taxable_income",
	} {
		_, ok := m[key]
		assert.True(t, ok, "missing key %s", key)
	}
	assert.True(t, m["its_total"].Equal(result.ITSTotal))
}

func TestNetFromGross(t *testing.T) {
	service := NewTaxCalculationService(domain.DefaultSystemTaxParameters())

	// 45000 - 13170 ITS - 150 CNSS - 1800 CNAM.
	net := service.NetFromGross(decimal.NewFromInt(45000), decimal.Zero, true, true, true, false, 2025)
	assert.Equal(t, "29880.00", net.StringFixed(2))

	// Benefits in kind are removed from the payout.
	withBIK := service.NetFromGross(decimal.NewFromInt(45000), decimal.NewFromInt(5000), true, true, true, false, 2025)
	assert.True(t, withBIK.LessThan(net))

	// Exemption flags skip the corresponding deductions entirely.
	exempt := service.NetFromGross(decimal.NewFromInt(45000), decimal.Zero, false, false, false, false, 2025)
	assert.Equal(t, "45000.00", exempt.StringFixed(2))
}
