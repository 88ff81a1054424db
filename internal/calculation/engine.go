package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/internal/domain"
	"github.com/rimpay/payroll-calculator/pkg/money"
)

// TaxCalculationService composes the CNSS, CNAM and ITS calculators for one
// employee and period. It is stateless per call: every method takes explicit
// inputs and returns a value, so concurrent calls are safe.
type TaxCalculationService struct {
	CNSS   *CNSSCalculator
	CNAM   *CNAMCalculator
	ITS    *ITSCalculator
	Params domain.SystemTaxParameters
	Logger Logger
}

// NewTaxCalculationService creates a service from a parameter snapshot.
func NewTaxCalculationService(params domain.SystemTaxParameters) *TaxCalculationService {
	return &TaxCalculationService{
		CNSS:   NewCNSSCalculatorWithConfig(params),
		CNAM:   NewCNAMCalculator(),
		ITS:    NewITSCalculator(),
		Params: params,
		Logger: NopLogger{},
	}
}

// Calculate runs the full contribution/tax chain for one employee and period.
// Eligibility flags gate each component; an exempt employee contributes zero
// for that component. Negative bases are clamped to zero before any rate is
// applied.
func (s *TaxCalculationService) Calculate(profile domain.EmployeeTaxProfile, bases domain.TaxableBases, year int) domain.TaxResult {
	bases = bases.Clamped()
	currencyRate := s.Params.EffectiveCurrencyRate()

	var result domain.TaxResult

	if profile.SubjectToCNSS {
		result.CNSSEmployee = s.CNSS.EmployeeContribution(bases.CNSS, currencyRate, year)
		result.CNSSEmployer = s.CNSS.EmployerContribution(bases.CNSS, profile.CNSSReimbursementRate, currencyRate, year)
		result.CNSSReimbursement = s.CNSS.ReimbursementCredit(bases.CNSS, profile.CNSSReimbursementRate, currencyRate, year)
	}

	if profile.SubjectToCNAM {
		result.CNAMEmployee = s.CNAM.EmployeeContribution(bases.CNAM, currencyRate, year)
		result.CNAMEmployer = s.CNAM.EmployerContribution(bases.CNAM, profile.CNAMReimbursementRate, currencyRate, year)
		result.CNAMReimbursement = s.CNAM.ReimbursementCredit(bases.CNAM, profile.CNAMReimbursementRate, currencyRate, year)
	}

	if profile.SubjectToITS {
		in := s.itsInput(bases.ITS, result.CNSSEmployee, result.CNAMEmployee, bases.BenefitsInKind, profile.Expatriate, year)
		breakdown := s.ITS.CalculateProgressive(in)
		result.ITSTotal = breakdown.Total
		result.ITSTranche1 = breakdown.Tranche1
		result.ITSTranche2 = breakdown.Tranche2
		result.ITSTranche3 = breakdown.Tranche3
		result.TaxableIncome = breakdown.TaxableIncome
		result.ITSReimbursement = s.ITS.CalculateReimbursement(in, ITSReimbursementRates{
			Tranche1: profile.ITSTranche1ReimbursementRate,
			Tranche2: profile.ITSTranche2ReimbursementRate,
			Tranche3: profile.ITSTranche3ReimbursementRate,
		})
	}

	return result
}

// itsInput assembles the ITS input for a gross base. The ITS taxable base
// doubles as the base salary for the benefits-in-kind threshold.
func (s *TaxCalculationService) itsInput(taxableIncome, cnssAmount, cnamAmount, benefitsInKind decimal.Decimal, expatriate bool, year int) ITSInput {
	return ITSInput{
		TaxableIncome:  taxableIncome,
		CNSSAmount:     cnssAmount,
		CNAMAmount:     cnamAmount,
		BaseSalary:     taxableIncome,
		BenefitsInKind: benefitsInKind,
		CurrencyRate:   s.Params.EffectiveCurrencyRate(),
		Expatriate:     expatriate,
		Year:           year,
		DeductCNSS:     s.Params.DeductCNSSFromITS,
		DeductCNAM:     s.Params.DeductCNAMFromITS,
		Abatement:      s.Params.TaxAbatement,
		Mode:           s.Params.ITSTaxMode,
	}
}

// NetFromGross derives the net amount paid out for a gross: gross minus
// benefits in kind, employee CNSS, employee CNAM and total ITS.
//
// This is the single net-salary routine shared by the F21 catalogue function
// and the gross-from-net solver, so the two call paths cannot drift.
func (s *TaxCalculationService) NetFromGross(gross, benefitsInKind decimal.Decimal, applyCNSS, applyCNAM, applyITS, expatriate bool, year int) decimal.Decimal {
	currencyRate := s.Params.EffectiveCurrencyRate()

	cnss := decimal.Zero
	if applyCNSS {
		cnss = s.CNSS.EmployeeContribution(gross, currencyRate, year)
	}
	cnam := decimal.Zero
	if applyCNAM {
		cnam = s.CNAM.EmployeeContribution(gross, currencyRate, year)
	}

	itsTotal := decimal.Zero
	if applyITS {
		itsTotal = s.ITS.CalculateProgressive(s.itsInput(gross, cnss, cnam, benefitsInKind, expatriate, year)).Total
	}

	return money.Round(gross.Sub(benefitsInKind).Sub(itsTotal).Sub(cnss).Sub(cnam))
}
