package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/internal/domain"
	"github.com/rimpay/payroll-calculator/pkg/dateutil"
	"github.com/rimpay/payroll-calculator/pkg/money"
)

// TerminationReason adjusts the individual severance amount.
type TerminationReason string

const (
	ReasonDismissal       TerminationReason = "dismissal"
	ReasonMisconduct      TerminationReason = "misconduct"
	ReasonMutualAgreement TerminationReason = "mutual_agreement"
)

// RetirementType adjusts the retirement benefit amount.
type RetirementType string

const (
	RetirementNormal    RetirementType = "normal"
	RetirementEarly     RetirementType = "early"
	RetirementMandatory RetirementType = "mandatory"
)

// IndividualSeveranceMonths converts fractional seniority years into
// severance months for an individual dismissal:
// 0.25 months/year up to 5 years, then 0.3, then 0.35.
func IndividualSeveranceMonths(seniorityYears decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	five := decimal.NewFromInt(5)
	ten := decimal.NewFromInt(10)

	switch {
	case seniorityYears.LessThan(one):
		return decimal.Zero
	case seniorityYears.LessThan(five):
		return seniorityYears.Mul(decimal.NewFromFloat(0.25))
	case seniorityYears.LessThan(ten):
		return decimal.NewFromFloat(1.25).
			Add(seniorityYears.Sub(five).Mul(decimal.NewFromFloat(0.3)))
	default:
		return decimal.NewFromFloat(2.75).
			Add(seniorityYears.Sub(ten).Mul(decimal.NewFromFloat(0.35)))
	}
}

// CollectiveSeveranceMonths is the higher-rate schedule applied to collective
// dismissals (redundancy plans): 0.3 months/year up to 5 years, then 0.4,
// then 0.5.
func CollectiveSeveranceMonths(seniorityYears decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	five := decimal.NewFromInt(5)
	ten := decimal.NewFromInt(10)

	switch {
	case seniorityYears.LessThanOrEqual(one):
		return decimal.Zero
	case seniorityYears.LessThanOrEqual(five):
		return seniorityYears.Mul(decimal.NewFromFloat(0.3))
	case seniorityYears.LessThanOrEqual(ten):
		return decimal.NewFromFloat(1.5).
			Add(seniorityYears.Sub(five).Mul(decimal.NewFromFloat(0.4)))
	default:
		return decimal.NewFromFloat(3.5).
			Add(seniorityYears.Sub(ten).Mul(decimal.NewFromFloat(0.5)))
	}
}

// terminationMultiplier maps a termination reason to its statutory
// adjustment: misconduct halves the package, mutual agreement raises it 20%.
func terminationMultiplier(reason TerminationReason) decimal.Decimal {
	switch reason {
	case ReasonMisconduct:
		return decimal.NewFromFloat(0.5)
	case ReasonMutualAgreement:
		return decimal.NewFromFloat(1.2)
	default:
		return decimal.NewFromInt(1)
	}
}

// CalculateIndividualSeverance computes the severance package for an
// individual termination. Seniority is fractional: (days elapsed + 2) / 365.
func CalculateIndividualSeverance(hireDate, terminationDate time.Time, averageMonthlySalary decimal.Decimal, reason TerminationReason) domain.SeverancePackage {
	years := dateutil.SeniorityFraction(hireDate, terminationDate)
	months := IndividualSeveranceMonths(years).Mul(terminationMultiplier(reason))
	return domain.SeverancePackage{
		SeveranceMonths:  money.RoundTo(months, 4),
		SeveranceAmount:  money.Round(months.Mul(averageMonthlySalary)),
		CalculationBasis: domain.BasisIndividual,
	}
}

// CalculateCollectiveSeverance computes the severance package for a
// collective dismissal.
func CalculateCollectiveSeverance(hireDate, terminationDate time.Time, averageMonthlySalary decimal.Decimal) domain.SeverancePackage {
	years := dateutil.SeniorityFraction(hireDate, terminationDate)
	months := CollectiveSeveranceMonths(years)
	return domain.SeverancePackage{
		SeveranceMonths:  money.RoundTo(months, 4),
		SeveranceAmount:  money.Round(months.Mul(averageMonthlySalary)),
		CalculationBasis: domain.BasisCollective,
	}
}

// RetirementBenefitRate is the share of the individual severance amount paid
// as a retirement benefit, banded by seniority.
func RetirementBenefitRate(seniorityYears decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	five := decimal.NewFromInt(5)
	ten := decimal.NewFromInt(10)
	twenty := decimal.NewFromInt(20)

	switch {
	case seniorityYears.LessThanOrEqual(one):
		return decimal.Zero
	case seniorityYears.LessThanOrEqual(five):
		return decimal.NewFromFloat(0.30)
	case seniorityYears.LessThanOrEqual(ten):
		return decimal.NewFromFloat(0.50)
	case seniorityYears.LessThanOrEqual(twenty):
		return decimal.NewFromFloat(0.75)
	default:
		return decimal.NewFromInt(1)
	}
}

// retirementMultiplier maps a retirement type to its adjustment: early
// retirement pays 80%, mandatory retirement 110%.
func retirementMultiplier(retirementType RetirementType) decimal.Decimal {
	switch retirementType {
	case RetirementEarly:
		return decimal.NewFromFloat(0.8)
	case RetirementMandatory:
		return decimal.NewFromFloat(1.1)
	default:
		return decimal.NewFromInt(1)
	}
}

// CalculateRetirementBenefit computes the retirement package as a percentage
// of the individual severance amount, adjusted by retirement type.
func CalculateRetirementBenefit(hireDate, retirementDate time.Time, averageMonthlySalary decimal.Decimal, retirementType RetirementType) domain.SeverancePackage {
	years := dateutil.SeniorityFraction(hireDate, retirementDate)
	severance := CalculateIndividualSeverance(hireDate, retirementDate, averageMonthlySalary, ReasonDismissal)
	rate := RetirementBenefitRate(years).Mul(retirementMultiplier(retirementType))
	return domain.SeverancePackage{
		SeveranceMonths:  money.RoundTo(severance.SeveranceMonths.Mul(rate), 4),
		SeveranceAmount:  money.Round(severance.SeveranceAmount.Mul(rate)),
		CalculationBasis: domain.BasisRetirement,
	}
}

// NoticePeriodMonths returns the notice owed on dismissal, banded by whole
// seniority years.
func NoticePeriodMonths(seniorityYears int) decimal.Decimal {
	switch {
	case seniorityYears < 5:
		return decimal.NewFromInt(1)
	case seniorityYears < 10:
		return decimal.NewFromInt(2)
	default:
		return decimal.NewFromInt(3)
	}
}
