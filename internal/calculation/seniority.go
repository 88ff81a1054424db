package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/internal/domain"
)

// Seniority rate schedules. Rates are fractions of salary (0.30 means 30%).
//
// Employees below one year of seniority are not yet eligible: every schedule
// returns zero, never an error.

// StandardSeniorityRate follows the statutory schedule: 2% per year for the
// first 13 years, then 28%/29% at 14/15 years and a 30% cap from 16 on.
func StandardSeniorityRate(seniorityYears int) decimal.Decimal {
	switch {
	case seniorityYears < 1:
		return decimal.Zero
	case seniorityYears <= 13:
		return decimal.NewFromInt(int64(seniorityYears)).Mul(decimal.NewFromFloat(0.02))
	case seniorityYears == 14:
		return decimal.NewFromFloat(0.28)
	case seniorityYears == 15:
		return decimal.NewFromFloat(0.29)
	default:
		return decimal.NewFromFloat(0.30)
	}
}

// Special1SeniorityRate matches the standard schedule below 16 years, then
// keeps growing by one point per year with no cap.
func Special1SeniorityRate(seniorityYears int) decimal.Decimal {
	if seniorityYears < 16 {
		return StandardSeniorityRate(seniorityYears)
	}
	extra := decimal.NewFromInt(int64(seniorityYears - 16)).Mul(decimal.NewFromFloat(0.01))
	return decimal.NewFromFloat(0.30).Add(extra)
}

// Special2SeniorityRate grants 3% per year below 15 years, then
// 45% + 2% per additional year with no cap.
func Special2SeniorityRate(seniorityYears int) decimal.Decimal {
	switch {
	case seniorityYears < 1:
		return decimal.Zero
	case seniorityYears < 15:
		return decimal.NewFromInt(int64(seniorityYears)).Mul(decimal.NewFromFloat(0.03))
	default:
		extra := decimal.NewFromInt(int64(seniorityYears - 15)).Mul(decimal.NewFromFloat(0.02))
		return decimal.NewFromFloat(0.45).Add(extra)
	}
}

// SeniorityRate dispatches on the configured schema. An unknown schema uses
// the standard schedule.
func SeniorityRate(schema domain.SenioritySchema, seniorityYears int) decimal.Decimal {
	switch schema {
	case domain.SenioritySchemaSpecial1:
		return Special1SeniorityRate(seniorityYears)
	case domain.SenioritySchemaSpecial2:
		return Special2SeniorityRate(seniorityYears)
	default:
		return StandardSeniorityRate(seniorityYears)
	}
}
