package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/internal/domain"
	"github.com/rimpay/payroll-calculator/pkg/money"
)

// Annual leave entitlement: 21 base days per year with seniority step-ups at
// 5, 10 and 15 years. The two schemas differ only in the magnitude of the
// final step.

var twelve = decimal.NewFromInt(12)

// AnnualLeaveDays returns the yearly leave entitlement for a seniority.
// Standard schema: 21 +2@5y +2@10y +2@15y. Extended schema: +4 at 15 years.
func AnnualLeaveDays(schema domain.LeaveSchema, seniorityYears int) decimal.Decimal {
	days := decimal.NewFromInt(21)
	if seniorityYears >= 5 {
		days = days.Add(decimal.NewFromInt(2))
	}
	if seniorityYears >= 10 {
		days = days.Add(decimal.NewFromInt(2))
	}
	if seniorityYears >= 15 {
		step := decimal.NewFromInt(2)
		if schema == domain.LeaveSchemaExtended {
			step = decimal.NewFromInt(4)
		}
		days = days.Add(step)
	}
	return days
}

// MonthlyLeaveAccrual returns the leave days accrued per month worked.
func MonthlyLeaveAccrual(schema domain.LeaveSchema, seniorityYears int) decimal.Decimal {
	return AnnualLeaveDays(schema, seniorityYears).Div(twelve)
}

// LeaveCompensation values a leave balance: daily wage x days x compensation
// rate, with an optional 15% allowance loading.
func LeaveCompensation(dailyWage, leaveDays, compensationRate decimal.Decimal, allowanceLoading bool) decimal.Decimal {
	amount := dailyWage.Mul(leaveDays).Mul(compensationRate)
	if allowanceLoading {
		amount = amount.Mul(decimal.NewFromFloat(1.15))
	}
	return money.Round(amount)
}
