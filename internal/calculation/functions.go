package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/internal/domain"
	"github.com/rimpay/payroll-calculator/pkg/dateutil"
	"github.com/rimpay/payroll-calculator/pkg/money"
)

// FunctionCode identifies one formula of the payroll function catalogue.
type FunctionCode string

const (
	FuncWorkedDays            FunctionCode = "F01" // NJT: days actually worked in the period
	FuncDailyBaseSalary       FunctionCode = "F02"
	FuncHourlyBaseSalary      FunctionCode = "F03"
	FuncSeniorityRate         FunctionCode = "F04" // standard schedule
	FuncCumulativeTaxable     FunctionCode = "F05"
	FuncCumulativeNonTaxable  FunctionCode = "F06"
	FuncCumulativeWorkedDays  FunctionCode = "F07"
	FuncMonthlyGross          FunctionCode = "F08" // fixed contract salary
	FuncSMIG                  FunctionCode = "F09"
	FuncSMIGHourly            FunctionCode = "F10"
	FuncSpecialSeniorityRate  FunctionCode = "F11" // employee's configured schema
	FuncDismissalRate         FunctionCode = "F12" // individual severance months
	FuncCollectiveDismissal   FunctionCode = "F13" // collective severance months
	FuncRetirementRate        FunctionCode = "F14"
	FuncPSRARate              FunctionCode = "F15"
	FuncNoticePeriod          FunctionCode = "F16"
	FuncZoneSMIGMultiplier    FunctionCode = "F17"
	FuncAttendanceRate        FunctionCode = "F18"
	FuncHousingAllowanceBase  FunctionCode = "F19"
	FuncSalaryIncrease        FunctionCode = "F20"
	FuncNetSalary             FunctionCode = "F21"
	FuncChildrenCount         FunctionCode = "F22"
	FuncAverageMonthlyGross   FunctionCode = "F23"
	FuncMonthlyLeaveAllowance FunctionCode = "F24"
)

// CumulativeKind selects a period-to-date aggregate from the data source.
type CumulativeKind string

const (
	CumulativeTaxableGross    CumulativeKind = "taxable_gross"
	CumulativeNonTaxableGross CumulativeKind = "non_taxable_gross"
	CumulativeWorkedDays      CumulativeKind = "worked_days"
	CumulativeGross12Months   CumulativeKind = "gross_12_months"
)

// PayrollDataSource is the seam to the persistence layer. Implementations
// return ok=false when no record exists; the catalogue resolves every miss to
// zero rather than an error, so a payroll run never aborts on one employee.
type PayrollDataSource interface {
	WorkedDays(employeeID string, period domain.PayPeriod) (decimal.Decimal, bool)
	CumulativeAmount(employeeID string, kind CumulativeKind, period domain.PayPeriod) (decimal.Decimal, bool)
	ChildrenCount(employeeID string) (int, bool)
	SalaryIncrease(employeeID string, period domain.PayPeriod) (decimal.Decimal, bool)
	HousingAllowanceBase(employeeID string) (decimal.Decimal, bool)
	ZoneSMIGMultiplier(zone string) (decimal.Decimal, bool)
	PSRARate(employeeID string) (decimal.Decimal, bool)
}

// FunctionContext carries everything one catalogue formula may consume.
// Employee, Data and Taxes may be nil; every formula degrades to zero.
type FunctionContext struct {
	Employee *domain.Employee
	Period   domain.PayPeriod
	Params   domain.SystemTaxParameters
	Data     PayrollDataSource
	Taxes    *TaxCalculationService
}

// PayrollFunction is one formula of the catalogue.
type PayrollFunction func(ctx FunctionContext) decimal.Decimal

// Statutory time divisors: 30 calendar days and 173.33 working hours per
// month (40-hour week).
var (
	daysPerMonth  = decimal.NewFromInt(30)
	hoursPerMonth = decimal.NewFromFloat(173.33)
)

// FunctionCatalogue dispatches payroll function codes to their formulas.
// It is a total function over strings: unknown or empty codes resolve to
// 0.00, never an error, because codes originate from user-authored formula
// expressions.
type FunctionCatalogue struct {
	handlers map[FunctionCode]PayrollFunction
	logger   Logger
}

// NewFunctionCatalogue builds the catalogue with the full F01-F24 table.
func NewFunctionCatalogue(logger Logger) *FunctionCatalogue {
	if logger == nil {
		logger = NopLogger{}
	}
	c := &FunctionCatalogue{logger: logger}
	c.handlers = map[FunctionCode]PayrollFunction{
		FuncWorkedDays:            workedDays,
		FuncDailyBaseSalary:       dailyBaseSalary,
		FuncHourlyBaseSalary:      hourlyBaseSalary,
		FuncSeniorityRate:         standardSeniorityRate,
		FuncCumulativeTaxable:     cumulative(CumulativeTaxableGross),
		FuncCumulativeNonTaxable:  cumulative(CumulativeNonTaxableGross),
		FuncCumulativeWorkedDays:  cumulative(CumulativeWorkedDays),
		FuncMonthlyGross:          monthlyGross,
		FuncSMIG:                  smig,
		FuncSMIGHourly:            smigHourly,
		FuncSpecialSeniorityRate:  specialSeniorityRate,
		FuncDismissalRate:         dismissalRate,
		FuncCollectiveDismissal:   collectiveDismissalRate,
		FuncRetirementRate:        retirementRate,
		FuncPSRARate:              psraRate,
		FuncNoticePeriod:          noticePeriod,
		FuncZoneSMIGMultiplier:    zoneSMIGMultiplier,
		FuncAttendanceRate:        attendanceRate,
		FuncHousingAllowanceBase:  housingAllowanceBase,
		FuncSalaryIncrease:        salaryIncrease,
		FuncNetSalary:             netSalary,
		FuncChildrenCount:         childrenCount,
		FuncAverageMonthlyGross:   averageMonthlyGross,
		FuncMonthlyLeaveAllowance: monthlyLeaveAllowance,
	}
	return c
}

// Evaluate resolves a code and runs its formula. Unknown codes log a warning
// and return 0.00.
func (c *FunctionCatalogue) Evaluate(code string, ctx FunctionContext) decimal.Decimal {
	handler, ok := c.handlers[FunctionCode(code)]
	if !ok {
		if code != "" {
			c.logger.Warnf("unknown payroll function code %q resolved to zero", code)
		}
		return money.Round(decimal.Zero)
	}
	return handler(ctx)
}

// Codes returns the known function codes.
func (c *FunctionCatalogue) Codes() []FunctionCode {
	codes := make([]FunctionCode, 0, len(c.handlers))
	for code := range c.handlers {
		codes = append(codes, code)
	}
	return codes
}

func workedDays(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Data == nil {
		return money.Round(decimal.Zero)
	}
	njt, ok := ctx.Data.WorkedDays(ctx.Employee.ID, ctx.Period)
	if !ok {
		return money.Round(decimal.Zero)
	}
	return money.Round(njt)
}

func dailyBaseSalary(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	return money.Round(money.SafeDivide(ctx.Employee.ContractSalary, daysPerMonth))
}

func hourlyBaseSalary(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	return money.Round(money.SafeDivide(ctx.Employee.ContractSalary, hoursPerMonth))
}

func standardSeniorityRate(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	years := dateutil.SeniorityYears(ctx.Employee.SeniorityStart(), ctx.Period.End())
	return money.RoundTo(StandardSeniorityRate(years), 4)
}

func specialSeniorityRate(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	years := dateutil.SeniorityYears(ctx.Employee.SeniorityStart(), ctx.Period.End())
	return money.RoundTo(SeniorityRate(ctx.Employee.SenioritySchema, years), 4)
}

func cumulative(kind CumulativeKind) PayrollFunction {
	return func(ctx FunctionContext) decimal.Decimal {
		if ctx.Employee == nil || ctx.Data == nil {
			return money.Round(decimal.Zero)
		}
		amount, ok := ctx.Data.CumulativeAmount(ctx.Employee.ID, kind, ctx.Period)
		if !ok {
			return money.Round(decimal.Zero)
		}
		return money.Round(amount)
	}
}

func monthlyGross(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	return money.Round(ctx.Employee.ContractSalary)
}

func smig(ctx FunctionContext) decimal.Decimal {
	return money.Round(ctx.Params.SMIG)
}

func smigHourly(ctx FunctionContext) decimal.Decimal {
	return money.Round(money.SafeDivide(ctx.Params.SMIG, hoursPerMonth))
}

func dismissalRate(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	years := dateutil.SeniorityFraction(ctx.Employee.SeniorityStart(), ctx.Period.End())
	return money.RoundTo(IndividualSeveranceMonths(years), 4)
}

func collectiveDismissalRate(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	years := dateutil.SeniorityFraction(ctx.Employee.SeniorityStart(), ctx.Period.End())
	return money.RoundTo(CollectiveSeveranceMonths(years), 4)
}

func retirementRate(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	years := dateutil.SeniorityFraction(ctx.Employee.SeniorityStart(), ctx.Period.End())
	return money.RoundTo(RetirementBenefitRate(years), 4)
}

func psraRate(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Data == nil {
		return money.Round(decimal.Zero)
	}
	rate, ok := ctx.Data.PSRARate(ctx.Employee.ID)
	if !ok {
		return money.Round(decimal.Zero)
	}
	return money.RoundTo(rate, 4)
}

func noticePeriod(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	years := dateutil.SeniorityYears(ctx.Employee.SeniorityStart(), ctx.Period.End())
	return money.Round(NoticePeriodMonths(years))
}

func zoneSMIGMultiplier(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Data == nil {
		return money.RoundTo(decimal.NewFromInt(1), 4)
	}
	multiplier, ok := ctx.Data.ZoneSMIGMultiplier(ctx.Employee.WorkZone)
	if !ok {
		return money.RoundTo(decimal.NewFromInt(1), 4)
	}
	return money.RoundTo(multiplier, 4)
}

func attendanceRate(ctx FunctionContext) decimal.Decimal {
	njt := workedDays(ctx)
	rate := money.SafeDivide(njt, daysPerMonth)
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		rate = decimal.NewFromInt(1)
	}
	return money.RoundTo(rate, 4)
}

func housingAllowanceBase(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Data == nil {
		return money.Round(decimal.Zero)
	}
	base, ok := ctx.Data.HousingAllowanceBase(ctx.Employee.ID)
	if !ok {
		return money.Round(decimal.Zero)
	}
	return money.Round(base)
}

func salaryIncrease(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Data == nil {
		return money.Round(decimal.Zero)
	}
	increase, ok := ctx.Data.SalaryIncrease(ctx.Employee.ID, ctx.Period)
	if !ok {
		return money.Round(decimal.Zero)
	}
	return money.Round(increase)
}

// netSalary composes CNSS+CNAM+ITS through the service's shared routine, the
// same path the orchestrator uses.
func netSalary(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Taxes == nil {
		return money.Round(decimal.Zero)
	}
	return ctx.Taxes.NetFromGross(
		ctx.Employee.ContractSalary,
		decimal.Zero,
		ctx.Employee.SubjectToCNSS,
		ctx.Employee.SubjectToCNAM,
		ctx.Employee.SubjectToITS,
		ctx.Employee.Expatriate,
		ctx.Period.Year,
	)
}

func childrenCount(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Data == nil {
		return money.Round(decimal.Zero)
	}
	count, ok := ctx.Data.ChildrenCount(ctx.Employee.ID)
	if !ok {
		return money.Round(decimal.Zero)
	}
	return money.Round(decimal.NewFromInt(int64(count)))
}

func averageMonthlyGross(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil || ctx.Data == nil {
		return money.Round(decimal.Zero)
	}
	total, ok := ctx.Data.CumulativeAmount(ctx.Employee.ID, CumulativeGross12Months, ctx.Period)
	if !ok {
		return money.Round(decimal.Zero)
	}
	return money.Round(total.Div(decimal.NewFromInt(12)))
}

func monthlyLeaveAllowance(ctx FunctionContext) decimal.Decimal {
	if ctx.Employee == nil {
		return money.Round(decimal.Zero)
	}
	years := dateutil.SeniorityYears(ctx.Employee.SeniorityStart(), ctx.Period.End())
	daily := money.SafeDivide(ctx.Employee.ContractSalary, daysPerMonth)
	accrual := MonthlyLeaveAccrual(ctx.Employee.LeaveSchema, years)
	return money.Round(daily.Mul(accrual))
}
