package domain

import (
	"github.com/shopspring/decimal"
)

// TaxResult is the flat numeric output of one employee/period calculation.
// All amounts are rounded to 2 decimals and never negative. Downstream
// declaration exporters depend on the exact key names returned by Map, so
// they are part of the versioned interface.
type TaxResult struct {
	CNSSEmployee      decimal.Decimal `json:"cnss_employee"`
	CNSSEmployer      decimal.Decimal `json:"cnss_employer"`
	CNSSReimbursement decimal.Decimal `json:"cnss_reimbursement"`

	CNAMEmployee      decimal.Decimal `json:"cnam_employee"`
	CNAMEmployer      decimal.Decimal `json:"cnam_employer"`
	CNAMReimbursement decimal.Decimal `json:"cnam_reimbursement"`

	ITSTotal         decimal.Decimal `json:"its_total"`
	ITSTranche1      decimal.Decimal `json:"its_tranche1"`
	ITSTranche2      decimal.Decimal `json:"its_tranche2"`
	ITSTranche3      decimal.Decimal `json:"its_tranche3"`
	ITSReimbursement decimal.Decimal `json:"its_reimbursement"`

	// TaxableIncome is the ITS base after deductions, abatement and the
	// benefits-in-kind adjustment.
	TaxableIncome decimal.Decimal `json:"taxable_income"`
}

// Map returns the result under its stable declaration key names.
func (r TaxResult) Map() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"cnss_employee":      r.CNSSEmployee,
		"cnss_employer":      r.CNSSEmployer,
		"cnss_reimbursement": r.CNSSReimbursement,
		"cnam_employee":      r.CNAMEmployee,
		"cnam_employer":      r.CNAMEmployer,
		"cnam_reimbursement": r.CNAMReimbursement,
		"its_total":          r.ITSTotal,
		"its_tranche1":       r.ITSTranche1,
		"its_tranche2":       r.ITSTranche2,
		"its_tranche3":       r.ITSTranche3,
		"its_reimbursement":  r.ITSReimbursement,
		"taxable_income":     r.TaxableIncome,
	}
}

// TotalEmployeeWithholding is the sum withheld from the employee.
func (r TaxResult) TotalEmployeeWithholding() decimal.Decimal {
	return r.CNSSEmployee.Add(r.CNAMEmployee).Add(r.ITSTotal)
}

// TotalEmployerCharge is the employer-side contribution total.
func (r TaxResult) TotalEmployerCharge() decimal.Decimal {
	return r.CNSSEmployer.Add(r.CNAMEmployer)
}

// CalculationBasis identifies which severance formula produced a package.
type CalculationBasis string

const (
	BasisIndividual CalculationBasis = "individual"
	BasisCollective CalculationBasis = "collective"
	BasisRetirement CalculationBasis = "retirement"
)

// SeverancePackage is the output of a termination-event computation.
// It is computed once per termination and never mutated afterward.
type SeverancePackage struct {
	SeveranceMonths  decimal.Decimal  `json:"severance_months"`
	SeveranceAmount  decimal.Decimal  `json:"severance_amount"`
	CalculationBasis CalculationBasis `json:"calculation_basis"`
}

// EmployeeResult pairs an employee with the tax result of one period, for
// formatter consumption.
type EmployeeResult struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Period     PayPeriod       `json:"period"`
	GrossITS   decimal.Decimal `json:"gross_its"`
	Result     TaxResult       `json:"result"`
	NetSalary  decimal.Decimal `json:"net_salary"`
}

// PayrollRun is the full output of a calculate invocation.
type PayrollRun struct {
	Period  PayPeriod        `json:"period"`
	Results []EmployeeResult `json:"results"`
}
