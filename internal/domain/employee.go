package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxMode selects the ITS bracket rate table.
type TaxMode string

const (
	// TaxModeGeneral is the default "G" rate table (25%/40% upper tranches).
	TaxModeGeneral TaxMode = "G"
	// TaxModeTerritorial is the "T" rate table, which collapses tranches 2
	// and 3 to a single 20% rate.
	TaxModeTerritorial TaxMode = "T"
)

// SenioritySchema selects a seniority rate schedule.
type SenioritySchema string

const (
	SenioritySchemaStandard SenioritySchema = "standard"
	SenioritySchemaSpecial1 SenioritySchema = "special1"
	SenioritySchemaSpecial2 SenioritySchema = "special2"
)

// LeaveSchema selects a leave entitlement step-up schedule.
type LeaveSchema string

const (
	LeaveSchemaStandard LeaveSchema = "standard"
	LeaveSchemaExtended LeaveSchema = "extended"
)

// Employee carries the payroll-relevant attributes of one employee.
// The engine reads these values and never mutates them; record identity and
// persistence belong to the host application.
type Employee struct {
	ID             string          `yaml:"id" json:"id"`
	Name           string          `yaml:"name" json:"name"`
	HireDate       time.Time       `yaml:"hire_date" json:"hire_date"`
	SeniorityDate  *time.Time      `yaml:"seniority_date,omitempty" json:"seniority_date,omitempty"`
	ContractSalary decimal.Decimal `yaml:"contract_salary" json:"contract_salary"`
	Expatriate     bool            `yaml:"expatriate" json:"expatriate"`
	WorkZone       string          `yaml:"work_zone,omitempty" json:"work_zone,omitempty"`

	SenioritySchema SenioritySchema `yaml:"seniority_schema,omitempty" json:"seniority_schema,omitempty"`
	LeaveSchema     LeaveSchema     `yaml:"leave_schema,omitempty" json:"leave_schema,omitempty"`

	SubjectToCNSS bool `yaml:"subject_to_cnss" json:"subject_to_cnss"`
	SubjectToCNAM bool `yaml:"subject_to_cnam" json:"subject_to_cnam"`
	SubjectToITS  bool `yaml:"subject_to_its" json:"subject_to_its"`

	CNSSReimbursementRate        decimal.Decimal `yaml:"cnss_reimbursement_rate" json:"cnss_reimbursement_rate"`
	CNAMReimbursementRate        decimal.Decimal `yaml:"cnam_reimbursement_rate" json:"cnam_reimbursement_rate"`
	ITSTranche1ReimbursementRate decimal.Decimal `yaml:"its_tranche1_reimbursement_rate" json:"its_tranche1_reimbursement_rate"`
	ITSTranche2ReimbursementRate decimal.Decimal `yaml:"its_tranche2_reimbursement_rate" json:"its_tranche2_reimbursement_rate"`
	ITSTranche3ReimbursementRate decimal.Decimal `yaml:"its_tranche3_reimbursement_rate" json:"its_tranche3_reimbursement_rate"`
}

// SeniorityStart returns the date seniority is counted from: the dedicated
// seniority date when set, otherwise the hire date.
func (e *Employee) SeniorityStart() time.Time {
	if e.SeniorityDate != nil {
		return *e.SeniorityDate
	}
	return e.HireDate
}

// TaxProfile extracts the read-only snapshot the tax calculators consume.
func (e *Employee) TaxProfile() EmployeeTaxProfile {
	return EmployeeTaxProfile{
		Expatriate:                   e.Expatriate,
		SubjectToCNSS:                e.SubjectToCNSS,
		SubjectToCNAM:                e.SubjectToCNAM,
		SubjectToITS:                 e.SubjectToITS,
		CNSSReimbursementRate:        e.CNSSReimbursementRate,
		CNAMReimbursementRate:        e.CNAMReimbursementRate,
		ITSTranche1ReimbursementRate: e.ITSTranche1ReimbursementRate,
		ITSTranche2ReimbursementRate: e.ITSTranche2ReimbursementRate,
		ITSTranche3ReimbursementRate: e.ITSTranche3ReimbursementRate,
	}
}

// EmployeeTaxProfile is the per-employee snapshot consumed by the tax
// calculators. Reimbursement rates are percentages (50 means 50%).
type EmployeeTaxProfile struct {
	Expatriate    bool `yaml:"expatriate" json:"expatriate"`
	SubjectToCNSS bool `yaml:"subject_to_cnss" json:"subject_to_cnss"`
	SubjectToCNAM bool `yaml:"subject_to_cnam" json:"subject_to_cnam"`
	SubjectToITS  bool `yaml:"subject_to_its" json:"subject_to_its"`

	CNSSReimbursementRate        decimal.Decimal `yaml:"cnss_reimbursement_rate" json:"cnss_reimbursement_rate"`
	CNAMReimbursementRate        decimal.Decimal `yaml:"cnam_reimbursement_rate" json:"cnam_reimbursement_rate"`
	ITSTranche1ReimbursementRate decimal.Decimal `yaml:"its_tranche1_reimbursement_rate" json:"its_tranche1_reimbursement_rate"`
	ITSTranche2ReimbursementRate decimal.Decimal `yaml:"its_tranche2_reimbursement_rate" json:"its_tranche2_reimbursement_rate"`
	ITSTranche3ReimbursementRate decimal.Decimal `yaml:"its_tranche3_reimbursement_rate" json:"its_tranche3_reimbursement_rate"`
}

// TaxableBases carries the per-period amounts subject to each tax.
// All fields are expected to be >= 0 after upstream deduction netting.
type TaxableBases struct {
	CNSS           decimal.Decimal `yaml:"cnss" json:"cnss"`
	CNAM           decimal.Decimal `yaml:"cnam" json:"cnam"`
	ITS            decimal.Decimal `yaml:"its" json:"its"`
	BenefitsInKind decimal.Decimal `yaml:"benefits_in_kind" json:"benefits_in_kind"`
	NonITSGains    decimal.Decimal `yaml:"non_its_gains" json:"non_its_gains"`
}

// Clamped returns a copy with negative bases clamped to zero. Negative tax is
// never propagated downstream.
func (b TaxableBases) Clamped() TaxableBases {
	clamp := func(d decimal.Decimal) decimal.Decimal {
		if d.IsNegative() {
			return decimal.Zero
		}
		return d
	}
	return TaxableBases{
		CNSS:           clamp(b.CNSS),
		CNAM:           clamp(b.CNAM),
		ITS:            clamp(b.ITS),
		BenefitsInKind: clamp(b.BenefitsInKind),
		NonITSGains:    clamp(b.NonITSGains),
	}
}

// SystemTaxParameters is the immutable configuration snapshot for one
// calculation. It may vary by period or year in principle; the engine takes
// it as given.
type SystemTaxParameters struct {
	TaxAbatement               decimal.Decimal `yaml:"tax_abatement" json:"tax_abatement"`
	DeductCNSSFromITS          bool            `yaml:"deduct_cnss_from_its" json:"deduct_cnss_from_its"`
	DeductCNAMFromITS          bool            `yaml:"deduct_cnam_from_its" json:"deduct_cnam_from_its"`
	ITSTaxMode                 TaxMode         `yaml:"its_tax_mode" json:"its_tax_mode"`
	NonTaxableAllowanceCeiling decimal.Decimal `yaml:"non_taxable_allowance_ceiling" json:"non_taxable_allowance_ceiling"`
	CNSSCeiling                decimal.Decimal `yaml:"cnss_ceiling" json:"cnss_ceiling"`
	SMIG                       decimal.Decimal `yaml:"smig" json:"smig"`
	CurrencyRate               decimal.Decimal `yaml:"currency_rate" json:"currency_rate"`
}

// DefaultSystemTaxParameters returns the statutory defaults: CNSS ceiling
// 15000, mode "G", currency rate 1, both deductions enabled.
func DefaultSystemTaxParameters() SystemTaxParameters {
	return SystemTaxParameters{
		DeductCNSSFromITS: true,
		DeductCNAMFromITS: true,
		ITSTaxMode:        TaxModeGeneral,
		CNSSCeiling:       decimal.NewFromInt(15000),
		SMIG:              decimal.NewFromInt(3000),
		CurrencyRate:      decimal.NewFromInt(1),
	}
}

// EffectiveCurrencyRate returns the configured currency rate, defaulting to 1
// when unset.
func (p SystemTaxParameters) EffectiveCurrencyRate() decimal.Decimal {
	if p.CurrencyRate.IsZero() {
		return decimal.NewFromInt(1)
	}
	return p.CurrencyRate
}

// EffectiveCNSSCeiling returns the configured CNSS ceiling, defaulting to the
// statutory 15000 when unset.
func (p SystemTaxParameters) EffectiveCNSSCeiling() decimal.Decimal {
	if p.CNSSCeiling.IsZero() {
		return decimal.NewFromInt(15000)
	}
	return p.CNSSCeiling
}

// TaxBracket is one tranche of a progressive schedule. Brackets are ordered,
// non-overlapping and cover [0, inf); a nil Max means the unbounded top
// bracket. Rate is a fraction (0.15 means 15%).
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Width returns Max-Min, or nil for the unbounded top bracket.
func (b TaxBracket) Width() *decimal.Decimal {
	if b.Max == nil {
		return nil
	}
	w := b.Max.Sub(b.Min)
	return &w
}

// PayPeriod identifies one payroll month.
type PayPeriod struct {
	Year  int        `yaml:"year" json:"year"`
	Month time.Month `yaml:"month" json:"month"`
}

// Start returns the first day of the period.
func (p PayPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period.
func (p PayPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

func (p PayPeriod) String() string {
	return p.Start().Format("2006-01")
}

// Configuration is the complete input for a payroll run.
type Configuration struct {
	Parameters SystemTaxParameters     `yaml:"parameters" json:"parameters"`
	Period     PayPeriod               `yaml:"period" json:"period"`
	Employees  []Employee              `yaml:"employees" json:"employees"`
	Bases      map[string]TaxableBases `yaml:"bases" json:"bases"`
}
