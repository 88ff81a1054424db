package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rimpay/payroll-calculator/internal/domain"
)

// InputParser handles parsing of payroll run configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a payroll run configuration from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateParameters(&config.Parameters); err != nil {
		return fmt.Errorf("parameters validation failed: %w", err)
	}

	if config.Period.Year < 2000 || config.Period.Year > 2100 {
		return fmt.Errorf("period year %d out of range", config.Period.Year)
	}
	if config.Period.Month < time.January || config.Period.Month > time.December {
		return fmt.Errorf("period month %d out of range", config.Period.Month)
	}

	if len(config.Employees) == 0 {
		return fmt.Errorf("no employees provided")
	}

	seen := make(map[string]bool, len(config.Employees))
	for i, employee := range config.Employees {
		if err := ip.validateEmployee(&employee); err != nil {
			return fmt.Errorf("employee %d (%s) validation failed: %w", i, employee.ID, err)
		}
		if seen[employee.ID] {
			return fmt.Errorf("duplicate employee id %q", employee.ID)
		}
		seen[employee.ID] = true
	}

	for id := range config.Bases {
		if !seen[id] {
			return fmt.Errorf("taxable bases reference unknown employee id %q", id)
		}
	}

	return nil
}

// validateParameters checks the system tax parameter snapshot.
// The tax mode is deliberately NOT restricted to {"G","T"}: the engine treats
// any other value as "G", and downstream declarations may depend on that
// tolerance.
func (ip *InputParser) validateParameters(params *domain.SystemTaxParameters) error {
	if params.TaxAbatement.IsNegative() {
		return fmt.Errorf("tax abatement cannot be negative")
	}
	if params.CNSSCeiling.IsNegative() {
		return fmt.Errorf("CNSS ceiling cannot be negative")
	}
	if params.SMIG.IsNegative() {
		return fmt.Errorf("SMIG cannot be negative")
	}
	if params.CurrencyRate.IsNegative() {
		return fmt.Errorf("currency rate cannot be negative")
	}
	if params.NonTaxableAllowanceCeiling.IsNegative() {
		return fmt.Errorf("non-taxable allowance ceiling cannot be negative")
	}
	return nil
}

// validateEmployee validates a single employee's record.
func (ip *InputParser) validateEmployee(employee *domain.Employee) error {
	if employee.ID == "" {
		return fmt.Errorf("employee id is required")
	}
	if employee.HireDate.IsZero() {
		return fmt.Errorf("hire date is required")
	}
	if employee.SeniorityDate != nil && employee.SeniorityDate.After(time.Now().AddDate(1, 0, 0)) {
		return fmt.Errorf("seniority date is unreasonably far in the future")
	}
	if employee.ContractSalary.IsNegative() {
		return fmt.Errorf("contract salary cannot be negative")
	}
	for _, rate := range []decimal.Decimal{
		employee.CNSSReimbursementRate,
		employee.CNAMReimbursementRate,
		employee.ITSTranche1ReimbursementRate,
		employee.ITSTranche2ReimbursementRate,
		employee.ITSTranche3ReimbursementRate,
	} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("reimbursement rates must be between 0 and 100")
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example payroll run configuration.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	hireNational, _ := time.Parse("2006-01-02", "2015-03-16")
	hireExpat, _ := time.Parse("2006-01-02", "2021-09-01")

	return &domain.Configuration{
		Parameters: domain.DefaultSystemTaxParameters(),
		Period:     domain.PayPeriod{Year: 2025, Month: time.June},
		Employees: []domain.Employee{
			{
				ID:             "E001",
				Name:           "Mohamed Ould Ahmed",
				HireDate:       hireNational,
				ContractSalary: decimal.NewFromInt(45000),
				SubjectToCNSS:  true,
				SubjectToCNAM:  true,
				SubjectToITS:   true,
			},
			{
				ID:                           "E002",
				Name:                         "Claire Dubois",
				HireDate:                     hireExpat,
				ContractSalary:               decimal.NewFromInt(120000),
				Expatriate:                   true,
				SubjectToCNSS:                true,
				SubjectToCNAM:                true,
				SubjectToITS:                 true,
				ITSTranche2ReimbursementRate: decimal.NewFromInt(50),
			},
		},
		Bases: map[string]domain.TaxableBases{
			"E001": {
				CNSS: decimal.NewFromInt(45000),
				CNAM: decimal.NewFromInt(45000),
				ITS:  decimal.NewFromInt(45000),
			},
			"E002": {
				CNSS:           decimal.NewFromInt(120000),
				CNAM:           decimal.NewFromInt(120000),
				ITS:            decimal.NewFromInt(120000),
				BenefitsInKind: decimal.NewFromInt(20000),
			},
		},
	}
}
