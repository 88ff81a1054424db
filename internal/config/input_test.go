package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimpay/payroll-calculator/internal/domain"
)

func TestExampleConfigurationIsValid(t *testing.T) {
	parser := NewInputParser()
	cfg := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(cfg))
	assert.Len(t, cfg.Employees, 2)
	assert.Len(t, cfg.Bases, 2)
	assert.True(t, cfg.Employees[1].Expatriate)
}

func TestLoadFromFile(t *testing.T) {
	yamlContent := `
parameters:
  deduct_cnss_from_its: true
  deduct_cnam_from_its: true
  its_tax_mode: "G"
  cnss_ceiling: 15000
  smig: 3000
  currency_rate: 1
period:
  year: 2025
  month: 6
employees:
  - id: "E001"
    name: "Test Employee"
    hire_date: 2020-01-15T00:00:00Z
    contract_salary: 45000
    subject_to_cnss: true
    subject_to_cnam: true
    subject_to_its: true
bases:
  E001:
    cnss: 45000
    cnam: 45000
    its: 45000
`
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	parser := NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2025, cfg.Period.Year)
	assert.Equal(t, time.June, cfg.Period.Month)
	require.Len(t, cfg.Employees, 1)
	assert.Equal(t, "E001", cfg.Employees[0].ID)
	assert.True(t, decimal.NewFromInt(45000).Equal(cfg.Employees[0].ContractSalary))
	assert.True(t, decimal.NewFromInt(45000).Equal(cfg.Bases["E001"].ITS))
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0o644))

	parser := NewInputParser()
	_, err := parser.LoadFromFile(path)
	assert.Error(t, err)
}

func validConfig() *domain.Configuration {
	return NewInputParser().CreateExampleConfiguration()
}

func TestValidateConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Configuration)
	}{
		{"no employees", func(c *domain.Configuration) { c.Employees = nil }},
		{"period year out of range", func(c *domain.Configuration) { c.Period.Year = 1890 }},
		{"period month out of range", func(c *domain.Configuration) { c.Period.Month = 13 }},
		{"duplicate employee id", func(c *domain.Configuration) {
			c.Employees = append(c.Employees, c.Employees[0])
		}},
		{"missing employee id", func(c *domain.Configuration) { c.Employees[0].ID = "" }},
		{"missing hire date", func(c *domain.Configuration) { c.Employees[0].HireDate = time.Time{} }},
		{"negative contract salary", func(c *domain.Configuration) {
			c.Employees[0].ContractSalary = decimal.NewFromInt(-1)
		}},
		{"reimbursement rate above 100", func(c *domain.Configuration) {
			c.Employees[0].CNSSReimbursementRate = decimal.NewFromInt(150)
		}},
		{"negative reimbursement rate", func(c *domain.Configuration) {
			c.Employees[0].ITSTranche2ReimbursementRate = decimal.NewFromInt(-5)
		}},
		{"bases for unknown employee", func(c *domain.Configuration) {
			c.Bases["GHOST"] = domain.TaxableBases{}
		}},
		{"negative cnss ceiling", func(c *domain.Configuration) {
			c.Parameters.CNSSCeiling = decimal.NewFromInt(-1)
		}},
		{"negative abatement", func(c *domain.Configuration) {
			c.Parameters.TaxAbatement = decimal.NewFromInt(-1)
		}},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, parser.ValidateConfiguration(cfg))
		})
	}
}

// Unrecognized tax modes pass validation: the engine treats them as "G" and
// existing configurations rely on that.
func TestValidateConfigurationToleratesUnknownTaxMode(t *testing.T) {
	cfg := validConfig()
	cfg.Parameters.ITSTaxMode = "Z"
	assert.NoError(t, NewInputParser().ValidateConfiguration(cfg))
}
