package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rimpay/payroll-calculator/internal/calculation"
	"github.com/rimpay/payroll-calculator/internal/config"
	"github.com/rimpay/payroll-calculator/internal/domain"
	"github.com/rimpay/payroll-calculator/internal/output"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "payroll",
		Short:   "Mauritanian payroll tax calculator (CNSS, CNAM, ITS)",
		Version: version,
		Long: `payroll computes statutory Mauritanian payroll deductions:
CNSS and CNAM social contributions, the progressive ITS income tax,
employer reimbursements, and the gross-from-net reverse solver.`,
		SilenceUsage: true,
	}

	root.AddCommand(newCalculateCmd())
	root.AddCommand(newGrossFromNetCmd())
	root.AddCommand(newExampleConfigCmd())
	return root
}

func newCalculateCmd() *cobra.Command {
	var (
		inputFile string
		format    string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run the tax calculation for all employees in a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			service := calculation.NewTaxCalculationService(cfg.Parameters)
			if debug {
				service.Logger = calculation.StderrLogger{}
			}

			run := &domain.PayrollRun{Period: cfg.Period}
			for _, emp := range cfg.Employees {
				bases := cfg.Bases[emp.ID]
				result := service.Calculate(emp.TaxProfile(), bases, cfg.Period.Year)
				net := service.NetFromGross(bases.ITS, bases.BenefitsInKind,
					emp.SubjectToCNSS, emp.SubjectToCNAM, emp.SubjectToITS,
					emp.Expatriate, cfg.Period.Year)
				run.Results = append(run.Results, domain.EmployeeResult{
					EmployeeID: emp.ID,
					Name:       emp.Name,
					Period:     cfg.Period,
					GrossITS:   bases.ITS,
					Result:     result,
					NetSalary:  net,
				})
			}

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %v)", format, output.AvailableFormatterNames())
			}
			out, err := formatter.Format(run)
			if err != nil {
				return fmt.Errorf("formatting results: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to the YAML configuration file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newGrossFromNetCmd() *cobra.Command {
	var (
		net        string
		bik        string
		expatriate bool
		noCNSS     bool
		noCNAM     bool
		year       int
	)

	cmd := &cobra.Command{
		Use:   "gross-from-net",
		Short: "Solve for the gross salary that yields a target net amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			netAmount, err := decimal.NewFromString(net)
			if err != nil {
				return fmt.Errorf("invalid net amount %q: %w", net, err)
			}
			bikAmount := decimal.Zero
			if bik != "" {
				bikAmount, err = decimal.NewFromString(bik)
				if err != nil {
					return fmt.Errorf("invalid benefits-in-kind amount %q: %w", bik, err)
				}
			}

			service := calculation.NewTaxCalculationService(domain.DefaultSystemTaxParameters())
			gross := service.GrossFromNet(netAmount, bikAmount, !noCNSS, !noCNAM, expatriate, year)
			check := service.NetFromGross(gross, bikAmount, !noCNSS, !noCNAM, true, expatriate, year)

			fmt.Fprintf(cmd.OutOrStdout(), "gross: %s\nnet:   %s\n",
				output.FormatCurrency(gross), output.FormatCurrency(check))
			return nil
		},
	}

	cmd.Flags().StringVarP(&net, "net", "n", "", "target net amount (required)")
	cmd.Flags().StringVar(&bik, "benefits-in-kind", "", "benefits-in-kind amount included in gross")
	cmd.Flags().BoolVar(&expatriate, "expatriate", false, "apply expatriate (halved) ITS rates")
	cmd.Flags().BoolVar(&noCNSS, "no-cnss", false, "skip the CNSS employee contribution")
	cmd.Flags().BoolVar(&noCNAM, "no-cnam", false, "skip the CNAM employee contribution")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "tax year")
	_ = cmd.MarkFlagRequired("net")
	return cmd
}

func newExampleConfigCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Write an example YAML configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			data, err := yaml.Marshal(parser.CreateExampleConfiguration())
			if err != nil {
				return fmt.Errorf("marshaling example configuration: %w", err)
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote example configuration to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "file to write (defaults to stdout)")
	return cmd
}
