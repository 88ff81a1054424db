package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rimpay/payroll-calculator/internal/domain"
)

// ConsoleFormatter renders a payroll run as an aligned text table, one row
// per employee.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Payroll period %s\n\n", run.Period)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGROSS\tCNSS\tCNAM\tITS T1\tITS T2\tITS T3\tITS\tNET")
	for _, r := range run.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.EmployeeID,
			r.Name,
			FormatCurrency(r.GrossITS),
			FormatCurrency(r.Result.CNSSEmployee),
			FormatCurrency(r.Result.CNAMEmployee),
			FormatCurrency(r.Result.ITSTranche1),
			FormatCurrency(r.Result.ITSTranche2),
			FormatCurrency(r.Result.ITSTranche3),
			FormatCurrency(r.Result.ITSTotal),
			FormatCurrency(r.NetSalary),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
