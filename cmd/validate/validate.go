// Package validate handles the validation of report files
package validate

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"lldbank/lld-validator/cmd/common"
	"lldbank/lld-validator/cmd/root"
	"lldbank/lld-validator/internal/validator"

	"github.com/spf13/cobra"
)

var (
	input      string
	withReport bool
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate the party categories and statuses of a report",
	Long: `Validate checks the receiver and payer of every row against the reference
data and writes an annotated copy named <file>_<year>_<month>_validated.csv
next to the input. With --report, a listing of every discrepancy is written
as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Report file to validate")
	Cmd.Flags().BoolVarP(&withReport, "report", "r", false, "Also write the discrepancy listing")
}

func validateFunc(cmd *cobra.Command, args []string) error {
	path := input
	if path == "" && len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no input file given, use --input or pass the file as argument")
	}

	c, err := root.Container()
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.GetFileRunner().ValidateFile(cmd.Context(), path, withReport)
	if err != nil {
		return errors.New(common.DescribeRunError(err))
	}
	return printResult(cmd.OutOrStdout(), result)
}

func printResult(w io.Writer, result *validator.FileResult) error {
	report := result.Report
	fmt.Fprintf(w, "Validated %s (%d rows, period %d-%02d)\n", result.InputPath, len(report.Records), result.Year, result.Month)
	fmt.Fprintf(w, "Discrepancies found: %d\n", report.DiscrepancyCount())
	fmt.Fprintf(w, "Annotated copy: %s\n", result.OutputPath)
	if result.ReportPath != "" {
		fmt.Fprintf(w, "Discrepancy listing: %s\n", result.ReportPath)
	}

	if len(report.Discrepancies) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(report.Discrepancies))
		for _, d := range report.Discrepancies {
			rows = append(rows, []string{strconv.Itoa(d.Row), d.Column, d.Current, d.Suggested, d.Name, d.BankCode, d.Status})
		}
		if err := common.PrintTable(w, []string{"ROW", "COLUMN", "CURRENT", "SUGGESTED", "NAME", "BANK CODE", "STATUS"}, rows); err != nil {
			return err
		}
	}

	if len(report.Anomalies) > 0 {
		fmt.Fprintf(w, "\nField anomalies: %d\n", len(report.Anomalies))
		rows := make([][]string, 0, len(report.Anomalies))
		for _, a := range report.Anomalies {
			rows = append(rows, []string{strconv.Itoa(a.Row), a.Column, a.Value, a.Reason})
		}
		return common.PrintTable(w, []string{"ROW", "COLUMN", "VALUE", "REASON"}, rows)
	}
	return nil
}
