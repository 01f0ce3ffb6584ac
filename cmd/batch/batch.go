// Package batch handles the validation of every report in a directory
package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"lldbank/lld-validator/cmd/common"
	"lldbank/lld-validator/cmd/root"
	"lldbank/lld-validator/internal/batch"

	"github.com/spf13/cobra"
)

var (
	inputDir   string
	withReport bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Validate every report file of a directory",
	Long: `Validate every CSV report directly inside a directory. Files that already
carry the _validated marker are skipped. A file that cannot be validated is
reported and the batch carries on with the next one.

Example:
  lld-validator batch -i reports/2024-03/ --report`,
	Args: cobra.NoArgs,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory holding the report files")
	Cmd.Flags().BoolVarP(&withReport, "report", "r", false, "Also write a discrepancy listing per file")
	_ = Cmd.MarkFlagRequired("input")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	defer c.Close()

	summary, err := batch.NewRunner(c.GetFileRunner(), c.GetLogger()).ValidateDir(cmd.Context(), inputDir, withReport)
	if err != nil {
		return err
	}
	if err := printSummary(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d files could not be validated", failed, len(summary.Outcomes))
	}
	return nil
}

func printSummary(w io.Writer, summary *batch.Summary) error {
	if len(summary.Outcomes) == 0 {
		fmt.Fprintln(w, "No report files to validate")
	} else {
		rows := make([][]string, 0, len(summary.Outcomes))
		for _, o := range summary.Outcomes {
			name := filepath.Base(o.Path)
			if o.Err != nil {
				rows = append(rows, []string{name, "-", "-", common.DescribeRunError(o.Err)})
				continue
			}
			period := fmt.Sprintf("%d-%02d", o.Result.Year, o.Result.Month)
			rows = append(rows, []string{name, period, strconv.Itoa(o.Result.Report.DiscrepancyCount()), filepath.Base(o.Result.OutputPath)})
		}
		if err := common.PrintTable(w, []string{"FILE", "PERIOD", "DISCREPANCIES", "RESULT"}, rows); err != nil {
			return err
		}
	}
	for _, path := range summary.Skipped {
		fmt.Fprintf(w, "Skipped %s (already validated)\n", filepath.Base(path))
	}
	fmt.Fprintf(w, "Files validated: %d, failed: %d, discrepancies: %d\n",
		len(summary.Outcomes)-summary.Failed(), summary.Failed(), summary.Discrepancies())
	return nil
}
