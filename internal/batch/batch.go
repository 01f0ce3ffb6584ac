// Package batch validates every report file of a directory in one go.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/recordio"
	"lldbank/lld-validator/internal/validator"
)

// FileValidator is the single-file operation a batch fans out to.
type FileValidator interface {
	ValidateFile(ctx context.Context, inputPath string, withReport bool) (*validator.FileResult, error)
}

// Outcome is the result of one file of a batch. Exactly one of Result and
// Err is set.
type Outcome struct {
	Path   string
	Result *validator.FileResult
	Err    error
}

// Summary collects the outcomes of a batch in file name order.
type Summary struct {
	Outcomes []Outcome
	Skipped  []string
}

// Failed returns the number of files that could not be validated.
func (s *Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Discrepancies returns the total discrepancy count of all validated files.
func (s *Summary) Discrepancies() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Result != nil {
			n += o.Result.Report.DiscrepancyCount()
		}
	}
	return n
}

// Runner validates the report files of a directory one after the other.
type Runner struct {
	files  FileValidator
	logger logging.Logger
}

// NewRunner creates a Runner.
func NewRunner(files FileValidator, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Runner{files: files, logger: logger.WithField("component", "batch")}
}

// Candidates lists the CSV files directly inside dir that can be validated.
// Files produced by an earlier run are returned separately as skipped.
func Candidates(dir string) (inputs, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".csv") || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if strings.Contains(name, recordio.ValidatedMarker) {
			skipped = append(skipped, path)
			continue
		}
		inputs = append(inputs, path)
	}
	sort.Strings(inputs)
	sort.Strings(skipped)
	return inputs, skipped, nil
}

// ValidateDir validates every candidate of dir. A failing file does not stop
// the batch; cancelling ctx does.
func (r *Runner) ValidateDir(ctx context.Context, dir string, withReport bool) (*Summary, error) {
	inputs, skipped, err := Candidates(dir)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Batch started",
		logging.Field{Key: "directory", Value: dir},
		logging.Field{Key: "files", Value: len(inputs)},
		logging.Field{Key: "skipped", Value: len(skipped)})

	summary := &Summary{Skipped: skipped}
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := r.files.ValidateFile(ctx, path, withReport)
		if err != nil {
			r.logger.WithError(err).Warn("File not validated", logging.Field{Key: logging.FieldInputFile, Value: path})
		}
		summary.Outcomes = append(summary.Outcomes, Outcome{Path: path, Result: res, Err: err})
	}

	r.logger.Info("Batch finished",
		logging.Field{Key: "validated", Value: len(summary.Outcomes) - summary.Failed()},
		logging.Field{Key: "failed", Value: summary.Failed()},
		logging.Field{Key: "discrepancies", Value: summary.Discrepancies()})
	return summary, nil
}
