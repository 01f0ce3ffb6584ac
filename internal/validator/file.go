package validator

import (
	"context"
	"os"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/recordio"
)

// FileResult describes a completed file run.
type FileResult struct {
	Report     *Report
	InputPath  string
	OutputPath string
	// ReportPath is empty when no discrepancy listing was requested.
	ReportPath string
	Year       int
	Month      int
}

// FileRunner validates a report file end to end: read, check the output
// targets, validate, then write the annotated copy.
type FileRunner struct {
	validator *Validator
	reader    *recordio.Reader
	writer    *recordio.Writer
	logger    logging.Logger
}

// NewFileRunner wires a Validator to CSV input and output.
func NewFileRunner(v *Validator, reader *recordio.Reader, writer *recordio.Writer, logger logging.Logger) *FileRunner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &FileRunner{validator: v, reader: reader, writer: writer, logger: logger}
}

// ValidateFile runs a validation over inputPath. Input problems come back as
// *runerror.InputError and a locked output as *runerror.ContentionError.
// On any failure no output file is left behind.
func (r *FileRunner) ValidateFile(ctx context.Context, inputPath string, withReport bool) (*FileResult, error) {
	table, err := r.reader.Read(inputPath)
	if err != nil {
		return nil, err
	}

	res := &FileResult{
		InputPath:  inputPath,
		OutputPath: recordio.OutputPath(inputPath, table.Year, table.Month),
		Year:       table.Year,
		Month:      table.Month,
	}
	if withReport {
		res.ReportPath = recordio.ReportPath(inputPath, table.Year, table.Month)
	}

	for _, target := range []string{res.OutputPath, res.ReportPath} {
		if target == "" {
			continue
		}
		if err := recordio.CheckWritable(target); err != nil {
			return nil, err
		}
	}

	report, err := r.validator.Run(ctx, table.Records)
	if err != nil {
		return nil, err
	}
	res.Report = report

	if err := r.writer.WriteAnnotated(res.OutputPath, table, report.Discrepancies); err != nil {
		return nil, err
	}
	if res.ReportPath != "" {
		if err := r.writer.WriteReport(res.ReportPath, report.Discrepancies); err != nil {
			_ = os.Remove(res.OutputPath)
			return nil, err
		}
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: report.RunID},
		logging.Field{Key: logging.FieldInputFile, Value: inputPath},
		logging.Field{Key: logging.FieldOutputFile, Value: res.OutputPath},
	).Info("File validated", logging.Field{Key: "discrepancies", Value: len(report.Discrepancies)})
	return res, nil
}
