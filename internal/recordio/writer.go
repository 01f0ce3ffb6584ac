package recordio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/runerror"

	"github.com/gocarina/gocsv"
)

// AnnotationColumn is appended to the output copy and holds the reviewer
// notes for every flagged cell of the row.
const AnnotationColumn = "catatan_validasi"

// OutputPath returns <dir>/<base>_<year>_<MM>_validated.csv for input.
func OutputPath(input string, year, month int) string {
	return derivedPath(input, year, month, ValidatedMarker)
}

// ReportPath returns the path of the discrepancy listing written next to the
// output copy.
func ReportPath(input string, year, month int) string {
	return derivedPath(input, year, month, ValidatedMarker+"_discrepancies")
}

func derivedPath(input string, year, month int, suffix string) string {
	dir := filepath.Dir(input)
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, fmt.Sprintf("%s_%d_%02d%s.csv", base, year, month, suffix))
}

// CheckWritable fails with a *runerror.ContentionError when path cannot be
// opened for writing, typically because another program holds it open.
// A file created by the probe is removed again.
func CheckWritable(path string) error {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return &runerror.ContentionError{FilePath: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &runerror.ContentionError{FilePath: path, Err: err}
	}
	if !existed {
		_ = os.Remove(path)
	}
	return nil
}

// Writer produces the output artifacts of a run.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer using delimiter for every file it writes.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{delimiter: delimiter, logger: logger}
}

// WriteAnnotated writes a copy of table to path with AnnotationColumn
// appended. Cells other than the annotation are passed through unchanged.
// The file is written next to path first and renamed into place, so a
// failed write leaves no partial output.
func (w *Writer) WriteAnnotated(path string, table *Table, discrepancies []models.Discrepancy) error {
	notes := make(map[int][]string)
	for _, d := range discrepancies {
		notes[d.Row] = append(notes[d.Row], fmt.Sprintf("[%s]\n%s", d.Column, d.Annotation()))
	}

	err := w.writeAtomic(path, func(cw *csv.Writer) error {
		header := append(append([]string{}, table.Header...), AnnotationColumn)
		if err := cw.Write(header); err != nil {
			return err
		}
		for i, row := range table.Rows {
			out := make([]string, len(table.Header)+1)
			copy(out, row)
			out[len(table.Header)] = strings.Join(notes[i+2], "\n\n")
			if err := cw.Write(out); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)},
	).Info("Annotated copy written")
	return nil
}

// WriteReport writes the discrepancy listing to path.
func (w *Writer) WriteReport(path string, discrepancies []models.Discrepancy) error {
	err := w.writeAtomic(path, func(cw *csv.Writer) error {
		return gocsv.MarshalCSV(discrepancies, gocsv.NewSafeCSVWriter(cw))
	})
	if err != nil {
		return err
	}

	w.logger.WithFields(
		logging.Field{Key: logging.FieldReportFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(discrepancies)},
	).Info("Discrepancy report written")
	return nil
}

func (w *Writer) writeAtomic(path string, fill func(*csv.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".lld-*.csv.tmp")
	if err != nil {
		return classifyWriteError(path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	cw := csv.NewWriter(tmp)
	cw.Comma = w.delimiter
	if err := fill(cw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return classifyWriteError(path, err)
	}
	return nil
}

func classifyWriteError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return &runerror.ContentionError{FilePath: path, Err: err}
	}
	return fmt.Errorf("failed to write %s: %w", path, err)
}
