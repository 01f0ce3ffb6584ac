// Package recordio reads report tables from CSV and writes the annotated
// copy and the discrepancy report back.
package recordio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/runerror"

	"github.com/gocarina/gocsv"
)

// ValidatedMarker is part of every output file name. Inputs carrying it are
// refused.
const ValidatedMarker = "_validated"

// Reporting period bounds
const (
	MinYear = 2000
	MaxYear = 2100
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a report sheet. Rows keep every cell as read so the output copy
// can pass unknown columns through untouched.
type Table struct {
	Path    string
	Header  []string
	Rows    [][]string
	Records []models.Record
	Year    int
	Month   int
}

// Reader loads report tables.
type Reader struct {
	delimiter rune
	logger    logging.Logger
}

// NewReader creates a Reader for files separated by delimiter.
func NewReader(delimiter rune, logger logging.Logger) *Reader {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Reader{delimiter: delimiter, logger: logger}
}

// Read loads and checks the table at path. Every problem with the file
// itself is returned as a *runerror.InputError.
func (r *Reader) Read(path string) (*Table, error) {
	log := r.logger.WithField(logging.FieldInputFile, path)

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, runerror.NewInputError(runerror.UnsupportedFormat, path, "file must be a .csv file", nil)
	}
	if strings.Contains(filepath.Base(path), ValidatedMarker) {
		return nil, runerror.NewInputError(runerror.AlreadyValidated, path,
			fmt.Sprintf("file is a validation result; choose the original file without %q", ValidatedMarker), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, runerror.NewInputError(runerror.Unreadable, path, "cannot read file", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	raw := r.csvReader(data)
	rows, err := raw.ReadAll()
	if err != nil {
		return nil, runerror.NewInputError(runerror.Unreadable, path, "malformed CSV", err)
	}
	if len(rows) == 0 {
		return nil, runerror.NewInputError(runerror.EmptyTable, path, "file is empty", nil)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, runerror.NewInputError(runerror.MissingColumns, path,
			"missing required columns: "+strings.Join(missing, ", "), nil)
	}
	if len(rows) == 1 {
		return nil, runerror.NewInputError(runerror.EmptyTable, path, "table has no rows", nil)
	}

	var records []models.Record
	if err := gocsv.UnmarshalCSV(r.csvReader(data), &records); err != nil {
		return nil, runerror.NewInputError(runerror.Unreadable, path, "cannot decode rows", err)
	}
	for i := range records {
		records[i].RowNumber = i + 2
	}

	year, month, err := reportingPeriod(records)
	if err != nil {
		return nil, runerror.NewInputError(runerror.InvalidPeriod, path, "invalid tahun or bulan", err)
	}

	log.Info("Report table loaded",
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: "year", Value: year},
		logging.Field{Key: "month", Value: month})

	return &Table{
		Path:    path,
		Header:  header,
		Rows:    rows[1:],
		Records: records,
		Year:    year,
		Month:   month,
	}, nil
}

func (r *Reader) csvReader(data []byte) *csv.Reader {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = r.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range append(append([]string{}, models.RequiredColumns...), models.ColYear, models.ColMonth) {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// reportingPeriod takes the first non-blank year and month of the table.
func reportingPeriod(records []models.Record) (int, int, error) {
	var rawYear, rawMonth string
	for _, rec := range records {
		if rawYear == "" {
			rawYear = strings.TrimSpace(rec.Year)
		}
		if rawMonth == "" {
			rawMonth = strings.TrimSpace(rec.Month)
		}
	}

	year, err := parseWhole(rawYear)
	if err != nil {
		return 0, 0, fmt.Errorf("tahun %q: %w", rawYear, err)
	}
	month, err := parseWhole(rawMonth)
	if err != nil {
		return 0, 0, fmt.Errorf("bulan %q: %w", rawMonth, err)
	}
	if year < MinYear || year > MaxYear {
		return 0, 0, fmt.Errorf("tahun %d outside %d-%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("bulan %d outside 1-12", month)
	}
	return year, month, nil
}

// parseWhole accepts "2024" as well as spreadsheet exports like "2024.0".
func parseWhole(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("value is blank")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number")
	}
	return int(f), nil
}
