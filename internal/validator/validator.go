// Package validator drives the classifier over a report table and collects
// the cells whose recorded values disagree with the suggestions.
package validator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lldbank/lld-validator/internal/classifier"
	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/textutils"

	"github.com/google/uuid"
)

// Anomaly reasons
const (
	ReasonBlankName          = "name is blank"
	ReasonNonNumericBankCode = "bank code is not numeric"
	ReasonUnknownCategory    = "unknown category code"
)

// Report is the result of one validation run.
type Report struct {
	RunID         string
	Records       []models.Record
	Discrepancies []models.Discrepancy
	Anomalies     []models.Anomaly
	Duration      time.Duration
}

// DiscrepancyCount returns the number of flagged cells.
func (r *Report) DiscrepancyCount() int {
	return len(r.Discrepancies)
}

// Validator evaluates report records against the reference data.
type Validator struct {
	provider reference.Provider
	logger   logging.Logger
}

// New creates a Validator reading its reference data from provider.
func New(provider reference.Provider, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Validator{provider: provider, logger: logger}
}

// Run loads a fresh reference snapshot and evaluates every record against
// it. Records are never modified and a single record never aborts the run;
// field problems are reported as anomalies.
func (v *Validator) Run(ctx context.Context, records []models.Record) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := v.logger.WithField(logging.FieldRunID, runID)

	snap, err := v.provider.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	log.Info("Validation started", logging.Field{Key: logging.FieldCount, Value: len(records)})

	clf := classifier.New(snap, log)
	report := &Report{
		RunID:   runID,
		Records: append([]models.Record(nil), records...),
	}
	for _, rec := range report.Records {
		result := clf.Classify(rec)
		report.Discrepancies = append(report.Discrepancies, discrepancies(rec, result)...)
		report.Anomalies = append(report.Anomalies, anomalies(rec)...)
	}
	report.Duration = time.Since(start)

	log.Info("Validation finished",
		logging.Field{Key: "discrepancies", Value: len(report.Discrepancies)},
		logging.Field{Key: "anomalies", Value: len(report.Anomalies)},
		logging.Field{Key: logging.FieldDuration, Value: report.Duration.Milliseconds()})
	return report, nil
}

// discrepancies lists the flagged cells of rec in column order: receiver
// category, payer category, receiver status, payer status.
func discrepancies(rec models.Record, result classifier.Result) []models.Discrepancy {
	var out []models.Discrepancy
	for _, role := range models.Roles {
		if d, ok := categoryDiscrepancy(rec, role, result); ok {
			out = append(out, d)
		}
	}
	for _, role := range models.Roles {
		if d, ok := statusDiscrepancy(rec, role, result); ok {
			out = append(out, d)
		}
	}
	return out
}

func categoryDiscrepancy(rec models.Record, role models.Role, result classifier.Result) (models.Discrepancy, bool) {
	outcome := result.For(role)
	party := rec.Party(role)
	if outcome.Category == models.CategoryUnknown {
		return models.Discrepancy{}, false
	}
	if strings.ToUpper(party.Category) == outcome.Category.String() {
		return models.Discrepancy{}, false
	}
	return newDiscrepancy(rec, party, role.CategoryColumn(), party.Category, outcome.Category.String(), outcome), true
}

// statusDiscrepancy flags a recorded status outside the suggested set.
// Inferred suggestions are not checked for names containing LTD, which are
// mostly foreign companies the keyword table cannot place. Netting rows
// are always checked.
func statusDiscrepancy(rec models.Record, role models.Role, result classifier.Result) (models.Discrepancy, bool) {
	outcome := result.For(role)
	party := rec.Party(role)
	if len(outcome.Statuses) == 0 || outcome.Statuses.Contains(party.Status) {
		return models.Discrepancy{}, false
	}
	if !result.Netting && textutils.ContainsFold(party.Name, "LTD") {
		return models.Discrepancy{}, false
	}
	return newDiscrepancy(rec, party, role.StatusColumn(), party.Status.String(), outcome.Statuses.String(), outcome), true
}

func newDiscrepancy(rec models.Record, party models.Party, column, current, suggested string, outcome classifier.Outcome) models.Discrepancy {
	return models.Discrepancy{
		Row:       rec.RowNumber,
		Column:    column,
		Current:   current,
		Suggested: suggested,
		Name:      party.Name,
		BankCode:  strings.TrimSpace(rec.BankCode),
		Status:    outcome.Status.String(),
	}
}

func anomalies(rec models.Record) []models.Anomaly {
	var out []models.Anomaly
	for _, role := range models.Roles {
		party := rec.Party(role)
		if strings.TrimSpace(party.Name) == "" {
			out = append(out, models.Anomaly{Row: rec.RowNumber, Column: role.NameColumn(), Reason: ReasonBlankName})
		}
		if party.Category != "" {
			if _, err := models.ParseCategory(party.Category); err != nil {
				out = append(out, models.Anomaly{Row: rec.RowNumber, Column: role.CategoryColumn(), Value: party.Category, Reason: ReasonUnknownCategory})
			}
		}
	}
	if code := strings.TrimSpace(rec.BankCode); code != "" && !reference.IsNumericCode(code) {
		out = append(out, models.Anomaly{Row: rec.RowNumber, Column: models.ColBankCode, Value: code, Reason: ReasonNonNumericBankCode})
	}
	return out
}
