package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"
)

// Errors returned by the administrative operations of every store.
var (
	ErrDuplicate     = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrInvalid       = errors.New("invalid value")
	ErrAlreadySeeded = errors.New("reference data already present")
)

// ReferenceStore is a persistent home for the reference tables. Besides
// feeding snapshots it offers the maintenance operations used between runs.
type ReferenceStore interface {
	reference.Source

	Keywords(ctx context.Context, role models.Role) (map[string]string, error)
	AddKeyword(ctx context.Context, role models.Role, keyword, category string) error
	UpdateKeyword(ctx context.Context, role models.Role, keyword, category string) error
	DeleteKeyword(ctx context.Context, role models.Role, keyword string) error

	BankCodes(ctx context.Context) (map[string]string, error)
	AddBankCode(ctx context.Context, code, name string) error
	UpdateBankCode(ctx context.Context, code, name string) error
	DeleteBankCode(ctx context.Context, code string) error

	StatusKeywords(ctx context.Context) (map[string][]string, error)
	AddStatusKeyword(ctx context.Context, keyword, status string) error
	DeleteStatusKeyword(ctx context.Context, keyword, status string) error

	// Seed writes tables into an empty store. With force, existing data is
	// backed up where the backend supports it and then replaced.
	Seed(ctx context.Context, tables *reference.Tables, force bool) error
}

// NormalizeKeyword trims a keyword and rejects blank input.
func NormalizeKeyword(raw string) (string, error) {
	kw := strings.TrimSpace(raw)
	if kw == "" {
		return "", fmt.Errorf("%w: keyword must not be empty", ErrInvalid)
	}
	return kw, nil
}

// FindKeyword looks kw up in m ignoring case. An exact match wins; otherwise
// the first case-insensitive match in byte order is returned.
func FindKeyword(m map[string]string, kw string) (string, bool) {
	if _, ok := m[kw]; ok {
		return kw, true
	}
	found := ""
	for k := range m {
		if strings.EqualFold(k, kw) && (found == "" || k < found) {
			found = k
		}
	}
	return found, found != ""
}

// NormalizeCategory validates a category code against the closed set.
func NormalizeCategory(raw string) (string, error) {
	cat, err := models.ParseCategory(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cat.String(), nil
}

// NormalizeBankCode requires exactly three digits.
func NormalizeBankCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if len(code) != 3 || !reference.IsNumericCode(code) {
		return "", fmt.Errorf("%w: bank code %q must be exactly 3 digits", ErrInvalid, raw)
	}
	return code, nil
}

// NormalizeBankName trims a bank name and rejects blank input.
func NormalizeBankName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: bank name must not be empty", ErrInvalid)
	}
	return name, nil
}

// NormalizeStatusKeyword upper-cases a status keyword and validates its status.
func NormalizeStatusKeyword(keyword, status string) (string, string, error) {
	kw := strings.ToUpper(strings.TrimSpace(keyword))
	if kw == "" {
		return "", "", fmt.Errorf("%w: keyword must not be empty", ErrInvalid)
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return kw, st.String(), nil
}

// IsEmpty reports whether tables hold no reference data at all.
func IsEmpty(t *reference.Tables) bool {
	return t == nil || len(t.Receiver)+len(t.Payer)+len(t.BankCodes)+len(t.StatusKeywords) == 0
}
