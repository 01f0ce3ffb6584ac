// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/runerror"
)

// PrintTable writes header and rows as aligned columns.
func PrintTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Matches reports whether any field contains term, ignoring case. An empty
// term matches everything.
func Matches(term string, fields ...string) bool {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToUpper(f), term) {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of m in case-insensitive order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ki, kj := strings.ToUpper(keys[i]), strings.ToUpper(keys[j])
		if ki != kj {
			return ki < kj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ParseRoleFlag turns the --role flag into a role.
func ParseRoleFlag(raw string) (models.Role, error) {
	role, ok := models.ParseRole(raw)
	if !ok {
		return "", fmt.Errorf("unknown role %q, use penerima or pembayar", raw)
	}
	return role, nil
}

// DescribeRunError turns a fatal run error into the message shown to the
// user.
func DescribeRunError(err error) string {
	switch {
	case runerror.IsInput(err, runerror.AlreadyValidated):
		return fmt.Sprintf("The file has already been validated: %v", err)
	case runerror.IsInput(err, runerror.MissingColumns):
		return fmt.Sprintf("The report is missing required columns: %v", err)
	case runerror.IsInput(err, runerror.EmptyTable):
		return fmt.Sprintf("The report contains no rows: %v", err)
	case runerror.IsInput(err):
		return fmt.Sprintf("The report cannot be processed: %v", err)
	case runerror.IsContention(err):
		return fmt.Sprintf("An output file is open in another program: %v", err)
	default:
		return fmt.Sprintf("Validation failed: %v", err)
	}
}
