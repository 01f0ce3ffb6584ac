package models

import (
	"fmt"
	"strings"
)

// Discrepancy is a cell whose recorded value disagrees with the value the
// rule engine suggests.
type Discrepancy struct {
	Row       int    `csv:"row" json:"row"`
	Column    string `csv:"column" json:"column"`
	Current   string `csv:"current" json:"current"`
	Suggested string `csv:"suggested" json:"suggested"`
	Name      string `csv:"name" json:"name"`
	BankCode  string `csv:"bank_code" json:"bank_code"`
	Status    string `csv:"status" json:"status"`
}

// IsStatusColumn reports whether the discrepancy concerns a status cell.
func (d Discrepancy) IsStatusColumn() bool {
	return d.Column == ColReceiverStatus || d.Column == ColPayerStatus
}

// Annotation renders the cell comment text consumed by reviewers.
// The layout is relied on by downstream tooling and must not change.
func (d Discrepancy) Annotation() string {
	var b strings.Builder
	if d.IsStatusColumn() {
		fmt.Fprintf(&b, "Suggested status: %s\n", d.Suggested)
	} else {
		fmt.Fprintf(&b, "Suggested category: %s\n", d.Suggested)
	}
	fmt.Fprintf(&b, "Name: %s\n", d.Name)
	fmt.Fprintf(&b, "Bank code: %s\n", d.BankCode)
	fmt.Fprintf(&b, "Status: %s", d.Status)
	return b.String()
}

// Anomaly records a field-level problem that was coerced rather than raised.
type Anomaly struct {
	Row    int    `csv:"row" json:"row"`
	Column string `csv:"column" json:"column"`
	Value  string `csv:"value" json:"value"`
	Reason string `csv:"reason" json:"reason"`
}
