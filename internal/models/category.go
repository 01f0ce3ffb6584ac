// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// Category is a regulatory party category code. The set of codes is closed;
// anything outside it parses to CategoryUnknown.
type Category string

// Category codes
const (
	CategoryUnknown Category = ""

	CategoryGovernment          Category = "B0"
	CategoryCentralBank         Category = "C0"
	CategoryBankDomestic        Category = "C1"
	CategoryBankAffiliate       Category = "C2"
	CategoryBankOther           Category = "C9"
	CategoryOtherFinancial      Category = "D0"
	CategoryCompany             Category = "E0"
	CategoryIntlFinancialOrg    Category = "F1"
	CategoryIntlOrg             Category = "F2"
	CategorySelfTransfer        Category = "I0"
	CategoryLegacyBankDomestic  Category = "L1"
	CategoryLegacyBankAffiliate Category = "L2"
	CategoryLegacyBankOther     Category = "L9"
	CategoryNetting             Category = "N1"
	CategoryQuasiCentralBank    Category = "Q1"
	CategoryOther               Category = "Z9"
)

var knownCategories = map[Category]struct{}{
	CategoryGovernment:          {},
	CategoryCentralBank:         {},
	CategoryBankDomestic:        {},
	CategoryBankAffiliate:       {},
	CategoryBankOther:           {},
	CategoryOtherFinancial:      {},
	CategoryCompany:             {},
	CategoryIntlFinancialOrg:    {},
	CategoryIntlOrg:             {},
	CategorySelfTransfer:        {},
	CategoryLegacyBankDomestic:  {},
	CategoryLegacyBankAffiliate: {},
	CategoryLegacyBankOther:     {},
	CategoryNetting:             {},
	CategoryQuasiCentralBank:    {},
	CategoryOther:               {},
}

// ParseCategory converts a raw code into a Category. Input is trimmed and
// upper-cased. Unknown codes return CategoryUnknown and an error.
func ParseCategory(raw string) (Category, error) {
	code := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if code == CategoryUnknown {
		return CategoryUnknown, fmt.Errorf("empty category code")
	}
	if _, ok := knownCategories[code]; !ok {
		return CategoryUnknown, fmt.Errorf("unknown category code %q", raw)
	}
	return code, nil
}

// MustParseCategory is like ParseCategory but panics on an unknown code.
// Intended for constants and tests.
func MustParseCategory(raw string) Category {
	c, err := ParseCategory(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// IsKnown reports whether c belongs to the closed set.
func (c Category) IsKnown() bool {
	_, ok := knownCategories[c]
	return ok
}

// String returns the code.
func (c Category) String() string {
	return string(c)
}

// ContainsCategory reports whether list contains c.
func ContainsCategory(list []Category, c Category) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}
