// Package reference holds the immutable reference data a validation run
// works against: keyword tables per role, bank codes, status keywords and
// the classification rules taken from configuration.
package reference

import (
	"fmt"
	"sort"
	"strings"

	"lldbank/lld-validator/internal/models"
)

// KeywordEntry maps a keyword or phrase to the category it implies.
type KeywordEntry struct {
	Keyword  string
	Category models.Category
}

// KeywordTable is an ordered list of keyword entries. Longer keywords come
// first so that a specific phrase wins over a shorter one it contains; ties
// are broken alphabetically, ignoring case first and then exactly.
type KeywordTable []KeywordEntry

// NewKeywordTable validates raw keyword→category pairs and orders them.
// Every unknown category is reported in the returned error.
func NewKeywordTable(raw map[string]string) (KeywordTable, error) {
	table := make(KeywordTable, 0, len(raw))
	var problems []string
	for keyword, code := range raw {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		cat, err := models.ParseCategory(code)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", keyword, err))
			continue
		}
		table = append(table, KeywordEntry{Keyword: keyword, Category: cat})
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("invalid keyword mappings: %s", strings.Join(problems, "; "))
	}
	sort.Slice(table, func(i, j int) bool {
		ki, kj := strings.ToUpper(table[i].Keyword), strings.ToUpper(table[j].Keyword)
		if len(ki) != len(kj) {
			return len(ki) > len(kj)
		}
		if ki != kj {
			return ki < kj
		}
		return table[i].Keyword < table[j].Keyword
	})
	return table, nil
}

// ByCategory returns the entries mapped to cat, in table order.
func (t KeywordTable) ByCategory(cat models.Category) []KeywordEntry {
	var out []KeywordEntry
	for _, e := range t {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// StatusKeyword maps a keyword to the set of statuses it implies.
type StatusKeyword struct {
	Keyword  string
	Statuses models.StatusSet
}

// NewStatusKeywords validates raw keyword→statuses pairs and orders them by
// keyword.
func NewStatusKeywords(raw map[string][]string) ([]StatusKeyword, error) {
	out := make([]StatusKeyword, 0, len(raw))
	var problems []string
	for keyword, codes := range raw {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		set := models.NewStatusSet()
		for _, code := range codes {
			s, err := models.ParseStatus(code)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", keyword, err))
				continue
			}
			set.Add(s)
		}
		if len(set) > 0 {
			out = append(out, StatusKeyword{Keyword: keyword, Statuses: set})
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("invalid status mappings: %s", strings.Join(problems, "; "))
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToUpper(out[i].Keyword) < strings.ToUpper(out[j].Keyword)
	})
	return out, nil
}

// PadBankCode trims a bank code and left-pads it with zeros to three
// characters. Blank input stays blank.
func PadBankCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	for len(code) < 3 {
		code = "0" + code
	}
	return code
}

// IsNumericCode reports whether code consists only of ASCII digits.
func IsNumericCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
