// Package bankmatch decides whether two bank names denote the same
// institution and whether a bank name is consistent with a bank code.
package bankmatch

import (
	"strings"
	"unicode"

	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/textutils"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// sameBankWords are dropped before two bank names are compared.
var sameBankWords = []string{
	"PT", "BANK", "PERSERO", "(PERSERO)", "TBK",
	"INCORPORATION", "CORPORATION", "LTD", "LIMITED", "INCORPORATED",
}

// codeCheckWords are dropped before a name is compared with the official
// name behind a bank code.
var codeCheckWords = []string{"PT", "BANK", "PERSERO", "TBK"}

// BankNames resolves a bank code to its official name.
type BankNames interface {
	BankName(code string) (string, bool)
}

// Matcher compares bank names. It is safe for concurrent use.
type Matcher struct {
	names         BankNames
	threshold     float64
	locationWords []string
}

// NewMatcher creates a Matcher. threshold is the fuzzy ratio a pair of names
// must exceed to match.
func NewMatcher(names BankNames, threshold float64, locationWords []string) *Matcher {
	return &Matcher{names: names, threshold: threshold, locationWords: locationWords}
}

// FromSnapshot creates a Matcher over the bank codes and rules of snap.
func FromSnapshot(snap *reference.Snapshot) *Matcher {
	return NewMatcher(snap, snap.FuzzyThreshold(), snap.Rules().LocationWords)
}

// IsSameBank reports whether a and b name the same bank. Checks run in
// order and stop at the first match: equality after stripping common words,
// equal short codes, an empty stripped name, and finally a fuzzy ratio
// strictly above the threshold.
func (m *Matcher) IsSameBank(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}

	cleanA := textutils.StripCommonTokens(textutils.Normalize(a), sameBankWords)
	cleanB := textutils.StripCommonTokens(textutils.Normalize(b), sameBankWords)

	if cleanA == cleanB {
		return true
	}

	codeA, codeB := shortCode(cleanA), shortCode(cleanB)
	if codeA != "" && codeA == codeB {
		return true
	}

	// An empty stripped name is contained in anything.
	if cleanA == "" || cleanB == "" {
		return true
	}

	return Ratio(cleanA, cleanB) > m.threshold
}

// ValidateBankCode reports whether name is consistent with the official
// name registered for code. Blank or unknown codes never validate, and
// neither does a name left empty once common words are stripped.
func (m *Matcher) ValidateBankCode(name, code string) bool {
	if m.names == nil || strings.TrimSpace(code) == "" {
		return false
	}
	official, ok := m.names.BankName(code)
	if !ok {
		return false
	}

	claimed := m.cleanForCode(name)
	reference := m.cleanForCode(official)
	if claimed == "" || reference == "" {
		return false
	}
	return strings.Contains(claimed, reference) || strings.Contains(reference, claimed)
}

func (m *Matcher) cleanForCode(name string) string {
	s := textutils.StripCommonTokens(textutils.Normalize(name), m.locationWords)
	return textutils.StripCommonTokens(s, codeCheckWords)
}

// shortCode returns the first purely alphabetic word of two to four letters.
func shortCode(name string) string {
	for _, word := range strings.Fields(name) {
		n := len([]rune(word))
		if n < 2 || n > 4 {
			continue
		}
		if strings.IndexFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }) == -1 {
			return word
		}
	}
	return ""
}

// Ratio returns the normalized Levenshtein similarity of a and b in [0, 1].
func Ratio(a, b string) float64 {
	return levenshtein.RatioForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
}
