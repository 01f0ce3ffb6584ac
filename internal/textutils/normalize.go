// Package textutils provides normalization and word-matching helpers for
// free-text party names.
package textutils

import (
	"regexp"
	"strings"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ShortAcronyms are tokens that must only match as whole words. A name like
// "SPORT" contains "PT" but is not a PT company.
var ShortAcronyms = []string{
	"PT", "CV", "LTD", "INC", "CORP", "CO", "LLC", "PLC", "TBK",
	"WHO", "UN", "ADB", "IMF", "WB", "ILO", "IMO", "FAO", "UPU", "BPD",
}

// looseAcronyms are short acronyms that occur inside too many ordinary words,
// as in "COAL" or "UNITED", to count as evidence of a misread name.
var looseAcronyms = []string{"CO", "UN", "WB"}

// GenericIdentifiers are company-form tokens that say little about a party.
// Keyword lookups try them only after every specific keyword failed.
var GenericIdentifiers = []string{"PT", "CV", "TBK"}

// Normalize upper-cases text, replaces punctuation with spaces, collapses runs
// of whitespace and trims the ends.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToUpper(text)
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripCommonTokens removes every whole-word occurrence of each token from
// text. Tokens are applied in order, each one against the output of the
// previous removal. text is expected to be normalized already.
func StripCommonTokens(text string, tokens []string) string {
	padded := " " + text + " "
	for _, token := range tokens {
		token = Normalize(token)
		if token == "" {
			continue
		}
		needle := " " + token + " "
		for strings.Contains(padded, needle) {
			padded = strings.ReplaceAll(padded, needle, " ")
		}
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(padded, " "))
}

// IsStandaloneWord reports whether word occurs in text bounded by
// non-alphanumeric characters or the string edges. Multi-word phrases must
// match token for token.
func IsStandaloneWord(word, text string) bool {
	w := Normalize(word)
	t := Normalize(text)
	if w == "" || t == "" {
		return false
	}
	return strings.Contains(" "+t+" ", " "+w+" ")
}

// ContainsFold reports whether sub is a case-insensitive substring of text.
// Empty sub never matches.
func ContainsFold(text, sub string) bool {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(text), strings.ToUpper(sub))
}

// HasEmbeddedAcronym reports whether one of ShortAcronyms occurs in text
// only inside a longer token, as "CORP" does in "CORPORATE". The loose
// acronyms CO, UN and WB are ignored.
func HasEmbeddedAcronym(text string) bool {
	norm := Normalize(text)
	if norm == "" {
		return false
	}
	for _, a := range ShortAcronyms {
		if isLooseAcronym(a) {
			continue
		}
		if strings.Contains(norm, a) && !IsStandaloneWord(a, norm) {
			return true
		}
	}
	return false
}

func isLooseAcronym(a string) bool {
	for _, l := range looseAcronyms {
		if l == a {
			return true
		}
	}
	return false
}

// IsGenericIdentifier reports whether keyword is one of GenericIdentifiers.
func IsGenericIdentifier(keyword string) bool {
	k := Normalize(keyword)
	for _, g := range GenericIdentifiers {
		if g == k {
			return true
		}
	}
	return false
}
