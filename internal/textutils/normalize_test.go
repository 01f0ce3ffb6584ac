package textutils_test

import (
	"testing"

	"lldbank/lld-validator/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "upper cases", input: "bank mandiri", expected: "BANK MANDIRI"},
		{name: "punctuation becomes space", input: "Bank Mandiri (Persero) Tbk.", expected: "BANK MANDIRI PERSERO TBK"},
		{name: "collapses whitespace", input: "  PT   ABC\t\nJAYA  ", expected: "PT ABC JAYA"},
		{name: "dotted acronym", input: "P.T. Sinar", expected: "P T SINAR"},
		{name: "digits kept", input: "Bank 9 Jambi", expected: "BANK 9 JAMBI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.Normalize(tt.input))
		})
	}
}

func TestStripCommonTokens(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		tokens   []string
		expected string
	}{
		{name: "leading and trailing", text: "PT BANK MANDIRI TBK", tokens: []string{"PT", "BANK", "TBK"}, expected: "MANDIRI"},
		{name: "interior", text: "MANDIRI PERSERO SYARIAH", tokens: []string{"PERSERO"}, expected: "MANDIRI SYARIAH"},
		{name: "repeated token", text: "A PT PT B", tokens: []string{"PT"}, expected: "A B"},
		{name: "inside a longer word is kept", text: "SPORT BANKING", tokens: []string{"PT", "BANK"}, expected: "SPORT BANKING"},
		{name: "empty token is a no-op", text: "BANK ABC", tokens: []string{""}, expected: "BANK ABC"},
		{name: "parenthesized token normalizes", text: "MANDIRI PERSERO", tokens: []string{"(PERSERO)"}, expected: "MANDIRI"},
		{name: "everything stripped", text: "PT BANK", tokens: []string{"PT", "BANK"}, expected: ""},
		{name: "multi word token", text: "KANTOR PUSAT BANK ABC", tokens: []string{"KANTOR PUSAT"}, expected: "BANK ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.StripCommonTokens(tt.text, tt.tokens))
		})
	}
}

func TestIsStandaloneWord(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		text     string
		expected bool
	}{
		{name: "acronym at start", word: "PT", text: "PT BANK ABC", expected: true},
		{name: "acronym inside word", word: "PT", text: "SPORT", expected: false},
		{name: "acronym after punctuation", word: "LTD", text: "ACME CO.,LTD", expected: true},
		{name: "phrase", word: "Bank Indonesia", text: "BANK INDONESIA KANTOR PUSAT", expected: true},
		{name: "phrase split by punctuation", word: "PTE LTD", text: "SING PTE. LTD.", expected: true},
		{name: "phrase prefix of longer token", word: "UN", text: "UNHCR JAKARTA", expected: false},
		{name: "case insensitive", word: "who", text: "The Who Foundation", expected: true},
		{name: "empty word", word: "", text: "PT ABC", expected: false},
		{name: "empty text", word: "PT", text: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.IsStandaloneWord(tt.word, tt.text))
		})
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, textutils.ContainsFold("Bank Negara Malaysia", "NEGARA MALAYSIA"))
	assert.False(t, textutils.ContainsFold("Bank Negara Malaysia", ""))
	assert.False(t, textutils.ContainsFold("Bank Negara", "Malaysia"))
}

func TestHasEmbeddedAcronym(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"corp inside corporate", "Global Corporate Services", true},
		{"pt inside sport", "Sport Center Jakarta", true},
		{"who inside wholesale", "Wholesale Market Singapore", true},
		{"standalone acronyms", "PT Maju Corp Ltd", false},
		{"acronym both standalone and embedded", "PT Sport Center", false},
		{"co inside coal is ignored", "Coal Mining Australia", false},
		{"un inside united is ignored", "United Traders Singapore", false},
		{"no acronym", "Yayasan Harapan", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.HasEmbeddedAcronym(tt.text))
		})
	}
}

func TestIsGenericIdentifier(t *testing.T) {
	assert.True(t, textutils.IsGenericIdentifier("Tbk"))
	assert.False(t, textutils.IsGenericIdentifier("LTD"))
}
