package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		expected  Category
		expectErr string
	}{
		{name: "known code", raw: "C0", expected: CategoryCentralBank},
		{name: "lower case and padded", raw: " z9 ", expected: CategoryOther},
		{name: "legacy bank code", raw: "L2", expected: CategoryLegacyBankAffiliate},
		{name: "empty", raw: "  ", expected: CategoryUnknown, expectErr: "empty category code"},
		{name: "typo", raw: "CO", expected: CategoryUnknown, expectErr: `unknown category code "CO"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.raw)
			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCategory(t *testing.T) {
	assert.Equal(t, CategoryNetting, MustParseCategory("n1"))
	assert.Panics(t, func() { MustParseCategory("XX") })
}

func TestCategory_IsKnown(t *testing.T) {
	assert.True(t, CategoryCompany.IsKnown())
	assert.False(t, CategoryUnknown.IsKnown())
	assert.False(t, Category("A1").IsKnown())
}

func TestContainsCategory(t *testing.T) {
	list := []Category{CategoryCentralBank, CategoryIntlFinancialOrg}
	assert.True(t, ContainsCategory(list, CategoryIntlFinancialOrg))
	assert.False(t, ContainsCategory(list, CategoryBankDomestic))
	assert.False(t, ContainsCategory(nil, CategoryBankDomestic))
}
