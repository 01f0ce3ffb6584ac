package reference

import (
	"testing"

	"lldbank/lld-validator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeywordTable_Order(t *testing.T) {
	table, err := NewKeywordTable(map[string]string{
		"Bank":              "C9",
		"Kedutaan":          "B0",
		"Bank Indonesia":    "C0",
		"  ":                "Z9",
		"Asian Development": "F1",
		"ADB":               "f1",
	})
	require.NoError(t, err)

	var keywords []string
	for _, e := range table {
		keywords = append(keywords, e.Keyword)
	}
	assert.Equal(t, []string{"Asian Development", "Bank Indonesia", "Kedutaan", "Bank", "ADB"}, keywords)
	assert.Equal(t, models.CategoryIntlFinancialOrg, table[4].Category)
}

func TestNewKeywordTable_CaseVariantsHaveStableOrder(t *testing.T) {
	raw := map[string]string{
		"Acme Trading": "E0",
		"ACME TRADING": "Z9",
		"acme trading": "B0",
		"Acme":         "C9",
	}

	first, err := NewKeywordTable(raw)
	require.NoError(t, err)
	require.Len(t, first, 4)
	assert.Equal(t, "ACME TRADING", first[0].Keyword)
	assert.Equal(t, "Acme Trading", first[1].Keyword)
	assert.Equal(t, "acme trading", first[2].Keyword)
	assert.Equal(t, "Acme", first[3].Keyword)

	for i := 0; i < 200; i++ {
		again, err := NewKeywordTable(raw)
		require.NoError(t, err)
		require.Equal(t, first, again, "build %d", i)
	}
}

func TestNewKeywordTable_RejectsUnknownCategories(t *testing.T) {
	_, err := NewKeywordTable(map[string]string{
		"Kedutaan": "B0",
		"Embassy":  "BO",
		"Koperasi": "",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Embassy: unknown category code "BO"`)
	assert.Contains(t, err.Error(), "Koperasi: empty category code")
}

func TestKeywordTable_ByCategory(t *testing.T) {
	table, err := NewKeywordTable(map[string]string{"BI": "C0", "Bank Indonesia": "C0", "WHO": "F2"})
	require.NoError(t, err)

	got := table.ByCategory(models.CategoryCentralBank)
	require.Len(t, got, 2)
	assert.Equal(t, "Bank Indonesia", got[0].Keyword)
	assert.Empty(t, table.ByCategory(models.CategoryOther))
}

func TestNewStatusKeywords(t *testing.T) {
	kws, err := NewStatusKeywords(map[string][]string{
		"Singapore": {"SG"},
		"PT":        {"id", "N1"},
		"Nowhere":   {},
	})
	require.NoError(t, err)
	require.Len(t, kws, 2)
	assert.Equal(t, "PT", kws[0].Keyword)
	assert.Equal(t, "ID/N1", kws[0].Statuses.String())
	assert.Equal(t, "Singapore", kws[1].Keyword)

	_, err = NewStatusKeywords(map[string][]string{"Malaysia": {"MYS"}})
	assert.ErrorContains(t, err, "Malaysia")
}

func TestPadBankCode(t *testing.T) {
	tests := map[string]string{
		"":     "",
		"   ":  "",
		"8":    "008",
		" 14 ": "014",
		"222":  "222",
		"1234": "1234",
		"ab":   "0ab",
	}
	for in, want := range tests {
		assert.Equal(t, want, PadBankCode(in), "input %q", in)
	}
}

func TestIsNumericCode(t *testing.T) {
	assert.True(t, IsNumericCode("008"))
	assert.True(t, IsNumericCode(" 8 "))
	assert.False(t, IsNumericCode(""))
	assert.False(t, IsNumericCode("8A"))
	assert.False(t, IsNumericCode("-1"))
}
