package reference

import (
	"testing"

	"lldbank/lld-validator/internal/config"
	"lldbank/lld-validator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesFromConfig_Defaults(t *testing.T) {
	rules, err := RulesFromConfig(config.Default())
	require.NoError(t, err)

	defaults := DefaultRules()
	assert.Equal(t, defaults.Codes, rules.Codes)
	assert.Equal(t, defaults.CategoryPriority, rules.CategoryPriority)
	assert.Equal(t, defaults.FuzzyThreshold, rules.FuzzyThreshold)
	assert.Equal(t, defaults.N1STTCodes, rules.N1STTCodes)
	assert.Equal(t, defaults.DomesticPlaceholders, rules.DomesticPlaceholders)
	assert.Equal(t, defaults.AuditAffiliate, rules.AuditAffiliate)
}

func TestRulesFromConfig_Nil(t *testing.T) {
	rules, err := RulesFromConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules().Codes, rules.Codes)
}

func TestRulesFromConfig_LegacyCodes(t *testing.T) {
	cfg := config.Default()
	cfg.Validation.Codes.DomesticBank = "L1"
	cfg.Validation.Codes.OtherBank = "L9"
	cfg.Validation.Codes.AffiliateDomestic = "L1"
	cfg.Validation.Codes.AffiliateForeign = "L2"
	cfg.Validation.STTExceptions = map[string][]string{"0100": {"e0", "Z9"}}

	rules, err := RulesFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryLegacyBankDomestic, rules.Codes.DomesticBank)
	assert.Equal(t, models.CategoryLegacyBankAffiliate, rules.Codes.AffiliateForeign)
	assert.Equal(t, []models.Category{models.CategoryCompany, models.CategoryOther}, rules.STTExceptions["0100"])
}

func TestRulesFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		errMsg string
	}{
		{
			name:   "unknown priority code",
			modify: func(c *config.Config) { c.Validation.CategoryPriority = []string{"C0", "X1"} },
			errMsg: "category_priority",
		},
		{
			name:   "unknown exception code",
			modify: func(c *config.Config) { c.Validation.STTExceptions = map[string][]string{"0100": {"??"}} },
			errMsg: "stt_exceptions[0100]",
		},
		{
			name:   "bad domestic status",
			modify: func(c *config.Config) { c.Validation.DomesticStatuses = []string{"IDN"} },
			errMsg: "domestic_statuses",
		},
		{
			name:   "missing fallback code",
			modify: func(c *config.Config) { c.Validation.Codes.Fallback = "" },
			errMsg: "codes.fallback",
		},
		{
			name: "equal affiliate codes",
			modify: func(c *config.Config) {
				c.Validation.Codes.AffiliateForeign = c.Validation.Codes.AffiliateDomestic
			},
			errMsg: "must differ",
		},
		{
			name:   "unknown override code",
			modify: func(c *config.Config) { c.Validation.Codes.OrgOverride = []string{"C0", "ZZ"} },
			errMsg: "codes.org_override",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)
			_, err := RulesFromConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRules_Helpers(t *testing.T) {
	rules := DefaultRules()

	assert.True(t, rules.IsN1("1NNN"))
	assert.True(t, rules.IsN1("2907"))
	assert.False(t, rules.IsN1("0100"))

	assert.True(t, rules.IsDomesticPlaceholder(models.StatusDomestic))
	assert.True(t, rules.IsDomesticPlaceholder(models.StatusNetting))
	assert.False(t, rules.IsDomesticPlaceholder("SG"))

	assert.True(t, rules.IsOrgOverride(models.CategoryCentralBank))
	assert.False(t, rules.IsOrgOverride(models.CategoryBankDomestic))

	assert.Equal(t, 0, rules.PriorityRank(models.CategoryCentralBank))
	assert.Equal(t, 3, rules.PriorityRank(models.CategoryGovernment))
	assert.Equal(t, -1, rules.PriorityRank(models.CategoryCompany))
}
