package reference

import (
	"fmt"

	"lldbank/lld-validator/internal/config"
	"lldbank/lld-validator/internal/models"
)

// Codes names the categories the rule chain assigns. They differ between
// reporting regimes (C1/C2/C9 versus L1/L2/L9) so they are configuration.
type Codes struct {
	Netting           models.Category
	SelfTransfer      models.Category
	DomesticBank      models.Category
	OtherBank         models.Category
	AffiliateDomestic models.Category
	AffiliateForeign  models.Category
	Fallback          models.Category
	OrgOverride       []models.Category
}

// Rules is the non-tabular part of a snapshot.
type Rules struct {
	N1STTCodes           map[string]struct{}
	STTExceptions        map[string][]models.Category
	CategoryPriority     []models.Category
	FuzzyThreshold       float64
	Codes                Codes
	DomesticPlaceholders []models.Status
	LocationWords        []string
	AuditAffiliate       bool
}

// DefaultRules returns the rules used when no configuration overrides them.
func DefaultRules() Rules {
	return Rules{
		N1STTCodes:       toSet(config.DefaultN1STTCodes),
		STTExceptions:    map[string][]models.Category{},
		CategoryPriority: []models.Category{models.CategoryCentralBank, models.CategoryIntlFinancialOrg, models.CategoryIntlOrg, models.CategoryGovernment, models.CategoryOtherFinancial},
		FuzzyThreshold:   0.9,
		Codes: Codes{
			Netting:           models.CategoryNetting,
			SelfTransfer:      models.CategorySelfTransfer,
			DomesticBank:      models.CategoryBankDomestic,
			OtherBank:         models.CategoryBankOther,
			AffiliateDomestic: models.CategoryBankDomestic,
			AffiliateForeign:  models.CategoryBankAffiliate,
			Fallback:          models.CategoryOther,
			OrgOverride:       []models.Category{models.CategoryCentralBank, models.CategoryIntlFinancialOrg},
		},
		DomesticPlaceholders: []models.Status{models.StatusDomestic, models.StatusNetting},
		LocationWords:        config.DefaultLocationWords,
		AuditAffiliate:       true,
	}
}

// RulesFromConfig converts the validation section of the configuration into
// Rules, rejecting unknown category codes.
func RulesFromConfig(cfg *config.Config) (Rules, error) {
	if cfg == nil {
		return DefaultRules(), nil
	}
	v := cfg.Validation
	rules := Rules{
		N1STTCodes:     toSet(v.N1STTCodes),
		STTExceptions:  make(map[string][]models.Category, len(v.STTExceptions)),
		FuzzyThreshold: v.FuzzyMatchThreshold,
		LocationWords:  v.LocationWords,
		AuditAffiliate: v.AuditAffiliate,
	}

	for stt, codes := range v.STTExceptions {
		cats, err := parseCategories(codes)
		if err != nil {
			return Rules{}, fmt.Errorf("stt_exceptions[%s]: %w", stt, err)
		}
		rules.STTExceptions[stt] = cats
	}

	var err error
	if rules.CategoryPriority, err = parseCategories(v.CategoryPriority); err != nil {
		return Rules{}, fmt.Errorf("category_priority: %w", err)
	}

	for _, raw := range v.DomesticStatuses {
		s, err := models.ParseStatus(raw)
		if err != nil {
			return Rules{}, fmt.Errorf("domestic_statuses: %w", err)
		}
		rules.DomesticPlaceholders = append(rules.DomesticPlaceholders, s)
	}

	c := v.Codes
	fields := []struct {
		name string
		raw  string
		dst  *models.Category
	}{
		{"netting", c.Netting, &rules.Codes.Netting},
		{"self_transfer", c.SelfTransfer, &rules.Codes.SelfTransfer},
		{"domestic_bank", c.DomesticBank, &rules.Codes.DomesticBank},
		{"other_bank", c.OtherBank, &rules.Codes.OtherBank},
		{"affiliate_domestic", c.AffiliateDomestic, &rules.Codes.AffiliateDomestic},
		{"affiliate_foreign", c.AffiliateForeign, &rules.Codes.AffiliateForeign},
		{"fallback", c.Fallback, &rules.Codes.Fallback},
	}
	for _, f := range fields {
		cat, err := models.ParseCategory(f.raw)
		if err != nil {
			return Rules{}, fmt.Errorf("codes.%s: %w", f.name, err)
		}
		*f.dst = cat
	}
	if rules.Codes.AffiliateDomestic == rules.Codes.AffiliateForeign {
		return Rules{}, fmt.Errorf("codes.affiliate_domestic and codes.affiliate_foreign must differ, both are %s", rules.Codes.AffiliateDomestic)
	}
	if rules.Codes.OrgOverride, err = parseCategories(c.OrgOverride); err != nil {
		return Rules{}, fmt.Errorf("codes.org_override: %w", err)
	}

	return rules, nil
}

// IsN1 reports whether stt is one of the netting transaction types.
func (r Rules) IsN1(stt string) bool {
	_, ok := r.N1STTCodes[stt]
	return ok
}

// IsDomesticPlaceholder reports whether s is a domestic or no-information
// status rather than a country.
func (r Rules) IsDomesticPlaceholder(s models.Status) bool {
	for _, p := range r.DomesticPlaceholders {
		if p == s {
			return true
		}
	}
	return false
}

// IsOrgOverride reports whether cat is one of the organization override codes.
func (r Rules) IsOrgOverride(cat models.Category) bool {
	return models.ContainsCategory(r.Codes.OrgOverride, cat)
}

// PriorityRank returns the index of cat in the priority list, or -1.
func (r Rules) PriorityRank(cat models.Category) int {
	for i, c := range r.CategoryPriority {
		if c == cat {
			return i
		}
	}
	return -1
}

func parseCategories(raw []string) ([]models.Category, error) {
	out := make([]models.Category, 0, len(raw))
	for _, code := range raw {
		cat, err := models.ParseCategory(code)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
