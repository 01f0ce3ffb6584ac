package classifier

import (
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/textutils"
)

// companyForms imply a domestically registered entity.
var companyForms = []string{"PT", "LTD", "CV", "KOPERASI"}

// StatusInferrer suggests residency statuses from a party name.
type StatusInferrer struct {
	keywords []reference.StatusKeyword
	rules    reference.Rules
}

// NewStatusInferrer creates an inferrer over the status keywords of snap.
func NewStatusInferrer(snap *reference.Snapshot) *StatusInferrer {
	return &StatusInferrer{keywords: snap.StatusKeywords(), rules: snap.Rules()}
}

// Infer returns the statuses name plausibly has. Country evidence wins over
// company-form evidence; an empty set means no suggestion.
func (s *StatusInferrer) Infer(name string) models.StatusSet {
	norm := textutils.Normalize(name)
	if norm == "" {
		return models.NewStatusSet()
	}

	if textutils.HasEmbeddedAcronym(norm) {
		return models.NewStatusSet()
	}

	countries := models.NewStatusSet()
	for _, kw := range s.keywords {
		if !textutils.IsStandaloneWord(kw.Keyword, norm) {
			continue
		}
		for st := range kw.Statuses {
			if !s.rules.IsDomesticPlaceholder(st) {
				countries.Add(st)
			}
		}
	}
	if len(countries) > 0 {
		return countries
	}

	for _, form := range companyForms {
		if textutils.IsStandaloneWord(form, norm) {
			return models.NewStatusSet(s.rules.DomesticPlaceholders...)
		}
	}
	return models.NewStatusSet()
}
