package classifier

import (
	"strings"

	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/textutils"
)

// Rule names
const (
	RuleNetting        = "netting"
	RuleSTTException   = "stt-exception"
	RuleSelfTransfer   = "self-transfer"
	RuleOrgOverride    = "org-override"
	RuleBank           = "bank"
	RuleSameBank       = "same-bank"
	RuleKeyword        = "keyword"
	RuleAffiliateAudit = "affiliate-audit"
)

// DefaultPipeline returns the rules in evaluation order.
func DefaultPipeline(snap *reference.Snapshot) []Rule {
	rules := snap.Rules()
	pipeline := []Rule{
		&nettingRule{rules: rules},
		&sttExceptionRule{snap: snap},
		&selfTransferRule{codes: rules.Codes},
		&orgOverrideRule{snap: snap},
		&bankRule{codes: rules.Codes},
		&sameBankRule{codes: rules.Codes},
		&keywordRule{snap: snap},
	}
	if rules.AuditAffiliate {
		pipeline = append(pipeline, &affiliateAuditRule{snap: snap})
	}
	return pipeline
}

// nettingRule forces the netting code on both parties for netting STTs.
type nettingRule struct {
	rules reference.Rules
}

func (r *nettingRule) Name() string { return RuleNetting }

func (r *nettingRule) Classify(ev *Evaluation) []Decision {
	if !r.rules.IsN1(ev.STT) {
		return nil
	}
	ev.Netting = true
	return []Decision{
		{Role: models.RoleReceiver, Category: r.rules.Codes.Netting},
		{Role: models.RolePayer, Category: r.rules.Codes.Netting},
	}
}

// sttExceptionRule accepts categories listed for the record's STT. A
// receiver outside the list is pointed at the list's first entry; a payer
// outside it goes on through the remaining rules.
type sttExceptionRule struct {
	snap *reference.Snapshot
}

func (r *sttExceptionRule) Name() string { return RuleSTTException }

func (r *sttExceptionRule) Classify(ev *Evaluation) []Decision {
	accepted := r.snap.STTExceptions(ev.STT)
	if len(accepted) == 0 {
		return nil
	}
	var out []Decision
	for _, role := range models.Roles {
		p := ev.Party(role)
		switch {
		case models.ContainsCategory(accepted, p.RecordedCategory):
			out = append(out, Decision{Role: role, Category: p.RecordedCategory})
		case role == models.RoleReceiver:
			out = append(out, Decision{Role: role, Category: accepted[0]})
		}
	}
	return out
}

// selfTransferRule marks the payer of a transfer between accounts of the
// same party.
type selfTransferRule struct {
	codes reference.Codes
}

func (r *selfTransferRule) Name() string { return RuleSelfTransfer }

func (r *selfTransferRule) Classify(ev *Evaluation) []Decision {
	receiver, payer := ev.Party(models.RoleReceiver), ev.Party(models.RolePayer)
	name := textutils.Normalize(receiver.Name)
	if name == "" || name != textutils.Normalize(payer.Name) || receiver.Status != payer.Status {
		return nil
	}
	return []Decision{{Role: models.RolePayer, Category: r.codes.SelfTransfer}}
}

// orgOverrideRule assigns central-bank and international-organization codes
// on a substring keyword match. Such a party is never treated as a bank.
type orgOverrideRule struct {
	snap *reference.Snapshot
}

func (r *orgOverrideRule) Name() string { return RuleOrgOverride }

func (r *orgOverrideRule) Classify(ev *Evaluation) []Decision {
	var out []Decision
	for _, role := range models.Roles {
		p := ev.Party(role)
		if p.Decided() {
			continue
		}
		if cat, ok := r.match(role, p.Name); ok {
			p.IsBank = false
			out = append(out, Decision{Role: role, Category: cat})
		}
	}
	return out
}

func (r *orgOverrideRule) match(role models.Role, name string) (models.Category, bool) {
	table := r.snap.KeywordTable(role)
	for _, code := range r.snap.Rules().Codes.OrgOverride {
		for _, e := range table.ByCategory(code) {
			if strings.EqualFold(strings.TrimSpace(e.Keyword), code.String()) {
				continue
			}
			if textutils.ContainsFold(name, e.Keyword) {
				return code, true
			}
		}
	}
	return models.CategoryUnknown, false
}

// bankRule classifies banks by whether their code validated and whether
// they are recorded as domestic.
type bankRule struct {
	codes reference.Codes
}

func (r *bankRule) Name() string { return RuleBank }

func (r *bankRule) Classify(ev *Evaluation) []Decision {
	var out []Decision
	for _, role := range models.Roles {
		p := ev.Party(role)
		if p.Decided() || !p.IsBank {
			continue
		}
		cat := r.codes.OtherBank
		if p.CodeValid && p.Status == models.StatusDomestic {
			cat = r.codes.DomesticBank
		}
		out = append(out, Decision{Role: role, Category: cat})
	}
	return out
}

// sameBankRule splits a transfer between two offices of the same bank into
// a domestic and a foreign affiliate side.
type sameBankRule struct {
	codes reference.Codes
}

func (r *sameBankRule) Name() string { return RuleSameBank }

func (r *sameBankRule) Classify(ev *Evaluation) []Decision {
	receiver, payer := ev.Party(models.RoleReceiver), ev.Party(models.RolePayer)
	if !receiver.IsBank || !payer.IsBank || !ev.SameBank {
		return nil
	}
	if !receiver.CodeValid && !payer.CodeValid {
		return nil
	}
	if receiver.Status == models.StatusDomestic && payer.Status == models.StatusDomestic {
		return nil
	}

	domestic := domesticSide(receiver, payer)
	var out []Decision
	for _, role := range models.Roles {
		p := ev.Party(role)
		if !r.replaceable(p) {
			continue
		}
		cat := r.codes.AffiliateForeign
		if role == domestic {
			cat = r.codes.AffiliateDomestic
		}
		out = append(out, Decision{Role: role, Category: cat, Override: true})
	}
	return out
}

// replaceable reports whether p carries no decision or only a non-domestic
// bank decision.
func (r *sameBankRule) replaceable(p *PartyState) bool {
	if !p.Decided() {
		return true
	}
	return p.Decision.Rule == RuleBank && p.Decision.Category != r.codes.DomesticBank
}

// domesticSide picks the party recorded as domestic, then the one whose
// bank code validated, then the receiver.
func domesticSide(receiver, payer *PartyState) models.Role {
	switch {
	case receiver.Status == models.StatusDomestic:
		return models.RoleReceiver
	case payer.Status == models.StatusDomestic:
		return models.RolePayer
	case receiver.CodeValid:
		return models.RoleReceiver
	case payer.CodeValid:
		return models.RolePayer
	}
	return models.RoleReceiver
}

// keywordRule looks a non-bank party up in its role's keyword table.
type keywordRule struct {
	snap *reference.Snapshot
}

func (r *keywordRule) Name() string { return RuleKeyword }

func (r *keywordRule) Classify(ev *Evaluation) []Decision {
	var out []Decision
	for _, role := range models.Roles {
		p := ev.Party(role)
		if p.Decided() || p.IsBank {
			continue
		}
		if e, ok := lookupKeyword(r.snap.KeywordTable(role), p.Name, r.snap.Rules()); ok {
			out = append(out, Decision{Role: role, Category: e.Category})
		}
	}
	return out
}

// lookupKeyword finds the keyword entry for name. Specific keywords are
// tried first and a tie between categories goes to the best-ranked
// priority category, else to the first match. Generic identifiers such as
// PT are tried last.
func lookupKeyword(table reference.KeywordTable, name string, rules reference.Rules) (reference.KeywordEntry, bool) {
	norm := textutils.Normalize(name)
	if norm == "" {
		return reference.KeywordEntry{}, false
	}

	var (
		best     reference.KeywordEntry
		bestRank = -1
		found    bool
	)
	for _, e := range table {
		if textutils.IsGenericIdentifier(e.Keyword) || !textutils.IsStandaloneWord(e.Keyword, norm) {
			continue
		}
		rank := rules.PriorityRank(e.Category)
		if !found {
			best, bestRank, found = e, rank, true
			continue
		}
		if rank >= 0 && (bestRank < 0 || rank < bestRank) {
			best, bestRank = e, rank
		}
	}
	if found {
		return best, true
	}

	for _, e := range table {
		if textutils.IsGenericIdentifier(e.Keyword) && textutils.IsStandaloneWord(e.Keyword, norm) {
			return e, true
		}
	}
	return reference.KeywordEntry{}, false
}

// affiliateAuditRule re-checks a payer recorded as a foreign affiliate
// bank. The code only fits a bank that is not domestic; anything else gets
// a corrective suggestion. A value accepted as an STT exception stands.
type affiliateAuditRule struct {
	snap *reference.Snapshot
}

func (r *affiliateAuditRule) Name() string { return RuleAffiliateAudit }

func (r *affiliateAuditRule) Classify(ev *Evaluation) []Decision {
	codes := r.snap.Rules().Codes
	p := ev.Party(models.RolePayer)
	if p.RecordedCategory != codes.AffiliateForeign {
		return nil
	}
	if p.Decided() && (p.Decision.Rule == RuleSTTException || p.Decision.Category != codes.AffiliateForeign) {
		return nil
	}

	isBank := textutils.IsStandaloneWord("BANK", p.Name)
	domestic := p.Statuses.Contains(models.StatusDomestic) ||
		(len(p.Statuses) == 0 && p.Status == models.StatusDomestic)
	if isBank && !domestic {
		return nil
	}

	corrective := codes.Fallback
	switch {
	case isBank:
		corrective = codes.DomesticBank
	default:
		if e, ok := lookupKeyword(r.snap.KeywordTable(models.RolePayer), p.Name, r.snap.Rules()); ok {
			corrective = e.Category
		}
	}
	return []Decision{{Role: models.RolePayer, Category: corrective, Override: true}}
}
