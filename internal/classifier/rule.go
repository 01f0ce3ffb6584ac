package classifier

import (
	"lldbank/lld-validator/internal/models"
)

// Rule is one step of the category pipeline. Classify returns a decision
// for every role the rule has an opinion on, or nothing. Rules run in a
// fixed order and a role keeps the first decision it receives unless a
// later decision is marked Override.
type Rule interface {
	// Name identifies the rule in logs and in Outcome.Rule.
	Name() string

	// Classify inspects the evaluation and returns its decisions. A rule may
	// also update the facts on the evaluation (for example mark a party as
	// not being a bank) for the rules that follow it.
	Classify(ev *Evaluation) []Decision
}

// Decision is a suggested category for one role.
type Decision struct {
	Role     models.Role
	Category models.Category
	Rule     string
	Override bool
}

// PartyState holds what the pipeline knows about one party.
type PartyState struct {
	models.Party

	// RecordedCategory is the parsed recorded category, or CategoryUnknown
	// when the cell is blank or holds an unknown code.
	RecordedCategory models.Category

	// IsBank is true while the party is treated as a commercial bank.
	IsBank bool

	// CodeValid is true when the record's bank code matches the party name.
	CodeValid bool

	// Statuses is the inferred status set, empty when there is no evidence.
	Statuses models.StatusSet

	Decision Decision
}

// Decided reports whether a rule has already committed a category.
func (p *PartyState) Decided() bool {
	return p.Decision.Category != models.CategoryUnknown
}

// Evaluation is the state of one record while it passes through the rules.
type Evaluation struct {
	Record models.Record

	// STT is the trimmed, upper-cased transaction type.
	STT string

	// SameBank is true when both party names denote the same bank.
	SameBank bool

	// Netting is set once the record is known to be a netting row. No rule
	// runs after it.
	Netting bool

	receiver *PartyState
	payer    *PartyState
}

// Party returns the state for role.
func (ev *Evaluation) Party(role models.Role) *PartyState {
	if role == models.RolePayer {
		return ev.payer
	}
	return ev.receiver
}

// Other returns the state of the party opposite to role.
func (ev *Evaluation) Other(role models.Role) *PartyState {
	if role == models.RolePayer {
		return ev.receiver
	}
	return ev.payer
}

// apply records d unless the role is already decided and d does not override.
func (ev *Evaluation) apply(d Decision) bool {
	p := ev.Party(d.Role)
	if p.Decided() && !d.Override {
		return false
	}
	if d.Category == models.CategoryUnknown {
		return false
	}
	p.Decision = d
	return true
}
