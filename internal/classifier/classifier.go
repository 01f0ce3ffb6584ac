// Package classifier suggests a regulatory category and residency status
// for both parties of a report record.
//
// Categories come from an ordered pipeline of rules:
//  1. netting STTs force the netting code on both parties
//  2. STT exceptions accept listed categories as recorded
//  3. self-transfers mark the payer
//  4. central-bank and international-organization keywords
//  5. bank classification by bank code and recorded status
//  6. same-bank adjustment between two banks
//  7. keyword lookup for non-banks
//  8. audit of payers recorded as foreign affiliate banks
package classifier

import (
	"strings"

	"lldbank/lld-validator/internal/bankmatch"
	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/textutils"
)

// Outcome is the classification of one party.
type Outcome struct {
	// Category is the suggested category, CategoryUnknown for no opinion.
	Category models.Category
	// Rule names the rule that produced Category.
	Rule string
	// Statuses is the suggested status set, empty for no opinion.
	Statuses models.StatusSet
	// Status is the status the party is evaluated with. Netting rows force
	// it to the netting code.
	Status    models.Status
	IsBank    bool
	CodeValid bool
}

// Result is the classification of a record.
type Result struct {
	Receiver Outcome
	Payer    Outcome
	Netting  bool
}

// For returns the outcome of role.
func (r Result) For(role models.Role) Outcome {
	if role == models.RolePayer {
		return r.Payer
	}
	return r.Receiver
}

// Classifier runs the rule pipeline against one reference snapshot.
type Classifier struct {
	snap     *reference.Snapshot
	matcher  *bankmatch.Matcher
	inferrer *StatusInferrer
	pipeline []Rule
	logger   logging.Logger
}

// New creates a Classifier with the default pipeline.
func New(snap *reference.Snapshot, logger logging.Logger) *Classifier {
	return NewWithPipeline(snap, DefaultPipeline(snap), logger)
}

// NewWithPipeline creates a Classifier that runs the given rules in order.
func NewWithPipeline(snap *reference.Snapshot, pipeline []Rule, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Classifier{
		snap:     snap,
		matcher:  bankmatch.FromSnapshot(snap),
		inferrer: NewStatusInferrer(snap),
		pipeline: pipeline,
		logger:   logger,
	}
}

// Classify evaluates rec. It never fails: malformed fields count as "no
// match".
func (c *Classifier) Classify(rec models.Record) Result {
	ev := c.newEvaluation(rec)

	for _, rule := range c.pipeline {
		for _, d := range rule.Classify(ev) {
			d.Rule = rule.Name()
			if ev.apply(d) {
				c.logger.Debug("Category suggested",
					logging.Field{Key: logging.FieldRow, Value: rec.RowNumber},
					logging.Field{Key: logging.FieldRole, Value: string(d.Role)},
					logging.Field{Key: logging.FieldRule, Value: d.Rule},
					logging.Field{Key: logging.FieldCategory, Value: d.Category.String()})
			}
		}
		if ev.Netting {
			break
		}
	}

	result := Result{Netting: ev.Netting}
	result.Receiver = c.outcome(ev, models.RoleReceiver)
	result.Payer = c.outcome(ev, models.RolePayer)
	return result
}

func (c *Classifier) newEvaluation(rec models.Record) *Evaluation {
	rules := c.snap.Rules()
	ev := &Evaluation{
		Record: rec,
		STT:    strings.ToUpper(strings.TrimSpace(rec.STT)),
	}
	ev.receiver = c.partyState(rec, models.RoleReceiver, rules)
	ev.payer = c.partyState(rec, models.RolePayer, rules)
	ev.SameBank = c.matcher.IsSameBank(rec.ReceiverName, rec.PayerName)
	return ev
}

func (c *Classifier) partyState(rec models.Record, role models.Role, rules reference.Rules) *PartyState {
	party := rec.Party(role)
	recorded, _ := models.ParseCategory(party.Category)
	return &PartyState{
		Party:            party,
		RecordedCategory: recorded,
		IsBank:           textutils.ContainsFold(party.Name, "BANK") && !rules.IsOrgOverride(recorded),
		CodeValid:        c.matcher.ValidateBankCode(party.Name, rec.BankCode),
		Statuses:         c.inferrer.Infer(party.Name),
	}
}

func (c *Classifier) outcome(ev *Evaluation, role models.Role) Outcome {
	p := ev.Party(role)
	out := Outcome{
		Category:  p.Decision.Category,
		Rule:      p.Decision.Rule,
		Statuses:  p.Statuses,
		Status:    p.Status,
		IsBank:    p.IsBank,
		CodeValid: p.CodeValid,
	}
	if ev.Netting {
		netting := models.Status(c.snap.Rules().Codes.Netting)
		out.Status = netting
		out.Statuses = models.NewStatusSet(netting)
	}
	return out
}
