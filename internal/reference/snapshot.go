package reference

import (
	"context"
	"fmt"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
)

// Tables is the raw content of the reference store.
type Tables struct {
	Receiver       map[string]string
	Payer          map[string]string
	BankCodes      map[string]string
	StatusKeywords map[string][]string
}

// Source is implemented by reference stores.
type Source interface {
	LoadTables(ctx context.Context) (*Tables, error)
}

// Provider hands out a fresh snapshot for every run.
type Provider interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Snapshot is an immutable view of all reference data for one run.
type Snapshot struct {
	keywords       map[models.Role]KeywordTable
	bankCodes      map[string]string
	statusKeywords []StatusKeyword
	rules          Rules
}

// NewSnapshot validates tables and combines them with rules.
func NewSnapshot(tables *Tables, rules Rules) (*Snapshot, error) {
	if tables == nil {
		tables = &Tables{}
	}
	receiver, err := NewKeywordTable(tables.Receiver)
	if err != nil {
		return nil, fmt.Errorf("receiver keywords: %w", err)
	}
	payer, err := NewKeywordTable(tables.Payer)
	if err != nil {
		return nil, fmt.Errorf("payer keywords: %w", err)
	}
	status, err := NewStatusKeywords(tables.StatusKeywords)
	if err != nil {
		return nil, err
	}

	codes := make(map[string]string, len(tables.BankCodes))
	for code, name := range tables.BankCodes {
		if padded := PadBankCode(code); padded != "" {
			codes[padded] = name
		}
	}

	return &Snapshot{
		keywords: map[models.Role]KeywordTable{
			models.RoleReceiver: receiver,
			models.RolePayer:    payer,
		},
		bankCodes:      codes,
		statusKeywords: status,
		rules:          rules,
	}, nil
}

// KeywordTable returns the keyword table for role.
func (s *Snapshot) KeywordTable(role models.Role) KeywordTable {
	return s.keywords[role]
}

// BankName looks up a bank code after zero-padding it.
func (s *Snapshot) BankName(code string) (string, bool) {
	padded := PadBankCode(code)
	if padded == "" {
		return "", false
	}
	name, ok := s.bankCodes[padded]
	return name, ok
}

// BankCodes returns a copy of the bank code table.
func (s *Snapshot) BankCodes() map[string]string {
	out := make(map[string]string, len(s.bankCodes))
	for k, v := range s.bankCodes {
		out[k] = v
	}
	return out
}

// StatusKeywords returns the status keyword table in keyword order.
func (s *Snapshot) StatusKeywords() []StatusKeyword {
	return s.statusKeywords
}

// STTExceptions returns the categories accepted without validation for stt.
func (s *Snapshot) STTExceptions(stt string) []models.Category {
	return s.rules.STTExceptions[stt]
}

// CategoryPriority returns the tie-break order for keyword matches.
func (s *Snapshot) CategoryPriority() []models.Category {
	return s.rules.CategoryPriority
}

// FuzzyThreshold returns the minimum similarity ratio for bank names.
func (s *Snapshot) FuzzyThreshold() float64 {
	return s.rules.FuzzyThreshold
}

// Rules returns the classification rules.
func (s *Snapshot) Rules() Rules {
	return s.rules
}

// StoreProvider builds snapshots from a Source.
type StoreProvider struct {
	source Source
	rules  Rules
	logger logging.Logger
}

// NewStoreProvider creates a provider backed by source.
func NewStoreProvider(source Source, rules Rules, logger logging.Logger) *StoreProvider {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &StoreProvider{source: source, rules: rules, logger: logger}
}

// Load reads every table from the source and returns a new snapshot.
func (p *StoreProvider) Load(ctx context.Context) (*Snapshot, error) {
	tables, err := p.source.LoadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference tables: %w", err)
	}
	snap, err := NewSnapshot(tables, p.rules)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Reference snapshot loaded",
		logging.Field{Key: "receiver_keywords", Value: len(snap.keywords[models.RoleReceiver])},
		logging.Field{Key: "payer_keywords", Value: len(snap.keywords[models.RolePayer])},
		logging.Field{Key: "bank_codes", Value: len(snap.bankCodes)},
		logging.Field{Key: "status_keywords", Value: len(snap.statusKeywords)})
	return snap, nil
}
