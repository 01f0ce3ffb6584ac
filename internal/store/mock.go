package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"
)

// MockReferenceStore is an in-memory ReferenceStore for testing.
type MockReferenceStore struct {
	mu     sync.Mutex
	tables reference.Tables

	// Error flags for testing error conditions
	LoadTablesError error
	SaveError       error
}

// NewMockReferenceStore creates a mock holding a copy of tables.
func NewMockReferenceStore(tables *reference.Tables) *MockReferenceStore {
	m := &MockReferenceStore{}
	m.reset(tables)
	return m
}

func (m *MockReferenceStore) reset(tables *reference.Tables) {
	m.tables = reference.Tables{
		Receiver:       map[string]string{},
		Payer:          map[string]string{},
		BankCodes:      map[string]string{},
		StatusKeywords: map[string][]string{},
	}
	if tables == nil {
		return
	}
	for k, v := range tables.Receiver {
		m.tables.Receiver[k] = v
	}
	for k, v := range tables.Payer {
		m.tables.Payer[k] = v
	}
	for k, v := range tables.BankCodes {
		m.tables.BankCodes[k] = v
	}
	for k, v := range tables.StatusKeywords {
		m.tables.StatusKeywords[k] = append([]string(nil), v...)
	}
}

func (m *MockReferenceStore) snapshot() *reference.Tables {
	out := &MockReferenceStore{}
	out.reset(&m.tables)
	return &out.tables
}

// LoadTables returns a copy of the mock tables.
func (m *MockReferenceStore) LoadTables(context.Context) (*reference.Tables, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadTablesError != nil {
		return nil, m.LoadTablesError
	}
	return m.snapshot(), nil
}

func (m *MockReferenceStore) keywords(role models.Role) (map[string]string, error) {
	switch role {
	case models.RoleReceiver:
		return m.tables.Receiver, nil
	case models.RolePayer:
		return m.tables.Payer, nil
	}
	return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, role)
}

// Keywords returns a copy of the keyword table of role.
func (m *MockReferenceStore) Keywords(_ context.Context, role models.Role) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, err := m.keywords(role)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out, nil
}

// AddKeyword inserts a keyword.
func (m *MockReferenceStore) AddKeyword(_ context.Context, role models.Role, keyword, category string) error {
	return m.setKeyword(role, keyword, category, false)
}

// UpdateKeyword changes an existing keyword.
func (m *MockReferenceStore) UpdateKeyword(_ context.Context, role models.Role, keyword, category string) error {
	return m.setKeyword(role, keyword, category, true)
}

func (m *MockReferenceStore) setKeyword(role models.Role, keyword, category string, mustExist bool) error {
	kw, err := NormalizeKeyword(keyword)
	if err != nil {
		return err
	}
	cat, err := NormalizeCategory(category)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	table, err := m.keywords(role)
	if err != nil {
		return err
	}
	existing, exists := FindKeyword(table, kw)
	if mustExist && !exists {
		return fmt.Errorf("keyword %q: %w", kw, ErrNotFound)
	}
	if !mustExist && exists {
		return fmt.Errorf("keyword %q (stored as %q): %w", kw, existing, ErrDuplicate)
	}
	if exists {
		kw = existing
	}
	table[kw] = cat
	return nil
}

// DeleteKeyword removes a keyword.
func (m *MockReferenceStore) DeleteKeyword(_ context.Context, role models.Role, keyword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	table, err := m.keywords(role)
	if err != nil {
		return err
	}
	existing, ok := FindKeyword(table, strings.TrimSpace(keyword))
	if !ok {
		return fmt.Errorf("keyword %q: %w", keyword, ErrNotFound)
	}
	delete(table, existing)
	return nil
}

// BankCodes returns a copy of the bank code table.
func (m *MockReferenceStore) BankCodes(context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot().BankCodes, nil
}

// AddBankCode inserts a bank code.
func (m *MockReferenceStore) AddBankCode(_ context.Context, code, name string) error {
	return m.setBankCode(code, name, false)
}

// UpdateBankCode renames an existing bank code.
func (m *MockReferenceStore) UpdateBankCode(_ context.Context, code, name string) error {
	return m.setBankCode(code, name, true)
}

func (m *MockReferenceStore) setBankCode(code, name string, mustExist bool) error {
	c, err := NormalizeBankCode(code)
	if err != nil {
		return err
	}
	n, err := NormalizeBankName(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	_, exists := m.tables.BankCodes[c]
	if mustExist && !exists {
		return fmt.Errorf("bank code %s: %w", c, ErrNotFound)
	}
	if !mustExist && exists {
		return fmt.Errorf("bank code %s: %w", c, ErrDuplicate)
	}
	m.tables.BankCodes[c] = n
	return nil
}

// DeleteBankCode removes a bank code.
func (m *MockReferenceStore) DeleteBankCode(_ context.Context, code string) error {
	c, err := NormalizeBankCode(code)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	if _, ok := m.tables.BankCodes[c]; !ok {
		return fmt.Errorf("bank code %s: %w", c, ErrNotFound)
	}
	delete(m.tables.BankCodes, c)
	return nil
}

// StatusKeywords returns a copy of the status keyword table.
func (m *MockReferenceStore) StatusKeywords(context.Context) (map[string][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot().StatusKeywords, nil
}

// AddStatusKeyword adds a keyword/status pair.
func (m *MockReferenceStore) AddStatusKeyword(_ context.Context, keyword, status string) error {
	kw, st, err := NormalizeStatusKeyword(keyword, status)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	for _, existing := range m.tables.StatusKeywords[kw] {
		if existing == st {
			return fmt.Errorf("status %s for keyword %q: %w", st, kw, ErrDuplicate)
		}
	}
	m.tables.StatusKeywords[kw] = append(m.tables.StatusKeywords[kw], st)
	sort.Strings(m.tables.StatusKeywords[kw])
	return nil
}

// DeleteStatusKeyword removes a keyword/status pair.
func (m *MockReferenceStore) DeleteStatusKeyword(_ context.Context, keyword, status string) error {
	kw, st, err := NormalizeStatusKeyword(keyword, status)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	var kept []string
	for _, existing := range m.tables.StatusKeywords[kw] {
		if existing != st {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(m.tables.StatusKeywords[kw]) {
		return fmt.Errorf("status %s for keyword %q: %w", st, kw, ErrNotFound)
	}
	if len(kept) == 0 {
		delete(m.tables.StatusKeywords, kw)
	} else {
		m.tables.StatusKeywords[kw] = kept
	}
	return nil
}

// Seed replaces the mock tables.
func (m *MockReferenceStore) Seed(_ context.Context, tables *reference.Tables, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	if !force && !IsEmpty(&m.tables) {
		return ErrAlreadySeeded
	}
	m.reset(tables)
	return nil
}

var _ ReferenceStore = (*MockReferenceStore)(nil)
