// Package store keeps the reference tables in YAML files and provides the
// maintenance operations for them.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"

	"gopkg.in/yaml.v3"
)

// Default file names
const (
	DefaultReceiverFile  = "ref_mapping_penerima.yaml"
	DefaultPayerFile     = "ref_mapping_pembayar.yaml"
	DefaultBankCodesFile = "bank_codes.yaml"
	DefaultStatusFile    = "status_keywords.yaml"
	DefaultDirectory     = "database"
)

// Files names the YAML file of every reference table.
type Files struct {
	Receiver  string
	Payer     string
	BankCodes string
	Status    string
}

// DefaultFiles returns the standard file names.
func DefaultFiles() Files {
	return Files{
		Receiver:  DefaultReceiverFile,
		Payer:     DefaultPayerFile,
		BankCodes: DefaultBankCodesFile,
		Status:    DefaultStatusFile,
	}
}

// YAMLStore manages the reference tables as YAML files in one directory.
// It is safe for concurrent use within a process.
type YAMLStore struct {
	Directory string
	Files     Files

	mu     sync.RWMutex
	logger logging.Logger
}

// NewYAMLStore creates a store rooted at directory. Empty file names fall
// back to the defaults.
func NewYAMLStore(directory string, files Files, logger logging.Logger) *YAMLStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if directory == "" {
		directory = DefaultDirectory
	}
	def := DefaultFiles()
	if files.Receiver == "" {
		files.Receiver = def.Receiver
	}
	if files.Payer == "" {
		files.Payer = def.Payer
	}
	if files.BankCodes == "" {
		files.BankCodes = def.BankCodes
	}
	if files.Status == "" {
		files.Status = def.Status
	}
	return &YAMLStore{
		Directory: directory,
		Files:     files,
		logger:    logger.WithField(logging.FieldStore, "yaml"),
	}
}

// FindConfigFile looks for a reference file in the store directory first
// and then in the usual locations.
func (s *YAMLStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filepath.Join(s.Directory, filename),
		filename,
		filepath.Join("config", filename),
		filepath.Join(DefaultDirectory, filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "lld-validator", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// targetPath is where filename is written: the existing file if there is
// one, otherwise the store directory.
func (s *YAMLStore) targetPath(filename string) string {
	if path, err := s.FindConfigFile(filename); err == nil {
		return path
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.Directory, filename)
}

func (s *YAMLStore) readYAML(filename string, out interface{}) error {
	path, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Warn("Reference file not found, using an empty table",
			logging.Field{Key: logging.FieldTable, Value: filename})
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}

func (s *YAMLStore) writeYAML(filename string, in interface{}) error {
	path := s.targetPath(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", filename, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	s.logger.Debug("Reference file saved", logging.Field{Key: logging.FieldTable, Value: path})
	return nil
}

func (s *YAMLStore) loadMapping(filename string) (map[string]string, error) {
	mapping := map[string]string{}
	if err := s.readYAML(filename, &mapping); err != nil {
		return nil, err
	}
	if mapping == nil {
		mapping = map[string]string{}
	}
	return mapping, nil
}

func (s *YAMLStore) loadStatus() (map[string][]string, error) {
	mapping := map[string][]string{}
	if err := s.readYAML(s.Files.Status, &mapping); err != nil {
		return nil, err
	}
	if mapping == nil {
		mapping = map[string][]string{}
	}
	return mapping, nil
}

func (s *YAMLStore) keywordFile(role models.Role) (string, error) {
	switch role {
	case models.RoleReceiver:
		return s.Files.Receiver, nil
	case models.RolePayer:
		return s.Files.Payer, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalid, role)
}

// LoadTables reads every reference table. Missing files load as empty tables.
func (s *YAMLStore) LoadTables(ctx context.Context) (*reference.Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadAll()
}

func (s *YAMLStore) loadAll() (*reference.Tables, error) {
	receiver, err := s.loadMapping(s.Files.Receiver)
	if err != nil {
		return nil, err
	}
	payer, err := s.loadMapping(s.Files.Payer)
	if err != nil {
		return nil, err
	}
	codes, err := s.loadMapping(s.Files.BankCodes)
	if err != nil {
		return nil, err
	}
	status, err := s.loadStatus()
	if err != nil {
		return nil, err
	}
	return &reference.Tables{Receiver: receiver, Payer: payer, BankCodes: codes, StatusKeywords: status}, nil
}

// Keywords returns the keyword table of role.
func (s *YAMLStore) Keywords(_ context.Context, role models.Role) (map[string]string, error) {
	file, err := s.keywordFile(role)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadMapping(file)
}

// AddKeyword inserts a new keyword. A keyword already present in any letter
// case is an error.
func (s *YAMLStore) AddKeyword(_ context.Context, role models.Role, keyword, category string) error {
	return s.mutateKeywords(role, keyword, category, func(m map[string]string, kw, cat string) error {
		if existing, ok := FindKeyword(m, kw); ok {
			return fmt.Errorf("keyword %q (stored as %q): %w", kw, existing, ErrDuplicate)
		}
		m[kw] = cat
		return nil
	})
}

// UpdateKeyword changes the category of an existing keyword.
func (s *YAMLStore) UpdateKeyword(_ context.Context, role models.Role, keyword, category string) error {
	return s.mutateKeywords(role, keyword, category, func(m map[string]string, kw, cat string) error {
		existing, ok := FindKeyword(m, kw)
		if !ok {
			return fmt.Errorf("keyword %q: %w", kw, ErrNotFound)
		}
		m[existing] = cat
		return nil
	})
}

// DeleteKeyword removes a keyword.
func (s *YAMLStore) DeleteKeyword(_ context.Context, role models.Role, keyword string) error {
	kw, err := NormalizeKeyword(keyword)
	if err != nil {
		return err
	}
	file, err := s.keywordFile(role)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.loadMapping(file)
	if err != nil {
		return err
	}
	existing, ok := FindKeyword(m, kw)
	if !ok {
		return fmt.Errorf("keyword %q: %w", kw, ErrNotFound)
	}
	delete(m, existing)
	if err := s.writeYAML(file, m); err != nil {
		return err
	}
	s.logger.Info("Keyword deleted",
		logging.Field{Key: logging.FieldRole, Value: string(role)},
		logging.Field{Key: logging.FieldKeyword, Value: existing})
	return nil
}

func (s *YAMLStore) mutateKeywords(role models.Role, keyword, category string, apply func(map[string]string, string, string) error) error {
	kw, err := NormalizeKeyword(keyword)
	if err != nil {
		return err
	}
	cat, err := NormalizeCategory(category)
	if err != nil {
		return err
	}
	file, err := s.keywordFile(role)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.loadMapping(file)
	if err != nil {
		return err
	}
	if err := apply(m, kw, cat); err != nil {
		return err
	}
	if err := s.writeYAML(file, m); err != nil {
		return err
	}
	s.logger.Info("Keyword saved",
		logging.Field{Key: logging.FieldRole, Value: string(role)},
		logging.Field{Key: logging.FieldKeyword, Value: kw},
		logging.Field{Key: logging.FieldCategory, Value: cat})
	return nil
}

// BankCodes returns the bank code table.
func (s *YAMLStore) BankCodes(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadMapping(s.Files.BankCodes)
}

// AddBankCode inserts a new three-digit bank code.
func (s *YAMLStore) AddBankCode(_ context.Context, code, name string) error {
	return s.mutateBankCodes(code, name, func(m map[string]string, c, n string) error {
		if _, ok := m[c]; ok {
			return fmt.Errorf("bank code %s: %w", c, ErrDuplicate)
		}
		m[c] = n
		return nil
	})
}

// UpdateBankCode renames the bank behind an existing code.
func (s *YAMLStore) UpdateBankCode(_ context.Context, code, name string) error {
	return s.mutateBankCodes(code, name, func(m map[string]string, c, n string) error {
		if _, ok := m[c]; !ok {
			return fmt.Errorf("bank code %s: %w", c, ErrNotFound)
		}
		m[c] = n
		return nil
	})
}

// DeleteBankCode removes a bank code.
func (s *YAMLStore) DeleteBankCode(_ context.Context, code string) error {
	c, err := NormalizeBankCode(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.loadMapping(s.Files.BankCodes)
	if err != nil {
		return err
	}
	if _, ok := m[c]; !ok {
		return fmt.Errorf("bank code %s: %w", c, ErrNotFound)
	}
	delete(m, c)
	if err := s.writeYAML(s.Files.BankCodes, m); err != nil {
		return err
	}
	s.logger.Info("Bank code deleted", logging.Field{Key: logging.FieldBankCode, Value: c})
	return nil
}

func (s *YAMLStore) mutateBankCodes(code, name string, apply func(map[string]string, string, string) error) error {
	c, err := NormalizeBankCode(code)
	if err != nil {
		return err
	}
	n, err := NormalizeBankName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.loadMapping(s.Files.BankCodes)
	if err != nil {
		return err
	}
	if err := apply(m, c, n); err != nil {
		return err
	}
	if err := s.writeYAML(s.Files.BankCodes, m); err != nil {
		return err
	}
	s.logger.Info("Bank code saved", logging.Field{Key: logging.FieldBankCode, Value: c})
	return nil
}

// StatusKeywords returns the status keyword table.
func (s *YAMLStore) StatusKeywords(_ context.Context) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadStatus()
}

// AddStatusKeyword maps keyword to one more status.
func (s *YAMLStore) AddStatusKeyword(_ context.Context, keyword, status string) error {
	kw, st, err := NormalizeStatusKeyword(keyword, status)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.loadStatus()
	if err != nil {
		return err
	}
	for _, existing := range m[kw] {
		if existing == st {
			return fmt.Errorf("status %s for keyword %q: %w", st, kw, ErrDuplicate)
		}
	}
	m[kw] = append(m[kw], st)
	sort.Strings(m[kw])
	if err := s.writeYAML(s.Files.Status, m); err != nil {
		return err
	}
	s.logger.Info("Status keyword saved",
		logging.Field{Key: logging.FieldKeyword, Value: kw},
		logging.Field{Key: logging.FieldStatus, Value: st})
	return nil
}

// DeleteStatusKeyword removes one keyword/status pair. A keyword left
// without statuses is dropped.
func (s *YAMLStore) DeleteStatusKeyword(_ context.Context, keyword, status string) error {
	kw, st, err := NormalizeStatusKeyword(keyword, status)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.loadStatus()
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(m[kw]))
	for _, existing := range m[kw] {
		if existing != st {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(m[kw]) {
		return fmt.Errorf("status %s for keyword %q: %w", st, kw, ErrNotFound)
	}
	if len(kept) == 0 {
		delete(m, kw)
	} else {
		m[kw] = kept
	}
	if err := s.writeYAML(s.Files.Status, m); err != nil {
		return err
	}
	s.logger.Info("Status keyword deleted",
		logging.Field{Key: logging.FieldKeyword, Value: kw},
		logging.Field{Key: logging.FieldStatus, Value: st})
	return nil
}

// Seed writes tables to the store. Existing files are renamed to *.bak
// when force is set.
func (s *YAMLStore) Seed(_ context.Context, tables *reference.Tables, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadAll()
	if err != nil && !force {
		return err
	}
	if err == nil && !IsEmpty(current) && !force {
		return ErrAlreadySeeded
	}

	for _, file := range []string{s.Files.Receiver, s.Files.Payer, s.Files.BankCodes, s.Files.Status} {
		path, findErr := s.FindConfigFile(file)
		if findErr != nil {
			continue
		}
		if err := os.Rename(path, path+".bak"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	if tables == nil {
		tables = &reference.Tables{}
	}
	writes := []struct {
		file string
		data interface{}
	}{
		{s.Files.Receiver, nonNilStrings(tables.Receiver)},
		{s.Files.Payer, nonNilStrings(tables.Payer)},
		{s.Files.BankCodes, nonNilStrings(tables.BankCodes)},
		{s.Files.Status, nonNilStatuses(tables.StatusKeywords)},
	}
	for _, w := range writes {
		if err := s.writeYAML(w.file, w.data); err != nil {
			return err
		}
	}

	s.logger.Info("Reference data seeded",
		logging.Field{Key: "receiver_keywords", Value: len(tables.Receiver)},
		logging.Field{Key: "payer_keywords", Value: len(tables.Payer)},
		logging.Field{Key: "bank_codes", Value: len(tables.BankCodes)},
		logging.Field{Key: "status_keywords", Value: len(tables.StatusKeywords)})
	return nil
}

func nonNilStrings(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilStatuses(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}

var _ ReferenceStore = (*YAMLStore)(nil)
