// Package sqlstore keeps the reference tables in a SQLite database.
package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Table names
const (
	TableReceiver  = "ref_mapping_penerima"
	TablePayer     = "ref_mapping_pembayar"
	TableBankCodes = "bank_codes"
	TableStatus    = "status_mapping"
)

// Store is a SQLite-backed store.ReferenceStore.
type Store struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open opens or creates the database at path and applies the schema.
func Open(path string, logger logging.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error creating directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	s, err := New(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.path = path
	return s, nil
}

// New wraps an open database and applies the schema.
func New(db *sql.DB, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db, logger: logger.WithField(logging.FieldStore, "sqlite")}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func keywordTable(role models.Role) (string, error) {
	switch role {
	case models.RoleReceiver:
		return TableReceiver, nil
	case models.RolePayer:
		return TablePayer, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", store.ErrInvalid, role)
}

// LoadTables reads every reference table.
func (s *Store) LoadTables(ctx context.Context) (*reference.Tables, error) {
	receiver, err := s.pairs(ctx, "SELECT keyword, category FROM "+TableReceiver)
	if err != nil {
		return nil, err
	}
	payer, err := s.pairs(ctx, "SELECT keyword, category FROM "+TablePayer)
	if err != nil {
		return nil, err
	}
	codes, err := s.pairs(ctx, "SELECT code, name FROM "+TableBankCodes)
	if err != nil {
		return nil, err
	}
	status, err := s.StatusKeywords(ctx)
	if err != nil {
		return nil, err
	}
	return &reference.Tables{Receiver: receiver, Payer: payer, BankCodes: codes, StatusKeywords: status}, nil
}

func (s *Store) pairs(ctx context.Context, query string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying reference data: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning reference data: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Keywords returns the keyword table of role.
func (s *Store) Keywords(ctx context.Context, role models.Role) (map[string]string, error) {
	table, err := keywordTable(role)
	if err != nil {
		return nil, err
	}
	return s.pairs(ctx, "SELECT keyword, category FROM "+table)
}

// AddKeyword inserts a new keyword. A keyword already present in any letter
// case is an error.
func (s *Store) AddKeyword(ctx context.Context, role models.Role, keyword, category string) error {
	table, err := keywordTable(role)
	if err != nil {
		return err
	}
	kw, err := store.NormalizeKeyword(keyword)
	if err != nil {
		return err
	}
	cat, err := store.NormalizeCategory(category)
	if err != nil {
		return err
	}

	err = s.insertUnique(ctx,
		"SELECT COUNT(*) FROM "+table+" WHERE keyword = ? COLLATE NOCASE", []interface{}{kw},
		"INSERT INTO "+table+" (keyword, category) VALUES (?, ?)", []interface{}{kw, cat},
		fmt.Errorf("keyword %q: %w", kw, store.ErrDuplicate))
	if err != nil {
		return err
	}
	s.logger.Info("Keyword saved",
		logging.Field{Key: logging.FieldRole, Value: string(role)},
		logging.Field{Key: logging.FieldKeyword, Value: kw},
		logging.Field{Key: logging.FieldCategory, Value: cat})
	return nil
}

// UpdateKeyword changes the category of an existing keyword.
func (s *Store) UpdateKeyword(ctx context.Context, role models.Role, keyword, category string) error {
	table, err := keywordTable(role)
	if err != nil {
		return err
	}
	kw, err := store.NormalizeKeyword(keyword)
	if err != nil {
		return err
	}
	cat, err := store.NormalizeCategory(category)
	if err != nil {
		return err
	}
	return s.execOne(ctx, fmt.Errorf("keyword %q: %w", kw, store.ErrNotFound),
		"UPDATE "+table+" SET category = ?, updated_at = CURRENT_TIMESTAMP WHERE keyword = ? COLLATE NOCASE", cat, kw)
}

// DeleteKeyword removes a keyword.
func (s *Store) DeleteKeyword(ctx context.Context, role models.Role, keyword string) error {
	table, err := keywordTable(role)
	if err != nil {
		return err
	}
	kw, err := store.NormalizeKeyword(keyword)
	if err != nil {
		return err
	}
	return s.execOne(ctx, fmt.Errorf("keyword %q: %w", kw, store.ErrNotFound),
		"DELETE FROM "+table+" WHERE keyword = ? COLLATE NOCASE", kw)
}

// BankCodes returns the bank code table.
func (s *Store) BankCodes(ctx context.Context) (map[string]string, error) {
	return s.pairs(ctx, "SELECT code, name FROM "+TableBankCodes)
}

// AddBankCode inserts a new three-digit bank code.
func (s *Store) AddBankCode(ctx context.Context, code, name string) error {
	c, err := store.NormalizeBankCode(code)
	if err != nil {
		return err
	}
	n, err := store.NormalizeBankName(name)
	if err != nil {
		return err
	}
	err = s.insertUnique(ctx,
		"SELECT COUNT(*) FROM "+TableBankCodes+" WHERE code = ?", []interface{}{c},
		"INSERT INTO "+TableBankCodes+" (code, name) VALUES (?, ?)", []interface{}{c, n},
		fmt.Errorf("bank code %s: %w", c, store.ErrDuplicate))
	if err != nil {
		return err
	}
	s.logger.Info("Bank code saved", logging.Field{Key: logging.FieldBankCode, Value: c})
	return nil
}

// UpdateBankCode renames the bank behind an existing code.
func (s *Store) UpdateBankCode(ctx context.Context, code, name string) error {
	c, err := store.NormalizeBankCode(code)
	if err != nil {
		return err
	}
	n, err := store.NormalizeBankName(name)
	if err != nil {
		return err
	}
	return s.execOne(ctx, fmt.Errorf("bank code %s: %w", c, store.ErrNotFound),
		"UPDATE "+TableBankCodes+" SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE code = ?", n, c)
}

// DeleteBankCode removes a bank code.
func (s *Store) DeleteBankCode(ctx context.Context, code string) error {
	c, err := store.NormalizeBankCode(code)
	if err != nil {
		return err
	}
	return s.execOne(ctx, fmt.Errorf("bank code %s: %w", c, store.ErrNotFound),
		"DELETE FROM "+TableBankCodes+" WHERE code = ?", c)
}

// StatusKeywords returns the status keyword table.
func (s *Store) StatusKeywords(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT keyword, status FROM "+TableStatus+" ORDER BY keyword, status")
	if err != nil {
		return nil, fmt.Errorf("querying status keywords: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string][]string{}
	for rows.Next() {
		var kw, st string
		if err := rows.Scan(&kw, &st); err != nil {
			return nil, fmt.Errorf("scanning status keywords: %w", err)
		}
		out[kw] = append(out[kw], st)
	}
	return out, rows.Err()
}

// AddStatusKeyword maps keyword to one more status.
func (s *Store) AddStatusKeyword(ctx context.Context, keyword, status string) error {
	kw, st, err := store.NormalizeStatusKeyword(keyword, status)
	if err != nil {
		return err
	}
	err = s.insertUnique(ctx,
		"SELECT COUNT(*) FROM "+TableStatus+" WHERE keyword = ? AND status = ?", []interface{}{kw, st},
		"INSERT INTO "+TableStatus+" (keyword, status) VALUES (?, ?)", []interface{}{kw, st},
		fmt.Errorf("status %s for keyword %q: %w", st, kw, store.ErrDuplicate))
	if err != nil {
		return err
	}
	s.logger.Info("Status keyword saved",
		logging.Field{Key: logging.FieldKeyword, Value: kw},
		logging.Field{Key: logging.FieldStatus, Value: st})
	return nil
}

// DeleteStatusKeyword removes one keyword/status pair.
func (s *Store) DeleteStatusKeyword(ctx context.Context, keyword, status string) error {
	kw, st, err := store.NormalizeStatusKeyword(keyword, status)
	if err != nil {
		return err
	}
	return s.execOne(ctx, fmt.Errorf("status %s for keyword %q: %w", st, kw, store.ErrNotFound),
		"DELETE FROM "+TableStatus+" WHERE keyword = ? AND status = ?", kw, st)
}

// Seed writes tables into the database. With force the current database is
// first copied to <path>.bak and every table is emptied.
func (s *Store) Seed(ctx context.Context, tables *reference.Tables, force bool) error {
	current, err := s.LoadTables(ctx)
	if err != nil {
		return err
	}
	if !store.IsEmpty(current) {
		if !force {
			return store.ErrAlreadySeeded
		}
		if err := s.backup(ctx); err != nil {
			return err
		}
	}
	if tables == nil {
		tables = &reference.Tables{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{TableReceiver, TablePayer, TableBankCodes, TableStatus} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	inserts := []struct {
		query string
		data  map[string]string
	}{
		{"INSERT INTO " + TableReceiver + " (keyword, category) VALUES (?, ?)", tables.Receiver},
		{"INSERT INTO " + TablePayer + " (keyword, category) VALUES (?, ?)", tables.Payer},
		{"INSERT INTO " + TableBankCodes + " (code, name) VALUES (?, ?)", tables.BankCodes},
	}
	for _, ins := range inserts {
		for _, k := range sortedKeys(ins.data) {
			if _, err := tx.ExecContext(ctx, ins.query, k, ins.data[k]); err != nil {
				return fmt.Errorf("seeding %q: %w", k, err)
			}
		}
	}
	for kw, statuses := range tables.StatusKeywords {
		for _, st := range statuses {
			if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO "+TableStatus+" (keyword, status) VALUES (?, ?)", kw, st); err != nil {
				return fmt.Errorf("seeding status %q: %w", kw, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	s.logger.Info("Reference data seeded",
		logging.Field{Key: "receiver_keywords", Value: len(tables.Receiver)},
		logging.Field{Key: "payer_keywords", Value: len(tables.Payer)},
		logging.Field{Key: "bank_codes", Value: len(tables.BankCodes)},
		logging.Field{Key: "status_keywords", Value: len(tables.StatusKeywords)})
	return nil
}

func (s *Store) backup(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	target := s.path + ".bak"
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old backup: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", target); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	s.logger.Info("Database backed up", logging.Field{Key: logging.FieldTable, Value: target})
	return nil
}

func (s *Store) insertUnique(ctx context.Context, countQuery string, countArgs []interface{}, insertQuery string, insertArgs []interface{}, duplicate error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&n); err != nil {
		return fmt.Errorf("checking existing row: %w", err)
	}
	if n > 0 {
		return duplicate
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("inserting row: %w", err)
	}
	return tx.Commit()
}

func (s *Store) execOne(ctx context.Context, notFound error, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ store.ReferenceStore = (*Store)(nil)
