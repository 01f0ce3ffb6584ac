// Package container provides dependency injection for the lld-validator
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"io"
	"unicode/utf8"

	"lldbank/lld-validator/internal/config"
	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/recordio"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/sqlstore"
	"lldbank/lld-validator/internal/store"
	"lldbank/lld-validator/internal/validator"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.ReferenceStore
	provider   reference.Provider
	validator  *validator.Validator
	fileRunner *validator.FileRunner
}

// NewContainer creates and wires all application dependencies, opening the
// reference store selected by cfg.Store.Backend.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	refStore, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	c, err := build(cfg, refStore, logger)
	if err != nil {
		if closer, ok := refStore.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, err
	}
	return c, nil
}

// NewContainerWithStore wires the application around an existing store.
func NewContainerWithStore(cfg *config.Config, refStore store.ReferenceStore, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if refStore == nil {
		return nil, fmt.Errorf("reference store cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	return build(cfg, refStore, logger)
}

func openStore(cfg *config.Config, logger logging.Logger) (store.ReferenceStore, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		s, err := sqlstore.Open(cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open reference database: %w", err)
		}
		return s, nil
	case config.BackendYAML, "":
		return store.NewYAMLStore(cfg.Store.Directory, store.Files{
			Receiver:  cfg.Store.ReceiverFile,
			Payer:     cfg.Store.PayerFile,
			BankCodes: cfg.Store.BankCodesFile,
			Status:    cfg.Store.StatusFile,
		}, logger), nil
	}
	return nil, fmt.Errorf("invalid store backend: %s", cfg.Store.Backend)
}

func build(cfg *config.Config, refStore store.ReferenceStore, logger logging.Logger) (*Container, error) {
	rules, err := reference.RulesFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid validation settings: %w", err)
	}
	delimiter, err := Delimiter(cfg)
	if err != nil {
		return nil, err
	}

	provider := reference.NewStoreProvider(refStore, rules, logger)
	v := validator.New(provider, logger)
	runner := validator.NewFileRunner(v,
		recordio.NewReader(delimiter, logger),
		recordio.NewWriter(delimiter, logger),
		logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldStore, Value: cfg.Store.Backend})

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      refStore,
		provider:   provider,
		validator:  v,
		fileRunner: runner,
	}, nil
}

// Delimiter returns the configured CSV delimiter, a comma by default.
func Delimiter(cfg *config.Config) (rune, error) {
	if cfg == nil || cfg.CSV.Delimiter == "" {
		return ',', nil
	}
	if utf8.RuneCountInString(cfg.CSV.Delimiter) != 1 {
		return 0, fmt.Errorf("csv.delimiter must be a single character, got %q", cfg.CSV.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(cfg.CSV.Delimiter)
	return r, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the reference store.
func (c *Container) GetStore() store.ReferenceStore {
	return c.store
}

// GetProvider returns the snapshot provider backed by the store.
func (c *Container) GetProvider() reference.Provider {
	return c.provider
}

// GetValidator returns the record validator.
func (c *Container) GetValidator() *validator.Validator {
	return c.validator
}

// GetFileRunner returns the file-level validation runner.
func (c *Container) GetFileRunner() *validator.FileRunner {
	return c.fileRunner
}

// Close releases the reference store.
func (c *Container) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close reference store: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
