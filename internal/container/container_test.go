package container

import (
	"context"
	"path/filepath"
	"testing"

	"lldbank/lld-validator/internal/config"
	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/sqlstore"
	"lldbank/lld-validator/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Directory = t.TempDir()
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "ref.db")
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
		storeType   interface{}
	}{
		{
			name:        "nil config",
			config:      func(*testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:      "yaml backend",
			config:    testConfig,
			storeType: &store.YAMLStore{},
		},
		{
			name: "sqlite backend",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Store.Backend = config.BackendSQLite
				return cfg
			},
			storeType: &sqlstore.Store{},
		},
		{
			name: "unknown backend",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Store.Backend = "redis"
				return cfg
			},
			expectError: true,
			errorMsg:    "invalid store backend",
		},
		{
			name: "unknown category code",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Validation.Codes.Fallback = "X9"
				return cfg
			},
			expectError: true,
			errorMsg:    "codes.fallback",
		},
		{
			name: "bad delimiter",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.CSV.Delimiter = ";;"
				return cfg
			},
			expectError: true,
			errorMsg:    "single character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, c.Close()) }()

			assert.IsType(t, tt.storeType, c.GetStore())
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetProvider())
			assert.NotNil(t, c.GetValidator())
			assert.NotNil(t, c.GetFileRunner())
		})
	}
}

func TestNewContainerWithStore(t *testing.T) {
	cfg := testConfig(t)
	mock := store.NewMockReferenceStore(reference.SeedTables())

	c, err := NewContainerWithStore(cfg, mock, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Same(t, mock, c.GetStore())

	snap, err := c.GetProvider().Load(context.Background())
	require.NoError(t, err)
	name, ok := snap.BankName("333")
	assert.True(t, ok)
	assert.Equal(t, "BBB", name)

	_, err = NewContainerWithStore(cfg, nil, nil)
	assert.Error(t, err)
	_, err = NewContainerWithStore(nil, mock, nil)
	assert.Error(t, err)
}

func TestDelimiter(t *testing.T) {
	cfg := config.Default()

	r, err := Delimiter(cfg)
	require.NoError(t, err)
	assert.Equal(t, ',', r)

	cfg.CSV.Delimiter = ";"
	r, err = Delimiter(cfg)
	require.NoError(t, err)
	assert.Equal(t, ';', r)

	cfg.CSV.Delimiter = ""
	r, err = Delimiter(cfg)
	require.NoError(t, err)
	assert.Equal(t, ',', r)

	r, err = Delimiter(nil)
	require.NoError(t, err)
	assert.Equal(t, ',', r)
}
