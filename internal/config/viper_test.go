package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with an empty HOME so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	return tempDir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, BackendYAML, config.Store.Backend)
	assert.Equal(t, "database", config.Store.Directory)
	assert.Equal(t, "ref_mapping_penerima.yaml", config.Store.ReceiverFile)
	assert.Equal(t, "ref_mapping_pembayar.yaml", config.Store.PayerFile)
	assert.Equal(t, "bank_codes.yaml", config.Store.BankCodesFile)
	assert.Equal(t, "status_keywords.yaml", config.Store.StatusFile)
	assert.Equal(t, 0.9, config.Validation.FuzzyMatchThreshold)
	assert.Equal(t, DefaultN1STTCodes, config.Validation.N1STTCodes)
	assert.Equal(t, []string{"C0", "F1", "F2", "B0", "D0"}, config.Validation.CategoryPriority)
	assert.Equal(t, []string{"ID", "N1"}, config.Validation.DomesticStatuses)
	assert.True(t, config.Validation.AuditAffiliate)
	assert.Equal(t, "C1", config.Validation.Codes.DomesticBank)
	assert.Equal(t, "C2", config.Validation.Codes.AffiliateForeign)
	assert.Equal(t, []string{"C0", "F1"}, config.Validation.Codes.OrgOverride)
	assert.Empty(t, config.Validation.STTExceptions)
}

func TestDefault_MatchesInitializedDefaults(t *testing.T) {
	isolate(t)

	loaded, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, loaded, Default())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	testEnvVars := map[string]string{
		"LLD_LOG_LEVEL":                        "debug",
		"LLD_LOG_FORMAT":                       "json",
		"LLD_CSV_DELIMITER":                    ";",
		"LLD_STORE_BACKEND":                    "sqlite",
		"LLD_STORE_SQLITE_PATH":                "/tmp/ref.db",
		"LLD_VALIDATION_FUZZY_MATCH_THRESHOLD": "0.85",
		"LLD_VALIDATION_AUDIT_AFFILIATE":       "false",
		"LLD_VALIDATION_CODES_DOMESTIC_BANK":   "L1",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, BackendSQLite, config.Store.Backend)
	assert.Equal(t, "/tmp/ref.db", config.Store.SQLitePath)
	assert.Equal(t, 0.85, config.Validation.FuzzyMatchThreshold)
	assert.False(t, config.Validation.AuditAffiliate)
	assert.Equal(t, "L1", config.Validation.Codes.DomesticBank)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	tempDir := isolate(t)

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
store:
  directory: "refdata"
validation:
  fuzzy_match_threshold: 0.8
  category_priority: ["F1", "C0"]
  stt_exceptions:
    "1nnn": ["B0"]
    "0100": ["E0", "Z9"]
  codes:
    domestic_bank: "L1"
    other_bank: "L9"
    affiliate_domestic: "L1"
    affiliate_foreign: "L2"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "refdata", config.Store.Directory)
	assert.Equal(t, 0.8, config.Validation.FuzzyMatchThreshold)
	assert.Equal(t, []string{"F1", "C0"}, config.Validation.CategoryPriority)
	assert.Equal(t, []string{"B0"}, config.Validation.STTExceptions["1NNN"])
	assert.Equal(t, []string{"E0", "Z9"}, config.Validation.STTExceptions["0100"])
	assert.Equal(t, "L2", config.Validation.Codes.AffiliateForeign)
	// Untouched keys keep their defaults
	assert.Equal(t, "Z9", config.Validation.Codes.Fallback)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	tempDir := isolate(t)

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
validation:
  fuzzy_match_threshold: 0.8
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("LLD_LOG_LEVEL", "error")
	t.Setenv("LLD_VALIDATION_FUZZY_MATCH_THRESHOLD", "0.95")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)                   // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter)                   // config file value
	assert.Equal(t, 0.95, config.Validation.FuzzyMatchThreshold) // env var wins
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid CSV delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" },
			expectError:  "CSV delimiter must be a single character",
		},
		{
			name:         "unknown backend",
			modifyConfig: func(c *Config) { c.Store.Backend = "postgres" },
			expectError:  "invalid store backend",
		},
		{
			name:         "yaml backend without directory",
			modifyConfig: func(c *Config) { c.Store.Directory = "" },
			expectError:  "store.directory is required",
		},
		{
			name: "sqlite backend without path",
			modifyConfig: func(c *Config) {
				c.Store.Backend = BackendSQLite
				c.Store.SQLitePath = ""
			},
			expectError: "store.sqlite_path is required",
		},
		{
			name:         "threshold of one",
			modifyConfig: func(c *Config) { c.Validation.FuzzyMatchThreshold = 1.0 },
			expectError:  "fuzzy_match_threshold must be between",
		},
		{
			name:         "threshold of zero",
			modifyConfig: func(c *Config) { c.Validation.FuzzyMatchThreshold = 0 },
			expectError:  "fuzzy_match_threshold must be between",
		},
		{
			name:         "no n1 codes",
			modifyConfig: func(c *Config) { c.Validation.N1STTCodes = nil },
			expectError:  "n1_stt_codes must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: sqlite\n  sqlite_path: ref.db\n"), 0600))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, config.Store.Backend)
	assert.Equal(t, "ref.db", config.Store.SQLitePath)

	_, err = InitializeConfigFromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_Validate(t *testing.T) {
	config := Default()
	assert.NoError(t, config.Validate())

	config.Log.Level = "loud"
	assert.Error(t, config.Validate())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := Default()
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(config)
	require.NotNil(t, logger)
	assert.Equal(t, "debug", logger.GetLevel().String())

	config.Log.Level = "nonsense"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, "info", logger.GetLevel().String())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("LLD_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("LLD_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("LLD_TEST_MISSING_VALUE", "fallback"))
}

func TestLoadEnv_SearchesParentDirectoryOnce(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LLD_TEST_DOTENV=loaded\n"), 0o600))
	app := filepath.Join(dir, "app")
	require.NoError(t, os.Mkdir(app, 0o750))
	require.NoError(t, os.Chdir(app))
	t.Cleanup(func() { _ = os.Unsetenv("LLD_TEST_DOTENV") })

	once = sync.Once{}
	LoadEnv()
	assert.Equal(t, "loaded", os.Getenv("LLD_TEST_DOTENV"))

	require.NoError(t, os.Unsetenv("LLD_TEST_DOTENV"))
	LoadEnv()
	assert.Empty(t, os.Getenv("LLD_TEST_DOTENV"), "a second call must not reload the file")
}

// clearTestEnvVars unsets every LLD_ variable for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] != '=' {
				continue
			}
			key := kv[:i]
			if len(key) > 4 && key[:4] == "LLD_" {
				t.Setenv(key, "")
				require.NoError(t, os.Unsetenv(key))
			}
			break
		}
	}
}
