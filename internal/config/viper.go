// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Supported reference store backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Codes names the category codes the rule chain assigns.
type Codes struct {
	Netting           string   `mapstructure:"netting" yaml:"netting"`
	SelfTransfer      string   `mapstructure:"self_transfer" yaml:"self_transfer"`
	DomesticBank      string   `mapstructure:"domestic_bank" yaml:"domestic_bank"`
	OtherBank         string   `mapstructure:"other_bank" yaml:"other_bank"`
	AffiliateDomestic string   `mapstructure:"affiliate_domestic" yaml:"affiliate_domestic"`
	AffiliateForeign  string   `mapstructure:"affiliate_foreign" yaml:"affiliate_foreign"`
	Fallback          string   `mapstructure:"fallback" yaml:"fallback"`
	OrgOverride       []string `mapstructure:"org_override" yaml:"org_override"`
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Store struct {
		Backend       string `mapstructure:"backend" yaml:"backend"`
		Directory     string `mapstructure:"directory" yaml:"directory"`
		ReceiverFile  string `mapstructure:"receiver_file" yaml:"receiver_file"`
		PayerFile     string `mapstructure:"payer_file" yaml:"payer_file"`
		BankCodesFile string `mapstructure:"bank_codes_file" yaml:"bank_codes_file"`
		StatusFile    string `mapstructure:"status_file" yaml:"status_file"`
		SQLitePath    string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	} `mapstructure:"store" yaml:"store"`

	Validation struct {
		N1STTCodes          []string            `mapstructure:"n1_stt_codes" yaml:"n1_stt_codes"`
		FuzzyMatchThreshold float64             `mapstructure:"fuzzy_match_threshold" yaml:"fuzzy_match_threshold"`
		STTExceptions       map[string][]string `mapstructure:"stt_exceptions" yaml:"stt_exceptions"`
		CategoryPriority    []string            `mapstructure:"category_priority" yaml:"category_priority"`
		DomesticStatuses    []string            `mapstructure:"domestic_statuses" yaml:"domestic_statuses"`
		LocationWords       []string            `mapstructure:"location_words" yaml:"location_words"`
		AuditAffiliate      bool                `mapstructure:"audit_affiliate" yaml:"audit_affiliate"`
		Codes               Codes               `mapstructure:"codes" yaml:"codes"`
	} `mapstructure:"validation" yaml:"validation"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches the standard locations; a given path must exist.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.lld-validator")
		v.AddConfigPath(".lld-validator")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("LLD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Validation.STTExceptions = normalizeSTTKeys(config.Validation.STTExceptions)

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultN1STTCodes are the transaction types reported as interbank netting.
var DefaultN1STTCodes = []string{
	"1NNN", "1000", "1901", "1902", "1903", "1904", "1905", "1911", "1912", "1906", "1907",
	"2NNN", "2000", "2901", "2902", "2903", "2904", "2905", "2911", "2912", "2906", "2907",
}

// DefaultLocationWords are dropped from bank names before a bank-code check.
// INDONESIA is excluded as it is part of names such as Bank Indonesia.
var DefaultLocationWords = []string{"KANTOR PUSAT", "KANTOR CABANG", "CABANG", "KCP", "JAKARTA"}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Store defaults
	v.SetDefault("store.backend", BackendYAML)
	v.SetDefault("store.directory", "database")
	v.SetDefault("store.receiver_file", "ref_mapping_penerima.yaml")
	v.SetDefault("store.payer_file", "ref_mapping_pembayar.yaml")
	v.SetDefault("store.bank_codes_file", "bank_codes.yaml")
	v.SetDefault("store.status_file", "status_keywords.yaml")
	v.SetDefault("store.sqlite_path", "database/lld_reference.db")

	// Validation defaults
	v.SetDefault("validation.n1_stt_codes", DefaultN1STTCodes)
	v.SetDefault("validation.fuzzy_match_threshold", 0.9)
	v.SetDefault("validation.stt_exceptions", map[string][]string{})
	v.SetDefault("validation.category_priority", []string{"C0", "F1", "F2", "B0", "D0"})
	v.SetDefault("validation.domestic_statuses", []string{"ID", "N1"})
	v.SetDefault("validation.location_words", DefaultLocationWords)
	v.SetDefault("validation.audit_affiliate", true)
	v.SetDefault("validation.codes.netting", "N1")
	v.SetDefault("validation.codes.self_transfer", "I0")
	v.SetDefault("validation.codes.domestic_bank", "C1")
	v.SetDefault("validation.codes.other_bank", "C9")
	v.SetDefault("validation.codes.affiliate_domestic", "C1")
	v.SetDefault("validation.codes.affiliate_foreign", "C2")
	v.SetDefault("validation.codes.fallback", "Z9")
	v.SetDefault("validation.codes.org_override", []string{"C0", "F1"})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch config.Store.Backend {
	case BackendYAML:
		if config.Store.Directory == "" {
			return fmt.Errorf("store.directory is required for the %s backend", BackendYAML)
		}
	case BackendSQLite:
		if config.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the %s backend", BackendSQLite)
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be '%s' or '%s')", config.Store.Backend, BackendYAML, BackendSQLite)
	}

	// Validate fuzzy threshold
	t := config.Validation.FuzzyMatchThreshold
	if t <= 0.0 || t >= 1.0 {
		return fmt.Errorf("validation.fuzzy_match_threshold must be between 0.0 and 1.0 (exclusive), got: %f", t)
	}

	if len(config.Validation.N1STTCodes) == 0 {
		return fmt.Errorf("validation.n1_stt_codes must not be empty")
	}

	return nil
}

// normalizeSTTKeys upper-cases STT keys, which viper lower-cases on load.
func normalizeSTTKeys(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}

// Validate checks the configuration after it was changed in code, for
// example by command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Default returns the configuration built from defaults only, ignoring
// config files and the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		// Defaults are static and always decode.
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	config.Validation.STTExceptions = normalizeSTTKeys(config.Validation.STTExceptions)
	return &config
}
