// Package config loads tonelint settings. Environment variables override
// the YAML file, and built-in defaults fill whatever is still unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pthm/tonelint/internal/classifier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given and the file exists
const DefaultPath = "tonelint.yaml"

// Rewrite providers
const (
	ProviderAnthropic  = "anthropic"
	ProviderClaudeCode = "claude-code"
)

// Config holds every tunable setting
type Config struct {
	BusinessModelPath      string `yaml:"business_model_path"`
	BusinessVectorizerPath string `yaml:"business_vectorizer_path"`
	SupportModelPath       string `yaml:"support_model_path"`
	SupportVectorizerPath  string `yaml:"support_vectorizer_path"`
	TablesPath             string `yaml:"tables_path"`

	DBPath     string `yaml:"db_path"`
	ListenAddr string `yaml:"listen_addr"`

	RewriteProvider  string        `yaml:"rewrite_provider"`
	RewriteModel     string        `yaml:"rewrite_model"`
	AnthropicAPIKey  string        `yaml:"anthropic_api_key"`
	RewriteRetries   int           `yaml:"rewrite_retries"`
	RewriteBaseDelay time.Duration `yaml:"rewrite_base_delay"`
	RewriteMaxTokens int           `yaml:"rewrite_max_tokens"`

	LogLevel string `yaml:"log_level"`
}

// Load reads the config file at path, applies env overrides, then fills
// defaults. An empty path falls back to TONELINT_CONFIG, then DefaultPath;
// only an explicitly named file must exist.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if path == "" {
		path = os.Getenv("TONELINT_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// no config file; env and defaults only
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	envOverride(&cfg.BusinessModelPath, "TONELINT_BUSINESS_MODEL_PATH")
	envOverride(&cfg.BusinessVectorizerPath, "TONELINT_BUSINESS_VECTORIZER_PATH")
	envOverride(&cfg.SupportModelPath, "TONELINT_SUPPORT_MODEL_PATH")
	envOverride(&cfg.SupportVectorizerPath, "TONELINT_SUPPORT_VECTORIZER_PATH")
	envOverride(&cfg.TablesPath, "TONELINT_TABLES_PATH")
	envOverride(&cfg.DBPath, "TONELINT_DB_PATH")
	envOverride(&cfg.ListenAddr, "TONELINT_LISTEN_ADDR")
	envOverride(&cfg.RewriteProvider, "TONELINT_REWRITE_PROVIDER")
	envOverride(&cfg.RewriteModel, "TONELINT_REWRITE_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.LogLevel, "TONELINT_LOG_LEVEL")

	if err := envOverrideInt(&cfg.RewriteRetries, "TONELINT_REWRITE_RETRIES"); err != nil {
		return err
	}
	if err := envOverrideInt(&cfg.RewriteMaxTokens, "TONELINT_REWRITE_MAX_TOKENS"); err != nil {
		return err
	}
	return envOverrideDuration(&cfg.RewriteBaseDelay, "TONELINT_REWRITE_BASE_DELAY")
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = "./tonelint.db"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.RewriteProvider == "" {
		c.RewriteProvider = ProviderAnthropic
	}
	if c.RewriteRetries == 0 {
		c.RewriteRetries = 5
	}
	if c.RewriteBaseDelay == 0 {
		c.RewriteBaseDelay = 2 * time.Second
	}
	if c.RewriteMaxTokens == 0 {
		c.RewriteMaxTokens = 3000
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	switch c.RewriteProvider {
	case ProviderAnthropic, ProviderClaudeCode:
	default:
		return fmt.Errorf("rewrite_provider must be %q or %q, got %q",
			ProviderAnthropic, ProviderClaudeCode, c.RewriteProvider)
	}
	if c.RewriteRetries < 1 {
		return fmt.Errorf("invalid rewrite_retries %d: must be >= 1", c.RewriteRetries)
	}
	if c.RewriteBaseDelay < 0 {
		return fmt.Errorf("invalid rewrite_base_delay %s: must not be negative", c.RewriteBaseDelay)
	}
	if c.RewriteMaxTokens < 1 {
		return fmt.Errorf("invalid rewrite_max_tokens %d: must be >= 1", c.RewriteMaxTokens)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ScorerPaths returns the artifact paths per scorer category
func (c *Config) ScorerPaths() map[classifier.Category]classifier.PairPaths {
	return map[classifier.Category]classifier.PairPaths{
		classifier.CategoryBusinessEmail: {
			Model:      c.BusinessModelPath,
			Vectorizer: c.BusinessVectorizerPath,
		},
		classifier.CategoryCustomerSupport: {
			Model:      c.SupportModelPath,
			Vectorizer: c.SupportVectorizerPath,
		},
	}
}

// Tables returns the lexical tables, loading the override file when set.
// An unreadable or invalid override is a startup error.
func (c *Config) Tables() (*classifier.Tables, error) {
	if c.TablesPath == "" {
		return classifier.DefaultTables(), nil
	}
	t, err := classifier.LoadTablesFile(c.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("loading rule tables: %w", err)
	}
	return t, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func envOverrideDuration(field *time.Duration, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}
