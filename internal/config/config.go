package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted by the backend config key.
const (
	BackendAirtable = "airtable"
	BackendNotion   = "notion"
	BackendMemory   = "memory"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  string         `yaml:"backend"`
	Airtable AirtableConfig `yaml:"airtable"`
	Notion   NotionConfig   `yaml:"notion"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Media    MediaConfig    `yaml:"media"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// AirtableConfig contains spreadsheet-backend settings.
type AirtableConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
	BaseID string `yaml:"base_id"`
}

// Configured reports whether the Airtable credential and base id are
// usable. A placeholder key counts as absent.
func (c AirtableConfig) Configured() bool {
	return CredentialSet(c.APIKey) && c.BaseID != ""
}

// NotionConfig contains workspace-backend settings. DatabaseID is the
// single-database fallback; Databases maps entity names ("projects",
// "tasks", ...) to per-entity database ids.
type NotionConfig struct {
	APIKey     string            `yaml:"-"` // env-only, never in YAML
	DatabaseID string            `yaml:"database_id"`
	Databases  map[string]string `yaml:"databases"`
}

// Configured reports whether the Notion credential and a database id are usable.
func (c NotionConfig) Configured() bool {
	return CredentialSet(c.APIKey) && (c.DatabaseID != "" || len(c.Databases) > 0)
}

// OpenAIConfig contains AI-provider settings. Only the credential is
// used; the data layer implements no generative functionality.
type OpenAIConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
}

// Configured reports whether the OpenAI credential is usable.
func (c OpenAIConfig) Configured() bool {
	return CredentialSet(c.APIKey)
}

// MediaConfig contains S3-compatible storage settings for receipt and
// photo uploads. Empty bucket means media storage is disabled.
type MediaConfig struct {
	Endpoint  string   `yaml:"endpoint"`
	Bucket    string   `yaml:"bucket"`
	Region    string   `yaml:"region"`
	AccessKey string   `yaml:"-"` // env-only, never in YAML
	SecretKey string   `yaml:"-"` // env-only, never in YAML
	UseSSL    *bool    `yaml:"use_ssl"`
	URLExpiry Duration `yaml:"url_expiry"`
}

// AuthConfig contains API authentication settings. An empty key leaves
// the HTTP surface unauthenticated (local development).
type AuthConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// placeholderSuffix matches the sample values shipped in .env.example
// ("your_airtable_api_key_here" and friends). A credential left at its
// placeholder is treated as not configured, never as an error.
const placeholderSuffix = "_here"

// CredentialSet reports whether a credential value is present and not a
// placeholder default.
func CredentialSet(v string) bool {
	if v == "" {
		return false
	}
	return !(strings.HasPrefix(v, "your_") && strings.HasSuffix(v, placeholderSuffix))
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Missing credentials are not an error; the availability checker reports
// them as not_configured instead.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("RENOPLAN_CONFIG_PATH", "config/renoplan.yaml")

	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Backend: BackendAirtable,
		Media: MediaConfig{
			URLExpiry: Duration(15 * time.Minute),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("RENOPLAN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RENOPLAN_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = Duration(d)
		}
	}
	if v := os.Getenv("RENOPLAN_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = Duration(d)
		}
	}
	if v := os.Getenv("RENOPLAN_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ShutdownTimeout = Duration(d)
		}
	}

	// Backend selection
	if v := os.Getenv("RENOPLAN_BACKEND"); v != "" {
		cfg.Backend = v
	}

	// Credentials follow each provider's conventional variable names.
	if v := os.Getenv("AIRTABLE_API_KEY"); v != "" {
		cfg.Airtable.APIKey = v
	}
	if v := os.Getenv("AIRTABLE_BASE_ID"); v != "" {
		cfg.Airtable.BaseID = v
	}
	if v := os.Getenv("NOTION_API_KEY"); v != "" {
		cfg.Notion.APIKey = v
	}
	if v := os.Getenv("NOTION_DATABASE_ID"); v != "" {
		cfg.Notion.DatabaseID = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}

	// Media storage
	if v := os.Getenv("RENOPLAN_MEDIA_ENDPOINT"); v != "" {
		cfg.Media.Endpoint = v
	}
	if v := os.Getenv("RENOPLAN_MEDIA_BUCKET"); v != "" {
		cfg.Media.Bucket = v
	}
	if v := os.Getenv("RENOPLAN_MEDIA_REGION"); v != "" {
		cfg.Media.Region = v
	}
	if v := os.Getenv("RENOPLAN_MEDIA_ACCESS_KEY"); v != "" {
		cfg.Media.AccessKey = v
	}
	if v := os.Getenv("RENOPLAN_MEDIA_SECRET_KEY"); v != "" {
		cfg.Media.SecretKey = v
	}
	if v := os.Getenv("RENOPLAN_MEDIA_USE_SSL"); v != "" {
		useSSL := v == "true" || v == "1"
		cfg.Media.UseSSL = &useSSL
	}
	if v := os.Getenv("RENOPLAN_MEDIA_URL_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Media.URLExpiry = Duration(d)
		}
	}

	// Auth
	if v := os.Getenv("RENOPLAN_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}

	// Log
	if v := os.Getenv("RENOPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RENOPLAN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks structural configuration. Credentials are deliberately
// not validated here: their absence is a reportable state, not an error.
func (c *Config) validate() error {
	switch c.Backend {
	case BackendAirtable, BackendNotion, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want airtable, notion or memory)", c.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// NotionDatabase returns the database id for an entity, falling back to
// the single shared database id.
func (c NotionConfig) NotionDatabase(entity string) string {
	if id, ok := c.Databases[entity]; ok && id != "" {
		return id
	}
	return c.DatabaseID
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
