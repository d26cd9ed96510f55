package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// NewFromFile creates a new configuration instance. An empty path searches
// the default locations for config.yaml.
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/inbox-analyzer/")
		v.AddConfigPath("$HOME/.inbox-analyzer")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("INBOX_ANALYZER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// defaults holds the value of every known key. Environment variables and
// the config file override them.
var defaults = map[string]any{
	"models.provider":           "none",
	"models.sentiment_enabled":  true,
	"models.classifier_enabled": true,
	"models.timeout":            "10s",

	"bedrock.region":        "us-east-1",
	"bedrock.model_id":      "anthropic.claude-v2",
	"bedrock.max_tokens":    200,
	"bedrock.temperature":   0.0,
	"bedrock.top_p":         0.9,
	"bedrock.max_body_size": 4096,

	"gemini.api_key":       "",
	"gemini.model_name":    "gemini-pro",
	"gemini.max_tokens":    200,
	"gemini.temperature":   0.0,
	"gemini.top_p":         0.9,
	"gemini.max_body_size": 4096,

	"openai.api_key":       "",
	"openai.base_url":      "",
	"openai.model_name":    "gpt-4",
	"openai.max_tokens":    200,
	"openai.temperature":   0.0,
	"openai.top_p":         0.9,
	"openai.max_body_size": 4096,

	"analysis.max_emails":      10000,
	"analysis.max_senders":     5000,
	"analysis.max_insights":    20,
	"analysis.group_senders":   false,
	"analysis.trusted_domains": []string{},

	"cache.enabled":           true,
	"cache.type":              "memory",
	"cache.ttl":               "24h",
	"cache.cleanup_frequency": "1h",
	"cache.sqlite_path":       "/data/label_cache.db",
	"cache.mysql_dsn":         "user:password@tcp(localhost:3306)/inbox_analyzer?parseTime=true",

	"output.format": "json",

	"logging.level":  "info",
	"logging.format": "json",
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
