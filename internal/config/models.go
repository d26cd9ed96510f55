package config

import (
	"fmt"
	"time"
)

// ModelsConfig represents the configuration of the model capabilities
type ModelsConfig struct {
	Provider          string
	SentimentEnabled  bool
	ClassifierEnabled bool
	Timeout           time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// AnalysisConfig bounds and tunes a single analysis request
type AnalysisConfig struct {
	MaxEmails      int
	MaxSenders     int
	MaxInsights    int
	GroupSenders   bool
	TrustedDomains []string
}

// GetModels returns the model capability configuration. A timeout of 0s
// disables the per-call deadline.
func (c *Config) GetModels() (ModelsConfig, error) {
	cfg := ModelsConfig{
		Provider:          c.GetString("models.provider"),
		SentimentEnabled:  c.GetBool("models.sentiment_enabled"),
		ClassifierEnabled: c.GetBool("models.classifier_enabled"),
	}

	timeout, err := c.GetDuration("models.timeout")
	if err != nil {
		return cfg, fmt.Errorf("invalid models timeout: %w", err)
	}
	if timeout < 0 {
		return cfg, fmt.Errorf("invalid models timeout: %s is negative", timeout)
	}
	cfg.Timeout = timeout
	return cfg, nil
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetAnalysis returns the analysis configuration
func (c *Config) GetAnalysis() AnalysisConfig {
	return AnalysisConfig{
		MaxEmails:      c.GetInt("analysis.max_emails"),
		MaxSenders:     c.GetInt("analysis.max_senders"),
		MaxInsights:    c.GetInt("analysis.max_insights"),
		GroupSenders:   c.GetBool("analysis.group_senders"),
		TrustedDomains: c.GetStringSlice("analysis.trusted_domains"),
	}
}

// CacheConfig selects and tunes the model label cache
type CacheConfig struct {
	Enabled          bool
	Type             string
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
}

// GetCache returns the label cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	cfg := CacheConfig{
		Enabled:    c.GetBool("cache.enabled"),
		Type:       c.GetString("cache.type"),
		SQLitePath: c.GetString("cache.sqlite_path"),
		MySQLDSN:   c.GetString("cache.mysql_dsn"),
	}

	var err error
	if cfg.TTL, err = c.GetDuration("cache.ttl"); err != nil {
		return cfg, fmt.Errorf("invalid cache ttl: %w", err)
	}
	if cfg.CleanupFrequency, err = c.GetDuration("cache.cleanup_frequency"); err != nil {
		return cfg, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}
	return cfg, nil
}
