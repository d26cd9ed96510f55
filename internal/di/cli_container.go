package di

import (
	"flag"
	"io"
	"strings"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/inbox-analyzer/internal/config"
	"github.com/mikey/inbox-analyzer/internal/logging"
)

// CLIFlags contains all command line flags for the inspect CLI
type CLIFlags struct {
	// Command
	Mode string

	// Model provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
	Timeout     string

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string
	OpenAIBaseURL   string

	// Analysis flags
	TrustedDomains string

	// Input flags
	Sender     string
	Subject    string
	Snippet    string
	InputFile  string
	Format     string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags(fs *flag.FlagSet, args []string) (*CLIFlags, error) {
	flags := &CLIFlags{}

	fs.StringVar(&flags.Mode, "mode", "categorize", "Command to run (categorize, reputation, status)")

	// Model provider flags
	fs.StringVar(&flags.Provider, "provider", "none", "Model provider (none, bedrock, gemini, openai)")
	fs.IntVar(&flags.MaxTokens, "max-tokens", 200, "Maximum tokens for model response")
	fs.Float64Var(&flags.Temperature, "temperature", 0.0, "Temperature for model generation")
	fs.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for model generation")
	fs.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum text size to send to the model")
	fs.StringVar(&flags.Timeout, "timeout", "10s", "Deadline for a single model call")

	// Bedrock flags
	fs.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	fs.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	fs.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	fs.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	fs.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	fs.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4", "OpenAI model name")
	fs.StringVar(&flags.OpenAIBaseURL, "openai-base-url", "", "Base URL of an OpenAI compatible API")

	// Analysis flags
	fs.StringVar(&flags.TrustedDomains, "trusted", "", "Comma-separated list of trusted sender domains")

	// Input flags
	fs.StringVar(&flags.Sender, "sender", "", "Sender of the email to categorize")
	fs.StringVar(&flags.Subject, "subject", "", "Subject of the email to categorize")
	fs.StringVar(&flags.Snippet, "snippet", "", "Snippet of the email to categorize")
	fs.StringVar(&flags.InputFile, "file", "", "Input file: raw email for categorize, JSON sender group for reputation (- for stdin)")
	fs.StringVar(&flags.Format, "format", "text", "Output format (text, json)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// BuildCLIContainer creates and configures a dependency injection container for the inspect CLI
func BuildCLIContainer(flags *CLIFlags, out io.Writer) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	if err := provideCommon(container, out); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// CLI specific settings
	v.Set("cli.verbose", flags.Verbose)
	v.Set("output.format", flags.Format)
	v.Set("cache.enabled", false)

	v.Set("models.provider", flags.Provider)
	v.Set("models.timeout", flags.Timeout)

	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
		v.Set("bedrock.max_body_size", flags.MaxBodySize)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
		v.Set("gemini.max_body_size", flags.MaxBodySize)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.base_url", flags.OpenAIBaseURL)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
		v.Set("openai.max_body_size", flags.MaxBodySize)
	}

	v.Set("analysis.trusted_domains", splitList(flags.TrustedDomains))

	return config.NewFromViper(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
