package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	models, err := cfg.GetModels()
	if err != nil {
		t.Fatalf("GetModels() error = %v", err)
	}
	if models.Provider != "none" || models.Timeout != 10*time.Second {
		t.Errorf("GetModels() = %+v", models)
	}

	analysis := cfg.GetAnalysis()
	if analysis.MaxInsights != 20 || analysis.GroupSenders || len(analysis.TrustedDomains) != 0 {
		t.Errorf("GetAnalysis() = %+v", analysis)
	}
	if analysis.MaxEmails != 10000 || analysis.MaxSenders != 5000 {
		t.Errorf("limits = %d/%d", analysis.MaxEmails, analysis.MaxSenders)
	}

	if got := cfg.GetString("output.format"); got != "json" {
		t.Errorf("output.format = %q, want json", got)
	}
}

func TestGetModelsTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{name: "explicit zero disables deadline", timeout: "0s", want: 0},
		{name: "valid", timeout: "250ms", want: 250 * time.Millisecond},
		{name: "space inside", timeout: "10 s", wantErr: true},
		{name: "word", timeout: "soon", wantErr: true},
		{name: "empty", timeout: "", wantErr: true},
		{name: "negative", timeout: "-1s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewEmptyViper()
			v.Set("models.timeout", tt.timeout)

			got, err := NewFromViper(v).GetModels()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("GetModels() timeout = %v, want error", got.Timeout)
				}
				if !strings.Contains(err.Error(), "invalid models timeout") {
					t.Errorf("error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetModels() error = %v", err)
			}
			if got.Timeout != tt.want {
				t.Errorf("Timeout = %v, want %v", got.Timeout, tt.want)
			}
		})
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
models:
  provider: openai
openai:
  api_key: sk-test
  model_name: gpt-4o-mini
analysis:
  group_senders: true
  trusted_domains:
    - example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}

	if got, _ := cfg.GetModels(); got.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", got.Provider)
	}
	openai := cfg.GetOpenAI()
	if openai.APIKey != "sk-test" || openai.ModelName != "gpt-4o-mini" || openai.MaxTokens != 200 {
		t.Errorf("GetOpenAI() = %+v", openai)
	}
	analysis := cfg.GetAnalysis()
	if !analysis.GroupSenders || len(analysis.TrustedDomains) != 1 || analysis.TrustedDomains[0] != "example.com" {
		t.Errorf("GetAnalysis() = %+v", analysis)
	}
}

func TestNewFromFileMissing(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("INBOX_ANALYZER_MODELS_PROVIDER", "gemini")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}
	if got, _ := cfg.GetModels(); got.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", got.Provider)
	}
}

func TestGetCache(t *testing.T) {
	cacheCfg, err := NewFromViper(NewEmptyViper()).GetCache()
	if err != nil {
		t.Fatalf("GetCache() error = %v", err)
	}
	if !cacheCfg.Enabled || cacheCfg.Type != "memory" || cacheCfg.TTL != 24*time.Hour || cacheCfg.CleanupFrequency != time.Hour {
		t.Errorf("GetCache() = %+v", cacheCfg)
	}

	v := NewEmptyViper()
	v.Set("cache.cleanup_frequency", "often")
	if _, err := NewFromViper(v).GetCache(); err == nil {
		t.Error("expected error for malformed cleanup frequency")
	}
}
