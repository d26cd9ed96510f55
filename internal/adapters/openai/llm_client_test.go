package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/inbox-analyzer/internal/config"
	"github.com/mikey/inbox-analyzer/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// newTestServer answers every chat completion with content
func newTestServer(t *testing.T, status int, content string) (*httptest.Server, *[]openai.ChatCompletionRequest) {
	t.Helper()
	var requests []openai.ChatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
			return
		}
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "cmpl-1",
			Object: "chat.completion",
			Choices: []openai.ChatCompletionChoice{{
				Index:   0,
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestClient(srv *httptest.Server) *OpenAIClient {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewOpenAIClient(openai.NewClientWithConfig(cfg), "gpt-test", 50, 0, 1, 4096, zap.NewNop(), utils.NewTextProcessor(nil))
}

func TestAnalyzeSentiment(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, `{"label":"negative"}`)
	client := newTestClient(srv)

	got, err := client.AnalyzeSentiment(context.Background(), "this is awful")
	if err != nil {
		t.Fatalf("AnalyzeSentiment() error = %v", err)
	}
	if got != "negative" {
		t.Errorf("AnalyzeSentiment() = %q, want negative", got)
	}

	if len(*requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(*requests))
	}
	req := (*requests)[0]
	if req.Model != "gpt-test" {
		t.Errorf("model = %q, want gpt-test", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("messages = %+v, want system and user", req.Messages)
	}
}

func TestClassify(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"labels":["billing","work"]}`)
	client := newTestClient(srv)

	got, err := client.Classify(context.Background(), "Invoice due", []string{"work", "billing"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(got) != 2 || got[0] != "billing" {
		t.Errorf("Classify() = %v, want billing first", got)
	}
}

func TestServerError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, "")
	client := newTestClient(srv)

	if _, err := client.AnalyzeSentiment(context.Background(), "hello"); err == nil {
		t.Error("expected error from failing server")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	if _, err := NewFactory(cfg, zap.NewNop(), utils.NewTextProcessor(nil)).CreateClient(); err == nil {
		t.Error("expected error without API key")
	}
}

func TestFactoryUsesBaseURL(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, `{"label":"positive"}`)

	v := config.NewEmptyViper()
	v.Set("openai.api_key", "test-key")
	v.Set("openai.base_url", srv.URL+"/v1")
	v.Set("openai.model_name", "local-model")

	client, err := NewFactory(config.NewFromViper(v), zap.NewNop(), utils.NewTextProcessor(nil)).CreateClient()
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	if _, err := client.AnalyzeSentiment(context.Background(), "great"); err != nil {
		t.Fatalf("AnalyzeSentiment() error = %v", err)
	}
	if len(*requests) != 1 || (*requests)[0].Model != "local-model" {
		t.Errorf("requests = %+v", *requests)
	}
}
