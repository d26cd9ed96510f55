package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/inbox-analyzer/internal/utils"
	"go.uber.org/zap"
)

// fakeRuntime records the last request and answers with a fixed body
type fakeRuntime struct {
	body  string
	err   error
	input *bedrockruntime.InvokeModelInput
}

func (f *fakeRuntime) InvokeModel(_ context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func newTestClient(runtime InvokeModelAPI, modelID string) *BedrockClient {
	return NewBedrockClient(runtime, modelID, 100, 0, 0.9, 4096, zap.NewNop(), utils.NewTextProcessor(nil))
}

func TestAnthropicSentiment(t *testing.T) {
	runtime := &fakeRuntime{body: `{"completion":" {\"label\":\"positive\"}"}`}
	client := newTestClient(runtime, "anthropic.claude-v2")

	got, err := client.AnalyzeSentiment(context.Background(), "love it")
	if err != nil {
		t.Fatalf("AnalyzeSentiment() error = %v", err)
	}
	if got != "positive" {
		t.Errorf("AnalyzeSentiment() = %q, want positive", got)
	}

	if aws.ToString(runtime.input.ModelId) != "anthropic.claude-v2" {
		t.Errorf("ModelId = %q", aws.ToString(runtime.input.ModelId))
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(runtime.input.Body, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	p, _ := payload["prompt"].(string)
	if !strings.HasPrefix(p, "\n\nHuman:") || !strings.HasSuffix(p, "\n\nAssistant:") {
		t.Errorf("prompt = %q, want Human/Assistant framing", p)
	}
	if _, ok := payload["max_tokens_to_sample"]; !ok {
		t.Error("payload missing max_tokens_to_sample")
	}
}

func TestTitanClassify(t *testing.T) {
	runtime := &fakeRuntime{body: `{"results":[{"outputText":"{\"labels\":[\"security\",\"work\"]}"}]}`}
	client := newTestClient(runtime, "amazon.titan-text-express-v1")

	got, err := client.Classify(context.Background(), "Password reset", []string{"work", "security"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got[0] != "security" {
		t.Errorf("Classify() = %v, want security first", got)
	}

	var payload map[string]interface{}
	json.Unmarshal(runtime.input.Body, &payload)
	if _, ok := payload["inputText"]; !ok {
		t.Error("payload missing inputText")
	}
}

func TestTitanEmptyResults(t *testing.T) {
	client := newTestClient(&fakeRuntime{body: `{"results":[]}`}, "amazon.titan-text-express-v1")
	if _, err := client.AnalyzeSentiment(context.Background(), "hi"); err == nil {
		t.Error("expected error for empty Titan results")
	}
}

func TestGenericModel(t *testing.T) {
	client := newTestClient(&fakeRuntime{body: `{"text":"{\"label\":\"neutral\"}"}`}, "meta.llama3")
	got, err := client.AnalyzeSentiment(context.Background(), "ok")
	if err != nil {
		t.Fatalf("AnalyzeSentiment() error = %v", err)
	}
	if got != "neutral" {
		t.Errorf("AnalyzeSentiment() = %q, want neutral", got)
	}
}

func TestInvokeError(t *testing.T) {
	boom := errors.New("throttled")
	client := newTestClient(&fakeRuntime{err: boom}, "anthropic.claude-v2")
	if _, err := client.AnalyzeSentiment(context.Background(), "hi"); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}
