package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/inbox-analyzer/internal/adapters/prompt"
	"github.com/mikey/inbox-analyzer/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient answers sentiment and zero-shot classification requests
// with a Google Gemini model
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompt.SystemMessage)},
	}

	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// AnalyzeSentiment asks the model for a sentiment label
func (c *GeminiClient) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	responseText, err := c.generate(ctx, prompt.Sentiment(c.textProcessor.ProcessText(text, c.maxBodySize)))
	if err != nil {
		return "", err
	}
	return prompt.ParseSentiment(responseText)
}

// Classify asks the model to rank the candidate labels
func (c *GeminiClient) Classify(ctx context.Context, text string, candidateLabels []string) ([]string, error) {
	responseText, err := c.generate(ctx, prompt.Classify(c.textProcessor.ProcessText(text, c.maxBodySize), candidateLabels))
	if err != nil {
		return nil, err
	}
	return prompt.ParseClassification(responseText, candidateLabels)
}

func (c *GeminiClient) generate(ctx context.Context, userPrompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	c.logger.Debug("Gemini response received", zap.String("model", c.modelName))
	return sb.String(), nil
}
