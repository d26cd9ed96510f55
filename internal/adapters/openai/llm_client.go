package openai

import (
	"context"
	"fmt"

	"github.com/mikey/inbox-analyzer/internal/adapters/prompt"
	"github.com/mikey/inbox-analyzer/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient answers sentiment and zero-shot classification requests
// with an OpenAI chat model
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// AnalyzeSentiment asks the model for a sentiment label
func (c *OpenAIClient) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	responseText, err := c.complete(ctx, prompt.Sentiment(c.textProcessor.ProcessText(text, c.maxBodySize)))
	if err != nil {
		return "", err
	}
	return prompt.ParseSentiment(responseText)
}

// Classify asks the model to rank the candidate labels
func (c *OpenAIClient) Classify(ctx context.Context, text string, candidateLabels []string) ([]string, error) {
	responseText, err := c.complete(ctx, prompt.Classify(c.textProcessor.ProcessText(text, c.maxBodySize), candidateLabels))
	if err != nil {
		return nil, err
	}
	return prompt.ParseClassification(responseText, candidateLabels)
}

func (c *OpenAIClient) complete(ctx context.Context, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt.SystemMessage,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	c.logger.Debug("OpenAI completion received",
		zap.String("id", resp.ID),
		zap.String("model", c.modelName))

	return resp.Choices[0].Message.Content, nil
}
