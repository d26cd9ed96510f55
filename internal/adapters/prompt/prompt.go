// Package prompt builds the model prompts used by the hosted-model adapters
// and parses their JSON answers.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SystemMessage is sent as the system role where the provider supports one
const SystemMessage = "You are an email analysis system. Respond only with JSON."

const sentimentFormat = `Classify the sentiment of the following email text.
Respond with a JSON object containing:
- label: string, one of "positive", "negative" or "neutral"

Text:
%s

Respond only with the JSON object and nothing else.`

const classifyFormat = `Classify the following email subject into exactly one of these categories: %s.
Respond with a JSON object containing:
- labels: array of all the categories above, ordered from best to worst match

Subject:
%s

Respond only with the JSON object and nothing else.`

// ErrNoJSON is returned when a model answer holds no JSON object
var ErrNoJSON = errors.New("no JSON object in model response")

// SentimentResponse is the structured sentiment answer
type SentimentResponse struct {
	Label string `json:"label"`
}

// ClassificationResponse is the structured zero-shot answer
type ClassificationResponse struct {
	Labels []string `json:"labels"`
}

// Sentiment returns the sentiment prompt for text
func Sentiment(text string) string {
	return fmt.Sprintf(sentimentFormat, text)
}

// Classify returns the zero-shot prompt for text and candidate labels
func Classify(text string, candidateLabels []string) string {
	return fmt.Sprintf(classifyFormat, strings.Join(candidateLabels, ", "), text)
}

// ParseSentiment extracts the label from a sentiment answer
func ParseSentiment(responseText string) (string, error) {
	var resp SentimentResponse
	if err := decode(responseText, &resp); err != nil {
		return "", err
	}
	label := strings.TrimSpace(resp.Label)
	if label == "" {
		return "", fmt.Errorf("empty sentiment label in model response")
	}
	return label, nil
}

// ParseClassification extracts the ranked labels from a zero-shot answer.
// Labels outside candidateLabels are dropped.
func ParseClassification(responseText string, candidateLabels []string) ([]string, error) {
	var resp ClassificationResponse
	if err := decode(responseText, &resp); err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(candidateLabels))
	for _, l := range candidateLabels {
		allowed[l] = true
	}

	labels := make([]string, 0, len(resp.Labels))
	seen := make(map[string]bool, len(resp.Labels))
	for _, l := range resp.Labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if allowed[l] && !seen[l] {
			labels = append(labels, l)
			seen[l] = true
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("no candidate label in model response")
	}
	return labels, nil
}

// decode unmarshals responseText, falling back to the outermost {...} span
// when the model wrapped its JSON in prose
func decode(responseText string, v any) error {
	if err := json.Unmarshal([]byte(responseText), v); err == nil {
		return nil
	}

	start := strings.Index(responseText, "{")
	end := strings.LastIndex(responseText, "}")
	if start < 0 || end <= start {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(responseText[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return nil
}
