package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/mikey/inbox-analyzer/internal/utils"
	"go.uber.org/zap"
)

// sentimentInputLimit is the number of characters handed to a sentiment model
const sentimentInputLimit = 512

// CategoryCandidates is the fixed label set offered to a zero-shot classifier
var CategoryCandidates = []string{
	CategoryPromotional,
	CategorySocial,
	CategoryWork,
	CategoryTransactional,
	CategoryBilling,
	CategorySecurity,
}

// Capabilities is the process-wide registry of loaded model capabilities.
// It is built once at startup and only read afterwards. A nil member means
// the capability is unavailable and the rule-based path is used.
type Capabilities struct {
	Sentiment  SentimentAnalyzer
	Classifier ZeroShotClassifier
	Timeout    time.Duration
}

// NewCapabilities creates a capability registry and logs once for every
// capability that is not available
func NewCapabilities(sentiment SentimentAnalyzer, classifier ZeroShotClassifier, timeout time.Duration, logger *zap.Logger) *Capabilities {
	if sentiment == nil {
		logger.Warn("Sentiment model unavailable, falling back to rule-based analysis")
	}
	if classifier == nil {
		logger.Warn("Zero-shot classifier unavailable, falling back to rule-based categorization")
	}
	return &Capabilities{
		Sentiment:  sentiment,
		Classifier: classifier,
		Timeout:    timeout,
	}
}

// RuleSentimentAnalyzer scores text against fixed positive and negative lexicons
type RuleSentimentAnalyzer struct{}

var (
	positiveWords = []string{"great", "excellent", "amazing", "love", "best", "thank"}
	negativeWords = []string{"bad", "terrible", "worst", "hate", "spam", "urgent"}
)

// AnalyzeSentiment returns positive, negative or neutral. Ties are neutral.
func (RuleSentimentAnalyzer) AnalyzeSentiment(_ context.Context, text string) (string, error) {
	if text == "" {
		return SentimentNeutral, nil
	}

	lower := utils.Lower(text)
	pos := utils.CountContained(lower, positiveWords)
	neg := utils.CountContained(lower, negativeWords)

	switch {
	case pos > neg:
		return SentimentPositive, nil
	case neg > pos:
		return SentimentNegative, nil
	default:
		return SentimentNeutral, nil
	}
}

// DefaultClassifier always ranks the work label first
type DefaultClassifier struct{}

// Classify returns the candidates with work moved to the front
func (DefaultClassifier) Classify(_ context.Context, _ string, candidateLabels []string) ([]string, error) {
	ranked := []string{CategoryWork}
	for _, l := range candidateLabels {
		if l != CategoryWork {
			ranked = append(ranked, l)
		}
	}
	return ranked, nil
}

// FallbackSentiment tries a model first and degrades to the rule-based
// analyzer when the model is absent or the call fails
type FallbackSentiment struct {
	model   SentimentAnalyzer
	rules   SentimentAnalyzer
	timeout time.Duration
	logger  *zap.Logger
}

// NewFallbackSentiment creates a sentiment analyzer from the registry
func NewFallbackSentiment(caps *Capabilities, logger *zap.Logger) *FallbackSentiment {
	return &FallbackSentiment{
		model:   caps.Sentiment,
		rules:   RuleSentimentAnalyzer{},
		timeout: caps.Timeout,
		logger:  logger,
	}
}

// AnalyzeSentiment never returns an error; failures use the rule result
func (f *FallbackSentiment) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	if text == "" {
		return SentimentNeutral, nil
	}

	if f.model != nil {
		label, err := f.invokeModel(ctx, utils.FirstRunes(text, sentimentInputLimit))
		if err == nil && label != "" {
			return utils.Lower(label), nil
		}
		f.logger.Debug("Sentiment model failed, using rules", zap.Error(err))
	}

	return f.rules.AnalyzeSentiment(ctx, text)
}

func (f *FallbackSentiment) invokeModel(ctx context.Context, text string) (string, error) {
	ctx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()
	return f.model.AnalyzeSentiment(ctx, text)
}

// FallbackClassifier tries a model first and degrades to DefaultClassifier
type FallbackClassifier struct {
	model   ZeroShotClassifier
	rules   ZeroShotClassifier
	timeout time.Duration
	logger  *zap.Logger
}

// NewFallbackClassifier creates a classifier from the registry
func NewFallbackClassifier(caps *Capabilities, logger *zap.Logger) *FallbackClassifier {
	return &FallbackClassifier{
		model:   caps.Classifier,
		rules:   DefaultClassifier{},
		timeout: caps.Timeout,
		logger:  logger,
	}
}

// Classify returns a ranking whose first label is one of candidateLabels
func (f *FallbackClassifier) Classify(ctx context.Context, text string, candidateLabels []string) ([]string, error) {
	if f.model != nil {
		labels, err := f.invokeModel(ctx, text, candidateLabels)
		if err == nil && len(labels) > 0 && containsLabel(candidateLabels, labels[0]) {
			return labels, nil
		}
		f.logger.Debug("Zero-shot classifier failed, using default label",
			zap.Error(err),
			zap.Strings("labels", labels))
	}

	return f.rules.Classify(ctx, text, candidateLabels)
}

func (f *FallbackClassifier) invokeModel(ctx context.Context, text string, candidateLabels []string) ([]string, error) {
	ctx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()
	return f.model.Classify(ctx, text, candidateLabels)
}

// CachedSentiment memoizes the answers of a sentiment model
type CachedSentiment struct {
	inner  SentimentAnalyzer
	cache  LabelCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSentiment wraps a sentiment model with a label cache
func NewCachedSentiment(inner SentimentAnalyzer, cache LabelCache, ttl time.Duration, logger *zap.Logger) *CachedSentiment {
	return &CachedSentiment{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// AnalyzeSentiment returns a cached label or asks the wrapped model
func (c *CachedSentiment) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	key := cacheKey("sentiment", text)
	if entry, err := c.cache.Get(ctx, key); err == nil && len(entry.Labels) > 0 {
		c.logger.Debug("Cache hit for sentiment", zap.String("key", key))
		return entry.Labels[0], nil
	}

	label, err := c.inner.AnalyzeSentiment(ctx, text)
	if err != nil {
		return "", err
	}

	store(ctx, c.cache, c.logger, key, []string{label}, c.ttl)
	return label, nil
}

// CachedClassifier memoizes the answers of a zero-shot classifier
type CachedClassifier struct {
	inner  ZeroShotClassifier
	cache  LabelCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClassifier wraps a zero-shot classifier with a label cache
func NewCachedClassifier(inner ZeroShotClassifier, cache LabelCache, ttl time.Duration, logger *zap.Logger) *CachedClassifier {
	return &CachedClassifier{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// Classify returns a cached ranking or asks the wrapped model
func (c *CachedClassifier) Classify(ctx context.Context, text string, candidateLabels []string) ([]string, error) {
	key := cacheKey("classify", strings.Join(candidateLabels, ",")+"\x00"+text)
	if entry, err := c.cache.Get(ctx, key); err == nil && len(entry.Labels) > 0 {
		c.logger.Debug("Cache hit for classification", zap.String("key", key))
		return entry.Labels, nil
	}

	labels, err := c.inner.Classify(ctx, text, candidateLabels)
	if err != nil {
		return nil, err
	}

	store(ctx, c.cache, c.logger, key, labels, c.ttl)
	return labels, nil
}

func store(ctx context.Context, cache LabelCache, logger *zap.Logger, key string, labels []string, ttl time.Duration) {
	now := time.Now()
	entry := &CacheEntry{
		Key:       key,
		Labels:    labels,
		LastSeen:  now,
		ExpiresAt: now.Add(ttl),
	}
	if err := cache.Set(ctx, entry); err != nil {
		logger.Error("Failed to update cache", zap.Error(err))
	}
}

func cacheKey(kind, text string) string {
	sum := sha256.Sum256([]byte(kind + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
