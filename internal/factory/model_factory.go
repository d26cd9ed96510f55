package factory

import (
	"fmt"
	"io"

	"github.com/mikey/inbox-analyzer/internal/adapters/bedrock"
	"github.com/mikey/inbox-analyzer/internal/adapters/gemini"
	"github.com/mikey/inbox-analyzer/internal/adapters/openai"
	"github.com/mikey/inbox-analyzer/internal/config"
	"github.com/mikey/inbox-analyzer/internal/core"
	"github.com/mikey/inbox-analyzer/internal/utils"
	"go.uber.org/zap"
)

// modelClient is implemented by every hosted-model adapter
type modelClient interface {
	core.SentimentAnalyzer
	core.ZeroShotClassifier
}

// ModelFactory builds the capability registry from configuration
type ModelFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	client        modelClient
}

// NewModelFactory creates a new model factory
func NewModelFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ModelFactory {
	return &ModelFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateCapabilities loads the configured model once. A model that fails to
// load leaves its capabilities unavailable instead of failing startup.
// Only an invalid configuration is returned as an error.
func (f *ModelFactory) CreateCapabilities(cache core.LabelCache) (*core.Capabilities, error) {
	modelsCfg, err := f.cfg.GetModels()
	if err != nil {
		return nil, err
	}

	client, err := f.createClient(modelsCfg.Provider)
	if err != nil {
		return nil, err
	}
	f.client = client

	var sentiment core.SentimentAnalyzer
	var classifier core.ZeroShotClassifier
	if client != nil {
		if modelsCfg.SentimentEnabled {
			sentiment = client
		}
		if modelsCfg.ClassifierEnabled {
			classifier = client
		}
	}

	if cache != nil {
		cacheCfg, err := f.cfg.GetCache()
		if err != nil {
			return nil, err
		}
		ttl := cacheCfg.TTL
		if sentiment != nil {
			sentiment = core.NewCachedSentiment(sentiment, cache, ttl, f.logger)
		}
		if classifier != nil {
			classifier = core.NewCachedClassifier(classifier, cache, ttl, f.logger)
		}
	}

	return core.NewCapabilities(sentiment, classifier, modelsCfg.Timeout, f.logger), nil
}

// Close releases the loaded model client, if it holds resources
func (f *ModelFactory) Close() error {
	if closer, ok := f.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (f *ModelFactory) createClient(provider string) (modelClient, error) {
	var (
		client modelClient
		err    error
	)

	switch provider {
	case "", "none":
		return nil, nil
	case "openai":
		client, err = openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "gemini":
		client, err = gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "bedrock":
		client, err = bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", provider)
	}

	if err != nil {
		f.logger.Warn("Failed to load model, using rule-based analysis",
			zap.String("provider", provider),
			zap.Error(err))
		return nil, nil
	}

	f.logger.Info("Loaded model capabilities", zap.String("provider", provider))
	return client, nil
}
