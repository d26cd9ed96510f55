package di

import (
	"io"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/inbox-analyzer/internal/adapters/patterns"
	"github.com/mikey/inbox-analyzer/internal/config"
	"github.com/mikey/inbox-analyzer/internal/core"
	"github.com/mikey/inbox-analyzer/internal/factory"
	"github.com/mikey/inbox-analyzer/internal/logging"
	"github.com/mikey/inbox-analyzer/internal/ports"
	"github.com/mikey/inbox-analyzer/internal/utils"
)

// Resources owns the adapters that must be released on exit
type Resources struct {
	cache  core.LabelCache
	models *factory.ModelFactory
	logger *zap.Logger
}

// Close stops the label cache and closes the model client
func (r *Resources) Close() {
	if stopper, ok := r.cache.(ports.Stoppable); ok {
		stopper.Stop()
	}
	if err := r.models.Close(); err != nil {
		r.logger.Error("Failed to close model client", zap.Error(err))
	}
}

// BuildContainer creates and configures a dependency injection container.
// configFile may be empty to search the default locations; reports are
// written to out.
func BuildContainer(configFile string, out io.Writer) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		return config.NewFromFile(configFile)
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideCommon(container, out); err != nil {
		return nil, err
	}

	return container, nil
}

// provideCommon registers everything below configuration and logging
func provideCommon(container *dig.Container, out io.Writer) error {
	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewServiceFactory); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *factory.ReporterFactory {
		return factory.NewReporterFactory(cfg, logger, out)
	}); err != nil {
		return err
	}

	// Register model capabilities and the resources backing them
	if err := container.Provide(func(
		cf *factory.CacheFactory,
		mf *factory.ModelFactory,
		logger *zap.Logger,
	) (*core.Capabilities, *Resources, error) {
		cache, err := cf.CreateLabelCache()
		if err != nil {
			return nil, nil, err
		}
		resources := &Resources{cache: cache, models: mf, logger: logger}
		caps, err := mf.CreateCapabilities(cache)
		if err != nil {
			resources.Close()
			return nil, nil, err
		}
		return caps, resources, nil
	}); err != nil {
		return err
	}

	// Register pattern detector
	if err := container.Provide(func(logger *zap.Logger) core.PatternDetector {
		return patterns.NewHeuristicDetector(logger)
	}); err != nil {
		return err
	}

	// Register analysis service
	if err := container.Provide(func(
		f *factory.ServiceFactory,
		caps *core.Capabilities,
		detector core.PatternDetector,
	) *core.InboxAnalysisService {
		return f.CreateService(caps, detector)
	}); err != nil {
		return err
	}

	// Register reporter
	if err := container.Provide(func(f *factory.ReporterFactory) (ports.Reporter, error) {
		return f.CreateReporter()
	}); err != nil {
		return err
	}

	return nil
}
