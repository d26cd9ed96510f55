package factory

import (
	"github.com/mikey/inbox-analyzer/internal/config"
	"github.com/mikey/inbox-analyzer/internal/core"
	"github.com/mikey/inbox-analyzer/internal/trust"
	"go.uber.org/zap"
)

// ServiceFactory assembles the inbox analysis service
type ServiceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServiceFactory creates a new service factory
func NewServiceFactory(cfg *config.Config, logger *zap.Logger) *ServiceFactory {
	return &ServiceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateService creates the analysis service over the given capabilities
// and pattern detector
func (f *ServiceFactory) CreateService(caps *core.Capabilities, patterns core.PatternDetector) *core.InboxAnalysisService {
	analysisCfg := f.cfg.GetAnalysis()

	spam := core.NewSpamScorer(trust.NewChecker(analysisCfg.TrustedDomains, f.logger))
	reputation := core.NewReputationCalculator(spam, analysisCfg.MaxInsights)

	return core.NewInboxAnalysisService(
		caps,
		reputation,
		patterns,
		f.logger,
		core.Limits{
			MaxEmails:  analysisCfg.MaxEmails,
			MaxSenders: analysisCfg.MaxSenders,
		},
		analysisCfg.GroupSenders,
	)
}
