package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// categorizationConfidence is reported with single-email categorizations
const categorizationConfidence = 0.85

// Limits bounds the size of a single analysis request. Zero means unbounded.
type Limits struct {
	MaxEmails  int
	MaxSenders int
}

// InboxAnalysisService is the core service for inbox analysis
type InboxAnalysisService struct {
	caps         *Capabilities
	categorizer  *Categorizer
	sentiment    SentimentAnalyzer
	reputation   *ReputationCalculator
	patterns     PatternDetector
	logger       *zap.Logger
	limits       Limits
	groupSenders bool
}

// NewInboxAnalysisService creates a new inbox analysis service
func NewInboxAnalysisService(
	caps *Capabilities,
	reputation *ReputationCalculator,
	patterns PatternDetector,
	logger *zap.Logger,
	limits Limits,
	groupSenders bool,
) *InboxAnalysisService {
	return &InboxAnalysisService{
		caps:         caps,
		categorizer:  NewCategorizer(NewFallbackClassifier(caps, logger)),
		sentiment:    NewFallbackSentiment(caps, logger),
		reputation:   reputation,
		patterns:     patterns,
		logger:       logger,
		limits:       limits,
		groupSenders: groupSenders,
	}
}

// Sentiment returns the sentiment label of text
func (s *InboxAnalysisService) Sentiment(ctx context.Context, text string) string {
	label, err := s.sentiment.AnalyzeSentiment(ctx, text)
	if err != nil || label == "" {
		return SentimentNeutral
	}
	return label
}

// AnalyzeBatch categorizes every email and tallies subject sentiment.
// Emails without a subject are categorized but get no sentiment tally.
func (s *InboxAnalysisService) AnalyzeBatch(ctx context.Context, emails []Email) *BatchAnalysis {
	result := &BatchAnalysis{
		CategoryCounts:        make(map[string]int),
		SentimentDistribution: make(map[string]int),
		TotalAnalyzed:         len(emails),
	}

	for i := range emails {
		email := &emails[i]
		result.CategoryCounts[s.categorizer.Categorize(ctx, email)]++

		if email.Subject != "" {
			result.SentimentDistribution[s.Sentiment(ctx, email.Subject)]++
		}
	}

	return result
}

// Categorize labels a single email with its category and the sentiment of
// its subject and snippet
func (s *InboxAnalysisService) Categorize(ctx context.Context, email *Email) *EmailCategorization {
	return &EmailCategorization{
		Category:   s.categorizer.Categorize(ctx, email),
		Sentiment:  s.Sentiment(ctx, email.Subject+" "+email.Snippet),
		Confidence: categorizationConfidence,
	}
}

// SenderReputation scores a single sender group
func (s *InboxAnalysisService) SenderReputation(group *SenderGroup) ReputationInsight {
	return s.reputation.Reputation(group)
}

// Analyze runs the full pipeline over one request
func (s *InboxAnalysisService) Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	senders := req.Senders
	if len(senders) == 0 && s.groupSenders {
		senders = GroupSenders(ctx, req.Emails, s.categorizer)
		s.logger.Debug("Grouped emails by sender", zap.Int("groups", len(senders)))
	}

	batch := s.AnalyzeBatch(ctx, req.Emails)
	insights := s.reputation.AnalyzeSenders(senders)

	patterns := &Patterns{}
	if s.patterns != nil {
		detected, err := s.patterns.DetectPatterns(ctx, req.Emails, senders)
		if err != nil {
			return nil, fmt.Errorf("failed to detect patterns: %w", err)
		}
		if detected != nil {
			patterns = detected
		}
	}

	summary := AnalysisSummary{
		TotalEmails:           len(req.Emails),
		UniqueSenders:         uniqueSenders(req.Emails, senders),
		CategoryBreakdown:     batch.CategoryCounts,
		SentimentDistribution: batch.SentimentDistribution,
		SpamLikelihood:        patterns.SpamScore,
		StorageEstimate:       StorageEstimate(len(req.Emails)),
	}

	s.logger.Info("Analyzed inbox",
		zap.Int("emails", summary.TotalEmails),
		zap.Int("senders", summary.UniqueSenders),
		zap.Int("insights", len(insights)))

	return &AnalysisResponse{
		Summary:         summary,
		Recommendations: Recommend(&summary, insights, patterns),
		SenderInsights:  insights,
		Patterns:        *patterns,
	}, nil
}

// Status reports which capabilities are loaded
func (s *InboxAnalysisService) Status() *Status {
	return &Status{
		Service:          "inbox-analyzer",
		SentimentModel:   s.caps.Sentiment != nil,
		ClassifierModel:  s.caps.Classifier != nil,
		SenderClassifier: s.reputation != nil,
		PatternDetector:  s.patterns != nil,
	}
}

func (s *InboxAnalysisService) validate(req *AnalysisRequest) error {
	if req == nil || len(req.Emails) == 0 {
		return ErrNoEmails
	}
	if s.limits.MaxEmails > 0 && len(req.Emails) > s.limits.MaxEmails {
		return fmt.Errorf("%w: %d > %d", ErrTooManyEmails, len(req.Emails), s.limits.MaxEmails)
	}
	if s.limits.MaxSenders > 0 && len(req.Senders) > s.limits.MaxSenders {
		return fmt.Errorf("%w: %d > %d", ErrTooManySenders, len(req.Senders), s.limits.MaxSenders)
	}
	return nil
}

func uniqueSenders(emails []Email, senders []SenderGroup) int {
	if len(senders) > 0 {
		return len(senders)
	}
	seen := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		seen[e.Sender] = struct{}{}
	}
	return len(seen)
}
