package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestService(caps *Capabilities, detector PatternDetector, limits Limits, group bool) *InboxAnalysisService {
	if caps == nil {
		caps = &Capabilities{}
	}
	return NewInboxAnalysisService(caps, NewReputationCalculator(nil, 0), detector, zap.NewNop(), limits, group)
}

func TestAnalyzeRejectsEmptyRequest(t *testing.T) {
	classifier := &countingClassifier{labels: []string{CategoryWork}}
	sentiment := &countingSentiment{label: SentimentNeutral}
	detector := &fakeDetector{}
	svc := newTestService(&Capabilities{Sentiment: sentiment, Classifier: classifier}, detector, Limits{}, false)

	for _, req := range []*AnalysisRequest{nil, {}, {Emails: []Email{}}} {
		resp, err := svc.Analyze(context.Background(), req)
		if !errors.Is(err, ErrNoEmails) {
			t.Errorf("Analyze() error = %v, want %v", err, ErrNoEmails)
		}
		if resp != nil {
			t.Errorf("Analyze() response = %+v, want nil", resp)
		}
	}

	if classifier.calls != 0 || sentiment.calls != 0 || detector.calls != 0 {
		t.Errorf("work done for empty request: classifier=%d sentiment=%d detector=%d",
			classifier.calls, sentiment.calls, detector.calls)
	}
}

func TestAnalyzeLimits(t *testing.T) {
	svc := newTestService(nil, nil, Limits{MaxEmails: 1, MaxSenders: 1}, false)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, &AnalysisRequest{Emails: emailsWithSubject(2, "hi")})
	if !errors.Is(err, ErrTooManyEmails) {
		t.Errorf("error = %v, want %v", err, ErrTooManyEmails)
	}

	_, err = svc.Analyze(ctx, &AnalysisRequest{
		Emails:  emailsWithSubject(1, "hi"),
		Senders: []SenderGroup{{Sender: "a@x.io"}, {Sender: "b@x.io"}},
	})
	if !errors.Is(err, ErrTooManySenders) {
		t.Errorf("error = %v, want %v", err, ErrTooManySenders)
	}
}

func TestAnalyze(t *testing.T) {
	detector := &fakeDetector{patterns: &Patterns{SpamScore: 0.4}}
	svc := newTestService(nil, detector, Limits{}, false)

	req := &AnalysisRequest{
		Emails: []Email{
			{ID: "1", Sender: "deals@shop.com", Subject: "Big sale today"},
			{ID: "2", Sender: "bob@corp.com", Subject: "Meeting notes"},
			{ID: "3", Sender: "alerts@bank.com", Subject: ""},
		},
		Senders: []SenderGroup{
			{Sender: "deals@shop.com", Count: 40, Emails: emailsWithSubject(2, "hello")},
			{Sender: "noreply@bank.com", Count: 3, Emails: emailsWithSubject(1, "hello")},
		},
	}

	resp, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	s := resp.Summary
	if s.TotalEmails != 3 {
		t.Errorf("TotalEmails = %d, want 3", s.TotalEmails)
	}
	if s.UniqueSenders != 2 {
		t.Errorf("UniqueSenders = %d, want 2", s.UniqueSenders)
	}
	wantCategories := map[string]int{CategoryPromotional: 1, CategoryWork: 1, CategorySecurity: 1}
	for k, v := range wantCategories {
		if s.CategoryBreakdown[k] != v {
			t.Errorf("CategoryBreakdown[%s] = %d, want %d", k, s.CategoryBreakdown[k], v)
		}
	}
	if s.SentimentDistribution[SentimentNeutral] != 2 || len(s.SentimentDistribution) != 1 {
		t.Errorf("SentimentDistribution = %v, want only neutral=2", s.SentimentDistribution)
	}
	if s.SpamLikelihood != 0.4 {
		t.Errorf("SpamLikelihood = %v, want 0.4", s.SpamLikelihood)
	}
	if s.StorageEstimate != StorageEstimate(3) {
		t.Errorf("StorageEstimate = %q, want %q", s.StorageEstimate, StorageEstimate(3))
	}

	if len(resp.SenderInsights) != 2 || resp.SenderInsights[0].Sender != "noreply@bank.com" {
		t.Errorf("SenderInsights = %+v, want noreply@bank.com ranked first", resp.SenderInsights)
	}

	if len(resp.Recommendations) != 1 || !strings.HasPrefix(resp.Recommendations[0], "Unsubscribe from promotional emails (1 found") {
		t.Errorf("Recommendations = %v", resp.Recommendations)
	}
}

func TestAnalyzeWithoutSendersLeavesInsightsEmpty(t *testing.T) {
	svc := newTestService(nil, &fakeDetector{}, Limits{}, false)
	resp, err := svc.Analyze(context.Background(), &AnalysisRequest{
		Emails: []Email{{Sender: "a@x.io", Subject: "hi"}, {Sender: "a@x.io", Subject: "again"}},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(resp.SenderInsights) != 0 {
		t.Errorf("SenderInsights = %v, want none", resp.SenderInsights)
	}
	if resp.Summary.UniqueSenders != 1 {
		t.Errorf("UniqueSenders = %d, want 1", resp.Summary.UniqueSenders)
	}
}

func TestAnalyzeGroupsSenders(t *testing.T) {
	svc := newTestService(nil, &fakeDetector{}, Limits{}, true)
	resp, err := svc.Analyze(context.Background(), &AnalysisRequest{
		Emails: []Email{
			{Sender: "Ann <ann@corp.com>", Subject: "Notes"},
			{Sender: "bob@corp.com", Subject: "Lunch"},
			{Sender: "ann@corp.com", Subject: "More notes"},
		},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(resp.SenderInsights) != 2 {
		t.Fatalf("SenderInsights = %+v, want 2 groups", resp.SenderInsights)
	}
	counts := map[string]int{}
	for _, in := range resp.SenderInsights {
		counts[in.Sender] = in.EmailCount
	}
	if counts["ann@corp.com"] != 2 || counts["bob@corp.com"] != 1 {
		t.Errorf("group counts = %v", counts)
	}
	if resp.Summary.UniqueSenders != 2 {
		t.Errorf("UniqueSenders = %d, want 2", resp.Summary.UniqueSenders)
	}
}

func TestAnalyzePatternError(t *testing.T) {
	svc := newTestService(nil, &fakeDetector{err: errModel}, Limits{}, false)
	_, err := svc.Analyze(context.Background(), &AnalysisRequest{Emails: emailsWithSubject(1, "hi")})
	if !errors.Is(err, errModel) {
		t.Errorf("error = %v, want wrapped %v", err, errModel)
	}
}

func TestAnalyzeNilPatterns(t *testing.T) {
	svc := newTestService(nil, emptyDetector{}, Limits{}, false)
	resp, err := svc.Analyze(context.Background(), &AnalysisRequest{Emails: emailsWithSubject(2, "hi")})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.Summary.SpamLikelihood != 0 {
		t.Errorf("SpamLikelihood = %v, want 0", resp.Summary.SpamLikelihood)
	}
	if len(resp.Patterns.SimilarSenderGroups) != 0 || resp.Patterns.TimePatterns.NightEmails != 0 {
		t.Errorf("Patterns = %+v, want empty", resp.Patterns)
	}
}

func TestAnalyzeBatchSkipsSentimentForEmptySubject(t *testing.T) {
	sentiment := &countingSentiment{label: SentimentPositive}
	svc := newTestService(&Capabilities{Sentiment: sentiment}, nil, Limits{}, false)

	batch := svc.AnalyzeBatch(context.Background(), []Email{
		{Sender: "a@x.io", Subject: ""},
		{Sender: "b@x.io", Subject: "hello"},
	})

	if sentiment.calls != 1 {
		t.Errorf("sentiment calls = %d, want 1", sentiment.calls)
	}
	if batch.TotalAnalyzed != 2 {
		t.Errorf("TotalAnalyzed = %d, want 2", batch.TotalAnalyzed)
	}
	if batch.SentimentDistribution[SentimentPositive] != 1 {
		t.Errorf("SentimentDistribution = %v", batch.SentimentDistribution)
	}
}

func TestCategorizeSingleEmail(t *testing.T) {
	svc := newTestService(nil, nil, Limits{}, false)
	got := svc.Categorize(context.Background(), &Email{Sender: "friend@linkedin.com", Subject: "Great to connect"})

	want := EmailCategorization{Category: CategorySocial, Sentiment: SentimentPositive, Confidence: 0.85}
	if *got != want {
		t.Errorf("Categorize() = %+v, want %+v", *got, want)
	}
}

func TestSentimentFallsBackOnModelError(t *testing.T) {
	svc := newTestService(&Capabilities{Sentiment: &countingSentiment{err: errModel}}, nil, Limits{}, false)
	if got := svc.Sentiment(context.Background(), "I hate this"); got != SentimentNegative {
		t.Errorf("Sentiment() = %q, want %q", got, SentimentNegative)
	}
}

func TestStatus(t *testing.T) {
	svc := newTestService(&Capabilities{Sentiment: &countingSentiment{}}, &fakeDetector{}, Limits{}, false)
	got := svc.Status()
	want := Status{
		Service:          "inbox-analyzer",
		SentimentModel:   true,
		ClassifierModel:  false,
		SenderClassifier: true,
		PatternDetector:  true,
	}
	if *got != want {
		t.Errorf("Status() = %+v, want %+v", *got, want)
	}
}
