package core

import (
	"context"
	"time"
)

// SentimentAnalyzer maps a piece of text to a sentiment label
type SentimentAnalyzer interface {
	// AnalyzeSentiment returns a non-empty label for text
	AnalyzeSentiment(ctx context.Context, text string) (string, error)
}

// ZeroShotClassifier ranks candidate labels for a piece of text
type ZeroShotClassifier interface {
	// Classify returns candidateLabels ordered from best to worst match
	Classify(ctx context.Context, text string, candidateLabels []string) ([]string, error)
}

// PatternDetector computes corpus-wide signals over a request
type PatternDetector interface {
	// DetectPatterns inspects the emails and sender groups of one request
	DetectPatterns(ctx context.Context, emails []Email, senders []SenderGroup) (*Patterns, error)
}

// LabelCache memoizes model answers
type LabelCache interface {
	// Get retrieves a cached entry for a key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// CacheEntry is one memoized model answer
type CacheEntry struct {
	Key       string
	Labels    []string
	LastSeen  time.Time
	ExpiresAt time.Time
}
