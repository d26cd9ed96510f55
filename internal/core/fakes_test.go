package core

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errModel = errors.New("model failed")

// countingSentiment records every call and answers with a fixed label or error
type countingSentiment struct {
	mu     sync.Mutex
	label  string
	err    error
	calls  int
	inputs []string
}

func (s *countingSentiment) AnalyzeSentiment(_ context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.inputs = append(s.inputs, text)
	return s.label, s.err
}

// countingClassifier records every call and answers with a fixed ranking or error
type countingClassifier struct {
	mu     sync.Mutex
	labels []string
	err    error
	calls  int
}

func (c *countingClassifier) Classify(_ context.Context, _ string, _ []string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.labels, c.err
}

// blockingClassifier waits for the context to end
type blockingClassifier struct{}

func (blockingClassifier) Classify(ctx context.Context, _ string, _ []string) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// fakeDetector returns a fixed result
type fakeDetector struct {
	patterns *Patterns
	err      error
	calls    int
}

func (d *fakeDetector) DetectPatterns(_ context.Context, _ []Email, _ []SenderGroup) (*Patterns, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	if d.patterns == nil {
		return &Patterns{}, nil
	}
	return d.patterns, nil
}

// emptyDetector reports no patterns and no error
type emptyDetector struct{}

func (emptyDetector) DetectPatterns(_ context.Context, _ []Email, _ []SenderGroup) (*Patterns, error) {
	return nil, nil
}

// mapCache is an in-memory LabelCache without expiry handling
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*CacheEntry
	setErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*CacheEntry)}
}

func (c *mapCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (c *mapCache) Set(_ context.Context, entry *CacheEntry) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Key] = entry
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *mapCache) Cleanup(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.ExpiresAt) {
			delete(c.entries, k)
		}
	}
	return nil
}

// trustAll marks every sender as trusted
type trustAll struct{}

func (trustAll) IsTrusted(string) bool { return true }

func emailsWithSubject(n int, subject string) []Email {
	emails := make([]Email, n)
	for i := range emails {
		emails[i] = Email{Sender: "x@y.co", Subject: subject}
	}
	return emails
}
