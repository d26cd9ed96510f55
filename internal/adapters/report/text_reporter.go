package report

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/mikey/inbox-analyzer/internal/core"
	"go.uber.org/zap"
)

// TextReporter prints human-readable reports
type TextReporter struct {
	out     io.Writer
	logger  *zap.Logger
	verbose bool
}

// NewTextReporter creates a new text reporter
func NewTextReporter(out io.Writer, logger *zap.Logger, verbose bool) *TextReporter {
	return &TextReporter{out: out, logger: logger, verbose: verbose}
}

// ReportAnalysis prints the summary, recommendations and sender insights
func (r *TextReporter) ReportAnalysis(_ context.Context, resp *core.AnalysisResponse) error {
	r.logger.Debug("Rendering text report", zap.Int("insights", len(resp.SenderInsights)))

	s := resp.Summary
	fmt.Fprintf(r.out, "\n=== Summary ===\n")
	fmt.Fprintf(r.out, "Total emails: %d\n", s.TotalEmails)
	fmt.Fprintf(r.out, "Unique senders: %d\n", s.UniqueSenders)
	fmt.Fprintf(r.out, "Spam likelihood: %.2f\n", s.SpamLikelihood)
	fmt.Fprintf(r.out, "Storage used: %s\n", s.StorageEstimate)

	fmt.Fprintf(r.out, "\n=== Categories ===\n")
	r.printCounts(s.CategoryBreakdown)

	fmt.Fprintf(r.out, "\n=== Sentiment ===\n")
	r.printCounts(s.SentimentDistribution)

	fmt.Fprintf(r.out, "\n=== Recommendations ===\n")
	if len(resp.Recommendations) == 0 {
		fmt.Fprintf(r.out, "No recommendations\n")
	}
	for i, rec := range resp.Recommendations {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, rec)
	}

	fmt.Fprintf(r.out, "\n=== Senders ===\n")
	for _, in := range resp.SenderInsights {
		fmt.Fprintf(r.out, "%-40s spam=%.2f action=%s frequency=%s count=%d\n",
			in.Sender, in.SpamScore, in.RecommendedAction, in.Frequency, in.EmailCount)
	}

	if r.verbose {
		p := resp.Patterns
		fmt.Fprintf(r.out, "\n=== Patterns ===\n")
		fmt.Fprintf(r.out, "Similar sender groups: %d\n", len(p.SimilarSenderGroups))
		for _, g := range p.SimilarSenderGroups {
			fmt.Fprintf(r.out, "  %v\n", g)
		}
		fmt.Fprintf(r.out, "Night emails: %d\n", p.TimePatterns.NightEmails)
	}

	return nil
}

// ReportCategorization prints a single-email categorization
func (r *TextReporter) ReportCategorization(_ context.Context, email *core.Email, result *core.EmailCategorization) error {
	fmt.Fprintf(r.out, "\n=== Email ===\n")
	fmt.Fprintf(r.out, "From: %s\n", email.Sender)
	fmt.Fprintf(r.out, "Subject: %s\n", email.Subject)
	if r.verbose && email.Snippet != "" {
		fmt.Fprintf(r.out, "Snippet: %s\n", email.Snippet)
	}

	fmt.Fprintf(r.out, "\n=== Results ===\n")
	fmt.Fprintf(r.out, "Category: %s\n", result.Category)
	fmt.Fprintf(r.out, "Sentiment: %s\n", result.Sentiment)
	fmt.Fprintf(r.out, "Confidence: %.2f\n", result.Confidence)
	return nil
}

// ReportReputation prints one sender insight
func (r *TextReporter) ReportReputation(_ context.Context, in *core.ReputationInsight) error {
	fmt.Fprintf(r.out, "\n=== Sender ===\n")
	fmt.Fprintf(r.out, "Sender: %s\n", in.Sender)
	fmt.Fprintf(r.out, "Email count: %d\n", in.EmailCount)
	fmt.Fprintf(r.out, "Category: %s\n", in.Category)

	fmt.Fprintf(r.out, "\n=== Reputation ===\n")
	fmt.Fprintf(r.out, "Spam score: %.2f\n", in.SpamScore)
	fmt.Fprintf(r.out, "Engagement score: %.2f\n", in.EngagementScore)
	fmt.Fprintf(r.out, "Frequency: %s\n", in.Frequency)
	fmt.Fprintf(r.out, "Recommended action: %s\n", in.RecommendedAction)
	fmt.Fprintf(r.out, "Days since last email: %d\n", in.DaysSinceLast)
	return nil
}

// ReportStatus prints which capabilities are loaded
func (r *TextReporter) ReportStatus(_ context.Context, status *core.Status) error {
	fmt.Fprintf(r.out, "Service: %s\n", status.Service)
	fmt.Fprintf(r.out, "Sentiment model: %t\n", status.SentimentModel)
	fmt.Fprintf(r.out, "Classifier model: %t\n", status.ClassifierModel)
	fmt.Fprintf(r.out, "Sender classifier: %t\n", status.SenderClassifier)
	fmt.Fprintf(r.out, "Pattern detector: %t\n", status.PatternDetector)
	return nil
}

// printCounts prints label counts, largest first
func (r *TextReporter) printCounts(counts map[string]int) {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	for _, l := range labels {
		fmt.Fprintf(r.out, "%-15s %d\n", l, counts[l])
	}
}
