package core

import (
	"math"
	"sort"
)

// Placeholder ages until email dates are parsed
const (
	daysSinceLastSampled = 30
	daysSinceLastEmpty   = 999
)

// DefaultMaxInsights is the number of ranked insights returned by AnalyzeSenders
const DefaultMaxInsights = 20

// ReputationCalculator turns sender groups into reputation insights
type ReputationCalculator struct {
	spam        *SpamScorer
	maxInsights int
}

// NewReputationCalculator creates a calculator; maxInsights <= 0 uses the default
func NewReputationCalculator(spam *SpamScorer, maxInsights int) *ReputationCalculator {
	if spam == nil {
		spam = NewSpamScorer(nil)
	}
	if maxInsights <= 0 {
		maxInsights = DefaultMaxInsights
	}
	return &ReputationCalculator{spam: spam, maxInsights: maxInsights}
}

// Reputation scores a single sender group
func (r *ReputationCalculator) Reputation(group *SenderGroup) ReputationInsight {
	raw := r.spam.Score(group.Sender, group.Emails)
	spamScore := round2(raw)
	frequency := Frequency(len(group.Emails))

	category := group.Category
	if category == "" {
		category = CategoryUnknown
	}

	return ReputationInsight{
		Sender:            group.Sender,
		EmailCount:        group.Count,
		SpamScore:         spamScore,
		EngagementScore:   round2(1.0 - raw),
		Frequency:         frequency,
		RecommendedAction: RecommendAction(spamScore, group.Count, frequency),
		DaysSinceLast:     daysSinceLast(group.Emails),
		Category:          category,
	}
}

// AnalyzeSenders scores every group and returns the highest spam scores
// first. Equal scores keep their input order.
func (r *ReputationCalculator) AnalyzeSenders(groups []SenderGroup) []ReputationInsight {
	insights := make([]ReputationInsight, 0, len(groups))
	for i := range groups {
		insights = append(insights, r.Reputation(&groups[i]))
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].SpamScore > insights[j].SpamScore
	})

	if len(insights) > r.maxInsights {
		insights = insights[:r.maxInsights]
	}
	return insights
}

// Frequency buckets the sampled email count
func Frequency(sampled int) string {
	switch {
	case sampled > 100:
		return FrequencyVeryHigh
	case sampled > 50:
		return FrequencyHigh
	case sampled > 20:
		return FrequencyMedium
	case sampled > 5:
		return FrequencyLow
	default:
		return FrequencyVeryLow
	}
}

// RecommendAction picks a cleanup action; count is the reported population
func RecommendAction(spamScore float64, count int, frequency string) string {
	switch {
	case spamScore > 0.7:
		return ActionBlock
	case spamScore > 0.5 && count > 20:
		return ActionUnsubscribe
	case (frequency == FrequencyVeryHigh || frequency == FrequencyHigh) && spamScore > 0.3:
		return ActionReview
	case count > 100:
		return ActionArchiveOld
	default:
		return ActionKeep
	}
}

// TODO: derive the age from the newest email's Date once dates are parsed.
func daysSinceLast(emails []Email) int {
	if len(emails) == 0 {
		return daysSinceLastEmpty
	}
	return daysSinceLastSampled
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
