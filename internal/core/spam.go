package core

import (
	"math"
	"regexp"

	"github.com/mikey/inbox-analyzer/internal/utils"
)

// Spam score weights
const (
	senderIndicatorWeight = 0.2
	spamSubjectWeight     = 0.1
	highVolumeBonus       = 0.3
	mediumVolumeBonus     = 0.2
	noReplyBonus          = 0.3

	// subjectSampleSize caps how many emails of a group are inspected
	subjectSampleSize = 10
)

// senderIndicators are matched case-insensitively against the raw sender,
// so the letter-run indicator matches ten letters of either case
var senderIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no-reply`),
	regexp.MustCompile(`(?i)noreply`),
	regexp.MustCompile(`(?i)donotreply`),
	regexp.MustCompile(`(?i)\d{5,}`),
	regexp.MustCompile(`(?i)[A-Z]{10,}`),
}

var (
	spamSubjectPhrases = []string{"urgent", "!!!", "winner", "congratulations", "click here", "act now"}
	noReplyMarkers     = []string{"noreply", "no-reply", "donotreply"}
)

// TrustPolicy decides whether a sender is exempt from spam scoring
type TrustPolicy interface {
	IsTrusted(sender string) bool
}

// SpamScorer computes a bounded spam likelihood for a sender
type SpamScorer struct {
	trust TrustPolicy
}

// NewSpamScorer creates a spam scorer. trust may be nil.
func NewSpamScorer(trust TrustPolicy) *SpamScorer {
	return &SpamScorer{trust: trust}
}

// Score returns the spam likelihood of sender in [0, 1]
func (s *SpamScorer) Score(sender string, emails []Email) float64 {
	if s.trust != nil && s.trust.IsTrusted(sender) {
		return 0
	}
	return math.Min(RawSpamScore(sender, emails), 1.0)
}

// RawSpamScore is the additive indicator sum before clamping
func RawSpamScore(sender string, emails []Email) float64 {
	score := 0.0

	for _, re := range senderIndicators {
		if re.MatchString(sender) {
			score += senderIndicatorWeight
		}
	}

	sample := emails
	if len(sample) > subjectSampleSize {
		sample = sample[:subjectSampleSize]
	}
	for _, e := range sample {
		if utils.ContainsAny(utils.Lower(e.Subject), spamSubjectPhrases) {
			score += spamSubjectWeight
		}
	}

	// The larger bucket is checked first so it is reachable
	switch n := len(emails); {
	case n > 100:
		score += highVolumeBonus
	case n > 50:
		score += mediumVolumeBonus
	}

	if utils.ContainsAny(utils.Lower(sender), noReplyMarkers) {
		score += noReplyBonus
	}

	return score
}
