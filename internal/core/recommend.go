package core

import "fmt"

// Thresholds used by the recommendation rules
const (
	blockSpamThreshold  = 0.7
	promotionalShare    = 0.3
	inactiveDays        = 90
	archiveEmailCount   = 1000
	nightEmailThreshold = 50
	storageMBPerEmail   = 0.05
)

// StorageEstimate renders the approximate mailbox size for an email count
func StorageEstimate(totalEmails int) string {
	return fmt.Sprintf("%.1f MB", float64(totalEmails)*storageMBPerEmail)
}

// Recommend turns the summary, sender insights and detected patterns into
// cleanup suggestions. Each rule fires independently, in a fixed order.
func Recommend(summary *AnalysisSummary, insights []ReputationInsight, patterns *Patterns) []string {
	recommendations := []string{}

	spamSenders := 0
	oldSenders := 0
	for _, in := range insights {
		if in.SpamScore > blockSpamThreshold {
			spamSenders++
		}
		if in.DaysSinceLast > inactiveDays {
			oldSenders++
		}
	}

	if spamSenders > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Block %d high-spam senders to reduce clutter", spamSenders))
	}

	promoCount := summary.CategoryBreakdown[CategoryPromotional]
	if float64(promoCount) > float64(summary.TotalEmails)*promotionalShare {
		recommendations = append(recommendations,
			fmt.Sprintf("Unsubscribe from promotional emails (%d found, %.0f%% of inbox)",
				promoCount, float64(promoCount)/float64(summary.TotalEmails)*100))
	}

	if oldSenders > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Consider deleting emails from %d inactive senders (>%d days)", oldSenders, inactiveDays))
	}

	if patterns != nil && len(patterns.SimilarSenderGroups) > 0 {
		recommendations = append(recommendations,
			"Merge or unsubscribe from similar newsletter senders")
	}

	if summary.TotalEmails > archiveEmailCount {
		estimate := summary.StorageEstimate
		if estimate == "" {
			estimate = StorageEstimate(summary.TotalEmails)
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Archive old emails to free up space (~%s used)", estimate))
	}

	if patterns != nil && patterns.TimePatterns.NightEmails > nightEmailThreshold {
		recommendations = append(recommendations,
			"Set up filters for night-time emails (likely automated notifications)")
	}

	return recommendations
}
