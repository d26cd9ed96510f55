package core

// Email represents one message as handed to the analyzer. Date is kept opaque.
type Email struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Snippet string `json:"snippet,omitempty"`
}

// SenderGroup is a pre-aggregated bundle of emails from one sender.
// Count is the reported population; Emails may only be a sample of it.
type SenderGroup struct {
	Sender   string  `json:"sender"`
	Count    int     `json:"count"`
	Emails   []Email `json:"emails"`
	Category string  `json:"category,omitempty"`
}

// Category labels
const (
	CategoryPromotional   = "promotional"
	CategorySocial        = "social"
	CategoryTransactional = "transactional"
	CategorySecurity      = "security"
	CategoryBilling       = "billing"
	CategoryWork          = "work"

	// CategoryUnknown is used for sender groups that arrive without a label
	CategoryUnknown = "unknown"
)

// Sentiment labels produced by the rule-based analyzer
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Frequency buckets
const (
	FrequencyVeryLow  = "very_low"
	FrequencyLow      = "low"
	FrequencyMedium   = "medium"
	FrequencyHigh     = "high"
	FrequencyVeryHigh = "very_high"
)

// Recommended actions
const (
	ActionBlock       = "block"
	ActionUnsubscribe = "unsubscribe"
	ActionReview      = "review"
	ActionArchiveOld  = "archive_old"
	ActionKeep        = "keep"
)

// ReputationInsight is the scored summary of one sender group
type ReputationInsight struct {
	Sender            string  `json:"sender"`
	EmailCount        int     `json:"email_count"`
	SpamScore         float64 `json:"spam_score"`
	EngagementScore   float64 `json:"engagement_score"`
	Frequency         string  `json:"frequency"`
	RecommendedAction string  `json:"recommended_action"`
	DaysSinceLast     int     `json:"days_since_last"`
	Category          string  `json:"category"`
}

// BatchAnalysis is the tabulated output of a categorization/sentiment pass
type BatchAnalysis struct {
	CategoryCounts        map[string]int `json:"category_counts"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	TotalAnalyzed         int            `json:"total_analyzed"`
}

// AnalysisSummary holds the aggregate counters of one analysis request
type AnalysisSummary struct {
	TotalEmails           int            `json:"total_emails"`
	UniqueSenders         int            `json:"unique_senders"`
	CategoryBreakdown     map[string]int `json:"category_breakdown"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	SpamLikelihood        float64        `json:"spam_likelihood"`
	StorageEstimate       string         `json:"storage_used_estimate"`
}

// TimePatterns is the time-of-day signal produced by the pattern detector
type TimePatterns struct {
	NightEmails int            `json:"night_emails"`
	ByWeekday   map[string]int `json:"by_weekday,omitempty"`
}

// Patterns is the corpus-wide output of a PatternDetector
type Patterns struct {
	SpamScore           float64      `json:"spam_score"`
	SimilarSenderGroups [][]string   `json:"similar_sender_groups"`
	TimePatterns        TimePatterns `json:"time_patterns"`
}

// AnalysisRequest is the input of a full inbox analysis
type AnalysisRequest struct {
	Emails  []Email       `json:"emails"`
	Senders []SenderGroup `json:"senders,omitempty"`
}

// AnalysisResponse is the output of a full inbox analysis
type AnalysisResponse struct {
	Summary         AnalysisSummary     `json:"summary"`
	Recommendations []string            `json:"recommendations"`
	SenderInsights  []ReputationInsight `json:"sender_insights"`
	Patterns        Patterns            `json:"patterns"`
}

// EmailCategorization is the result of categorizing a single email
type EmailCategorization struct {
	Category   string  `json:"category"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// Status reports which model capabilities are loaded
type Status struct {
	Service          string `json:"service"`
	SentimentModel   bool   `json:"sentiment_model"`
	ClassifierModel  bool   `json:"classifier_model"`
	SenderClassifier bool   `json:"sender_classifier"`
	PatternDetector  bool   `json:"pattern_detector"`
}
