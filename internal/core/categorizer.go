package core

import (
	"context"

	"github.com/mikey/inbox-analyzer/internal/utils"
)

// categoryRule matches keywords against the lower-cased "sender subject" text,
// or against the sender alone when senderOnly is set
type categoryRule struct {
	label      string
	keywords   []string
	senderOnly bool
}

// categoryRules are evaluated in order; the first match wins
var categoryRules = []categoryRule{
	{label: CategoryPromotional, keywords: []string{"sale", "offer", "discount", "deal", "promo", "newsletter"}},
	{label: CategorySocial, keywords: []string{"facebook", "twitter", "linkedin", "instagram"}, senderOnly: true},
	{label: CategoryTransactional, keywords: []string{"receipt", "order", "shipping", "delivery", "confirmation"}},
	{label: CategorySecurity, keywords: []string{"security", "verify", "alert", "password", "suspicious"}},
	{label: CategoryBilling, keywords: []string{"invoice", "payment", "billing", "subscription"}},
}

// Categorizer assigns a topic label to an email. Keyword rules always win;
// the classifier is only consulted when no rule matches.
type Categorizer struct {
	classifier ZeroShotClassifier
}

// NewCategorizer creates a categorizer backed by the given classifier
func NewCategorizer(classifier ZeroShotClassifier) *Categorizer {
	if classifier == nil {
		classifier = DefaultClassifier{}
	}
	return &Categorizer{classifier: classifier}
}

// Categorize returns the category label of one email
func (c *Categorizer) Categorize(ctx context.Context, email *Email) string {
	if label, ok := MatchCategoryRules(email.Sender, email.Subject); ok {
		return label
	}

	labels, err := c.classifier.Classify(ctx, email.Subject, CategoryCandidates)
	if err != nil || len(labels) == 0 || !containsLabel(CategoryCandidates, labels[0]) {
		return CategoryWork
	}
	return labels[0]
}

// MatchCategoryRules applies the keyword rules only
func MatchCategoryRules(sender, subject string) (string, bool) {
	lowerSender := utils.Lower(sender)
	text := lowerSender + " " + utils.Lower(subject)

	for _, rule := range categoryRules {
		haystack := text
		if rule.senderOnly {
			haystack = lowerSender
		}
		if utils.ContainsAny(haystack, rule.keywords) {
			return rule.label, true
		}
	}
	return "", false
}
