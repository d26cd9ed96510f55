package patterns

import (
	"context"
	"math"
	"net/mail"
	"sort"
	"strings"

	"github.com/mikey/inbox-analyzer/internal/core"
	"github.com/mikey/inbox-analyzer/internal/utils"
	"go.uber.org/zap"
)

// Night hours are [nightStartHour, nightEndHour) in the email's own zone
const (
	nightStartHour = 0
	nightEndHour   = 6
)

var noReplyMarkers = []string{"noreply", "no-reply", "donotreply"}

// HeuristicDetector is the default core.PatternDetector. It groups sender
// addresses by domain, counts night-time emails from parseable dates and
// reports the share of automated senders.
type HeuristicDetector struct {
	logger *zap.Logger
}

// NewHeuristicDetector creates a new heuristic pattern detector
func NewHeuristicDetector(logger *zap.Logger) *HeuristicDetector {
	return &HeuristicDetector{logger: logger}
}

// DetectPatterns computes corpus-wide signals for one request
func (d *HeuristicDetector) DetectPatterns(ctx context.Context, emails []core.Email, senders []core.SenderGroup) (*core.Patterns, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &core.Patterns{
		SimilarSenderGroups: similarSenderGroups(emails, senders),
		TimePatterns: core.TimePatterns{
			ByWeekday: make(map[string]int),
		},
	}

	automated := 0
	unparsed := 0
	for _, e := range emails {
		if utils.ContainsAny(strings.ToLower(e.Sender), noReplyMarkers) {
			automated++
		}

		t, err := mail.ParseDate(e.Date)
		if err != nil {
			unparsed++
			continue
		}
		if h := t.Hour(); h >= nightStartHour && h < nightEndHour {
			result.TimePatterns.NightEmails++
		}
		result.TimePatterns.ByWeekday[strings.ToLower(t.Weekday().String())]++
	}

	if len(emails) > 0 {
		result.SpamScore = math.Round(float64(automated)/float64(len(emails))*100) / 100
	}

	d.logger.Debug("Detected patterns",
		zap.Int("similar_groups", len(result.SimilarSenderGroups)),
		zap.Int("night_emails", result.TimePatterns.NightEmails),
		zap.Int("unparsed_dates", unparsed))

	return result, nil
}

// similarSenderGroups returns, per domain, the distinct sender addresses when
// a domain has two or more of them. Groups are ordered by domain.
func similarSenderGroups(emails []core.Email, senders []core.SenderGroup) [][]string {
	byDomain := make(map[string]map[string]struct{})
	add := func(sender string) {
		addr := core.SenderAddress(sender)
		at := strings.LastIndex(addr, "@")
		if at < 0 {
			return
		}
		domain := addr[at+1:]
		if byDomain[domain] == nil {
			byDomain[domain] = make(map[string]struct{})
		}
		byDomain[domain][addr] = struct{}{}
	}

	for _, g := range senders {
		add(g.Sender)
	}
	for _, e := range emails {
		add(e.Sender)
	}

	domains := make([]string, 0, len(byDomain))
	for domain, addrs := range byDomain {
		if len(addrs) >= 2 {
			domains = append(domains, domain)
		}
	}
	sort.Strings(domains)

	groups := make([][]string, 0, len(domains))
	for _, domain := range domains {
		addrs := make([]string, 0, len(byDomain[domain]))
		for a := range byDomain[domain] {
			addrs = append(addrs, a)
		}
		sort.Strings(addrs)
		groups = append(groups, addrs)
	}
	return groups
}
