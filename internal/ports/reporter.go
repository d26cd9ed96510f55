package ports

import (
	"context"

	"github.com/mikey/inbox-analyzer/internal/core"
)

// Stoppable is implemented by adapters that own background work
type Stoppable interface {
	Stop()
}

// Reporter renders analysis results for a caller
type Reporter interface {
	// ReportAnalysis renders the result of a full inbox analysis
	ReportAnalysis(ctx context.Context, resp *core.AnalysisResponse) error

	// ReportCategorization renders the result of categorizing one email
	ReportCategorization(ctx context.Context, email *core.Email, result *core.EmailCategorization) error

	// ReportReputation renders one sender insight
	ReportReputation(ctx context.Context, insight *core.ReputationInsight) error

	// ReportStatus renders the capability status
	ReportStatus(ctx context.Context, status *core.Status) error
}
