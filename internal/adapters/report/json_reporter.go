package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mikey/inbox-analyzer/internal/core"
	"go.uber.org/zap"
)

// JSONReporter writes results as indented JSON documents
type JSONReporter struct {
	out    io.Writer
	logger *zap.Logger
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(out io.Writer, logger *zap.Logger) *JSONReporter {
	return &JSONReporter{out: out, logger: logger}
}

// ReportAnalysis writes the full analysis response
func (r *JSONReporter) ReportAnalysis(_ context.Context, resp *core.AnalysisResponse) error {
	return r.write(resp)
}

// ReportCategorization writes a single-email categorization
func (r *JSONReporter) ReportCategorization(_ context.Context, _ *core.Email, result *core.EmailCategorization) error {
	return r.write(result)
}

// ReportReputation writes one sender insight
func (r *JSONReporter) ReportReputation(_ context.Context, insight *core.ReputationInsight) error {
	return r.write(insight)
}

// ReportStatus writes the capability status
func (r *JSONReporter) ReportStatus(_ context.Context, status *core.Status) error {
	return r.write(status)
}

func (r *JSONReporter) write(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		r.logger.Error("Failed to write report", zap.Error(err))
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
