package factory

import (
	"fmt"
	"io"

	"github.com/mikey/inbox-analyzer/internal/adapters/report"
	"github.com/mikey/inbox-analyzer/internal/config"
	"github.com/mikey/inbox-analyzer/internal/ports"
	"go.uber.org/zap"
)

// ReporterFactory creates reporters based on configuration
type ReporterFactory struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewReporterFactory creates a new reporter factory writing to out
func NewReporterFactory(cfg *config.Config, logger *zap.Logger, out io.Writer) *ReporterFactory {
	return &ReporterFactory{
		cfg:    cfg,
		logger: logger,
		out:    out,
	}
}

// CreateReporter creates a reporter for the configured output format
func (f *ReporterFactory) CreateReporter() (ports.Reporter, error) {
	format := f.cfg.GetString("output.format")

	switch format {
	case "json":
		return report.NewJSONReporter(f.out, f.logger), nil
	case "text":
		return report.NewTextReporter(f.out, f.logger, f.cfg.GetBool("cli.verbose")), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
