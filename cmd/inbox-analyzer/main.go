package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/inbox-analyzer/internal/adapters/input"
	"github.com/mikey/inbox-analyzer/internal/core"
	"github.com/mikey/inbox-analyzer/internal/di"
	"github.com/mikey/inbox-analyzer/internal/ports"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "Path to config file (searches the default locations if empty)")
	inputFile  = flag.String("file", "", "Analysis request JSON file (use stdin if not specified)")
)

func main() {
	flag.Parse()

	// Build the dependency injection container
	container, err := di.BuildContainer(*configFile, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	service *core.InboxAnalysisService,
	reporter ports.Reporter,
	resources *di.Resources,
) error {
	defer logger.Sync()
	defer resources.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reader io.Reader = os.Stdin
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		reader = file
		logger.Info("Reading analysis request from file", zap.String("file", *inputFile))
	} else {
		logger.Info("Reading analysis request from stdin")
	}

	req, err := input.ReadAnalysisRequest(reader)
	if err != nil {
		return err
	}

	resp, err := service.Analyze(ctx, req)
	if err != nil {
		logger.Error("Analysis failed", zap.Error(err))
		return err
	}

	return reporter.ReportAnalysis(ctx, resp)
}
