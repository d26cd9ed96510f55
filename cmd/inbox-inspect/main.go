package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mikey/inbox-analyzer/internal/adapters/input"
	"github.com/mikey/inbox-analyzer/internal/core"
	"github.com/mikey/inbox-analyzer/internal/di"
	"github.com/mikey/inbox-analyzer/internal/ports"
	"go.uber.org/zap"
)

func main() {
	flags, err := di.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	container, err := di.BuildCLIContainer(flags, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	service *core.InboxAnalysisService,
	reporter ports.Reporter,
	resources *di.Resources,
) error {
	defer logger.Sync()
	defer resources.Close()

	ctx := context.Background()
	startTime := time.Now()
	defer func() {
		logger.Debug("Finished", zap.String("mode", flags.Mode), zap.Duration("duration", time.Since(startTime)))
	}()

	switch flags.Mode {
	case "categorize":
		email, err := readEmail(flags)
		if err != nil {
			return err
		}
		return reporter.ReportCategorization(ctx, email, service.Categorize(ctx, email))

	case "reputation":
		r, closeFn, err := openInput(flags.InputFile)
		if err != nil {
			return err
		}
		defer closeFn()

		group, err := input.ReadSenderGroup(r)
		if err != nil {
			return err
		}
		insight := service.SenderReputation(group)
		return reporter.ReportReputation(ctx, &insight)

	case "status":
		return reporter.ReportStatus(ctx, service.Status())

	default:
		return fmt.Errorf("unknown mode: %s", flags.Mode)
	}
}

// readEmail builds the email from a raw message file, or from the
// sender and subject flags when no file is given
func readEmail(flags *di.CLIFlags) (*core.Email, error) {
	if flags.InputFile == "" {
		if flags.Sender == "" && flags.Subject == "" {
			return nil, errors.New("categorize needs -file or -sender/-subject")
		}
		return &core.Email{
			Sender:  flags.Sender,
			Subject: flags.Subject,
			Snippet: flags.Snippet,
		}, nil
	}

	r, closeFn, err := openInput(flags.InputFile)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return input.ReadMessage(r)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return file, func() { file.Close() }, nil
}
