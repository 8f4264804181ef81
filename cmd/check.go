package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/leaktk/precommit/pkg/config"
	"github.com/leaktk/precommit/pkg/logger"
	"github.com/leaktk/precommit/pkg/response"
	"github.com/leaktk/precommit/pkg/scanner"
)

// check scans paths, prints the outcome and returns the exit code. It is
// the only place a Report is turned into an exit code.
func check(ctx context.Context, cfg *config.Config, source scanner.Source, paths []string, stdout, stderr io.Writer) int {
	console := response.NewConsole(stdout, stderr)

	formatter, err := response.NewFormatter(cfg.Formatter)
	if err != nil {
		console.Failed(response.NewError(true, response.ConfigError, err))
		return config.ExitCodeBlockingError
	}

	human := formatter.OutputFormat() == response.HUMAN
	if human {
		console.Start()

		if len(paths) == 0 {
			console.NoFiles()
			return config.ExitCodeSuccess
		}

		console.Checking(len(paths))
	}

	s, err := scanner.NewScannerFromConfig(&cfg.Scanner, source)
	if err != nil {
		console.Failed(err)
		return config.ExitCodeBlockingError
	}

	report, err := s.Scan(ctx, paths)
	if err != nil {
		logger.Debug("scan failed: error=%q", err)
		console.Failed(err)
		return config.ExitCodeBlockingError
	}

	if human {
		console.Report(report)
	} else {
		fmt.Fprint(stdout, formatter.Format(report))
	}

	if report.HasSecrets() {
		return config.ExitCodeLeakFound
	}

	return config.ExitCodeSuccess
}
