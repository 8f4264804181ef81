package scanner

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"strconv"
	"strings"

	"github.com/fatih/semgroup"

	"github.com/leaktk/precommit/pkg/config"
	"github.com/leaktk/precommit/pkg/id"
	"github.com/leaktk/precommit/pkg/logger"
	"github.com/leaktk/precommit/pkg/response"
)

// Source provides the content of candidate files. A missing file must be
// reported with an error wrapping io/fs.ErrNotExist; any other error means
// the file is there but couldn't be read.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// Scanner checks files against a fixed set of rules. It holds no state
// between scans.
type Scanner struct {
	source  Source
	rules   []*Rule
	workers int
}

// NewScanner returns a scanner that reads from source and checks every line
// against rules in the order given
func NewScanner(source Source, rules []*Rule, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}

	return &Scanner{
		source:  source,
		rules:   rules,
		workers: workers,
	}
}

// NewScannerFromConfig builds the rule set described by the config (default
// rules, extra gitleaks rules, minus disabled rules) and returns a scanner
func NewScannerFromConfig(cfg *config.Scanner, source Source) (*Scanner, error) {
	rules := DefaultRules()

	if len(cfg.RulesPath) > 0 {
		extra, err := LoadGitleaksRules(cfg.RulesPath)
		if err != nil {
			return nil, response.NewError(true, response.ConfigError, err)
		}

		rules = append(rules, extra...)
	}

	rules, err := FilterRules(rules, cfg.DisabledRules)
	if err != nil {
		return nil, response.NewError(true, response.ConfigError, err)
	}

	return NewScanner(source, rules, cfg.Workers), nil
}

// Rules returns the rules the scanner evaluates
func (s *Scanner) Rules() []*Rule {
	return s.rules
}

type fileResult struct {
	findings []*response.Finding
	scanned  bool
	err      error
}

// Scan reads every path and returns the findings in path, line, rule order.
// Repeated paths are only scanned the first time they appear, so a finding
// ID is unique within a report. Missing paths are skipped. The first file
// that exists but can't be read stops the scan and no report is returned.
func (s *Scanner) Scan(ctx context.Context, paths []string) (*response.Report, error) {
	paths = uniquePaths(paths)
	report := &response.Report{
		Files:    len(paths),
		Findings: []*response.Finding{},
	}

	if len(paths) == 0 {
		return report, nil
	}

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Each worker only writes its own slot so the merge below is in input order
	results := make([]fileResult, len(paths))
	group := semgroup.NewGroup(scanCtx, int64(s.workers))

	for i, path := range paths {
		group.Go(func() error {
			if err := scanCtx.Err(); err != nil {
				return err
			}

			findings, scanned, err := s.scanFile(path)
			if err != nil {
				results[i].err = err
				cancel()
				return err
			}

			results[i].findings = findings
			results[i].scanned = scanned
			return nil
		})
	}

	// Failures are collected per path above
	_ = group.Wait()

	for _, result := range results {
		if result.err != nil {
			return nil, response.NewError(true, response.ReadError, result.err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, result := range results {
		if result.scanned {
			report.Scanned++
		}

		report.Findings = append(report.Findings, result.findings...)
	}

	logger.Debug("scan complete: files=%d scanned=%d findings=%d", report.Files, report.Scanned, len(report.Findings))
	return report, nil
}

// uniquePaths drops repeated paths and keeps the first occurrence's position
func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))

	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}

		seen[path] = struct{}{}
		unique = append(unique, path)
	}

	return unique
}

// scanFile returns the findings for one path and whether the file was there
func (s *Scanner) scanFile(path string) ([]*response.Finding, bool, error) {
	data, err := s.source.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			logger.Debug("skipping missing file: path=%q", path)
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("could not read file: path=%q: %w", path, err)
	}

	logger.Debug("scanning file: path=%q size=%d", path, len(data))
	return s.ScanText(path, string(data)), true, nil
}

// ScanText checks content line by line and returns a finding for every
// (line, rule) pair that matches. A final newline doesn't start a new line.
func (s *Scanner) ScanText(path, content string) []*response.Finding {
	var findings []*response.Finding

	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		for _, rule := range s.rules {
			if !rule.Pattern.MatchString(line) {
				continue
			}

			lineNumber := i + 1
			findings = append(findings, &response.Finding{
				ID:   id.ID(path, strconv.Itoa(lineNumber), rule.ID),
				Path: path,
				Line: lineNumber,
				Rule: response.Rule{
					ID:          rule.ID,
					Description: rule.Description,
				},
				Text: strings.TrimSpace(line),
			})
		}
	}

	return findings
}
