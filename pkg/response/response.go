package response

import (
	"encoding/json"

	"github.com/leaktk/precommit/pkg/logger"
)

type (
	// Report from the scanner with the scan results
	Report struct {
		// Files is the number of candidate paths handed to the scanner
		Files int `json:"files" yaml:"files" toml:"files"`
		// Scanned is the number of candidates that existed and were read
		Scanned  int        `json:"scanned" yaml:"scanned" toml:"scanned"`
		Findings []*Finding `json:"findings" yaml:"findings" toml:"findings"`
	}

	// Finding is a single line that matched a rule
	Finding struct {
		ID   string `json:"id" yaml:"id" toml:"id"`
		Path string `json:"path" yaml:"path" toml:"path"`
		// Line is 1-based
		Line int  `json:"line" yaml:"line" toml:"line"`
		Rule Rule `json:"rule" yaml:"rule" toml:"rule"`
		// Text is the offending line with the surrounding whitespace trimmed
		Text string `json:"text" yaml:"text" toml:"text"`
	}

	// Rule that triggered the finding
	Rule struct {
		ID          string `json:"id" yaml:"id" toml:"id"`
		Description string `json:"description" yaml:"description" toml:"description"`
	}
)

// HasSecrets is the verdict: true means the commit must be rejected
func (r *Report) HasSecrets() bool {
	return len(r.Findings) > 0
}

// String renders a report structure to the JSON format
func (r *Report) String() string {
	out, err := json.Marshal(r)
	if err != nil {
		logger.Error("could not marshal report: error=%q", err)
	}

	return string(out)
}
