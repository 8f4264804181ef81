package response

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/leaktk/precommit/pkg/config"
	"github.com/leaktk/precommit/pkg/logger"
)

// OutputFormat is the code(int) for each format
type OutputFormat int

const (
	// JSON displays the output in JSON format
	JSON OutputFormat = iota
	// HUMAN displays the output in a way that's nice for humans to read
	HUMAN
	// TOML displays the output in TOML format
	TOML
	// YAML displays the output in YAML format
	YAML
	// CSV displays the output in CSV format
	CSV
)

// Formatter renders reports
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates new formatter
func NewFormatter(cfg config.Formatter) (*Formatter, error) {
	format, err := GetOutputFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &Formatter{format: format}, nil
}

// GetOutputFormat takes the string and returns OutputFormat or an error
func GetOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToUpper(format) {
	case "JSON":
		return JSON, nil
	case "HUMAN":
		return HUMAN, nil
	case "TOML":
		return TOML, nil
	case "YAML":
		return YAML, nil
	case "CSV":
		return CSV, nil
	default:
		return JSON, fmt.Errorf("invalid output format option: format=%q", format)
	}
}

// OutputFormat returns the format the formatter renders
func (f *Formatter) OutputFormat() OutputFormat {
	return f.format
}

// Format renders a report structure to the set format as a string
func (f *Formatter) Format(r *Report) string {
	var output string
	switch f.format {
	case JSON:
		output = f.formatJSON(r)
	case HUMAN:
		output = f.formatHuman(r)
	case TOML:
		output = f.formatTOML(r)
	case YAML:
		output = f.formatYAML(r)
	case CSV:
		output = f.formatCSV(r)
	}
	return output
}

func (f *Formatter) formatJSON(r *Report) string {
	out, err := json.Marshal(r)
	if err != nil {
		logger.Error("could not marshal report: error=%q", err)
	}
	return string(out) + "\n"
}

// formatHuman renders each finding as the warning pair shown in the hook
func (f *Formatter) formatHuman(r *Report) string {
	var out strings.Builder
	for _, finding := range r.Findings {
		_, _ = fmt.Fprintf(&out, "⚠️  Potential secret in %s:%d\n", finding.Path, finding.Line)
		_, _ = fmt.Fprintf(&out, "   %s\n", finding.Text)
	}
	return out.String()
}

func (f *Formatter) formatTOML(r *Report) string {
	var buf bytes.Buffer

	if err := toml.NewEncoder(&buf).Encode(r); err != nil {
		logger.Error("could not marshal report: error=%q", err)
	}
	return buf.String()
}

func (f *Formatter) formatYAML(r *Report) string {
	out, err := yaml.Marshal(r)
	if err != nil {
		logger.Error("could not marshal report: error=%q", err)
	}
	return string(out)
}

func (f *Formatter) formatCSV(r *Report) string {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(flattenedFindingFields()); err != nil {
		logger.Error("could not write report: error=%q", err)
	}

	if err := writer.WriteAll(flattenedFindings(r)); err != nil {
		logger.Error("could not write report: error=%q", err)
	}

	return buf.String()
}

// flattenedFindingFields provides the column labels for a flattened finding
func flattenedFindingFields() []string {
	return []string{"ID", "PATH", "LINE", "RULE.ID", "RULE.DESCRIPTION", "TEXT"}
}

// flattenedFindings returns a 2d list of findings in flattenedFindingFields order
func flattenedFindings(r *Report) [][]string {
	flattened := make([][]string, 0, len(r.Findings))

	for _, finding := range r.Findings {
		flattened = append(flattened, []string{
			finding.ID,
			finding.Path,
			strconv.Itoa(finding.Line),
			finding.Rule.ID,
			finding.Rule.Description,
			finding.Text,
		})
	}

	return flattened
}
