package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	gitleaksconfig "github.com/zricethezav/gitleaks/v8/config"

	"github.com/leaktk/precommit/pkg/logger"
)

// Rule is a single secret signature. Rules never change after they are built.
type Rule struct {
	ID          string
	Description string
	// Pattern is matched case-insensitively anywhere in a line
	Pattern *regexp.Regexp
}

// NewRule compiles pattern as a case-insensitive rule
func NewRule(id, description, pattern string) (*Rule, error) {
	compiled, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid rule pattern: rule_id=%q error=%q", id, err)
	}

	return &Rule{
		ID:          id,
		Description: description,
		Pattern:     compiled,
	}, nil
}

func mustRule(id, description, pattern string) *Rule {
	rule, err := NewRule(id, description, pattern)
	if err != nil {
		panic(err)
	}

	return rule
}

var defaultRules = []*Rule{
	mustRule("api_key", "API key", `api[_-]?key`),
	mustRule("api_secret", "API secret", `api[_-]?secret`),
	mustRule("password_assignment", "Password assignment", `password\s*=`),
	mustRule("bearer_token", "Bearer token", `bearer\s+[a-z0-9\-._~+/]+=*`),
	mustRule("private_key", "Private key", `private[_-]?key`),
	mustRule("aws_access", "AWS access credentials", `aws[_-]?access`),
}

// DefaultRules returns the built-in rules in their canonical order
func DefaultRules() []*Rule {
	rules := make([]*Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

// LoadGitleaksRules reads extra rules from a gitleaks formatted config file.
// The rules keep the order they have in the file and rules without a regex
// (path only rules) are dropped.
func LoadGitleaksRules(path string) ([]*Rule, error) {
	rawConfig, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("could not read rules file: path=%q error=%q", path, err)
	}

	vc, err := ParseGitleaksConfig(string(rawConfig))
	if err != nil {
		return nil, fmt.Errorf("could not parse rules file: path=%q error=%q", path, err)
	}

	rules := make([]*Rule, 0, len(vc.Rules))
	for _, r := range vc.Rules {
		if len(r.Regex) == 0 {
			logger.Warning("skipping rule without a regex: rule_id=%q", r.ID)
			continue
		}

		rule, err := NewRule(r.ID, r.Description, r.Regex)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	logger.Debug("loaded gitleaks rules: path=%q count=%d", path, len(rules))
	return rules, nil
}

// ParseGitleaksConfig decodes a gitleaks config string and makes sure gitleaks
// itself would accept it
func ParseGitleaksConfig(rawConfig string) (vc *gitleaksconfig.ViperConfig, err error) {
	defer func() {
		if r := recover(); r != nil {
			vc, err = nil, fmt.Errorf("gitleaks config is invalid: %v", r)
		}
	}()

	vc = &gitleaksconfig.ViperConfig{}
	if _, err := toml.Decode(rawConfig, vc); err != nil {
		return nil, err
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if len(cfg.Rules) == 0 {
		return nil, errors.New("no rules found in config")
	}

	return vc, nil
}

// FilterRules drops the disabled rules. Rule IDs are compared case
// insensitively and ignoring dashes and underscores.
func FilterRules(rules []*Rule, disabled []string) ([]*Rule, error) {
	if len(disabled) == 0 {
		return rules, nil
	}

	skip := make(map[string]struct{}, len(disabled))
	for _, id := range disabled {
		skip[normalizeRuleID(id)] = struct{}{}
	}

	filtered := make([]*Rule, 0, len(rules))
	for _, rule := range rules {
		if _, ok := skip[normalizeRuleID(rule.ID)]; ok {
			logger.Debug("rule disabled: rule_id=%q", rule.ID)
			continue
		}

		filtered = append(filtered, rule)
	}

	if len(filtered) == 0 {
		return nil, errors.New("every rule is disabled")
	}

	return filtered, nil
}

// normalizeRuleID lower cases and removes dashes and underscores
func normalizeRuleID(id string) string {
	var b strings.Builder
	b.Grow(len(id))

	for _, r := range id {
		r := unicode.ToLower(r)
		if r != '_' && r != '-' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
