package signature

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// FilterConfig specifies include and exclude patterns for signature filtering.
// Patterns are regexes tested against ID, name, and MIME type.
type FilterConfig struct {
	Include []string // only matching signatures included
	Exclude []string // matching signatures excluded
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude patterns to signatures.
// Include is applied first, then exclude. Empty include means "include all".
// Table order is preserved. Returns error if any pattern is an invalid regex.
func Filter(sigs []*types.Signature, config FilterConfig) ([]*types.Signature, error) {
	if len(sigs) == 0 {
		return sigs, nil
	}

	include, err := compilePatterns(config.Include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exclude, err := compilePatterns(config.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}

	var result []*types.Signature
	for _, sig := range sigs {
		if len(include) > 0 && !matchesAny(sig, include) {
			continue
		}
		if matchesAny(sig, exclude) {
			continue
		}
		result = append(result, sig)
	}
	return result, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func matchesAny(sig *types.Signature, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(sig.ID) || re.MatchString(sig.Name) || re.MatchString(sig.MIME) {
			return true
		}
	}
	return false
}
