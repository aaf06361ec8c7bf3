package utils

import (
	"path"
	"regexp"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
)

// PatternMatcher filters slash-separated relative paths. Each pattern is tried
// as a glob against the base name and the full path, and as a regular
// expression against the full path.
type PatternMatcher struct {
	includeGlobs []string
	includeRegex []*regexp.Regexp
	excludeGlobs []string
	excludeRegex []*regexp.Regexp
}

func NewPatternMatcher(includePatterns, excludePatterns []string) *PatternMatcher {
	return &PatternMatcher{
		includeGlobs: append([]string(nil), includePatterns...),
		includeRegex: compileRegex(includePatterns),
		excludeGlobs: append([]string(nil), excludePatterns...),
		excludeRegex: compileRegex(excludePatterns),
	}
}

func (m *PatternMatcher) ShouldInclude(p string) bool {
	if m == nil {
		return true
	}
	if (len(m.includeGlobs) > 0 || len(m.includeRegex) > 0) && !m.matches(p, m.includeGlobs, m.includeRegex) {
		return false
	}
	if (len(m.excludeGlobs) > 0 || len(m.excludeRegex) > 0) && m.matches(p, m.excludeGlobs, m.excludeRegex) {
		return false
	}
	return true
}

func (m *PatternMatcher) matches(p string, globs []string, regexes []*regexp.Regexp) bool {
	base := path.Base(p)
	for _, pattern := range globs {
		if matched, _ := path.Match(pattern, base); matched {
			return true
		}
		if matched, _ := path.Match(pattern, p); matched {
			return true
		}
	}
	for _, re := range regexes {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// compileRegex skips patterns that are only valid as globs.
func compileRegex(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Debugf("Pattern %q used as glob only: %v", pattern, err)
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}
