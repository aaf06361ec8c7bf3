package signatures

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// Rule is a single textual signature. Matching is case-insensitive.
type Rule struct {
	Pattern string
	re      *regexp.Regexp
	anchor  string
}

// NewRule compiles pattern. The returned rule also records the longest literal
// that every match must contain, lowercased, for use by prefilters.
func NewRule(pattern string) (*Rule, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid signature %q: %w", pattern, err)
	}
	return &Rule{Pattern: pattern, re: re, anchor: requiredLiteral(pattern)}, nil
}

// Anchor returns the lowercase literal required by the rule, or "" when the
// rule has no mandatory literal.
func (r *Rule) Anchor() string {
	return r.anchor
}

func (r *Rule) MatchString(s string) bool {
	return r.re.MatchString(s)
}

func requiredLiteral(pattern string) string {
	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return ""
	}
	parsed = parsed.Simplify()
	var best []rune
	switch parsed.Op {
	case syntax.OpLiteral:
		best = parsed.Rune
	case syntax.OpConcat:
		for _, sub := range parsed.Sub {
			if sub.Op == syntax.OpLiteral && len(sub.Rune) > len(best) {
				best = sub.Rune
			}
		}
	}
	return FoldLower(string(best))
}

// FoldLower lowercases s so that any text matched by a case-insensitive rule
// contains the rule's anchor. strings.ToLower leaves U+017F (long s) alone
// although (?i) folds it with "s".
func FoldLower(s string) string {
	lower := strings.ToLower(s)
	if strings.ContainsRune(lower, 'ſ') {
		lower = strings.ReplaceAll(lower, "ſ", "s")
	}
	return lower
}
