// Package prefilter finds which literal anchors occur in a document so that
// regular expressions that need an absent anchor can be skipped.
package prefilter

import (
	"bytes"

	"github.com/cloudflare/ahocorasick"
)

const (
	autoAhoMinTerms        = 8
	autoAhoMinContentBytes = 4 * 1024
)

// AnchorSet is safe for concurrent use.
type AnchorSet struct {
	terms     []string
	termsByte [][]byte
	index     map[string]int
	matcher   *ahocorasick.Matcher
}

// BuildAnchorSet deduplicates terms and drops empty ones.
func BuildAnchorSet(terms []string) *AnchorSet {
	normalized := normalizeTerms(terms)
	s := &AnchorSet{
		terms:     normalized,
		termsByte: make([][]byte, len(normalized)),
		index:     make(map[string]int, len(normalized)),
	}
	for i, term := range normalized {
		s.termsByte[i] = []byte(term)
		s.index[term] = i
	}
	if len(normalized) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(normalized)
	}
	return s
}

// Index returns the position of term in Present's result, or -1.
func (s *AnchorSet) Index(term string) int {
	if i, ok := s.index[term]; ok {
		return i
	}
	return -1
}

func (s *AnchorSet) Len() int {
	return len(s.terms)
}

// Present reports, per term, whether it occurs in content. Small inputs use
// bytes.Contains; larger ones a single Aho-Corasick pass.
func (s *AnchorSet) Present(content []byte) []bool {
	found := make([]bool, len(s.terms))
	if len(s.terms) == 0 {
		return found
	}
	if len(s.terms) < autoAhoMinTerms || len(content) < autoAhoMinContentBytes {
		for i := range s.termsByte {
			found[i] = bytes.Contains(content, s.termsByte[i])
		}
		return found
	}
	for _, idx := range s.matcher.MatchThreadSafe(content) {
		if idx >= 0 && idx < len(found) {
			found[idx] = true
		}
	}
	return found
}

func normalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		normalized = append(normalized, term)
	}
	return normalized
}
