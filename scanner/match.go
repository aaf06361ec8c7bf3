package scanner

import (
	"github.com/ark-forge/mcp-eu-ai-act/scanner/prefilter"
	"github.com/ark-forge/mcp-eu-ai-act/signatures"
)

// categoryMatcher applies categories in order. Within a category the first
// matching rule records it and the remaining rules are not tested.
type categoryMatcher struct {
	categories []*signatures.Category
	anchors    *prefilter.AnchorSet
	ruleAnchor [][]int
}

func newCategoryMatcher(categories []*signatures.Category) *categoryMatcher {
	var terms []string
	for _, c := range categories {
		for _, r := range c.Rules {
			terms = append(terms, r.Anchor())
		}
	}
	m := &categoryMatcher{
		categories: categories,
		anchors:    prefilter.BuildAnchorSet(terms),
		ruleAnchor: make([][]int, len(categories)),
	}
	for ci, c := range categories {
		m.ruleAnchor[ci] = make([]int, len(c.Rules))
		for ri, r := range c.Rules {
			m.ruleAnchor[ci][ri] = m.anchors.Index(r.Anchor())
		}
	}
	return m
}

func (m *categoryMatcher) match(content string) []string {
	present := m.anchors.Present([]byte(signatures.FoldLower(content)))
	var found []string
	for ci, c := range m.categories {
		for ri, r := range c.Rules {
			if a := m.ruleAnchor[ci][ri]; a >= 0 && !present[a] {
				continue
			}
			if r.MatchString(content) {
				found = append(found, c.Name)
				break
			}
		}
	}
	return found
}
