// Package regulation holds the fixed EU AI Act and GDPR knowledge tables.
package regulation

import (
	"slices"
	"sync"
)

// KnowledgeBase is read-only after construction. Accessors return copies.
type KnowledgeBase struct {
	tiers       map[Tier]*RiskCategory
	checks      map[Tier][]Check
	obligations map[string]*Obligation
	guidance    map[string]Guidance
	keywords    []string
	markers     []string
}

// Default returns the process-wide knowledge base.
var Default = sync.OnceValue(func() *KnowledgeBase {
	kb := &KnowledgeBase{
		tiers:       make(map[Tier]*RiskCategory, len(riskTable)),
		checks:      checkTable,
		obligations: make(map[string]*Obligation, len(obligationTable)),
		guidance:    guidanceTable,
		keywords:    disclosureKeywords,
		markers:     contentMarkers,
	}
	for i := range riskTable {
		kb.tiers[riskTable[i].Tier] = &riskTable[i]
	}
	for i := range obligationTable {
		kb.obligations[obligationTable[i].Category] = &obligationTable[i]
	}
	return kb
})

// RiskCategory returns the tier description, or an InvalidTierError.
func (kb *KnowledgeBase) RiskCategory(name string) (*RiskCategory, error) {
	tier, err := ParseTier(name)
	if err != nil {
		return nil, err
	}
	rc := *kb.tiers[tier]
	rc.Requirements = slices.Clone(rc.Requirements)
	return &rc, nil
}

func (kb *KnowledgeBase) Checks(t Tier) []Check {
	checks := slices.Clone(kb.checks[t])
	for i := range checks {
		checks[i].Artifacts = slices.Clone(checks[i].Artifacts)
	}
	return checks
}

func (kb *KnowledgeBase) Obligation(category string) (*Obligation, bool) {
	o, ok := kb.obligations[category]
	if !ok {
		return nil, false
	}
	c := *o
	c.Requirements = slices.Clone(c.Requirements)
	return &c, true
}

func (kb *KnowledgeBase) Guidance(check string) (Guidance, bool) {
	g, ok := kb.guidance[check]
	g.How = slices.Clone(g.How)
	return g, ok
}

func (kb *KnowledgeBase) DisclosureKeywords() []string {
	return slices.Clone(kb.keywords)
}

func (kb *KnowledgeBase) ContentMarkers() []string {
	return slices.Clone(kb.markers)
}
