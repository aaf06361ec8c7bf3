// Package correlate intersects AI-framework and personal-data detections at
// file level and derives prioritised findings.
package correlate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ark-forge/mcp-eu-ai-act/detect"
	"github.com/ark-forge/mcp-eu-ai-act/regulation"
)

// AIAct is the AI side of a finding.
type AIAct struct {
	Frameworks   []string `json:"frameworks"`
	RiskCategory string   `json:"risk_category"`
}

// GDPR is the personal-data side of a finding.
type GDPR struct {
	Patterns []string `json:"patterns"`
}

// Finding is one file flagged by both scanners.
type Finding struct {
	File         string   `json:"file"`
	Priority     Priority `json:"priority"`
	OverlapTypes []string `json:"overlap_type"`
	Requirements []string `json:"requirements"`
	AIAct        AIAct    `json:"eu_ai_act"`
	GDPR         GDPR     `json:"gdpr"`
}

// Result is the correlation of one project.
type Result struct {
	Findings []Finding `json:"overlap_files"`
	Insight  string    `json:"insight"`
}

// Counts tallies findings per priority.
func (r *Result) Counts() map[Priority]int {
	out := make(map[Priority]int, len(priorityNames))
	for _, f := range r.Findings {
		out[f.Priority]++
	}
	return out
}

// Evaluate derives the finding for one file from its framework and
// personal-data categories.
func Evaluate(file string, frameworks, patterns []string, tier regulation.Tier) Finding {
	f := Finding{
		File:     file,
		Priority: Low,
		AIAct:    AIAct{Frameworks: append([]string{}, frameworks...), RiskCategory: string(tier)},
		GDPR:     GDPR{Patterns: append([]string{}, patterns...)},
	}
	var fired []outcome
	for _, r := range rules {
		if slices.Contains(patterns, r.category) {
			fired = append(fired, r.apply(tier))
		}
	}
	if len(fired) == 0 {
		fired = append(fired, dualRegulation)
	}
	for _, o := range fired {
		f.OverlapTypes = append(f.OverlapTypes, o.overlap)
		f.Priority = max(f.Priority, o.priority)
		for _, req := range o.requirements {
			if !slices.Contains(f.Requirements, req) {
				f.Requirements = append(f.Requirements, req)
			}
		}
	}
	return f
}

// Correlate intersects ai and gdpr. An unknown tier yields a
// *regulation.InvalidTierError.
func Correlate(ai, gdpr *detect.FileMap, tierName string) (*Result, error) {
	tier, err := regulation.ParseTier(tierName)
	if err != nil {
		return nil, err
	}
	res := &Result{Findings: []Finding{}}
	for _, e := range ai.Entries() {
		if !gdpr.Has(e.File) {
			continue
		}
		res.Findings = append(res.Findings, Evaluate(e.File, e.Categories, gdpr.Categories(e.File), tier))
	}
	slices.SortStableFunc(res.Findings, func(a, b Finding) int {
		if a.Priority != b.Priority {
			return int(b.Priority) - int(a.Priority)
		}
		return strings.Compare(a.File, b.File)
	})
	res.Insight = Insight(res.Findings, ai.Len() > 0, gdpr.Len() > 0)
	return res, nil
}

// Insight summarises a project from its findings and whether each scanner
// detected anything at all.
func Insight(findings []Finding, aiDetected, personalData bool) string {
	if len(findings) == 0 {
		switch {
		case !aiDetected && !personalData:
			return "No AI frameworks and no personal data processing detected. Neither regulation currently applies to the scanned code."
		case aiDetected && !personalData:
			return "AI frameworks detected but no personal data processing found. EU AI Act obligations apply; GDPR exposure is low."
		case !aiDetected:
			return "No AI frameworks detected. Personal data processing falls under GDPR only."
		default:
			return "No file-level overlap between AI frameworks and personal data processing. Keep the two concerns separated."
		}
	}
	var critical, high int
	for _, f := range findings {
		switch f.Priority {
		case Critical:
			critical++
		case High:
			high++
		}
	}
	switch {
	case critical > 0:
		return fmt.Sprintf("%d file(s) process personal data with AI in a critical context. A DPIA (GDPR Art. 35) is required before deployment.", critical)
	case high > 0:
		return fmt.Sprintf("%d high priority file(s) combine AI processing with personal data. Review them for GDPR and EU AI Act obligations.", high)
	}
	return fmt.Sprintf("%d dual-compliance hotspot(s) found where AI code touches personal data. Document both obligations for these files.", len(findings))
}
