// Package report assembles scan, checklist and correlation results into one
// timestamped record.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ark-forge/mcp-eu-ai-act/checklist"
	"github.com/ark-forge/mcp-eu-ai-act/correlate"
	"github.com/ark-forge/mcp-eu-ai-act/depgraph"
	"github.com/ark-forge/mcp-eu-ai-act/detect"
	"github.com/ark-forge/mcp-eu-ai-act/hasher"
	"github.com/ark-forge/mcp-eu-ai-act/regulation"
)

// AllChecksPassed is the sole checklist recommendation when nothing failed.
const AllChecksPassed = "All basic checks passed"

type ScanSummary struct {
	FilesScanned       int      `json:"files_scanned"`
	AIFilesDetected    int      `json:"ai_files_detected"`
	FrameworksDetected []string `json:"frameworks_detected"`
}

type ComplianceSummary struct {
	RiskCategory         string  `json:"risk_category"`
	ComplianceScore      string  `json:"compliance_score"`
	CompliancePercentage float64 `json:"compliance_percentage"`
}

type DetailedFindings struct {
	DetectedModels   *detect.Index          `json:"detected_models"`
	ComplianceChecks checklist.Outcomes     `json:"compliance_checks"`
	Requirements     []string               `json:"requirements"`
	PropagatedFiles  []depgraph.Propagation `json:"propagated_files,omitempty"`
}

// Remediation is the guidance attached to one failed check.
type Remediation struct {
	Check string `json:"check"`
	regulation.Guidance
}

type Report struct {
	ID                string            `json:"report_id"`
	Date              string            `json:"report_date"`
	ProjectPath       string            `json:"project_path"`
	ScanSummary       ScanSummary       `json:"scan_summary"`
	ComplianceSummary ComplianceSummary `json:"compliance_summary"`
	DetailedFindings  DetailedFindings  `json:"detailed_findings"`
	Recommendations   []string          `json:"recommendations"`
	Remediation       []Remediation     `json:"remediation"`
	Correlation       *correlate.Result `json:"correlation,omitempty"`
	Fingerprint       string            `json:"fingerprint"`
}

// Input is what a report is built from. Correlation is optional.
type Input struct {
	ProjectPath  string
	FilesScanned int
	AIFiles      int
	Detected     *detect.Index
	Propagated   []depgraph.Propagation
	Compliance   *checklist.Result
	Correlation  *correlate.Result
}

// Options override the clock and the id generator.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

// Assemble builds the report. The fingerprint covers everything except the
// id, the date and the fingerprint itself, so identical inputs yield
// identical fingerprints.
func Assemble(kb *regulation.KnowledgeBase, in Input, opts Options) (*Report, error) {
	if in.Compliance == nil {
		return nil, fmt.Errorf("report for %s: missing compliance result", in.ProjectPath)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	detected := in.Detected
	if detected == nil {
		detected = detect.NewIndex()
	}
	frameworks := detected.Categories()
	if frameworks == nil {
		frameworks = []string{}
	}

	r := &Report{
		ProjectPath: in.ProjectPath,
		ScanSummary: ScanSummary{
			FilesScanned:       in.FilesScanned,
			AIFilesDetected:    in.AIFiles,
			FrameworksDetected: frameworks,
		},
		ComplianceSummary: ComplianceSummary{
			RiskCategory:         in.Compliance.RiskCategory,
			ComplianceScore:      in.Compliance.Score,
			CompliancePercentage: in.Compliance.Percentage,
		},
		DetailedFindings: DetailedFindings{
			DetectedModels:   detected,
			ComplianceChecks: in.Compliance.Status,
			Requirements:     in.Compliance.Requirements,
			PropagatedFiles:  in.Propagated,
		},
		Recommendations: Recommendations(in.Compliance),
		Remediation:     remediation(kb, in.Compliance),
		Correlation:     in.Correlation,
	}

	content, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("fingerprint report: %w", err)
	}
	r.Fingerprint = hasher.Bytes(content)
	r.ID = opts.NewID()
	r.Date = opts.Now().UTC().Format(time.RFC3339)
	return r, nil
}

// Recommendations lists one entry per failed check, or AllChecksPassed,
// followed by the boilerplate of the tier.
func Recommendations(c *checklist.Result) []string {
	var out []string
	for _, name := range c.Status.Failed() {
		out = append(out, "MISSING: "+titleCase(name))
	}
	if len(out) == 0 {
		out = append(out, AllChecksPassed)
	}
	switch regulation.Tier(c.RiskCategory) {
	case regulation.High:
		out = append(out, "High-risk system: EU database registration required before deployment")
	case regulation.Limited:
		out = append(out, "Limited-risk system: ensure users know they are interacting with AI and mark generated content")
	case regulation.Unacceptable:
		out = append(out, "Prohibited system: deployment is not permitted in the EU")
	case regulation.Minimal:
		out = append(out, "Minimal-risk system: consider adopting a voluntary code of conduct")
	}
	return out
}

func remediation(kb *regulation.KnowledgeBase, c *checklist.Result) []Remediation {
	out := []Remediation{}
	for _, name := range c.Status.Failed() {
		if g, ok := kb.Guidance(name); ok {
			out = append(out, Remediation{Check: name, Guidance: g})
		}
	}
	return out
}

func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
