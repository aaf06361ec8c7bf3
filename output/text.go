package output

import (
	"fmt"
	"strings"

	"github.com/ark-forge/mcp-eu-ai-act/checklist"
	"github.com/ark-forge/mcp-eu-ai-act/depgraph"
	"github.com/ark-forge/mcp-eu-ai-act/detect"
	"github.com/ark-forge/mcp-eu-ai-act/engine"
	"github.com/ark-forge/mcp-eu-ai-act/report"
)

const rule = "========================================================================"

func renderText(kind string, payload any) string {
	var b strings.Builder
	switch v := payload.(type) {
	case *engine.ScanResult:
		header(&b, "EU AI Act scan")
		writeScan(&b, v)
	case *engine.GDPRScanResult:
		header(&b, "GDPR personal data scan")
		writeGDPR(&b, v)
	case *checklist.Result:
		header(&b, "EU AI Act compliance check")
		writeCompliance(&b, v)
	case *report.Report:
		header(&b, "EU AI Act compliance report")
		writeReport(&b, v)
	case *engine.CombinedResult:
		header(&b, "EU AI Act + GDPR combined report")
		writeCombined(&b, v)
	case engine.ErrorResponse:
		fmt.Fprintf(&b, "Error: %s\n", v.Error)
	default:
		data, err := marshalDocument(payload)
		if err != nil {
			return fmt.Sprintf("%s: %v\n", kind, err)
		}
		return string(data)
	}
	return b.String()
}

func header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n  %s\n%s\n", rule, title, rule)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func writeIndex(b *strings.Builder, label string, idx *detect.Index) {
	fmt.Fprintf(b, "  %s: %d\n", label, idx.Len())
	for _, c := range idx.Categories() {
		fmt.Fprintf(b, "    - %s (in %s)\n", c, plural(len(idx.Files(c)), "file"))
	}
}

func writePropagated(b *strings.Builder, props []depgraph.Propagation) {
	if len(props) == 0 {
		return
	}
	fmt.Fprintf(b, "  Propagated through imports: %s\n", plural(len(props), "file"))
	for _, p := range props {
		fmt.Fprintf(b, "    - %s <- %s (%s)\n", p.File, p.Via, plural(p.Hops, "hop"))
	}
}

func writeScan(b *strings.Builder, r *engine.ScanResult) {
	fmt.Fprintf(b, "\n  Files scanned: %d\n", r.FilesScanned)
	writeIndex(b, "AI frameworks detected", r.DetectedModels)
	writePropagated(b, r.PropagatedFiles)
}

func writeGDPR(b *strings.Builder, r *engine.GDPRScanResult) {
	fmt.Fprintf(b, "\n  Files scanned: %d\n", r.FilesScanned)
	writeIndex(b, "Personal data categories", r.DetectedPatterns)
	for _, o := range r.ProcessingSummary.Obligations {
		fmt.Fprintf(b, "  [%s] %s\n", o.Category, o.Description)
		for _, req := range o.Requirements {
			fmt.Fprintf(b, "    * %s\n", req)
		}
	}
	writePropagated(b, r.PropagatedFiles)
}

func writeCompliance(b *strings.Builder, r *checklist.Result) {
	fmt.Fprintf(b, "\n  Risk category: %s\n", r.RiskCategory)
	fmt.Fprintf(b, "  Compliance score: %s (%.1f%%)\n", r.Score, r.Percentage)
	if len(r.Status) > 0 {
		b.WriteString("  Checks:\n")
		for _, c := range r.Status {
			icon := "FAIL"
			if c.Passed {
				icon = "PASS"
			}
			fmt.Fprintf(b, "    [%s] %s\n", icon, c.Name)
		}
	}
}

func writeReport(b *strings.Builder, r *report.Report) {
	fmt.Fprintf(b, "  Report %s (%s)\n  Project: %s\n", r.ID, r.Date, r.ProjectPath)
	fmt.Fprintf(b, "\n  Files scanned: %d\n", r.ScanSummary.FilesScanned)
	writeIndex(b, "AI frameworks detected", r.DetailedFindings.DetectedModels)
	writePropagated(b, r.DetailedFindings.PropagatedFiles)
	fmt.Fprintf(b, "\n  Risk category: %s\n", r.ComplianceSummary.RiskCategory)
	fmt.Fprintf(b, "  Compliance score: %s (%.1f%%)\n", r.ComplianceSummary.ComplianceScore, r.ComplianceSummary.CompliancePercentage)
	b.WriteString("\n  Recommendations:\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(b, "    - %s\n", rec)
	}
	for _, rem := range r.Remediation {
		fmt.Fprintf(b, "\n  [%s] %s\n    What: %s\n    Why:  %s\n", rem.Check, rem.Article, rem.What, rem.Why)
		for _, step := range rem.How {
			fmt.Fprintf(b, "      - %s\n", step)
		}
		fmt.Fprintf(b, "    Effort: %s\n", rem.Effort)
	}
	if r.Correlation != nil {
		fmt.Fprintf(b, "\n  Overlap files: %d\n  %s\n", len(r.Correlation.Findings), r.Correlation.Insight)
	}
	fmt.Fprintf(b, "\n  Fingerprint: %s\n", r.Fingerprint)
}

func writeCombined(b *strings.Builder, r *engine.CombinedResult) {
	fmt.Fprintf(b, "\n  Risk category: %s\n", r.RiskCategory)
	fmt.Fprintf(b, "  Files scanned: %d\n", r.AIAct.FilesScanned)
	writeIndex(b, "AI frameworks detected", r.AIAct.DetectedModels)
	writeIndex(b, "Personal data categories", r.GDPR.DetectedPatterns)
	fmt.Fprintf(b, "\n  Overlap: critical %d, high %d, medium %d, low %d\n",
		r.Summary.Critical, r.Summary.High, r.Summary.Medium, r.Summary.Low)
	for _, f := range r.Findings {
		fmt.Fprintf(b, "    [%s] %s: %s\n", strings.ToUpper(f.Priority.String()), f.File, strings.Join(f.OverlapTypes, ", "))
	}
	fmt.Fprintf(b, "\n  %s\n", r.Insight)
}
