// Package engine exposes the detection, checklist, correlation and report
// operations over one shared signature database and knowledge base.
package engine

import (
	"context"
	"errors"
	"os"

	"github.com/ark-forge/mcp-eu-ai-act/checklist"
	"github.com/ark-forge/mcp-eu-ai-act/correlate"
	"github.com/ark-forge/mcp-eu-ai-act/detect"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/regulation"
	"github.com/ark-forge/mcp-eu-ai-act/report"
	"github.com/ark-forge/mcp-eu-ai-act/scanner"
	"github.com/ark-forge/mcp-eu-ai-act/signatures"
)

// RootNotFoundError is returned for a missing scan root.
type RootNotFoundError = scanner.RootNotFoundError

// Options configure every scan run by an Engine. FollowImports in Scanner is
// ignored; it is chosen per call.
type Options struct {
	Scanner scanner.Options
	Report  report.Options
}

// ScanOptions are chosen per call.
type ScanOptions struct {
	FollowImports bool
}

// Engine is safe for concurrent use.
type Engine struct {
	sigs    *signatures.Database
	kb      *regulation.KnowledgeBase
	checker *checklist.Evaluator
	opts    Options
}

func New(opts Options) *Engine {
	kb := regulation.Default()
	return &Engine{
		sigs:    signatures.Default(),
		kb:      kb,
		checker: checklist.NewEvaluator(kb),
		opts:    opts,
	}
}

func (e *Engine) scan(ctx context.Context, categories []*signatures.Category, root string, opts ScanOptions) (*scanner.Result, error) {
	so := e.opts.Scanner
	so.FollowImports = opts.FollowImports
	return scanner.New(categories, so).Scan(ctx, root)
}

// Scan detects AI frameworks under root.
func (e *Engine) Scan(ctx context.Context, root string, opts ScanOptions) (*ScanResult, error) {
	res, err := e.scan(ctx, e.sigs.Frameworks, root, opts)
	if err != nil {
		return nil, err
	}
	logger.Infof("Scanned %d files under %s, %d AI files", res.FilesScanned, root, res.Files.Len())
	return newScanResult(res), nil
}

// ScanPersonalData detects personal-data processing under root.
func (e *Engine) ScanPersonalData(ctx context.Context, root string, opts ScanOptions) (*GDPRScanResult, error) {
	res, err := e.scan(ctx, e.sigs.PersonalData, root, opts)
	if err != nil {
		return nil, err
	}
	logger.Infof("Scanned %d files under %s, %d files process personal data", res.FilesScanned, root, res.Files.Len())
	return newGDPRScanResult(e.kb, res), nil
}

// CheckCompliance evaluates the checklist of tier against root.
func (e *Engine) CheckCompliance(ctx context.Context, root, tier string) (*checklist.Result, error) {
	if _, err := regulation.ParseTier(tier); err != nil {
		return nil, err
	}
	if err := requireRoot(root); err != nil {
		return nil, err
	}
	return e.checker.Evaluate(ctx, root, tier)
}

// GenerateReport combines a scan and a checklist result.
func (e *Engine) GenerateReport(scan *ScanResult, compliance *checklist.Result) (*report.Report, error) {
	return e.assemble(scan, compliance, nil)
}

func (e *Engine) assemble(scan *ScanResult, compliance *checklist.Result, corr *correlate.Result) (*report.Report, error) {
	return report.Assemble(e.kb, report.Input{
		ProjectPath:  scan.ProjectPath,
		FilesScanned: scan.FilesScanned,
		AIFiles:      len(scan.AIFiles),
		Detected:     scan.models(),
		Propagated:   scan.PropagatedFiles,
		Compliance:   compliance,
		Correlation:  corr,
	}, e.opts.Report)
}

// ReportOptions select the optional parts of Report.
type ReportOptions struct {
	FollowImports bool
	Correlate     bool
}

// Report scans root, evaluates tier and assembles the report in one call.
func (e *Engine) Report(ctx context.Context, root, tier string, opts ReportOptions) (*report.Report, error) {
	if _, err := regulation.ParseTier(tier); err != nil {
		return nil, err
	}
	scan, err := e.Scan(ctx, root, ScanOptions{FollowImports: opts.FollowImports})
	if err != nil {
		return nil, err
	}
	compliance, err := e.checker.Evaluate(ctx, root, tier)
	if err != nil {
		return nil, err
	}
	var corr *correlate.Result
	if opts.Correlate {
		gdpr, err := e.ScanPersonalData(ctx, root, ScanOptions{FollowImports: opts.FollowImports})
		if err != nil {
			return nil, err
		}
		if corr, err = correlate.Correlate(scan.fileMap(), gdpr.fileMap(), tier); err != nil {
			return nil, err
		}
	}
	return e.assemble(scan, compliance, corr)
}

// Correlate intersects two file → category maps.
func (e *Engine) Correlate(ai, gdpr map[string][]string, tier string) (*correlate.Result, error) {
	return correlate.Correlate(detect.FileMapFrom(ai), detect.FileMapFrom(gdpr), tier)
}

// CombinedReport runs both scanners over root and correlates them.
func (e *Engine) CombinedReport(ctx context.Context, root, tier string, opts ScanOptions) (*CombinedResult, error) {
	if _, err := regulation.ParseTier(tier); err != nil {
		return nil, err
	}
	ai, err := e.Scan(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	gdpr, err := e.ScanPersonalData(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	corr, err := correlate.Correlate(ai.fileMap(), gdpr.fileMap(), tier)
	if err != nil {
		return nil, err
	}
	counts := corr.Counts()
	return &CombinedResult{
		RiskCategory: tier,
		AIAct:        ai,
		GDPR:         gdpr,
		Findings:     corr.Findings,
		Insight:      corr.Insight,
		Summary: Summary{
			Critical: counts[correlate.Critical],
			High:     counts[correlate.High],
			Medium:   counts[correlate.Medium],
			Low:      counts[correlate.Low],
		},
	}, nil
}

func requireRoot(root string) error {
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return &RootNotFoundError{Path: root}
	}
	return nil
}

// ErrorResponse is the only shape returned for a failed call.
type ErrorResponse struct {
	Error string `json:"error"`
}

func ErrorResult(err error) ErrorResponse {
	var rootErr *RootNotFoundError
	var tierErr *regulation.InvalidTierError
	switch {
	case errors.As(err, &rootErr):
		return ErrorResponse{Error: rootErr.Error()}
	case errors.As(err, &tierErr):
		return ErrorResponse{Error: tierErr.Error()}
	}
	return ErrorResponse{Error: err.Error()}
}
