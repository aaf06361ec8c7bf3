package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ark-forge/mcp-eu-ai-act/checklist"
	"github.com/ark-forge/mcp-eu-ai-act/correlate"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init("error")
}

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newEngine() *Engine {
	return New(Options{
		Report: report.Options{
			Now:   func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
			NewID: func() string { return "report-1" },
		},
	})
}

func toJSON(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

var propagationProject = map[string]string{
	"core/ai_engine.py": "import openai\n\ndef run():\n    return openai.OpenAI()\n",
	"main.py":           "from core.ai_engine import run\n\nrun()\n",
}

func TestScan_EmptyProject(t *testing.T) {
	res, err := newEngine().Scan(context.Background(), t.TempDir(), ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.FilesScanned)

	doc := toJSON(t, res)
	assert.Equal(t, map[string]any{}, doc["detected_models"])
	assert.Equal(t, []any{}, doc["ai_files"])
	assert.NotContains(t, doc, "propagated_files")
}

func TestScan_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := newEngine().Scan(context.Background(), missing, ScanOptions{})
	require.Error(t, err)

	doc := toJSON(t, ErrorResult(err))
	assert.Equal(t, map[string]any{"error": missing + " does not exist"}, doc)
}

func TestScan_DetectedModelsMatchAIFiles(t *testing.T) {
	root := project(t, map[string]string{
		"a.py":     "import openai\nimport torch\n",
		"b.ts":     "import Anthropic from '@anthropic-ai/sdk';\nconst c = new Anthropic();\n",
		"c.py":     "from langchain.chat_models import ChatOpenAI\n",
		"plain.go": "package main\n",
	})
	res, err := newEngine().Scan(context.Background(), root, ScanOptions{FollowImports: true})
	require.NoError(t, err)
	assert.Equal(t, 4, res.FilesScanned)

	byFile := res.FileMap()
	for _, c := range res.DetectedModels.Categories() {
		for _, f := range res.DetectedModels.Files(c) {
			assert.Contains(t, byFile[f], c, "%s listed under %s", f, c)
		}
	}
	for file, frameworks := range byFile {
		for _, c := range frameworks {
			assert.Contains(t, res.DetectedModels.Files(c), file)
		}
	}
	assert.Equal(t, []string{"openai", "pytorch"}, byFile["a.py"])
}

func TestScan_PropagationScenario(t *testing.T) {
	root := project(t, propagationProject)
	e := newEngine()

	with, err := e.Scan(context.Background(), root, ScanOptions{FollowImports: true})
	require.NoError(t, err)
	require.Len(t, with.PropagatedFiles, 1)
	assert.Equal(t, "main.py", with.PropagatedFiles[0].File)
	assert.Equal(t, "core/ai_engine.py", with.PropagatedFiles[0].Via)
	assert.Equal(t, 1, with.PropagatedFiles[0].Hops)
	assert.Equal(t, []string{"core/ai_engine.py", "main.py"}, with.DetectedModels.Files("openai"))

	without, err := e.Scan(context.Background(), root, ScanOptions{})
	require.NoError(t, err)
	assert.Empty(t, without.PropagatedFiles)
	assert.Equal(t, []string{"core/ai_engine.py"}, without.DetectedModels.Files("openai"))
	assert.NotContains(t, without.FileMap(), "main.py")
}

func TestScanPersonalData(t *testing.T) {
	root := project(t, map[string]string{
		"forms.py":    "email = user.email\nfirst_name = user.first_name\n",
		"tracking.js": "analytics.track(userId, 'page_view')\n",
		"clean.py":    "print('hello')\n",
	})
	res, err := newEngine().ScanPersonalData(context.Background(), root, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.FilesScanned)
	assert.True(t, res.ProcessingSummary.ProcessesPersonalData)
	assert.Equal(t, []string{"pii_fields", "user_tracking"}, res.ProcessingSummary.Categories)
	require.Len(t, res.ProcessingSummary.Obligations, 2)
	assert.Equal(t, "pii_fields", res.ProcessingSummary.Obligations[0].Category)
	assert.Equal(t, []FlaggedFile{
		{File: "forms.py", Categories: []string{"pii_fields"}},
		{File: "tracking.js", Categories: []string{"user_tracking"}},
	}, res.FlaggedFiles)
}

func TestCheckCompliance_Errors(t *testing.T) {
	e := newEngine()
	_, err := e.CheckCompliance(context.Background(), t.TempDir(), "extreme")
	require.Error(t, err)
	assert.Equal(t, ErrorResponse{Error: "Invalid risk category: extreme. Valid: [unacceptable, high, limited, minimal]"}, ErrorResult(err))

	missing := filepath.Join(t.TempDir(), "gone")
	_, err = e.CheckCompliance(context.Background(), missing, "high")
	assert.Equal(t, ErrorResponse{Error: missing + " does not exist"}, ErrorResult(err))
}

func TestCheckCompliance_Unacceptable(t *testing.T) {
	res, err := newEngine().CheckCompliance(context.Background(), project(t, map[string]string{"README.md": "AI"}), "unacceptable")
	require.NoError(t, err)
	assert.Equal(t, "0/0", res.Score)
	assert.Equal(t, 0.0, res.Percentage)
}

func TestCombinedReport_CriticalOverlap(t *testing.T) {
	root := project(t, map[string]string{
		"app.py": "import openai\nclient = openai.OpenAI()\nemail = user.email\nfirst_name = user.first_name\n",
	})
	res, err := newEngine().CombinedReport(context.Background(), root, "high", ScanOptions{})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "app.py", res.Findings[0].File)
	assert.Equal(t, correlate.Critical, res.Findings[0].Priority)
	assert.Contains(t, res.Findings[0].OverlapTypes, correlate.ProcessingPersonalData)
	assert.Equal(t, Summary{Critical: 1}, res.Summary)
	assert.Contains(t, res.Insight, "DPIA")

	doc := toJSON(t, res)
	for _, key := range []string{"eu_ai_act", "gdpr", "overlap_files", "insight", "summary"} {
		assert.Contains(t, doc, key)
	}
}

func TestCombinedReport_AIOnly(t *testing.T) {
	root := project(t, map[string]string{"train.py": "import torch\nmodel = torch.nn.Linear(2, 2)\n"})
	res, err := newEngine().CombinedReport(context.Background(), root, "limited", ScanOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
	assert.Contains(t, res.Insight, "AI frameworks detected but no personal data")
	assert.Equal(t, []any{}, toJSON(t, res)["overlap_files"])
}

func TestCombinedReport_InvalidTierSkipsScan(t *testing.T) {
	_, err := newEngine().CombinedReport(context.Background(), filepath.Join(t.TempDir(), "missing"), "bogus", ScanOptions{})
	require.Error(t, err)
	assert.Contains(t, ErrorResult(err).Error, "Invalid risk category: bogus")
}

func TestCorrelate(t *testing.T) {
	res, err := newEngine().Correlate(
		map[string][]string{"app.py": {"openai"}, "track.py": {"anthropic"}},
		map[string][]string{"app.py": {"pii_fields"}, "track.py": {"user_tracking"}},
		"high",
	)
	require.NoError(t, err)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, "app.py", res.Findings[0].File)
	assert.Equal(t, correlate.Critical, res.Findings[0].Priority)
	assert.Equal(t, correlate.High, res.Findings[1].Priority)
}

func TestCorrelate_EmptyCategoryLists(t *testing.T) {
	res, err := newEngine().Correlate(
		map[string][]string{"a.py": {}},
		map[string][]string{"a.py": {}},
		"limited",
	)
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "a.py", res.Findings[0].File)
	assert.Equal(t, []string{correlate.DualRegulation}, res.Findings[0].OverlapTypes)
	assert.Equal(t, correlate.Low, res.Findings[0].Priority)
}

func TestGenerateReport(t *testing.T) {
	root := project(t, map[string]string{
		"README.md": "# Support assistant\nPowered by an LLM.\n",
		"bot.py":    "import anthropic\nclient = anthropic.Anthropic()\n",
	})
	e := newEngine()
	scan, err := e.Scan(context.Background(), root, ScanOptions{})
	require.NoError(t, err)
	compliance, err := e.CheckCompliance(context.Background(), root, "limited")
	require.NoError(t, err)

	r, err := e.GenerateReport(scan, compliance)
	require.NoError(t, err)
	assert.Equal(t, "report-1", r.ID)
	assert.Equal(t, "2026-01-02T03:04:05Z", r.Date)
	assert.Equal(t, root, r.ProjectPath)
	assert.Equal(t, "2/3", r.ComplianceSummary.ComplianceScore)
	assert.Equal(t, []string{"anthropic"}, r.ScanSummary.FrameworksDetected)
	assert.Equal(t, "MISSING: Content Marking", r.Recommendations[0])
	assert.Nil(t, r.Correlation)
}

func TestGenerateReport_FromDecodedResults(t *testing.T) {
	root := project(t, map[string]string{
		"README.md": "# Support assistant\nPowered by an LLM.\n",
		"app.py":    "import openai\nimport anthropic\n",
	})
	e := newEngine()
	scan, err := e.Scan(context.Background(), root, ScanOptions{})
	require.NoError(t, err)
	compliance, err := e.CheckCompliance(context.Background(), root, "limited")
	require.NoError(t, err)
	live, err := e.GenerateReport(scan, compliance)
	require.NoError(t, err)

	scanJSON, err := json.Marshal(scan)
	require.NoError(t, err)
	complianceJSON, err := json.Marshal(compliance)
	require.NoError(t, err)
	var decodedScan ScanResult
	require.NoError(t, json.Unmarshal(scanJSON, &decodedScan))
	var decodedCompliance checklist.Result
	require.NoError(t, json.Unmarshal(complianceJSON, &decodedCompliance))

	r, err := e.GenerateReport(&decodedScan, &decodedCompliance)
	require.NoError(t, err)
	assert.Equal(t, root, r.ProjectPath)
	assert.ElementsMatch(t, []string{"openai", "anthropic"}, r.ScanSummary.FrameworksDetected)
	assert.Equal(t, scan.DetectedModels.Categories(), r.DetailedFindings.DetectedModels.Categories())
	assert.Equal(t, compliance.Status, r.DetailedFindings.ComplianceChecks)

	want, err := json.Marshal(live)
	require.NoError(t, err)
	got, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestGenerateReport_DecodedWithoutDetectedModels(t *testing.T) {
	var scan ScanResult
	require.NoError(t, json.Unmarshal([]byte(`{"project_path":"/srv/app","files_scanned":2,"ai_files":[{"file":"a.py","frameworks":["openai"]}]}`), &scan))
	compliance := &checklist.Result{
		RiskCategory: "minimal",
		Status:       checklist.Outcomes{{Name: "basic_documentation", Passed: true}},
		Score:        "1/1",
		Percentage:   100,
	}
	r, err := newEngine().GenerateReport(&scan, compliance)
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", r.ProjectPath)
	assert.Equal(t, []string{"openai"}, r.ScanSummary.FrameworksDetected)
	assert.Equal(t, []string{"a.py"}, r.DetailedFindings.DetectedModels.Files("openai"))
}

func TestReport_WithCorrelation(t *testing.T) {
	root := project(t, propagationProject)
	r, err := newEngine().Report(context.Background(), root, "minimal", ReportOptions{FollowImports: true, Correlate: true})
	require.NoError(t, err)
	require.NotNil(t, r.Correlation)
	assert.Empty(t, r.Correlation.Findings)
	assert.Len(t, r.DetailedFindings.PropagatedFiles, 1)
	assert.Equal(t, 2, r.ScanSummary.AIFilesDetected)
	assert.Equal(t, []string{"MISSING: Basic Documentation", "Minimal-risk system: consider adopting a voluntary code of conduct"}, r.Recommendations)
}
