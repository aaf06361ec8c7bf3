package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ark-forge/mcp-eu-ai-act/checklist"
	"github.com/ark-forge/mcp-eu-ai-act/config"
	"github.com/ark-forge/mcp-eu-ai-act/engine"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/regulation"
)

func init() {
	logger.Init("error")
}

func sampleScan(t *testing.T) *engine.ScanResult {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "core"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"core/ai_engine.py": "import openai\n",
		"main.py":           "from core.ai_engine import run\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	res, err := engine.New(engine.Options{}).Scan(context.Background(), root, engine.ScanOptions{FollowImports: true})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return res
}

func TestWriteJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := New(&config.Config{OutputFileName: path, OutputFormat: "json"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := w.Write(KindScan, sampleScan(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, data)
	}
	if doc["files_scanned"] != float64(2) {
		t.Errorf("unexpected files_scanned: %v", doc["files_scanned"])
	}
	if _, ok := doc["propagated_files"]; !ok {
		t.Errorf("expected propagated_files in %s", data)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Errorf("expected trailing newline")
	}
}

func TestWriteErrorShape(t *testing.T) {
	var buf bytes.Buffer
	w, err := newWriter(&config.Config{OutputFormat: "json"}, &buf)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := w.Write(KindError, engine.ErrorResult(errors.New("/x does not exist"))); err != nil {
		t.Fatalf("write: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc) != 1 || doc["error"] != "/x does not exist" {
		t.Fatalf("unexpected error document: %v", doc)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	w, err := newWriter(&config.Config{OutputFormat: "text"}, &buf)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := w.Write(KindScan, sampleScan(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	compliance, err := checklist.NewEvaluator(regulation.Default()).Evaluate(context.Background(), t.TempDir(), "high")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if err := w.Write(KindCompliance, compliance); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Files scanned: 2",
		"- openai (in 2 files)",
		"main.py <- core/ai_engine.py (1 hop)",
		"Compliance score: 0/6 (0.0%)",
		"[FAIL] risk_management",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestWriteTextFallsBackToJSON(t *testing.T) {
	out := renderText("custom", map[string]int{"a": 1})
	if !strings.Contains(out, `"a": 1`) {
		t.Fatalf("unexpected fallback rendering: %s", out)
	}
}

func TestNewFailsOnUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	if _, err := New(&config.Config{OutputFileName: path}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
