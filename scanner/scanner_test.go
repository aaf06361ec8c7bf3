package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/signatures"
)

func init() {
	logger.Init("error")
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func aiScanner(opts Options) *Scanner {
	return New(signatures.Default().Frameworks, opts)
}

func TestScanMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := aiScanner(Options{}).Scan(context.Background(), missing)
	var notFound *RootNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected RootNotFoundError, got %v", err)
	}
	if err.Error() != missing+" does not exist" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestScanEmptyProject(t *testing.T) {
	res, err := aiScanner(Options{}).Scan(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 0 || res.Index.Len() != 0 || res.Files.Len() != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestScanDetectsFrameworks(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"app.py":           "import openai\nclient = openai.OpenAI()\n",
		"model.py":         "import torch\nfrom transformers import AutoModel\n",
		"web/chat.ts":      "import Anthropic from '@anthropic-ai/sdk';\nconst c = new Anthropic();\n",
		"requirements.txt": "openai>=1.0.0\n",
		"notes.md":         "import openai",
	})

	res, err := aiScanner(Options{Concurrency: 2}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 4 {
		t.Fatalf("expected 4 files scanned, got %d", res.FilesScanned)
	}
	if got := res.Index.Files("openai"); !reflect.DeepEqual(got, []string{"app.py", "requirements.txt"}) {
		t.Fatalf("unexpected openai files: %v", got)
	}
	if got := res.Files.Categories("model.py"); !reflect.DeepEqual(got, []string{"huggingface", "pytorch"}) {
		t.Fatalf("unexpected model.py categories: %v", got)
	}
	if got := res.Index.Files("anthropic"); !reflect.DeepEqual(got, []string{"web/chat.ts"}) {
		t.Fatalf("unexpected anthropic files: %v", got)
	}
}

func TestScanOneEntryPerCategoryPerFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"app.py": "import openai\nfrom openai import OpenAI\nmodel = 'gpt-4'\n",
	})
	res, err := aiScanner(Options{}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if got := res.Files.Categories("app.py"); !reflect.DeepEqual(got, []string{"openai"}) {
		t.Fatalf("expected a single openai entry, got %v", got)
	}
}

func TestScanSkipsDependencyDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.py":                       "print('hi')\n",
		".venv/lib/site.py":             "import openai\n",
		"node_modules/pkg/index.js":     "require('openai')\n",
		"src/__pycache__/cached.py":     "import torch\n",
		"build/generated.py":            "import torch\n",
		"src/pkg/build_helpers/tool.py": "x = 1\n",
	})
	res, err := aiScanner(Options{}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 2 {
		t.Fatalf("expected 2 files, got %d", res.FilesScanned)
	}
	if res.Index.Len() != 0 {
		t.Fatalf("expected no detections, got %v", res.Index.Categories())
	}
}

func TestScanIgnoresUnsupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"data.json":  `{"model": "gpt-4"}`,
		"readme.txt": "import openai",
		"image.png":  "\x89PNG",
	})
	res, err := aiScanner(Options{}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 0 {
		t.Fatalf("expected 0 files, got %d", res.FilesScanned)
	}
}

func TestScanCountsUnreadableFiles(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"ok.py":     "import openai\n",
		"locked.py": "import torch\n",
	})
	if err := os.Chmod(filepath.Join(root, "locked.py"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(filepath.Join(root, "locked.py"), 0o644)

	res, err := aiScanner(Options{}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 2 {
		t.Fatalf("expected 2 files, got %d", res.FilesScanned)
	}
	if res.Files.Has("locked.py") {
		t.Fatal("unreadable file must have no detections")
	}
}

func TestScanToleratesInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"bin.py":   "\x00\x01\x02\x03",
		"mixed.py": "\xff\xfe import openai \xff",
	})
	res, err := aiScanner(Options{}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 2 {
		t.Fatalf("expected 2 files, got %d", res.FilesScanned)
	}
	if !res.Files.Has("mixed.py") {
		t.Fatal("expected detection despite invalid bytes")
	}
}

func TestScanFollowImports(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"core/__init__.py":  "",
		"core/ai_engine.py": "import openai\n",
		"main.py":           "from core.ai_engine import run\n",
	})

	plain, err := aiScanner(Options{}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if plain.Graph != nil || len(plain.Propagated) != 0 || plain.Files.Has("main.py") {
		t.Fatalf("propagation must not run when disabled: %+v", plain.Propagated)
	}

	followed, err := aiScanner(Options{FollowImports: true}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(followed.Propagated) != 1 || followed.Propagated[0].File != "main.py" {
		t.Fatalf("unexpected propagation: %+v", followed.Propagated)
	}
	if got := followed.Index.Files("openai"); !reflect.DeepEqual(got, []string{"core/ai_engine.py", "main.py"}) {
		t.Fatalf("propagated file not merged: %v", got)
	}
	if followed.Index.IsDirect("main.py") {
		t.Fatal("main.py must stay an inherited detection")
	}
}

func TestScanMaxFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.py": "", "b.py": "", "c.py": ""})
	res, err := aiScanner(Options{MaxFiles: 2}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 2 {
		t.Fatalf("expected walk bounded at 2 files, got %d", res.FilesScanned)
	}
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.py": "import openai"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := aiScanner(Options{}).Scan(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
