package hasher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
)

func init() {
	logger.Init("error")
}

func TestBytes(t *testing.T) {
	got := Bytes([]byte("hello world"))
	want := format(xxhash.Sum64String("hello world"))
	if got != want {
		t.Errorf("Bytes = %s, want %s", got, want)
	}
	if len(got) != 16 {
		t.Errorf("expected 16 hex digits, got %q", got)
	}
}

func TestDigestWriteFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	if err := os.WriteFile(a, []byte("import openai\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sum := func() string {
		d := New()
		d.WriteString("a.py")
		if err := d.WriteFile(a); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		return d.Sum()
	}

	first := sum()
	if again := sum(); again != first {
		t.Fatalf("fingerprint not stable: %s != %s", first, again)
	}
	if err := os.WriteFile(a, []byte("import anthropic\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if changed := sum(); changed == first {
		t.Errorf("fingerprint did not change with content")
	}
}

func TestDigestDelimitsValues(t *testing.T) {
	x := New()
	x.WriteString("ab")
	x.WriteString("c")
	y := New()
	y.WriteString("a")
	y.WriteString("bc")
	if x.Sum() == y.Sum() {
		t.Errorf("adjacent values collided")
	}
}

func TestDigestMissingFile(t *testing.T) {
	if err := New().WriteFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestDigestLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.js")
	data := make([]byte, hashLargeBufferThreshold+10)
	for i := range data {
		data[i] = byte('a' + i%26)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d := New()
	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if d.Sum() == New().Sum() {
		t.Errorf("large file did not change the digest")
	}
}
