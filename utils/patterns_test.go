package utils

import (
	"testing"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
)

func init() {
	logger.Init("error")
}

func TestShouldInclude(t *testing.T) {
	matcher := NewPatternMatcher(nil, nil)
	if !matcher.ShouldInclude("app.py") {
		t.Fatal("expected include by default")
	}
	matcher = NewPatternMatcher([]string{"*.py"}, nil)
	if matcher.ShouldInclude("web/app.ts") {
		t.Fatal("should not include unmatched include pattern")
	}
	if !matcher.ShouldInclude("core/engine.py") {
		t.Fatal("should include matching include pattern")
	}
	matcher = NewPatternMatcher(nil, []string{"tests/*"})
	if matcher.ShouldInclude("tests/test_app.py") {
		t.Fatal("should exclude by full-path glob")
	}
	if !matcher.ShouldInclude("src/app.py") {
		t.Fatal("should include when exclude does not match")
	}
	matcher = NewPatternMatcher([]string{`^src/.*\.go$`}, nil)
	if !matcher.ShouldInclude("src/pkg/file.go") {
		t.Fatal("should match regex include pattern")
	}
	var nilMatcher *PatternMatcher
	if !nilMatcher.ShouldInclude("x.py") {
		t.Fatal("nil matcher includes everything")
	}
}
