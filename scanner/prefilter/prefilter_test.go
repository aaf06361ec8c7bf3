package prefilter

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestAnchorSetDeduplicates(t *testing.T) {
	s := BuildAnchorSet([]string{"alpha", "", "beta", "alpha"})
	if s.Len() != 2 {
		t.Fatalf("expected 2 terms, got %d", s.Len())
	}
	if s.Index("beta") != 1 || s.Index("gamma") != -1 {
		t.Fatalf("unexpected index mapping: beta=%d gamma=%d", s.Index("beta"), s.Index("gamma"))
	}
}

func TestAnchorSetSmallInput(t *testing.T) {
	s := BuildAnchorSet([]string{"import openai", "torch"})
	got := s.Present([]byte("import openai\nclient = openai.OpenAI()"))
	if !reflect.DeepEqual([]bool{true, false}, got) {
		t.Fatalf("unexpected presence: %v", got)
	}
}

func TestAnchorSetAhoParityWithContains(t *testing.T) {
	terms := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "missing"}
	content := []byte(strings.Repeat("alpha beta gamma delta epsilon zeta eta theta ", 256))

	s := BuildAnchorSet(terms)
	got := s.Present(content)
	for i, term := range terms {
		want := bytes.Contains(content, []byte(term))
		if got[i] != want {
			t.Fatalf("term %q mismatch: expected=%v got=%v", term, want, got[i])
		}
	}
}

func TestAnchorSetEmpty(t *testing.T) {
	s := BuildAnchorSet(nil)
	if got := s.Present([]byte("anything")); len(got) != 0 {
		t.Fatalf("expected no terms, got %v", got)
	}
}
