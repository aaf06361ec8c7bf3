// Package checklist evaluates the governance-artifact checks of a risk tier
// against a project directory.
package checklist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/regulation"
	"github.com/ark-forge/mcp-eu-ai-act/scanner"
)

// Outcome is one evaluated check.
type Outcome struct {
	Name   string
	Passed bool
}

// Outcomes marshals as a JSON object that keeps check order.
type Outcomes []Outcome

func (o Outcomes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		if c.Passed {
			buf.WriteString(":true")
		} else {
			buf.WriteString(":false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form back in key order.
func (o *Outcomes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("compliance status: expected object, got %v", tok)
	}
	out := Outcomes{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("compliance status: unexpected key %v", tok)
		}
		var passed bool
		if err := dec.Decode(&passed); err != nil {
			return fmt.Errorf("compliance status: check %q: %w", name, err)
		}
		out = append(out, Outcome{Name: name, Passed: passed})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

// Failed lists the names of checks that did not pass.
func (o Outcomes) Failed() []string {
	var out []string
	for _, c := range o {
		if !c.Passed {
			out = append(out, c.Name)
		}
	}
	return out
}

// Result is a ComplianceChecklist for one tier.
type Result struct {
	RiskCategory string   `json:"risk_category"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Status       Outcomes `json:"compliance_status"`
	Score        string   `json:"compliance_score"`
	Percentage   float64  `json:"compliance_percentage"`
}

// Passed counts passing checks.
func (r *Result) Passed() int {
	n := 0
	for _, c := range r.Status {
		if c.Passed {
			n++
		}
	}
	return n
}

// Evaluator checks one project root.
type Evaluator struct {
	kb       *regulation.KnowledgeBase
	keywords *regexp.Regexp
	markers  []string
}

func NewEvaluator(kb *regulation.KnowledgeBase) *Evaluator {
	quoted := make([]string, len(kb.DisclosureKeywords()))
	for i, k := range kb.DisclosureKeywords() {
		quoted[i] = regexp.QuoteMeta(k)
	}
	markers := make([]string, len(kb.ContentMarkers()))
	for i, m := range kb.ContentMarkers() {
		markers[i] = strings.ToLower(m)
	}
	return &Evaluator{
		kb:       kb,
		keywords: regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)s?\b`),
		markers:  markers,
	}
}

// Evaluate runs the checks of tier against root. An unknown tier yields a
// *regulation.InvalidTierError. The root is expected to exist.
func (e *Evaluator) Evaluate(ctx context.Context, root, tier string) (*Result, error) {
	rc, err := e.kb.RiskCategory(tier)
	if err != nil {
		return nil, err
	}
	checks := e.kb.Checks(rc.Tier)
	res := &Result{
		RiskCategory: string(rc.Tier),
		Description:  rc.Description,
		Requirements: append([]string(nil), rc.Requirements...),
		Status:       make(Outcomes, 0, len(checks)),
	}
	for _, c := range checks {
		passed, err := e.evaluate(ctx, root, c)
		if err != nil {
			return nil, err
		}
		res.Status = append(res.Status, Outcome{Name: c.Name, Passed: passed})
	}
	res.Score = fmt.Sprintf("%d/%d", res.Passed(), len(checks))
	res.Percentage = Percentage(res.Passed(), len(checks))
	return res, nil
}

// Percentage is passed/total as a percentage rounded to one decimal, or 0
// when total is 0.
func Percentage(passed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(passed)/float64(total)*1000) / 10
}

func (e *Evaluator) evaluate(ctx context.Context, root string, c regulation.Check) (bool, error) {
	switch c.Kind {
	case regulation.ArtifactExists:
		return anyArtifactExists(root, c.Artifacts), nil
	case regulation.DisclosureKeywords:
		return e.disclosesAI(root), nil
	case regulation.ContentMarking:
		return e.marksContent(ctx, root)
	}
	return false, fmt.Errorf("check %s: unknown kind %d", c.Name, c.Kind)
}

// anyArtifactExists accepts a document at the root or under the docs
// directory; either location satisfies the check.
func anyArtifactExists(root string, artifacts []string) bool {
	for _, a := range artifacts {
		if strings.HasSuffix(a, "/") {
			if isDir(filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(a, "/")))) {
				return true
			}
			continue
		}
		name := filepath.FromSlash(a)
		if exists(filepath.Join(root, name)) || exists(filepath.Join(root, regulation.DocsDir, name)) {
			return true
		}
	}
	return false
}

func (e *Evaluator) disclosesAI(root string) bool {
	data, err := os.ReadFile(filepath.Join(root, regulation.DisclosureDocument))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("Failed to read %s: %v", regulation.DisclosureDocument, err)
		}
		return false
	}
	return e.keywords.Match(data)
}

var errMarkerFound = errors.New("marker found")

func (e *Evaluator) marksContent(ctx context.Context, root string) (bool, error) {
	err := scanner.Walk(ctx, root, nil, func(rec scanner.FileRecord) error {
		data, err := os.ReadFile(rec.Path)
		if err != nil {
			logger.Debugf("Skipping %s for content marking: %v", rec.Rel, err)
			return nil
		}
		lower := strings.ToLower(strings.ToValidUTF8(string(data), "�"))
		for _, m := range e.markers {
			if strings.Contains(lower, m) {
				return errMarkerFound
			}
		}
		return nil
	})
	if errors.Is(err, errMarkerFound) {
		return true, nil
	}
	return false, err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
