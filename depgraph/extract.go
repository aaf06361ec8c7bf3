// Package depgraph builds a best-effort graph of project-local imports and
// propagates detections along it. Resolution is textual; references that do
// not resolve to a scanned file are dropped.
package depgraph

import (
	"path"
	"regexp"
	"strings"
)

type Language int

const (
	Unknown Language = iota
	Python
	JavaScript
)

// LanguageOf picks the extractor for a slash-separated path.
func LanguageOf(file string) Language {
	switch strings.ToLower(path.Ext(file)) {
	case ".py":
		return Python
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return JavaScript
	}
	return Unknown
}

// Reference is one import statement. Module is a dotted Python module or a
// JavaScript specifier. Level counts leading dots of a relative Python import.
type Reference struct {
	Lang   Language
	Module string
	Level  int
	Names  []string
}

var (
	pyImport     = regexp.MustCompile(`^\s*import\s+(.+)$`)
	pyFromImport = regexp.MustCompile(`^\s*from\s+(\.*)([\w.]*)\s+import\s+(.+)$`)
	pyIdent      = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)

	jsFrom    = regexp.MustCompile(`(?m)^\s*(?:import|export)\b[^'"]*?\bfrom\s*['"]([^'"]+)['"]`)
	jsBare    = regexp.MustCompile(`(?m)^\s*import\s*['"]([^'"]+)['"]`)
	jsRequire = regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`)
	jsDynamic = regexp.MustCompile(`\bimport\(\s*['"]([^'"]+)['"]\s*\)`)
)

// ExtractReferences returns the import statements found in content.
func ExtractReferences(file, content string) []Reference {
	switch LanguageOf(file) {
	case Python:
		return extractPython(content)
	case JavaScript:
		return extractJavaScript(content)
	}
	return nil
}

func extractPython(content string) []Reference {
	var refs []Reference
	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := stripComment(lines[i])
		if m := pyFromImport.FindStringSubmatch(line); m != nil {
			names := m[3]
			if strings.HasPrefix(strings.TrimSpace(names), "(") {
				for !strings.Contains(names, ")") && i+1 < len(lines) {
					i++
					names += " " + stripComment(lines[i])
				}
			}
			if m[1] == "" && m[2] == "" {
				continue
			}
			refs = append(refs, Reference{
				Lang:   Python,
				Module: m[2],
				Level:  len(m[1]),
				Names:  splitNames(names),
			})
			continue
		}
		if m := pyImport.FindStringSubmatch(line); m != nil {
			for _, mod := range splitNames(m[1]) {
				refs = append(refs, Reference{Lang: Python, Module: mod})
			}
		}
	}
	return refs
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// splitNames parses "a as b, c" and "(a,\n b)" into identifiers.
func splitNames(s string) []string {
	s = strings.NewReplacer("(", " ", ")", " ", "\\", " ").Replace(s)
	var out []string
	for _, part := range strings.Split(s, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 || fields[0] == "*" {
			continue
		}
		if pyIdent.MatchString(fields[0]) {
			out = append(out, fields[0])
		}
	}
	return out
}

func extractJavaScript(content string) []Reference {
	var refs []Reference
	seen := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{jsFrom, jsBare, jsRequire, jsDynamic} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			spec := m[1]
			if !strings.HasPrefix(spec, ".") {
				continue
			}
			if _, dup := seen[spec]; dup {
				continue
			}
			seen[spec] = struct{}{}
			refs = append(refs, Reference{Lang: JavaScript, Module: spec})
		}
	}
	return refs
}
