// Package detect holds the per-scan detection indices.
package detect

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Index maps category names to the files that matched them. Categories keep
// first-detection order and files keep insertion order. Files merged in by
// propagation are tracked separately from direct matches.
type Index struct {
	categories []string
	files      map[string][]string
	seen       map[string]map[string]struct{}
	direct     map[string]struct{}
	directIn   map[[2]string]struct{}
}

func NewIndex() *Index {
	return &Index{
		files:    make(map[string][]string),
		seen:     make(map[string]map[string]struct{}),
		direct:   make(map[string]struct{}),
		directIn: make(map[[2]string]struct{}),
	}
}

// Add records a direct match. It reports false when file was already listed
// under category.
func (x *Index) Add(category, file string) bool {
	if !x.add(category, file) {
		return false
	}
	x.direct[file] = struct{}{}
	x.directIn[[2]string{category, file}] = struct{}{}
	return true
}

// AddInherited records a propagated match.
func (x *Index) AddInherited(category, file string) bool {
	return x.add(category, file)
}

func (x *Index) add(category, file string) bool {
	set, ok := x.seen[category]
	if !ok {
		set = make(map[string]struct{})
		x.seen[category] = set
		x.categories = append(x.categories, category)
	}
	if _, dup := set[file]; dup {
		return false
	}
	set[file] = struct{}{}
	x.files[category] = append(x.files[category], file)
	return true
}

func (x *Index) Categories() []string {
	return append([]string(nil), x.categories...)
}

func (x *Index) Files(category string) []string {
	return append([]string(nil), x.files[category]...)
}

// IsDirect reports whether file matched a signature itself.
func (x *Index) IsDirect(file string) bool {
	_, ok := x.direct[file]
	return ok
}

// DirectFiles lists directly matched files of category in insertion order.
func (x *Index) DirectFiles(category string) []string {
	var out []string
	for _, f := range x.files[category] {
		if _, ok := x.directIn[[2]string{category, f}]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (x *Index) Len() int {
	return len(x.categories)
}

// MarshalJSON renders the index as an object whose keys keep category order.
func (x *Index) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range x.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(x.files[c])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object written by MarshalJSON and keeps its key
// order. Every decoded file counts as a direct match.
func (x *Index) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	fresh := NewIndex()
	if tok == nil {
		*x = *fresh
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("detection index: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		category, ok := tok.(string)
		if !ok {
			return fmt.Errorf("detection index: unexpected key %v", tok)
		}
		var files []string
		if err := dec.Decode(&files); err != nil {
			return fmt.Errorf("detection index: category %q: %w", category, err)
		}
		for _, f := range files {
			fresh.Add(category, f)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*x = *fresh
	return nil
}

// Map returns a plain copy of the index.
func (x *Index) Map() map[string][]string {
	out := make(map[string][]string, len(x.categories))
	for _, c := range x.categories {
		out[c] = x.Files(c)
	}
	return out
}
