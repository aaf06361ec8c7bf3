package depgraph

import (
	"path"
	"strings"
)

var jsExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

type resolver struct {
	files map[string]struct{}
}

func newResolver(files []string) resolver {
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[f] = struct{}{}
	}
	return resolver{files: set}
}

func (r resolver) exists(p string) bool {
	_, ok := r.files[p]
	return ok
}

// resolve maps ref, found in from, to scanned files. It returns nothing when
// the reference points outside the project.
func (r resolver) resolve(from string, ref Reference) []string {
	switch ref.Lang {
	case Python:
		return r.resolvePython(from, ref)
	case JavaScript:
		return r.resolveJavaScript(from, ref)
	}
	return nil
}

func (r resolver) resolvePython(from string, ref Reference) []string {
	var bases []string
	if ref.Level > 0 {
		dir := path.Dir(from)
		for i := 1; i < ref.Level; i++ {
			if dir == "." {
				return nil
			}
			dir = path.Dir(dir)
		}
		bases = []string{dir}
	} else {
		bases = []string{"."}
		if dir := path.Dir(from); dir != "." {
			bases = append(bases, dir)
		}
	}

	modPath := strings.ReplaceAll(ref.Module, ".", "/")
	var out []string
	for _, base := range bases {
		target := path.Join(base, modPath)
		if ref.Module != "" {
			out = r.appendModule(out, target)
		}
		for _, name := range ref.Names {
			out = r.appendModule(out, path.Join(target, name))
		}
		if ref.Module == "" && len(out) == 0 {
			out = r.appendIfExists(out, path.Join(target, "__init__.py"))
		}
		if len(out) > 0 {
			return out
		}
	}
	return out
}

func (r resolver) appendModule(out []string, target string) []string {
	if target == "." || strings.HasPrefix(target, "../") {
		return out
	}
	out = r.appendIfExists(out, target+".py")
	return r.appendIfExists(out, path.Join(target, "__init__.py"))
}

func (r resolver) appendIfExists(out []string, p string) []string {
	if !r.exists(p) {
		return out
	}
	for _, existing := range out {
		if existing == p {
			return out
		}
	}
	return append(out, p)
}

func (r resolver) resolveJavaScript(from string, ref Reference) []string {
	target := path.Join(path.Dir(from), ref.Module)
	if target == ".." || strings.HasPrefix(target, "../") {
		return nil
	}
	if r.exists(target) {
		return []string{target}
	}
	for _, ext := range jsExtensions {
		if r.exists(target + ext) {
			return []string{target + ext}
		}
	}
	for _, ext := range jsExtensions {
		if p := path.Join(target, "index"+ext); r.exists(p) {
			return []string{p}
		}
	}
	return nil
}
