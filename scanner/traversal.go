package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/utils"
)

// SupportedExtensions are the source extensions considered by a scan.
var SupportedExtensions = map[string]struct{}{
	".py":   {},
	".js":   {},
	".jsx":  {},
	".ts":   {},
	".tsx":  {},
	".java": {},
	".go":   {},
	".rs":   {},
	".cpp":  {},
	".c":    {},
}

// ManifestFiles are dependency manifests scanned regardless of extension.
var ManifestFiles = map[string]struct{}{
	"requirements.txt": {},
	"pyproject.toml":   {},
	"Pipfile":          {},
	"package.json":     {},
	"go.mod":           {},
	"Cargo.toml":       {},
}

// SkipDirs are dependency, virtual-environment and build directories.
var SkipDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"node_modules":  {},
	"venv":          {},
	".venv":         {},
	"env":           {},
	".env":          {},
	"__pycache__":   {},
	"site-packages": {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	"dist":          {},
	"build":         {},
	"vendor":        {},
	"target":        {},
	".idea":         {},
	".vscode":       {},
}

// IsSupported reports whether a file name is scanned.
func IsSupported(name string) bool {
	if _, ok := ManifestFiles[name]; ok {
		return true
	}
	_, ok := SupportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func skipDir(name string) bool {
	_, ok := SkipDirs[name]
	return ok
}

var errStopWalk = errors.New("stop walk")

type walker interface {
	Walk(ctx context.Context, startPath string, fn fs.WalkDirFunc) error
}

// fastWalker visits entries depth-first in lexical order without the
// per-entry overhead of filepath.WalkDir.
type fastWalker struct{}

func (w fastWalker) Walk(ctx context.Context, startPath string, fn fs.WalkDirFunc) error {
	info, err := os.Stat(startPath)
	if err != nil {
		return fn(startPath, nil, err)
	}
	root := fs.FileInfoToDirEntry(info)
	type item struct {
		path  string
		entry fs.DirEntry
	}
	stack := []item{{path: startPath, entry: root}}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(current.path, current.entry, nil); err != nil {
			if err == fs.SkipDir {
				continue
			}
			return err
		}
		if !current.entry.IsDir() {
			continue
		}

		entries, err := os.ReadDir(current.path)
		if err != nil {
			if ferr := fn(current.path, current.entry, err); ferr != nil && ferr != fs.SkipDir {
				return ferr
			}
			continue
		}
		// ReadDir sorts by name; push in reverse so pops come out sorted.
		for i := len(entries) - 1; i >= 0; i-- {
			child := entries[i]
			stack = append(stack, item{
				path:  filepath.Join(current.path, child.Name()),
				entry: child,
			})
		}
	}
	return nil
}

// Walk calls fn for every supported file under root, skipping dependency
// directories. Unreadable directories are logged and skipped. Returning a
// non-nil error from fn stops the walk with that error.
func Walk(ctx context.Context, root string, matcher *utils.PatternMatcher, fn func(FileRecord) error) error {
	return walk(ctx, fastWalker{}, root, matcher, fn)
}

func walk(ctx context.Context, w walker, root string, matcher *utils.PatternMatcher, fn func(FileRecord) error) error {
	return w.Walk(ctx, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("Failed to access %s: %v", path, err)
			return nil
		}
		if d == nil {
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !IsSupported(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if !matcher.ShouldInclude(rel) {
			return nil
		}
		rec := FileRecord{Path: path, Rel: rel}
		if info, err := d.Info(); err == nil {
			rec.Size = info.Size()
		}
		return fn(rec)
	})
}
