package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultBlockedPaths are system locations that must never be scanned on
// behalf of a remote caller.
var DefaultBlockedPaths = []string{
	"/etc", "/proc", "/sys", "/dev", "/root", "/boot",
	"/var/run", "/var/log", "/bin", "/sbin", "/usr/bin", "/usr/sbin",
}

// IsPathWithin returns true if the given path is within any of the roots.
func IsPathWithin(path string, roots []string) bool {
	absPath, ok := resolvePath(path)
	if !ok {
		return false
	}
	for _, root := range roots {
		absRoot, ok := resolvePath(root)
		if !ok {
			continue
		}
		rel, err := filepath.Rel(absRoot, absPath)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", false
	}
	return filepath.Clean(abs), true
}

// ValidateScanRoot rejects roots inside a blocked location. ".." segments and
// symlinks are resolved first. Paths that do not exist are allowed; the
// scanner reports them.
func ValidateScanRoot(path string, blocked []string) error {
	for _, b := range blocked {
		if IsPathWithin(path, []string{b}) {
			return fmt.Errorf("access to %s is not allowed", path)
		}
	}
	return nil
}
