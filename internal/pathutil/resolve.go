// Package pathutil canonicalizes user-supplied path arguments.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned for path strings that cannot name a location.
var ErrInvalidPath = errors.New("invalid path")

// Resolve turns a raw path argument into a canonical absolute path.
// Relative paths resolve against the current working directory; ~ expands to
// the home directory; redundant separators and . / .. segments are collapsed.
// Symlinks are not resolved, and the path is not required to exist on disk.
func Resolve(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidPath)
	}
	if strings.ContainsRune(raw, 0) {
		return "", fmt.Errorf("%w: embedded NUL in %q", ErrInvalidPath, raw)
	}

	expanded := ExpandTilde(raw)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return abs, nil
}

// ResolveAll resolves every argument, failing on the first invalid one so
// that callers can validate before mutating anything.
func ResolveAll(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		p, err := Resolve(r)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
