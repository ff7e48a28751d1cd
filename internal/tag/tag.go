// Package tag defines the core domain types for the path tag store.
package tag

import (
	"errors"
	"strings"
	"unicode"
)

// Validation errors.
var (
	ErrEmptyTag    = errors.New("tag is empty")
	ErrInvalidTag  = errors.New("tag contains whitespace or control characters")
	ErrSelfInclude = errors.New("tag cannot include itself")
)

// Normalize lowercases and trims a raw tag string.
// Validation is separate: Normalize never fails, it just canonicalizes.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateName checks a normalized tag name.
// Tags may contain any printable characters, unicode included, but no
// whitespace or control characters (they must survive shell word splitting
// and single-line JSONL records).
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyTag
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidTag
		}
	}
	return nil
}

// NormalizeAll normalizes and validates a slice of raw tags, dropping
// duplicates while preserving first-seen order.
func NormalizeAll(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name := Normalize(r)
		if err := ValidateName(name); err != nil {
			return nil, err
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}
