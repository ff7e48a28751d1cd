package index

import (
	"errors"
	"fmt"
	"strings"
)

// Query errors.
var (
	// ErrInvalidQuery is returned for a get with no tags. "All paths" and
	// "no paths" are both defensible readings, so the ambiguity is an error.
	ErrInvalidQuery = errors.New("query requires at least one tag")

	// ErrCyclicInclude is returned when the tag inclusion graph contains a
	// cycle reachable from a queried tag.
	ErrCyclicInclude = errors.New("cyclic tag inclusion")
)

// Get returns the paths carrying every one of the given tags, sorted.
// Each tag's effective path set is the union of its own paths and the paths
// of every tag it transitively includes; the result intersects these sets
// across the query. Unknown tags resolve to the empty set, not an error.
func (x *Index) Get(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, ErrInvalidQuery
	}

	var result map[string]struct{}
	for _, t := range tags {
		paths, err := x.effectivePaths(t)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = paths
			continue
		}
		for p := range result {
			if _, ok := paths[p]; !ok {
				delete(result, p)
			}
		}
		if len(result) == 0 {
			break
		}
	}
	return sortedKeys(result), nil
}

// ListTags returns the union of tags across the given paths, sorted. With no
// paths it returns every tag in the index. Note the deliberate asymmetry with
// Get: list unions where get intersects.
func (x *Index) ListTags(paths []string) []string {
	if len(paths) == 0 {
		return x.Tags()
	}
	union := make(map[string]struct{})
	for _, p := range paths {
		for t := range x.pathTags[p] {
			union[t] = struct{}{}
		}
	}
	return sortedKeys(union)
}

// effectivePaths collects a tag's paths plus those of its transitive
// includes, walking the inclusion graph depth-first with cycle detection.
func (x *Index) effectivePaths(t string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	// trail holds the current DFS chain in visit order for cycle reporting.
	var trail []string
	onTrail := make(map[string]bool)
	done := make(map[string]bool)

	var walk func(cur string) error
	walk = func(cur string) error {
		if onTrail[cur] {
			return fmt.Errorf("%w: %s", ErrCyclicInclude, cycleString(trail, cur))
		}
		if done[cur] {
			return nil
		}
		trail = append(trail, cur)
		onTrail[cur] = true

		for p := range x.tagPaths[cur] {
			out[p] = struct{}{}
		}
		for _, inc := range sortedKeys(x.includes[cur]) {
			if err := walk(inc); err != nil {
				return err
			}
		}

		trail = trail[:len(trail)-1]
		onTrail[cur] = false
		done[cur] = true
		return nil
	}

	if err := walk(t); err != nil {
		return nil, err
	}
	return out, nil
}

// cycleString renders the inclusion chain from the first occurrence of the
// repeated tag, e.g. "a -> b -> a".
func cycleString(trail []string, repeated string) string {
	start := 0
	for i, t := range trail {
		if t == repeated {
			start = i
			break
		}
	}
	parts := append(append([]string{}, trail[start:]...), repeated)
	return strings.Join(parts, " -> ")
}
