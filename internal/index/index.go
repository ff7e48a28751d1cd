// Package index holds the in-memory bidirectional path/tag structure and
// answers set-algebraic queries over it.
package index

import (
	"sort"

	"github.com/pathtags/ptag/internal/tag"
)

// Index maps paths to tag sets and tags to path sets. The two directions are
// kept mutually consistent: a path appears in a tag's path set exactly when
// the tag appears in the path's tag set. It additionally carries the tag
// inclusion graph used by queries.
type Index struct {
	pathTags map[string]map[string]struct{}
	tagPaths map[string]map[string]struct{}
	includes map[string]map[string]struct{}
}

// New returns an empty index.
func New() *Index {
	return &Index{
		pathTags: make(map[string]map[string]struct{}),
		tagPaths: make(map[string]map[string]struct{}),
		includes: make(map[string]map[string]struct{}),
	}
}

// Build constructs an index from persisted entries and tag definitions.
func Build(entries []tag.Entry, defs []tag.TagDef) *Index {
	idx := New()
	for _, e := range entries {
		idx.AddTags(e.Path, e.Tags)
	}
	for _, d := range defs {
		idx.AddIncludes(d.Name, d.Includes)
	}
	return idx
}

// AddTags unions tags into a path's tag set, inserting the path if absent.
// Re-adding an existing pair is a no-op.
func (x *Index) AddTags(path string, tags []string) {
	if len(tags) == 0 {
		return
	}
	set, ok := x.pathTags[path]
	if !ok {
		set = make(map[string]struct{}, len(tags))
		x.pathTags[path] = set
	}
	for _, t := range tags {
		set[t] = struct{}{}
		paths, ok := x.tagPaths[t]
		if !ok {
			paths = make(map[string]struct{})
			x.tagPaths[t] = paths
		}
		paths[path] = struct{}{}
	}
}

// RemoveTags removes the given tags from a path. Removing a tag the path
// doesn't carry is a no-op. When the path's tag set empties, the path entry
// is dropped entirely; a tag whose path set empties vanishes likewise, so the
// index never holds dangling empty sets.
func (x *Index) RemoveTags(path string, tags []string) {
	set, ok := x.pathTags[path]
	if !ok {
		return
	}
	for _, t := range tags {
		if _, has := set[t]; !has {
			continue
		}
		delete(set, t)
		if paths := x.tagPaths[t]; paths != nil {
			delete(paths, path)
			if len(paths) == 0 {
				delete(x.tagPaths, t)
			}
		}
	}
	if len(set) == 0 {
		delete(x.pathTags, path)
	}
}

// ClearTags removes every tag from a path.
func (x *Index) ClearTags(path string) {
	x.RemoveTags(path, x.TagsOf(path))
}

// TagsOf returns a path's tags, sorted. Untracked paths yield an empty slice.
func (x *Index) TagsOf(path string) []string {
	return sortedKeys(x.pathTags[path])
}

// PathsOf returns the paths carrying a tag directly, sorted. Includes are not
// followed here; see Get.
func (x *Index) PathsOf(t string) []string {
	return sortedKeys(x.tagPaths[t])
}

// HasPath reports whether the path is tracked.
func (x *Index) HasPath(path string) bool {
	_, ok := x.pathTags[path]
	return ok
}

// Paths returns every tracked path, sorted.
func (x *Index) Paths() []string {
	return sortedKeys(asSet(x.pathTags))
}

// Tags returns every tag in use or defined, sorted.
func (x *Index) Tags() []string {
	all := make(map[string]struct{}, len(x.tagPaths)+len(x.includes))
	for t := range x.tagPaths {
		all[t] = struct{}{}
	}
	for t := range x.includes {
		all[t] = struct{}{}
	}
	return sortedKeys(all)
}

// AddIncludes records that a tag includes the given tags.
func (x *Index) AddIncludes(t string, included []string) {
	if len(included) == 0 {
		return
	}
	set, ok := x.includes[t]
	if !ok {
		set = make(map[string]struct{}, len(included))
		x.includes[t] = set
	}
	for _, inc := range included {
		if inc == t {
			continue
		}
		set[inc] = struct{}{}
	}
}

// RemoveIncludes removes include edges from a tag, dropping the definition
// when no includes remain.
func (x *Index) RemoveIncludes(t string, included []string) {
	set, ok := x.includes[t]
	if !ok {
		return
	}
	for _, inc := range included {
		delete(set, inc)
	}
	if len(set) == 0 {
		delete(x.includes, t)
	}
}

// IncludesOf returns the tags directly included by a tag, sorted.
func (x *Index) IncludesOf(t string) []string {
	return sortedKeys(x.includes[t])
}

// Entries snapshots the index back into persistable entries, sorted by path
// with tags sorted within each entry.
func (x *Index) Entries() []tag.Entry {
	entries := make([]tag.Entry, 0, len(x.pathTags))
	for _, p := range x.Paths() {
		entries = append(entries, tag.Entry{Path: p, Tags: x.TagsOf(p)})
	}
	return entries
}

// TagDefs snapshots the inclusion graph into persistable definitions, sorted
// by name with includes sorted within each definition.
func (x *Index) TagDefs() []tag.TagDef {
	names := sortedKeys(asSet(x.includes))
	defs := make([]tag.TagDef, 0, len(names))
	for _, name := range names {
		defs = append(defs, tag.TagDef{Name: name, Includes: x.IncludesOf(name)})
	}
	return defs
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asSet[V any](m map[string]V) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}
