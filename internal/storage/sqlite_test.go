package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pathtags/ptag/internal/index"
	"github.com/pathtags/ptag/internal/tag"
)

// testStore writes a small JSONL store and returns the entries, tag-defs, and
// database paths.
func testStore(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	entriesPath := filepath.Join(dir, "paths.jsonl")
	defsPath := filepath.Join(dir, "tags.jsonl")

	entries := []tag.Entry{
		{Path: "/a/b", Tags: []string{"urgent", "work"}},
		{Path: "/a/c", Tags: []string{"work"}},
	}
	defs := []tag.TagDef{
		{Name: "everything", Includes: []string{"work"}},
	}
	if err := WriteAllEntries(entriesPath, entries); err != nil {
		t.Fatal(err)
	}
	if err := WriteAllTagDefs(defsPath, defs); err != nil {
		t.Fatal(err)
	}
	return entriesPath, defsPath, filepath.Join(dir, "index.db")
}

func TestRebuildFromJSONL(t *testing.T) {
	entriesPath, defsPath, dbPath := testStore(t)

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromJSONL(entriesPath, defsPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	if n != 2 {
		t.Errorf("RebuildFromJSONL() = %d entries, want 2", n)
	}

	paths, err := db.PathsByTag("work")
	if err != nil {
		t.Fatalf("PathsByTag() error = %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"/a/b", "/a/c"}) {
		t.Errorf("PathsByTag(work) = %v, want [/a/b /a/c]", paths)
	}

	tags, err := db.TagsByPath("/a/b")
	if err != nil {
		t.Fatalf("TagsByPath() error = %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"urgent", "work"}) {
		t.Errorf("TagsByPath(/a/b) = %v, want [urgent work]", tags)
	}

	all, err := db.AllTags()
	if err != nil {
		t.Fatalf("AllTags() error = %v", err)
	}
	if !reflect.DeepEqual(all, []string{"urgent", "work"}) {
		t.Errorf("AllTags() = %v, want [urgent work]", all)
	}

	count, err := db.CountEntries()
	if err != nil {
		t.Fatalf("CountEntries() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountEntries() = %d, want 2", count)
	}
}

func TestRebuildMatchesInMemoryIndex(t *testing.T) {
	entriesPath, defsPath, dbPath := testStore(t)

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.RebuildFromJSONL(entriesPath, defsPath); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadAllEntries(entriesPath)
	if err != nil {
		t.Fatal(err)
	}
	idx := index.Build(entries, nil)

	// For an include-free tag, a single-tag query against the in-memory
	// index and the cached entry_tags table must agree.
	for _, tg := range []string{"work", "urgent"} {
		want, err := idx.Get([]string{tg})
		if err != nil {
			t.Fatalf("Get(%s) error = %v", tg, err)
		}
		got, err := db.PathsByTag(tg)
		if err != nil {
			t.Fatalf("PathsByTag(%s) error = %v", tg, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("PathsByTag(%s) = %v, index Get = %v", tg, got, want)
		}
	}
}

func TestNeedsSync(t *testing.T) {
	entriesPath, defsPath, dbPath := testStore(t)

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stale, err := db.NeedsSync(entriesPath, defsPath)
	if err != nil {
		t.Fatalf("NeedsSync() error = %v", err)
	}
	if !stale {
		t.Error("NeedsSync() = false for never-built cache, want true")
	}

	if _, err := db.RebuildFromJSONL(entriesPath, defsPath); err != nil {
		t.Fatal(err)
	}
	stale, err = db.NeedsSync(entriesPath, defsPath)
	if err != nil {
		t.Fatalf("NeedsSync() error = %v", err)
	}
	if stale {
		t.Error("NeedsSync() = true right after rebuild, want false")
	}

	// Mutate the source; cache must report stale again.
	if err := WriteAllEntries(entriesPath, []tag.Entry{{Path: "/a/b", Tags: []string{"work"}}}); err != nil {
		t.Fatal(err)
	}
	stale, err = db.NeedsSync(entriesPath, defsPath)
	if err != nil {
		t.Fatalf("NeedsSync() error = %v", err)
	}
	if !stale {
		t.Error("NeedsSync() = false after source mutation, want true")
	}
}

func TestLastSync(t *testing.T) {
	entriesPath, defsPath, dbPath := testStore(t)

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	zero, err := db.LastSync()
	if err != nil {
		t.Fatalf("LastSync() error = %v", err)
	}
	if !zero.IsZero() {
		t.Errorf("LastSync() = %v before any rebuild, want zero", zero)
	}

	if _, err := db.RebuildFromJSONL(entriesPath, defsPath); err != nil {
		t.Fatal(err)
	}
	last, err := db.LastSync()
	if err != nil {
		t.Fatalf("LastSync() error = %v", err)
	}
	if last.IsZero() {
		t.Error("LastSync() = zero after rebuild")
	}
}

func TestSearchPaths(t *testing.T) {
	entriesPath, defsPath, dbPath := testStore(t)

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.RebuildFromJSONL(entriesPath, defsPath); err != nil {
		t.Fatal(err)
	}

	results, err := db.SearchPaths("urgent", 10)
	if err != nil {
		t.Fatalf("SearchPaths() error = %v", err)
	}
	if len(results) != 1 || results[0].Path != "/a/b" {
		t.Errorf("SearchPaths(urgent) = %v, want [/a/b]", results)
	}

	// Path components are searchable too.
	results, err = db.SearchPaths("a", 10)
	if err != nil {
		t.Fatalf("SearchPaths() error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("SearchPaths(a) = %v, want both entries", results)
	}

	results, err = db.SearchPaths("nomatch", 10)
	if err != nil {
		t.Fatalf("SearchPaths() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("SearchPaths(nomatch) = %v, want empty", results)
	}
}
