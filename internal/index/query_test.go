package index

import (
	"errors"
	"reflect"
	"testing"
)

func scenarioIndex() *Index {
	idx := New()
	idx.AddTags("/a/b", []string{"work", "urgent"})
	idx.AddTags("/a/c", []string{"work"})
	return idx
}

func TestGetSingleTag(t *testing.T) {
	idx := scenarioIndex()

	got, err := idx.Get([]string{"work"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := []string{"/a/b", "/a/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get([work]) = %v, want %v", got, want)
	}

	// Single-tag get must agree with PathsOf when no includes exist.
	if direct := idx.PathsOf("work"); !reflect.DeepEqual(got, direct) {
		t.Errorf("Get([work]) = %v, PathsOf(work) = %v", got, direct)
	}
}

func TestGetIntersection(t *testing.T) {
	idx := scenarioIndex()

	got, err := idx.Get([]string{"work", "urgent"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"/a/b"}) {
		t.Errorf("Get([work urgent]) = %v, want [/a/b]", got)
	}
}

func TestGetUnknownTag(t *testing.T) {
	idx := scenarioIndex()

	got, err := idx.Get([]string{"nonexistent"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Get([nonexistent]) = %v, want empty", got)
	}

	// Intersecting with an unknown tag empties the result.
	got, err = idx.Get([]string{"work", "nonexistent"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Get([work nonexistent]) = %v, want empty", got)
	}
}

func TestGetEmptyQuery(t *testing.T) {
	idx := scenarioIndex()
	if _, err := idx.Get(nil); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Get(nil) error = %v, want ErrInvalidQuery", err)
	}
}

func TestGetFollowsIncludes(t *testing.T) {
	idx := New()
	idx.AddTags("/proj/x/readme", []string{"project-x"})
	idx.AddTags("/proj/y/readme", []string{"project-y"})
	idx.AddTags("/notes", []string{"work"})
	idx.AddIncludes("work", []string{"project-x"})

	got, err := idx.Get([]string{"work"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := []string{"/notes", "/proj/x/readme"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get([work]) = %v, want %v", got, want)
	}

	// PathsOf stays direct-only.
	if direct := idx.PathsOf("work"); !reflect.DeepEqual(direct, []string{"/notes"}) {
		t.Errorf("PathsOf(work) = %v, want [/notes]", direct)
	}
}

func TestGetTransitiveIncludes(t *testing.T) {
	idx := New()
	idx.AddTags("/deep", []string{"leaf"})
	idx.AddIncludes("root", []string{"mid"})
	idx.AddIncludes("mid", []string{"leaf"})

	got, err := idx.Get([]string{"root"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"/deep"}) {
		t.Errorf("Get([root]) = %v, want [/deep]", got)
	}
}

func TestGetCyclicIncludes(t *testing.T) {
	idx := New()
	idx.AddIncludes("a", []string{"b"})
	idx.AddIncludes("b", []string{"a"})

	if _, err := idx.Get([]string{"a"}); !errors.Is(err, ErrCyclicInclude) {
		t.Errorf("Get() error = %v, want ErrCyclicInclude", err)
	}
}

func TestGetDiamondIncludesIsNotACycle(t *testing.T) {
	idx := New()
	idx.AddTags("/shared", []string{"leaf"})
	idx.AddIncludes("root", []string{"left", "right"})
	idx.AddIncludes("left", []string{"leaf"})
	idx.AddIncludes("right", []string{"leaf"})

	got, err := idx.Get([]string{"root"})
	if err != nil {
		t.Fatalf("Get() on diamond error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"/shared"}) {
		t.Errorf("Get([root]) = %v, want [/shared]", got)
	}
}

func TestListTagsUnion(t *testing.T) {
	idx := scenarioIndex()

	got := idx.ListTags([]string{"/a/b", "/a/c"})
	want := []string{"urgent", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListTags() = %v, want %v", got, want)
	}
}

func TestListTagsAfterClear(t *testing.T) {
	idx := scenarioIndex()
	idx.ClearTags("/a/b")

	got := idx.ListTags([]string{"/a/b", "/a/c"})
	if !reflect.DeepEqual(got, []string{"work"}) {
		t.Errorf("ListTags() after clear = %v, want [work]", got)
	}
}

func TestListTagsNoPathsListsAll(t *testing.T) {
	idx := scenarioIndex()
	idx.AddIncludes("everything", []string{"work"})

	got := idx.ListTags(nil)
	want := []string{"everything", "urgent", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListTags(nil) = %v, want %v", got, want)
	}
}

func TestListTagsUntrackedPath(t *testing.T) {
	idx := scenarioIndex()
	if got := idx.ListTags([]string{"/not/tracked"}); len(got) != 0 {
		t.Errorf("ListTags() = %v, want empty", got)
	}
}
