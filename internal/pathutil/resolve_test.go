package pathutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAbsolute(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"/a/b", "/a/b"},
		{"/a//b/", "/a/b"},
		{"/a/./b", "/a/b"},
		{"/a/c/../b", "/a/b"},
		{"/a/b with spaces", "/a/b with spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Resolve(tt.raw)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveRelative(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, err := Resolve("sub/../file.txt")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(cwd, "file.txt")
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := Resolve("~/notes")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(home, "notes")
	if got != want {
		t.Errorf("Resolve(~/notes) = %q, want %q", got, want)
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, raw := range []string{"", "bad\x00path"} {
		if _, err := Resolve(raw); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Resolve(%q) error = %v, want ErrInvalidPath", raw, err)
		}
	}
}

func TestResolveNotRequiredToExist(t *testing.T) {
	got, err := Resolve("/definitely/not/created/yet")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "/definitely/not/created/yet" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveAll(t *testing.T) {
	got, err := ResolveAll([]string{"/a/b", "/a//b", "/a/c"})
	if err != nil {
		t.Fatalf("ResolveAll() error = %v", err)
	}
	if len(got) != 2 || got[0] != "/a/b" || got[1] != "/a/c" {
		t.Errorf("ResolveAll() = %v, want [/a/b /a/c]", got)
	}
}

func TestResolveAllFailsFast(t *testing.T) {
	if _, err := ResolveAll([]string{"/a/b", ""}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("ResolveAll() error = %v, want ErrInvalidPath", err)
	}
}
