package probe

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

type mockEnv map[string]string

func (m mockEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// mockPaths maps a name to its PATH hits in order; self is the running binary.
type mockPaths struct {
	hits map[string][]string
	self string
}

func (m mockPaths) LookPath(file string) (string, error) {
	if hits := m.hits[file]; len(hits) > 0 {
		return hits[0], nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

func (m mockPaths) LookPathAll(file string) []string {
	return m.hits[file]
}

func (m mockPaths) IsSelf(path string) bool {
	return m.self != "" && path == m.self
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		env      mockEnv
		paths    mockPaths
		want     Facts
		wantDeps bool
	}{
		{
			name:  "everything present",
			env:   mockEnv{PrefixVar: "/home/u/bottles/a", OverrideVar: "/opt/wine/bin/wine"},
			paths: mockPaths{hits: map[string][]string{"yq": {"/usr/bin/yq"}, "wine": {"/usr/bin/wine"}}},
			want: Facts{
				SystemWine:   "/usr/bin/wine",
				QueryTool:    "/usr/bin/yq",
				Prefix:       "/home/u/bottles/a",
				OverrideWine: "/opt/wine/bin/wine",
			},
		},
		{
			name:  "no system wine",
			env:   mockEnv{},
			paths: mockPaths{hits: map[string][]string{"yq": {"/usr/bin/yq"}}},
			want:  Facts{QueryTool: "/usr/bin/yq"},
		},
		{
			name: "drop-in symlink skipped for the next wine on PATH",
			env:  mockEnv{},
			paths: mockPaths{
				hits: map[string][]string{"yq": {"/usr/bin/yq"}, "wine": {"/home/u/.local/bin/wine", "/usr/bin/wine"}},
				self: "/home/u/.local/bin/wine",
			},
			want: Facts{QueryTool: "/usr/bin/yq", SystemWine: "/usr/bin/wine"},
		},
		{
			name: "only wine on PATH is the loader itself",
			env:  mockEnv{},
			paths: mockPaths{
				hits: map[string][]string{"yq": {"/usr/bin/yq"}, "wine": {"/home/u/.local/bin/wine"}},
				self: "/home/u/.local/bin/wine",
			},
			want: Facts{QueryTool: "/usr/bin/yq"},
		},
		{
			name:  "empty prefix stays empty",
			env:   mockEnv{PrefixVar: ""},
			paths: mockPaths{hits: map[string][]string{"yq": {"/usr/bin/yq"}, "wine": {"/usr/bin/wine"}}},
			want:  Facts{QueryTool: "/usr/bin/yq", SystemWine: "/usr/bin/wine"},
		},
		{
			name:     "yq missing",
			env:      mockEnv{PrefixVar: "/home/u/bottles/a"},
			paths:    mockPaths{hits: map[string][]string{"wine": {"/usr/bin/wine"}}},
			wantDeps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Probe(tt.env, tt.paths)

			if tt.wantDeps {
				var depErr *MissingDependencyError
				if !errors.As(err, &depErr) {
					t.Fatalf("Probe() error = %v, want MissingDependencyError", err)
				}
				if depErr.Tool != QueryTool {
					t.Errorf("Tool = %q, want %q", depErr.Tool, QueryTool)
				}
				if !errors.Is(err, exec.ErrNotFound) {
					t.Errorf("expected wrapped exec.ErrNotFound, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFacts_HasSystemWine(t *testing.T) {
	if (Facts{}).HasSystemWine() {
		t.Error("HasSystemWine() = true for empty facts")
	}
	if !(Facts{SystemWine: "/usr/bin/wine"}).HasSystemWine() {
		t.Error("HasSystemWine() = false with SystemWine set")
	}
}

func TestMissingDependencyError_Message(t *testing.T) {
	err := &MissingDependencyError{Tool: "yq"}
	want := "'yq' is not installed or is not available on PATH"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRealEnvGetter(t *testing.T) {
	t.Setenv("WINELOADER_PROBE_TEST", "value")
	v, ok := (&RealEnvGetter{}).LookupEnv("WINELOADER_PROBE_TEST")
	if !ok || v != "value" {
		t.Errorf("LookupEnv() = %q, %v, want %q, true", v, ok, "value")
	}
}

func TestRealPathFinder_LookPathAll(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs executable shell scripts")
	}
	first, second := t.TempDir(), t.TempDir()
	for _, dir := range []string{first, second} {
		if err := os.WriteFile(filepath.Join(dir, "wine"), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", strings.Join([]string{first, second, first}, string(os.PathListSeparator)))

	got := (&RealPathFinder{}).LookPathAll("wine")
	want := []string{filepath.Join(first, "wine"), filepath.Join(second, "wine")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LookPathAll() = %v, want %v", got, want)
	}
}

func TestRealPathFinder_IsSelf(t *testing.T) {
	self, err := os.Executable()
	if err != nil {
		t.Skipf("no executable path: %v", err)
	}
	finder := &RealPathFinder{}
	if !finder.IsSelf(self) {
		t.Errorf("IsSelf(%q) = false for the running binary", self)
	}

	link := filepath.Join(t.TempDir(), "wine")
	if err := os.Symlink(self, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if !finder.IsSelf(link) {
		t.Errorf("IsSelf(%q) = false for a symlink to the running binary", link)
	}

	other := filepath.Join(t.TempDir(), "other")
	if err := os.WriteFile(other, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	if finder.IsSelf(other) {
		t.Errorf("IsSelf(%q) = true for an unrelated file", other)
	}
}

func TestRealPathFinder_NotFound(t *testing.T) {
	_, err := (&RealPathFinder{}).LookPath("nonexistent-command-xyz-12345")
	if err == nil {
		t.Error("expected error for nonexistent command")
	}
}
