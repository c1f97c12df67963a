// Package probe collects the environment facts a wine resolution depends on.
package probe

import (
	"fmt"
	"path/filepath"
)

const (
	// WineBinary is the runtime binary name looked up on PATH and inside runners.
	WineBinary = "wine"
	// QueryTool is the YAML query utility used to read bottle metadata.
	QueryTool = "yq"

	// PrefixVar designates the active wine prefix.
	PrefixVar = "WINEPREFIX"
	// OverrideVar names a wine executable used when nothing else resolves.
	OverrideVar = "YABRIDGE_WINE"
)

// Facts is an immutable snapshot of the invocation environment.
type Facts struct {
	SystemWine   string // absolute path of wine on PATH, empty if none
	QueryTool    string // absolute path of yq
	Prefix       string // WINEPREFIX, empty if unset
	OverrideWine string // YABRIDGE_WINE, empty if unset
}

// HasSystemWine reports whether a system wine was found on PATH.
func (f Facts) HasSystemWine() bool {
	return f.SystemWine != ""
}

// MissingDependencyError reports a required tool that is not on PATH.
type MissingDependencyError struct {
	Tool string
	Err  error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("'%s' is not installed or is not available on PATH", e.Tool)
}

func (e *MissingDependencyError) Unwrap() error {
	return e.Err
}

// Probe reads the environment and PATH. The query tool is mandatory; a
// missing system wine is recorded as an empty SystemWine. A wine on PATH
// that is this binary (the drop-in symlink) is skipped, otherwise
// selecting the system wine would exec the loader again.
func Probe(env EnvGetter, paths PathFinder) (Facts, error) {
	queryTool, err := paths.LookPath(QueryTool)
	if err != nil {
		return Facts{}, &MissingDependencyError{Tool: QueryTool, Err: err}
	}

	facts := Facts{
		QueryTool: absolute(queryTool),
	}

	facts.SystemWine = systemWine(paths)

	facts.Prefix, _ = env.LookupEnv(PrefixVar)
	facts.OverrideWine, _ = env.LookupEnv(OverrideVar)

	return facts, nil
}

// systemWine returns the first wine on PATH that is not the running binary.
func systemWine(paths PathFinder) string {
	for _, wine := range paths.LookPathAll(WineBinary) {
		if paths.IsSelf(wine) {
			continue
		}
		return absolute(wine)
	}
	return ""
}

// absolute makes a PATH hit absolute. exec.LookPath can return a relative
// path when PATH contains relative entries.
func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
