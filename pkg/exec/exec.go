// Package exec replaces the current process with the resolved wine.
package exec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CanonicalName is passed as argv[0] whatever the executable's file name.
const CanonicalName = "wine"

// Replacer replaces the current process with an executable.
type Replacer interface {
	// Replace only returns on failure.
	Replace(executable string, args []string) error
}

// RealReplacer is the production implementation.
type RealReplacer struct{}

// LaunchError reports an executable that cannot be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("wine executable not found: '%s'", e.Path)
	}
	return fmt.Sprintf("failed to launch '%s': %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// errIsDirectory is reported when the resolved path is a directory.
var errIsDirectory = errors.New("is a directory")

// Argv builds the argument vector handed to the executable.
func Argv(args []string) []string {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, CanonicalName)
	return append(argv, args...)
}

// CheckExecutable reports a LaunchError unless path is an existing
// non-directory. Replace calls it immediately before exec.
func CheckExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &LaunchError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &LaunchError{Path: path, Err: errIsDirectory}
	}
	return nil
}

// environ returns the current environment.
func environ() []string {
	return os.Environ()
}
