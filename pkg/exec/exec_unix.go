//go:build unix

package exec

import (
	"syscall"
)

// execFunc is overridden in tests.
var execFunc = syscall.Exec

// Replace execs executable with argv [CanonicalName, args...] and the current
// environment. On success it does not return.
func (r *RealReplacer) Replace(executable string, args []string) error {
	if err := CheckExecutable(executable); err != nil {
		return err
	}

	// #nosec G204 -- executable is the resolved wine for this invocation.
	if err := execFunc(executable, Argv(args), environ()); err != nil {
		return &LaunchError{Path: executable, Err: err}
	}
	return nil
}
