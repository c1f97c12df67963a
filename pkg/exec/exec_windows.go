//go:build windows

package exec

import "errors"

// ErrExecNotSupported indicates process replacement is not available on Windows.
var ErrExecNotSupported = errors.New("process replacement is not supported on Windows")

// Replace is not supported on Windows.
func (r *RealReplacer) Replace(executable string, args []string) error {
	if err := CheckExecutable(executable); err != nil {
		return err
	}
	return ErrExecNotSupported
}
