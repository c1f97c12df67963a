package resolver

import "fmt"

// SystemRuntimeRequiredError reports a bottle that asks for the system wine
// on a machine without one.
type SystemRuntimeRequiredError struct {
	Prefix string
	Runner string
}

func (e *SystemRuntimeRequiredError) Error() string {
	return fmt.Sprintf("bottle '%s' uses runner %q which requires a system wine, but none was found on PATH", e.Prefix, e.Runner)
}

// NoRuntimeAvailableError reports that no rule produced a wine executable.
type NoRuntimeAvailableError struct{}

func (e *NoRuntimeAvailableError) Error() string {
	return "could not find a usable 'wine' executable: no system wine, no configured default and no override"
}
