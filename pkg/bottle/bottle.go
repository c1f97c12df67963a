// Package bottle reads metadata from Bottles prefixes.
//
// A prefix created by Bottles carries a bottle.yml whose top-level Runner
// field names the wine runner it was created with. The file is read through
// yq rather than parsed in-process, so whatever yq accepts is accepted here.
package bottle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// MetadataFile is the per-prefix metadata file name.
	MetadataFile = "bottle.yml"
	// RunnerField is the top-level field naming the prefix's runner.
	RunnerField = "Runner"
	// SystemRunnerPrefix marks runners that mean "use the system wine".
	SystemRunnerPrefix = "sys-"
)

// MetadataPath returns the bottle.yml path for a prefix.
func MetadataPath(prefix string) string {
	return filepath.Join(prefix, MetadataFile)
}

// Querier extracts a single scalar field from a metadata file.
type Querier interface {
	QueryField(ctx context.Context, file, field string) (string, error)
}

// MetadataQueryError reports a metadata file that exists but could not be read.
type MetadataQueryError struct {
	File   string
	Field  string
	Reason string
	Stderr string
	Err    error
}

func (e *MetadataQueryError) Error() string {
	msg := fmt.Sprintf("failed to read %s from '%s': %s", e.Field, e.File, e.Reason)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *MetadataQueryError) Unwrap() error {
	return e.Err
}

// YQQuerier queries fields with the yq command line tool.
type YQQuerier struct {
	Tool   string // absolute path of yq
	Runner Runner
}

// QueryField runs `yq -r .<field> <file>` and returns the trimmed output.
// yq prints "null" for a missing key, which is reported as an empty value.
func (q *YQQuerier) QueryField(ctx context.Context, file, field string) (string, error) {
	stdout, stderr, err := q.Runner.RunCommandContext(ctx, q.Tool, "-r", "."+field, file)
	if err != nil {
		return "", &MetadataQueryError{
			File:   file,
			Field:  field,
			Reason: fmt.Sprintf("yq failed: %v", err),
			Stderr: strings.TrimSpace(stderr),
			Err:    err,
		}
	}

	value := strings.TrimSpace(stdout)
	if strings.ContainsAny(value, "\r\n") {
		return "", &MetadataQueryError{
			File:   file,
			Field:  field,
			Reason: "value is not a scalar",
		}
	}
	if value == "null" {
		return "", nil
	}
	return value, nil
}

// RunnerKind classifies a bottle's Runner value.
type RunnerKind int

const (
	// RunnerUnset means the field is empty and the bottle expresses no preference.
	RunnerUnset RunnerKind = iota
	// RunnerSystem means the bottle was created against the system wine.
	RunnerSystem
	// RunnerManaged means the bottle names a runner directory.
	RunnerManaged
)

// Classify reports what a Runner value asks for.
func Classify(runner string) RunnerKind {
	switch {
	case runner == "":
		return RunnerUnset
	case strings.HasPrefix(runner, SystemRunnerPrefix):
		return RunnerSystem
	default:
		return RunnerManaged
	}
}

// RunnerWine returns the wine binary of a managed runner. Runners live next
// to the bottles directory: <prefix>/../../runners/<runner>/bin/<binary>.
// The path is not checked for existence.
func RunnerWine(prefix, runner, binary string) (string, error) {
	if runner == "." || runner == ".." || strings.ContainsAny(runner, `/\`) {
		return "", &MetadataQueryError{
			File:   MetadataPath(prefix),
			Field:  RunnerField,
			Reason: fmt.Sprintf("invalid runner name %q", runner),
		}
	}
	return filepath.Join(prefix, "..", "..", "runners", runner, "bin", binary), nil
}
