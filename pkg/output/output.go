// Package output prints status reports for the management commands.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, dim, reset = "", "", "", ""
	}
}

// Status is the outcome of a reported step.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
)

// Result is one reported step with its detail lines.
type Result struct {
	Name    string // e.g. "probe", "resolve"
	Status  Status
	Details []string // "label: value" lines
	Err     error
}

// OK returns true if the step succeeded.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// AddDetailf appends a formatted detail line.
func (r *Result) AddDetailf(format string, args ...interface{}) *Result {
	r.Details = append(r.Details, fmt.Sprintf(format, args...))
	return r
}

// Fail marks the result failed with err, adding err as a detail line.
func (r *Result) Fail(err error) Result {
	r.Status = StatusFail
	r.Err = err
	r.Details = append(r.Details, fmt.Sprintf("error: %v", err))
	return *r
}

// PrintResult writes a result with a colored status and aligned details.
func PrintResult(w io.Writer, r Result) {
	indent := "     "
	if r.OK() {
		_, _ = fmt.Fprintf(w, "%s[OK]%s %s\n", green, reset, r.Name)
	} else {
		indent = "       "
		_, _ = fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, r.Name)
	}
	for _, d := range r.Details {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, formatLabel(d))
	}
}

// formatLabel dims the "label:" part of a detail line.
func formatLabel(detail string) string {
	label, value, ok := strings.Cut(detail, ": ")
	if !ok {
		return detail
	}
	return dim + label + ":" + reset + " " + value
}
