// Package resolver decides which wine executable serves an invocation.
//
// Precedence, highest first:
//
//  1. A bottle.yml in WINEPREFIX naming a runner. "sys-" runners select the
//     system wine (which must exist); other runners select
//     <prefix>/../../runners/<runner>/bin/wine. An empty runner falls through.
//  2. The system wine or the configured default, ordered by Preference, then
//     the YABRIDGE_WINE override.
//
// When the configured default is used without an explicit prefix, the outcome
// also carries the configured default prefix for WINEPREFIX.
package resolver

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vertti/wineloader/pkg/bottle"
	"github.com/vertti/wineloader/pkg/config"
	"github.com/vertti/wineloader/pkg/probe"
)

// Preference orders the system wine and the configured default when no
// bottle decides.
type Preference string

const (
	PreferSystem  Preference = "system"
	PreferDefault Preference = "default"
)

// ParsePreference validates a preference name.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(s); p {
	case PreferSystem, PreferDefault:
		return p, nil
	case "":
		return PreferSystem, nil
	default:
		return "", fmt.Errorf("invalid preference %q: must be %q or %q", s, PreferSystem, PreferDefault)
	}
}

// Source names the rule that selected the executable.
type Source string

const (
	SourceBottle   Source = "bottle"
	SourceSystem   Source = "system"
	SourceDefault  Source = "default"
	SourceOverride Source = "override"
)

// Outcome is the result of a resolution.
type Outcome struct {
	Executable string
	SetPrefix  string // value to assign to WINEPREFIX before exec; empty means leave it alone
	Source     Source
	Runner     string // bottle runner value, when a bottle was consulted
}

// Resolver resolves wine executables.
type Resolver struct {
	Querier    bottle.Querier
	FS         FileSystem
	Preference Preference
	Logger     *log.Logger // optional
}

// Resolve picks the executable for facts and the optional cfg. It never
// checks that the chosen executable exists; the launcher does that.
// Relative inputs are made absolute against the working directory.
func (r *Resolver) Resolve(ctx context.Context, facts probe.Facts, cfg *config.Config) (Outcome, error) {
	out, err := r.resolve(ctx, facts, cfg)
	if err != nil {
		return Outcome{}, err
	}
	out.Executable = absolute(out.Executable)
	if out.SetPrefix != "" {
		out.SetPrefix = absolute(out.SetPrefix)
	}
	return out, nil
}

func (r *Resolver) resolve(ctx context.Context, facts probe.Facts, cfg *config.Config) (Outcome, error) {
	logger := r.logger()

	if facts.Prefix != "" {
		metadata := bottle.MetadataPath(facts.Prefix)
		if isFile(r.FS, metadata) {
			runner, err := r.Querier.QueryField(ctx, metadata, bottle.RunnerField)
			if err != nil {
				return Outcome{}, err
			}
			logger.Debug("read bottle metadata", "file", metadata, "runner", runner)

			switch bottle.Classify(runner) {
			case bottle.RunnerSystem:
				if !facts.HasSystemWine() {
					return Outcome{}, &SystemRuntimeRequiredError{Prefix: facts.Prefix, Runner: runner}
				}
				return Outcome{Executable: facts.SystemWine, Source: SourceSystem, Runner: runner}, nil
			case bottle.RunnerManaged:
				wine, err := bottle.RunnerWine(facts.Prefix, runner, probe.WineBinary)
				if err != nil {
					return Outcome{}, err
				}
				return Outcome{Executable: wine, Source: SourceBottle, Runner: runner}, nil
			case bottle.RunnerUnset:
				logger.Debug("bottle has no runner, using fallbacks", "file", metadata)
			}
		} else {
			logger.Debug("no bottle metadata", "file", metadata)
		}
	}

	return r.fallback(facts, cfg)
}

func (r *Resolver) fallback(facts probe.Facts, cfg *config.Config) (Outcome, error) {
	system := func() (Outcome, bool) {
		if !facts.HasSystemWine() {
			return Outcome{}, false
		}
		return Outcome{Executable: facts.SystemWine, Source: SourceSystem}, true
	}
	configured := func() (Outcome, bool) {
		if cfg == nil {
			return Outcome{}, false
		}
		out := Outcome{Executable: cfg.DefaultWine, Source: SourceDefault}
		// Keep the default wine away from ~/.wine when no prefix was requested.
		if facts.Prefix == "" {
			out.SetPrefix = cfg.DefaultPrefix
		}
		return out, true
	}

	order := []func() (Outcome, bool){system, configured}
	if r.Preference == PreferDefault {
		order = []func() (Outcome, bool){configured, system}
	}
	for _, candidate := range order {
		if out, ok := candidate(); ok {
			return out, nil
		}
	}

	if facts.OverrideWine != "" {
		return Outcome{Executable: facts.OverrideWine, Source: SourceOverride}, nil
	}
	return Outcome{}, &NoRuntimeAvailableError{}
}

func absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}
