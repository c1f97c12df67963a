package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/vertti/wineloader/pkg/bottle"
	"github.com/vertti/wineloader/pkg/config"
	"github.com/vertti/wineloader/pkg/exec"
	"github.com/vertti/wineloader/pkg/probe"
	"github.com/vertti/wineloader/pkg/resolver"
)

// replacer performs the final exec; tests swap it for a recorder.
var replacer exec.Replacer = &exec.RealReplacer{}

// launcher wires probing, configuration, resolution and exec together.
type launcher struct {
	settings config.Settings
	logger   *log.Logger
	env      probe.EnvGetter
	paths    probe.PathFinder
	cfgFS    config.FileSystem
	fs       resolver.FileSystem
	runner   bottle.Runner
	replacer exec.Replacer
	setenv   func(key, value string) error
}

func newLauncher(settings config.Settings, logger *log.Logger) *launcher {
	return &launcher{
		settings: settings,
		logger:   logger,
		env:      &probe.RealEnvGetter{},
		paths:    &probe.RealPathFinder{},
		cfgFS:    &config.RealFileSystem{},
		fs:       &resolver.RealFileSystem{},
		runner:   &bottle.RealRunner{},
		replacer: replacer,
		setenv:   os.Setenv,
	}
}

// resolution is everything the resolve step learned.
type resolution struct {
	facts   probe.Facts
	config  *config.Config
	outcome resolver.Outcome
}

func (l *launcher) resolve(ctx context.Context) (resolution, error) {
	preference, err := resolver.ParsePreference(l.settings.Prefer)
	if err != nil {
		return resolution{}, err
	}

	facts, err := probe.Probe(l.env, l.paths)
	if err != nil {
		return resolution{}, err
	}
	l.logger.Debug("probed environment",
		"wine", facts.SystemWine, "yq", facts.QueryTool,
		"prefix", facts.Prefix, "override", facts.OverrideWine)

	cfg, err := config.Load(l.cfgFS, l.settings.ConfigFile, l.settings.RequireConfig)
	if err != nil {
		return resolution{facts: facts}, err
	}
	l.logger.Debug("loaded configuration", "path", l.settings.ConfigFile, "found", cfg != nil)

	r := &resolver.Resolver{
		Querier:    &bottle.YQQuerier{Tool: facts.QueryTool, Runner: l.runner},
		FS:         l.fs,
		Preference: preference,
		Logger:     l.logger,
	}
	outcome, err := r.Resolve(ctx, facts, cfg)
	if err != nil {
		return resolution{facts: facts, config: cfg}, err
	}
	l.logger.Debug("resolved wine",
		"executable", outcome.Executable, "source", outcome.Source,
		"runner", outcome.Runner, "set_prefix", outcome.SetPrefix)

	return resolution{facts: facts, config: cfg, outcome: outcome}, nil
}

// launch resolves and replaces the process. It only returns on failure.
func (l *launcher) launch(ctx context.Context, args []string) error {
	res, err := l.resolve(ctx)
	if err != nil {
		return err
	}

	if prefix := res.outcome.SetPrefix; prefix != "" {
		if err := l.setenv(probe.PrefixVar, prefix); err != nil {
			return fmt.Errorf("failed to set %s: %w", probe.PrefixVar, err)
		}
		l.logger.Debug("using default prefix", probe.PrefixVar, prefix)
	}

	return l.replacer.Replace(res.outcome.Executable, args)
}

// runLaunch is launch mode: every argument goes to wine untouched.
func runLaunch(args []string) int {
	return launchWith(context.Background(), config.NewViper(), os.Stderr, args)
}

func launchWith(ctx context.Context, v *viper.Viper, stderr io.Writer, args []string) int {
	settings, err := config.LoadSettings(v)
	logger := newLogger(stderr, settings.LogLevel)
	if err != nil {
		logger.Error("failed to load settings", "err", err)
		return 1
	}

	if err := newLauncher(settings, logger).launch(ctx, args); err != nil {
		logger.Error(describe(err), "err", err)
		return 1
	}
	return 0
}

// describe names the fatal condition behind err.
func describe(err error) string {
	var (
		depErr    *probe.MissingDependencyError
		cfgErr    *config.ConfigurationError
		queryErr  *bottle.MetadataQueryError
		sysErr    *resolver.SystemRuntimeRequiredError
		noneErr   *resolver.NoRuntimeAvailableError
		launchErr *exec.LaunchError
	)
	switch {
	case errors.As(err, &depErr):
		return "missing dependency"
	case errors.As(err, &cfgErr):
		return "invalid configuration"
	case errors.As(err, &queryErr):
		return "unreadable bottle metadata"
	case errors.As(err, &sysErr):
		return "system wine required"
	case errors.As(err, &noneErr):
		return "no wine available"
	case errors.As(err, &launchErr):
		return "launch failed"
	default:
		return "wineloader failed"
	}
}
