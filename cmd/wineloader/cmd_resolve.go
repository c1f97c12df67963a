package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vertti/wineloader/pkg/exec"
	"github.com/vertti/wineloader/pkg/output"
	"github.com/vertti/wineloader/pkg/probe"
)

// ErrResolveFailed is returned when a dry run would not launch wine.
var ErrResolveFailed = errors.New("resolution failed")

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show which wine would run, without running it",
	Args:  cobra.NoArgs,
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	res, err := newLauncher(settings, logger).resolve(cmd.Context())

	result := &output.Result{Name: "resolve", Status: output.StatusOK}
	result.AddDetailf("prefix: %s", valueOr(res.facts.Prefix, "(unset)"))
	result.AddDetailf("system wine: %s", valueOr(res.facts.SystemWine, "(not found)"))
	result.AddDetailf("config: %s", settings.ConfigFile)
	if err != nil {
		output.PrintResult(cmd.OutOrStdout(), result.Fail(err))
		return ErrResolveFailed
	}

	out := res.outcome
	if out.Runner != "" {
		result.AddDetailf("runner: %s", out.Runner)
	}
	result.AddDetailf("source: %s", out.Source)
	result.AddDetailf("executable: %s", out.Executable)
	if out.SetPrefix != "" {
		result.AddDetailf("sets %s: %s", probe.PrefixVar, out.SetPrefix)
	}

	if err := exec.CheckExecutable(out.Executable); err != nil {
		output.PrintResult(cmd.OutOrStdout(), result.Fail(err))
		return ErrResolveFailed
	}

	output.PrintResult(cmd.OutOrStdout(), *result)
	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
