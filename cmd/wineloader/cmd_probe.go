package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vertti/wineloader/pkg/output"
	"github.com/vertti/wineloader/pkg/probe"
)

// ErrProbeFailed is returned when a required tool is missing.
var ErrProbeFailed = errors.New("probe failed")

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show the environment facts wine resolution uses",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	result := &output.Result{Name: "probe", Status: output.StatusOK}

	facts, err := probe.Probe(&probe.RealEnvGetter{}, &probe.RealPathFinder{})
	if err != nil {
		output.PrintResult(cmd.OutOrStdout(), result.Fail(err))
		return ErrProbeFailed
	}

	result.AddDetailf("yq: %s", facts.QueryTool)
	result.AddDetailf("system wine: %s", valueOr(facts.SystemWine, "(not found)"))
	result.AddDetailf("%s: %s", probe.PrefixVar, valueOr(facts.Prefix, "(unset)"))
	result.AddDetailf("%s: %s", probe.OverrideVar, valueOr(facts.OverrideWine, "(unset)"))
	output.PrintResult(cmd.OutOrStdout(), *result)
	return nil
}
