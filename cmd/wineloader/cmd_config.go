package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vertti/wineloader/pkg/bottle"
	"github.com/vertti/wineloader/pkg/config"
	"github.com/vertti/wineloader/pkg/output"
)

// ErrConfigInvalid is returned when config show finds no usable configuration.
var ErrConfigInvalid = errors.New("configuration invalid")

var (
	initDefaultWine   string
	initDefaultPrefix string
	initForce         bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the wineloader configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Validate and print the configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the configuration file",
	Long: "Write the default wine and default prefix used when no bottle decides.\n" +
		"--default-prefix accepts either the prefix directory or its bottle.yml.",
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&initDefaultWine, "default-wine", "", "wine executable used by default")
	configInitCmd.Flags().StringVar(&initDefaultPrefix, "default-prefix", "", "prefix directory (or its bottle.yml) used by default")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing configuration")

	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	settings, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), settings.ConfigFile)
	return err
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result := &output.Result{Name: "config: " + settings.ConfigFile, Status: output.StatusOK}

	// show always wants a file to show.
	cfg, err := config.Load(&config.RealFileSystem{}, settings.ConfigFile, true)
	if err != nil {
		output.PrintResult(cmd.OutOrStdout(), result.Fail(err))
		return ErrConfigInvalid
	}

	result.AddDetailf("default wine: %s", cfg.DefaultWine)
	result.AddDetailf("default prefix: %s", cfg.DefaultPrefix)
	output.PrintResult(cmd.OutOrStdout(), *result)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if err := requireAll(
		flagValue{"--default-wine", initDefaultWine},
		flagValue{"--default-prefix", initDefaultPrefix},
	); err != nil {
		return err
	}

	settings, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(settings.ConfigFile); err == nil && !initForce {
		return fmt.Errorf("configuration already exists at '%s' (use --force to overwrite)", settings.ConfigFile)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check configuration: %w", err)
	}

	cfg := config.Config{
		DefaultWine:   absPath(initDefaultWine),
		DefaultPrefix: absPath(prefixDir(initDefaultPrefix)),
	}
	if err := config.Write(settings.ConfigFile, cfg); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config written to '%s'\n", settings.ConfigFile)
	return err
}

// prefixDir accepts a bottle.yml in place of its prefix directory.
func prefixDir(path string) string {
	if filepath.Base(path) == bottle.MetadataFile {
		return filepath.Dir(path)
	}
	return path
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
