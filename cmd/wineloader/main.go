package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vertti/wineloader/pkg/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// programName is the name under which the management CLI runs. Any other
// name (normally the "wine" symlink) runs launch mode.
const programName = "wineloader"

func main() {
	if isLaunchMode(os.Args[0]) {
		os.Exit(runLaunch(os.Args[1:]))
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isLaunchMode reports whether argv[0] names something other than the
// management CLI.
func isLaunchMode(argv0 string) bool {
	name := strings.TrimSuffix(filepath.Base(argv0), ".exe")
	return name != programName
}

// settingsViper holds WINELOADER_* settings with the persistent flags bound on top.
var settingsViper = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   programName,
	Short: "Run the right wine for each Bottles prefix",
	Long: "wineloader is installed as a drop-in 'wine'. It reads the Runner of the bottle in\n" +
		"WINEPREFIX and execs that runner's wine, falling back to the system wine or a\n" +
		"configured default. Invoked as 'wineloader' it offers these management commands.",
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyConfig, "", "configuration file (default: $XDG_CONFIG_HOME/wineloader/wine_settings.json)")
	flags.String(config.KeyPrefer, config.DefaultPrefer, `runtime preferred when no bottle decides: "system" or "default"`)
	flags.Bool(config.KeyRequireConfig, false, "fail when the configuration file is missing")
	flags.String(config.KeyLogLevel, config.DefaultLogLevel, "log level: debug, info, warn or error")

	for _, key := range []string{config.KeyConfig, config.KeyPrefer, config.KeyRequireConfig, config.KeyLogLevel} {
		if err := settingsViper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// loadSettings returns the effective settings and a logger writing to the
// command's error stream.
func loadSettings(cmd *cobra.Command) (config.Settings, *log.Logger, error) {
	settings, err := config.LoadSettings(settingsViper)
	logger := newLogger(cmd.ErrOrStderr(), settings.LogLevel)
	return settings, logger, err
}
