package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrLaunchFailed is returned when exec could not replace the process.
var ErrLaunchFailed = errors.New("launch failed")

var execCmd = &cobra.Command{
	Use:   "exec [wineloader flags] [--] [wine arguments...]",
	Short: "Resolve wine and exec it with the given arguments",
	Long: "Resolve wine exactly as the 'wine' symlink does and replace this process with it.\n" +
		"Leading wineloader flags (--config, --prefer, --require-config, --log-level) are\n" +
		"applied; everything after them, or after '--', is passed to wine unchanged.",
	DisableFlagParsing: true,
	RunE:               runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	args, err := bindLeadingFlags(cmd.Root().PersistentFlags(), args)
	if err != nil {
		return err
	}

	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if err := newLauncher(settings, logger).launch(cmd.Context(), args); err != nil {
		logger.Error(describe(err), "err", err)
		return ErrLaunchFailed
	}
	return nil
}

// bindLeadingFlags sets the known flags at the front of args and returns the
// rest. Flag parsing is disabled for exec, so cobra hands over root flags given
// before the subcommand as plain arguments. Parsing stops at the first
// argument that is not one of flags, and a "--" is consumed.
func bindLeadingFlags(flags *pflag.FlagSet, args []string) ([]string, error) {
	for len(args) > 0 {
		arg := args[0]
		if arg == "--" {
			return args[1:], nil
		}
		if !strings.HasPrefix(arg, "--") {
			return args, nil
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		flag := flags.Lookup(name)
		if flag == nil {
			return args, nil
		}
		args = args[1:]

		if !hasValue {
			if flag.NoOptDefVal != "" {
				value = flag.NoOptDefVal
			} else {
				if len(args) == 0 {
					return nil, fmt.Errorf("flag needs an argument: --%s", name)
				}
				value, args = args[0], args[1:]
			}
		}
		if err := flags.Set(name, value); err != nil {
			return nil, fmt.Errorf("invalid argument %q for --%s: %w", value, name, err)
		}
	}
	return args, nil
}
