/*package main is the qrng binary, which samples quasi-random sequences from
the command line.*/
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/qrng/cmd"
	"github.com/phil-mansfield/qrng/logging"
	"github.com/phil-mansfield/qrng/version"
)

// globalConfigEnv names a global config file so that it doesn't need to be
// passed to every call.
const globalConfigEnv = "QRNG_GLOBAL_CONFIG"

var logMode string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Logger().Error("qrng failed", "error", err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qrng",
		Short: "Generate and analyze quasi-random sequences",
		Long: `qrng writes out points of Halton and Sobol sequences and reports on
how evenly they fill the unit hypercube.

Every analysis mode takes a global config file, which describes the sequence,
and optionally a mode-specific config file. Example config files are printed
by 'qrng config'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			mode, err := logging.ParseFlag(logMode)
			if err != nil {
				return err
			}
			logging.Mode = mode
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logMode, "log", "nil",
		"logging mode: nil, performance, or debug")

	modeNames := make([]string, 0, len(cmd.ModeNames))
	for name := range cmd.ModeNames {
		modeNames = append(modeNames, name)
	}
	sort.Strings(modeNames)

	short := map[string]string{
		"gen":       "Write points of a sequence to stdout",
		"stats":     "Report per-axis statistics of a sequence",
		"integrate": "Integrate a test function with a sequence",
	}
	for _, name := range modeNames {
		root.AddCommand(newModeCmd(name, short[name]))
	}

	root.AddCommand(&cobra.Command{
		Use:       "config [global | " + strings.Join(modeNames, " | ") + "]",
		Short:     "Print an example config file",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: append([]string{"global"}, modeNames...),
		RunE: func(c *cobra.Command, args []string) error {
			name := "global"
			if len(args) == 1 {
				name = args[0]
			}
			text, err := exampleConfig(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), text)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of qrng",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintf(c.OutOrStdout(), "qrng version %s\n",
				version.SourceVersion)
		},
	})

	return root
}

// newModeCmd wraps one of the analysis modes in cmd.ModeNames.
func newModeCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s [flags] ____.config [____.%s.config]", name, name),
		Short: short,
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(c *cobra.Command, args []string) error {
			mode := cmd.ModeNames[name]

			gConfig, err := getGlobalConfig(args)
			if err != nil {
				return err
			}
			if err = mode.ReadConfig(getConfig(args)); err != nil {
				return err
			}

			out, err := mode.Run(gConfig)
			if err != nil {
				return fmt.Errorf("Error running mode %s:\n%s", name,
					err.Error())
			}
			w := c.OutOrStdout()
			for i := range out {
				fmt.Fprintln(w, out[i])
			}
			return nil
		},
	}
}

// exampleConfig returns the example config file for the named mode, or for
// the global config if name is "global".
func exampleConfig(name string) (string, error) {
	if name == "global" {
		return new(cmd.GlobalConfig).ExampleConfig(), nil
	}
	mode, ok := cmd.ModeNames[strings.TrimSuffix(name, ".config")]
	if !ok {
		return "", fmt.Errorf("I don't recognize the config target '%s'.",
			name)
	}
	return mode.ExampleConfig(), nil
}

// getGlobalConfig reads the global config file named either by
// $QRNG_GLOBAL_CONFIG or by the command line arguments.
func getGlobalConfig(args []string) (*cmd.GlobalConfig, error) {
	name := os.Getenv(globalConfigEnv)
	if name != "" {
		if len(args) > 1 {
			return nil, fmt.Errorf("$%s has been set, so you may only pass "+
				"a single config file as a parameter.", globalConfigEnv)
		}
	} else {
		switch len(args) {
		case 0:
			return nil, fmt.Errorf("No config files provided in command " +
				"line arguments.")
		default:
			name = args[0]
		}
	}

	config := &cmd.GlobalConfig{}
	if err := config.ReadConfig(name); err != nil {
		return nil, err
	}
	return config, nil
}

// getConfig returns the name of the mode-specific config file from the
// command line arguments, or "" if there isn't one.
func getConfig(args []string) string {
	if os.Getenv(globalConfigEnv) != "" && len(args) == 1 {
		return args[0]
	} else if os.Getenv(globalConfigEnv) == "" && len(args) == 2 {
		return args[1]
	}
	return ""
}
