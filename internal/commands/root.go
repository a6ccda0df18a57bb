package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nightjar"
	"github.com/simonhull/firebird-suite/nightjar/pkg/config"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
	"github.com/simonhull/firebird-suite/nightjar/pkg/output"
)

// EnvPrefix prefixes every environment override, e.g. NIGHTJAR_PROJECT_ENTRY.
const EnvPrefix = "NIGHTJAR"

// RootCmd creates and returns the root command for the Nightjar CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "nightjar",
		Short: "Find React components nothing ever renders",
		Long: `Nightjar catalogs every component of a React project, follows the
render tree from the entry point the way the module system resolves imports,
and reports the ghost components that are declared but never rendered.

Aliases from jsconfig.json or tsconfig.json are honored.`,
		Version: nightjar.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetOutput(cmd.ErrOrStderr())
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", config.FileName, "Path to configuration file")
	cmd.PersistentFlags().String("log-level", logger.LevelWarn.String(), "Log level (debug, info, warn, error, silent)")

	cmd.AddCommand(ChaseCmd())
	cmd.AddCommand(InitCmd())
	cmd.AddCommand(VersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return RootCmd().Execute()
}
