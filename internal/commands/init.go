package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nightjar/pkg/config"
	"github.com/simonhull/firebird-suite/nightjar/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nightjar/pkg/output"
	"github.com/simonhull/firebird-suite/nightjar/pkg/resolver"
)

// InitCmd writes a default nightjar.yaml
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a nightjar.yaml with default settings",
		Long: `Writes nightjar.yaml (or the file named by --config) with the default
project layout. An existing file is kept unless --force is given.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			if filesystem.Exists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if err := config.SaveConfig(path, cfg); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("Created %s", path))
			if aliases, err := resolver.LoadAliasConfig(cfg.Project.Root); err == nil && aliases.Source != "" {
				output.Info(fmt.Sprintf("Aliases will be read from %s", aliases.Source))
			}
			output.Info("Next steps:")
			output.Step("nightjar chase")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
