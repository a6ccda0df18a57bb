package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
	"github.com/simonhull/firebird-suite/nightjar/pkg/config"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
)

// settings is the merged view of flags, environment and nightjar.yaml.
type settings struct {
	analyzer.Options
	Format      string
	Out         string
	Interactive bool
	LogLevel    logger.Level
}

// flagKeys binds chase flags to configuration keys.
var flagKeys = map[string]string{
	"root":            "project.root",
	"entry":           "project.entry",
	"root-component":  "project.root_component",
	"root-call":       "project.root_call",
	"skip":            "analysis.skip",
	"ext":             "analysis.extensions",
	"skip-unparsable": "analysis.skip_unparsable",
	"precise-guard":   "analysis.precise_guard",
	"format":          "report.format",
	"out":             "report.output",
	"log-level":       "log_level",
}

// loadSettings resolves every option with the precedence
// flag > NIGHTJAR_* environment > config file > built-in default.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("project.root", cfg.Project.Root)
	v.SetDefault("project.entry", cfg.Project.Entry)
	v.SetDefault("project.root_component", cfg.Project.RootComponent)
	v.SetDefault("project.root_call", cfg.Project.RootCall)
	v.SetDefault("analysis.skip", cfg.Analysis.Skip)
	v.SetDefault("analysis.extensions", cfg.Analysis.Extensions)
	v.SetDefault("analysis.skip_unparsable", cfg.Analysis.SkipUnparsable)
	v.SetDefault("analysis.precise_guard", cfg.Analysis.PreciseGuard)
	v.SetDefault("report.format", cfg.Report.Format)
	v.SetDefault("report.output", cfg.Report.Output)
	v.SetDefault("log_level", logger.LevelWarn.String())

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	level, err := logger.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.LevelDebug
	}

	s := &settings{
		Options: analyzer.Options{
			Root:           v.GetString("project.root"),
			Entry:          v.GetString("project.entry"),
			RootComponent:  v.GetString("project.root_component"),
			RootCall:       v.GetString("project.root_call"),
			SkipDirs:       v.GetStringSlice("analysis.skip"),
			Extensions:     v.GetStringSlice("analysis.extensions"),
			SkipUnparsable: v.GetBool("analysis.skip_unparsable"),
			PreciseGuard:   v.GetBool("analysis.precise_guard"),
		},
		Format:   v.GetString("report.format"),
		Out:      v.GetString("report.output"),
		LogLevel: level,
	}
	s.Interactive, _ = cmd.Flags().GetBool("interactive")

	merged := config.DefaultConfig()
	merged.Project.Root = s.Root
	merged.Project.Entry = s.Entry
	merged.Analysis.Extensions = s.Extensions
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}
