package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nightjar/pkg/input"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
	"github.com/simonhull/firebird-suite/nightjar/pkg/output"
	"github.com/simonhull/firebird-suite/nightjar/pkg/progress"
	"github.com/simonhull/firebird-suite/nightjar/pkg/report"
	"github.com/simonhull/firebird-suite/nightjar/pkg/resolver"
)

// ChaseCmd searches a project for ghost components
func ChaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chase",
		Short: "Find components never rendered from the entry point",
		Long: `Catalogs every component under the project root, walks the render tree
from the entry point and prints the components nothing reaches.

Example:
  nightjar chase -r . -e src/index.js
  nightjar chase -r ./web -e web/src/main.tsx --root-call root.render
  nightjar chase --skip stories --skip "legacy-*" --format json -o ghosts.json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runChase,
	}

	cmd.Flags().StringP("root", "r", "", "Project root folder (default \".\")")
	cmd.Flags().StringP("entry", "e", "", "Entry file rendering the application (default \"src/index.js\")")
	cmd.Flags().String("root-component", "", "Component the walk starts from (default: the root call)")
	cmd.Flags().String("root-call", "", "Call mounting the application (default \"ReactDOM.render\")")
	cmd.Flags().StringSlice("skip", nil, "Additional directory names or globs to skip")
	cmd.Flags().StringSlice("ext", nil, "Source extensions in resolution order")
	cmd.Flags().StringP("format", "f", "", "Report format (text, json, markdown, html, mermaid)")
	cmd.Flags().StringP("out", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolP("interactive", "i", false, "Ask for the project settings")
	cmd.Flags().Bool("skip-unparsable", false, "Skip files that fail to parse instead of aborting")
	cmd.Flags().Bool("precise-guard", false, "Re-enter a file for each distinct component it is imported under")

	return cmd
}

func runChase(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var prompter *input.Prompter
	if s.Interactive {
		prompter = input.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
		askSettings(prompter, s)
	}

	format, err := report.ParseFormat(s.Format)
	if err != nil {
		return err
	}

	log := logger.NewLogger(s.LogLevel, cmd.ErrOrStderr())
	a := analyzer.NewAnalyzer().WithLogger(log)

	output.Verbose(fmt.Sprintf("Root: %s, entry: %s", s.Root, s.Entry))

	var result *analyzer.Result
	err = progress.Run(cmd.Context(), cmd.ErrOrStderr(), "Chasing ghost components", func(ctx context.Context) error {
		var err error
		result, err = a.SearchGhost(ctx, s.Options)
		return err
	})
	if err != nil {
		explain(err)
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), s.Out, format, result); err != nil {
		return err
	}

	if prompter != nil && s.Out == "" && prompter.Confirm("Save the result as JSON?", false) {
		path := prompter.Prompt("File", "ghosts.json")
		if err := writeReport(nil, path, report.FormatJSON, result); err != nil {
			return err
		}
	}

	return nil
}

// askSettings lets the user override the resolved settings.
func askSettings(p *input.Prompter, s *settings) {
	s.Root = p.Prompt("Project root", s.Root)
	s.Entry = p.Prompt("Entry point", s.Entry)
	s.SkipDirs = p.List("Directories to skip", s.SkipDirs)
}

func writeReport(stdout io.Writer, path string, format report.Format, result *analyzer.Result) error {
	if path == "" {
		return report.Render(stdout, format, result)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := report.Render(f, format, result); err != nil {
		return err
	}
	output.Success(fmt.Sprintf("Report written to %s", path))
	return nil
}

// explain prints a hint for the typed failures a user can act on.
func explain(err error) {
	var (
		resErr   *resolver.ResolutionError
		parseErr *extractor.ParseError
		readErr  *filesystem.ReadError
	)

	switch {
	case errors.As(err, &resErr):
		output.Error(fmt.Sprintf("Cannot resolve %q", resErr.Specifier))
		if resErr.Reason != "" {
			output.Step(resErr.Reason)
		}
		if len(resErr.Extensions) > 0 {
			output.Step("Tried extensions: " + strings.Join(resErr.Extensions, " "))
		}
	case errors.As(err, &parseErr):
		output.Error(fmt.Sprintf("Cannot parse %s", parseErr.Path))
		output.Step("Rerun with --skip-unparsable to ignore this file")
	case errors.As(err, &readErr):
		output.Error(fmt.Sprintf("Cannot read %s", readErr.Path))
		output.Step("Check --root and --entry")
	}
}
