package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
)

// JSON writes {ghosts: [{name, path}], totalComponents} with absolute
// paths.
func JSON(w io.Writer, result *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Summary()); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
