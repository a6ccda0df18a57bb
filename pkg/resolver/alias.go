package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// AliasConfigFiles are looked up in the project root, in order.
var AliasConfigFiles = []string{"jsconfig.json", "tsconfig.json"}

// PathAlias is one `compilerOptions.paths` entry.
type PathAlias struct {
	Pattern string
	Targets []string
}

// AliasConfig is the module alias configuration of a project. Targets and
// baseUrl are interpreted relative to Root.
type AliasConfig struct {
	Root    string
	Source  string // config file the aliases came from, empty when none
	BaseURL string
	Paths   []PathAlias
}

// Empty reports whether no alias rule is configured.
func (c *AliasConfig) Empty() bool {
	return c == nil || (c.BaseURL == "" && len(c.Paths) == 0)
}

// LoadAliasConfig reads the first alias config file found in root. A
// project without one gets an empty configuration.
func LoadAliasConfig(root string) (*AliasConfig, error) {
	for _, name := range AliasConfigFiles {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		cfg, err := ParseAliasConfig(root, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		cfg.Source = path
		return cfg, nil
	}
	return &AliasConfig{Root: root}, nil
}

// ParseAliasConfig decodes jsconfig/tsconfig content. Comments and
// trailing commas are accepted; the order of `paths` is preserved.
func ParseAliasConfig(root string, data []byte) (*AliasConfig, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}

	var doc struct {
		CompilerOptions struct {
			BaseURL string          `json:"baseUrl"`
			Paths   json.RawMessage `json:"paths"`
		} `json:"compilerOptions"`
	}
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, err
	}

	cfg := &AliasConfig{Root: root, BaseURL: doc.CompilerOptions.BaseURL}
	if len(doc.CompilerOptions.Paths) > 0 {
		cfg.Paths, err = decodeOrderedPaths(doc.CompilerOptions.Paths)
		if err != nil {
			return nil, fmt.Errorf("compilerOptions.paths: %w", err)
		}
	}
	return cfg, nil
}

// decodeOrderedPaths walks the object token by token since a Go map would
// lose the declaration order the match policy depends on.
func decodeOrderedPaths(raw json.RawMessage) ([]PathAlias, error) {
	if string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var out []PathAlias
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return nil, fmt.Errorf("alias %q: %w", key, err)
		}
		out = append(out, PathAlias{Pattern: key, Targets: targets})
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}

// match returns the text the wildcard of p captures from specifier.
// Patterns without a wildcard only match themselves.
func (p PathAlias) match(specifier string) (string, bool) {
	star := strings.Index(p.Pattern, "*")
	if star < 0 {
		return "", specifier == p.Pattern
	}

	prefix, suffix := p.Pattern[:star], p.Pattern[star+1:]
	if !strings.HasPrefix(specifier, prefix) {
		return "", false
	}
	rest := specifier[len(prefix):]
	if !strings.HasSuffix(rest, suffix) {
		return "", false
	}
	return rest[:len(rest)-len(suffix)], true
}
