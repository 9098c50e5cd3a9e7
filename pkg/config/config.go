// Package config loads the optional `.anchorize.yaml` ambient
// compiler configuration (strict-mode default, output style, and
// account-kind overrides) — distinct from the workspace's own TOML
// program-id manifest, which lives in pkg/manifest. Grounded on
// CWBudde-go-dws's configuration-free-but-cobra-flag-driven CLI shape:
// that repo carries `goccy/go-yaml` only as a transitive dependency,
// so this package is the one place in the corpus that actually wires
// it in directly, matching SPEC_FULL.md §9's DOMAIN STACK entry for
// `pkg/config`.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the ambient, repository-wide compiler configuration.
type Config struct {
	// Strict aborts a compile that would otherwise emit a
	// best-effort result for a method with a skipped statement.
	Strict bool `yaml:"strict"`
	// OutputStyle selects a cosmetic rendering variant; "default" is
	// the only style pkg/emit currently implements, but the field is
	// carried so a future style can be selected without a config
	// schema change.
	OutputStyle string `yaml:"outputStyle"`
	// AccountKindOverrides lets a workspace force a parameter type
	// name to resolve to a specific source tag, for dialect
	// extensions pkg/types doesn't know about yet.
	AccountKindOverrides map[string]string `yaml:"accountKindOverrides"`
}

// Default returns the configuration used when no `.anchorize.yaml`
// is present.
func Default() *Config {
	return &Config{OutputStyle: "default"}
}

// Load reads and parses path. A missing file is not an error — it
// returns Default() — since `.anchorize.yaml` is optional per
// SPEC_FULL.md §9.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
