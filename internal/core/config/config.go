// Package config provides the ephem configuration loader.
// Config is loaded by merging ephem.yaml → ~/.ephem/config.yaml → EPHEM_* env vars.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	v1 "github.com/kepler-works/ephem/api/v1"
)

// Defaults contains factory-default values applied before any config file is loaded.
var Defaults = map[string]any{
	"query.frame":       "J2000",
	"query.observer":    "EARTH",
	"query.correction":  "lt+s",
	"query.samples":     500,
	"export.dir":        ".",
	"export.format":     "csv",
	"cache.enabled":     true,
	"cache.max_entries": 64,
	"log.level":         "info",
	"log.format":        "text",
}

// ─────────────────────────────────────────────────────────────────────────────
// Config types
// ─────────────────────────────────────────────────────────────────────────────

// Config is the fully-decoded project configuration.
type Config struct {
	Version string           `mapstructure:"version"`
	Project ProjectConfig    `mapstructure:"project"`
	Kernels []v1.KernelSpec  `mapstructure:"kernels"`
	Query   v1.QueryDefaults `mapstructure:"query"`
	Export  ExportConfig     `mapstructure:"export"`
	Cache   CacheConfig      `mapstructure:"cache"`
	Log     LogConfig        `mapstructure:"log"`
}

// ProjectConfig holds project-level metadata.
type ProjectConfig struct {
	Name string `mapstructure:"name"`
}

// ExportConfig controls where and how trajectory exports are written.
type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"` // csv | table | json
}

// CacheConfig controls the BoltDB trajectory cache.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxEntries int  `mapstructure:"max_entries"`
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level  string `mapstructure:"level"` // debug | info | warn | error
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // json | text
}

// ─────────────────────────────────────────────────────────────────────────────
// Loader
// ─────────────────────────────────────────────────────────────────────────────

// Load discovers and loads the configuration, walking up directories to find
// ephem.yaml, then merging it with the global config and environment variables.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	// Apply defaults
	for k, val := range Defaults {
		v.SetDefault(k, val)
	}

	// Environment variable binding: EPHEM_LOG_LEVEL → log.level
	v.SetEnvPrefix("EPHEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load global config (~/.ephem/config.yaml) if it exists
	globalCfg := filepath.Join(ephemHome(), "config.yaml")
	if _, err := os.Stat(globalCfg); err == nil {
		v.SetConfigFile(globalCfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read global config: %w", err)
		}
	}

	// Load project config
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		path, err := discoverProjectConfig()
		if err == nil {
			v.SetConfigFile(path)
		}
	}

	if v.ConfigFileUsed() != "" || explicitPath != "" {
		if err := v.MergeInConfig(); err != nil && explicitPath != "" {
			return nil, fmt.Errorf("read project config %q: %w", explicitPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Resolve env variable placeholders and home-relative kernel paths
	expandPathsInConfig(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// KernelByName returns the KernelSpec with the given name, or nil.
func (c *Config) KernelByName(name string) *v1.KernelSpec {
	for i := range c.Kernels {
		if c.Kernels[i].Name == name {
			return &c.Kernels[i]
		}
	}
	return nil
}

// DefaultKernel returns the kernel marked default, falling back to the
// first configured kernel, or nil when none are configured.
func (c *Config) DefaultKernel() *v1.KernelSpec {
	for i := range c.Kernels {
		if c.Kernels[i].Default {
			return &c.Kernels[i]
		}
	}
	if len(c.Kernels) > 0 {
		return &c.Kernels[0]
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

// discoverProjectConfig walks up from the CWD looking for ephem.yaml.
func discoverProjectConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "ephem.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("ephem.yaml not found (searched up from %s)", func() string { d, _ := os.Getwd(); return d }())
}

// expandPathsInConfig resolves ${VAR} placeholders and leading ~ in
// path-valued fields.
func expandPathsInConfig(cfg *Config) {
	for i := range cfg.Kernels {
		cfg.Kernels[i].Path = expandPath(cfg.Kernels[i].Path)
	}
	cfg.Export.Dir = expandPath(cfg.Export.Dir)
	cfg.Log.File = expandPath(cfg.Log.File)
}

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) || p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// validate performs semantic validation on the loaded config.
func validate(cfg *Config) error {
	seen := map[string]bool{}
	defaults := 0
	for _, k := range cfg.Kernels {
		if k.Name == "" {
			return fmt.Errorf("kernel with empty name is not allowed")
		}
		if seen[k.Name] {
			return fmt.Errorf("duplicate kernel name: %q", k.Name)
		}
		seen[k.Name] = true
		if k.Path == "" {
			return fmt.Errorf("kernel %q: path is required", k.Name)
		}
		if k.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("only one kernel may be marked default, found %d", defaults)
	}

	if cfg.Query.Samples < 1 {
		return fmt.Errorf("query.samples must be at least 1, got %d", cfg.Query.Samples)
	}
	switch cfg.Export.Format {
	case "", string(v1.FormatCSV), string(v1.FormatTable), string(v1.FormatJSON):
	default:
		return fmt.Errorf("export.format %q not recognized (want csv, table or json)", cfg.Export.Format)
	}
	if cfg.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must not be negative, got %d", cfg.Cache.MaxEntries)
	}
	return nil
}

// ephemHome returns the ephem home directory (~/.ephem).
func ephemHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ephem"
	}
	return filepath.Join(home, ".ephem")
}

// EphemHome is the exported variant for use by other packages.
func EphemHome() string {
	return ephemHome()
}

// DefaultConfigTemplate is the content written by `ephem init`.
const DefaultConfigTemplate = `# ephem.yaml — Project manifest
# See: https://github.com/kepler-works/ephem/docs/cli-reference.md
version: "1"

project:
  name: my-study

# Binary DE ephemeris kernels. The first entry (or the one marked
# default) is used when --kernel is not given.
kernels:
  - name: de440
    path: ~/kernels/linux_p1550p2650.440
    default: true

query:
  frame: J2000
  observer: EARTH
  correction: lt+s
  samples: 500

export:
  dir: ./exports
  format: csv

cache:
  enabled: true
  max_entries: 64

log:
  level: info
  format: text
`
