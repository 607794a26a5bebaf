// Package config loads .promptctl.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/override"
	"github.com/debendraoli/promptctl/internal/role"
	"github.com/debendraoli/promptctl/internal/skillset"
)

// FileNames are the config file names searched for, in order.
var FileNames = []string{".promptctl.yaml", ".promptctl.yml"}

// EnvPrefix prefixes environment variables that override config values.
const EnvPrefix = "PROMPTCTL"

// Config represents the full promptctl configuration
type Config struct {
	DefaultAgent string                    `mapstructure:"default_agent" yaml:"default_agent,omitempty" jsonschema:"description=Agent used when none is given on the command line"`
	Defaults     DefaultsConfig            `mapstructure:"defaults" yaml:"defaults,omitempty" jsonschema:"description=Default composition options"`
	Overrides    map[string]OverrideConfig `mapstructure:"overrides" yaml:"overrides,omitempty" jsonschema:"description=Per-language override keyed by language"`
	Skillsets    []string                  `mapstructure:"skillsets" yaml:"skillsets,omitempty" jsonschema:"description=Paths of custom skillset YAML files"`
	Variables    map[string]string         `mapstructure:"variables" yaml:"variables,omitempty" jsonschema:"description=Values substituted for {{name}} placeholders"`

	// Dir is the directory of the loaded file; relative paths resolve against it.
	Dir string `mapstructure:"-" yaml:"-" json:"-"`
}

// DefaultsConfig contains default composition settings
type DefaultsConfig struct {
	Role       string   `mapstructure:"role" yaml:"role,omitempty"`
	Size       string   `mapstructure:"size" yaml:"size,omitempty" jsonschema:"enum=minimal,enum=compact,enum=full"`
	Sections   []string `mapstructure:"sections" yaml:"sections,omitempty"`
	Smart      bool     `mapstructure:"smart" yaml:"smart,omitempty"`
	Format     string   `mapstructure:"format" yaml:"format,omitempty" jsonschema:"enum=markdown,enum=plain"`
	Guardrails *bool    `mapstructure:"guardrails" yaml:"guardrails,omitempty"`
}

// OverrideConfig is the config form of a per-language override.
type OverrideConfig struct {
	Mode    string `mapstructure:"mode" yaml:"mode,omitempty" jsonschema:"enum=replace,enum=prepend,enum=append,enum=merge"`
	Content string `mapstructure:"content" yaml:"content,omitempty"`
	// File is read into Content when Content is empty.
	File    string `mapstructure:"file" yaml:"file,omitempty"`
	Prepend string `mapstructure:"prepend" yaml:"prepend,omitempty"`
	Append  string `mapstructure:"append" yaml:"append,omitempty"`
}

// Locate returns the first config file found walking up from dir, then in
// home. It returns "" when there is none.
func Locate(dir, home string) string {
	for d := dir; ; {
		if p := find(d); p != "" {
			return p
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	if home != "" {
		return find(home)
	}
	return ""
}

func find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// NewViper returns a viper instance bound to PROMPTCTL_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"default_agent",
		"defaults.role",
		"defaults.size",
		"defaults.smart",
		"defaults.format",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

// Read loads the config file at path. An empty path loads only the
// environment and defaults.
func Read(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return Load(v)
}

// Load loads configuration from a prepared viper instance
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.Dir = filepath.Dir(used)
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.DefaultAgent == "" {
		cfg.DefaultAgent = "claude"
	}

	if cfg.Defaults.Role == "" {
		cfg.Defaults.Role = role.Default
	}

	if cfg.Defaults.Size == "" {
		cfg.Defaults.Size = skillset.Compact.String()
	}

	if cfg.Defaults.Format == "" {
		cfg.Defaults.Format = string(compose.FormatMarkdown)
	}
}

// GuardrailsEnabled reports whether guardrails are on by default.
func (c *Config) GuardrailsEnabled() bool {
	return c.Defaults.Guardrails == nil || *c.Defaults.Guardrails
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.DefaultAgent != "" && !agent.Exists(c.DefaultAgent) {
		errs = append(errs, fmt.Errorf("invalid default_agent %q (must be one of %s)", c.DefaultAgent, strings.Join(agent.List(), ", ")))
	}

	if c.Defaults.Role != "" {
		if _, err := role.Get(c.Defaults.Role); err != nil {
			errs = append(errs, fmt.Errorf("invalid defaults.role: %w", err))
		}
	}

	if c.Defaults.Size != "" {
		if _, err := skillset.ParseTier(c.Defaults.Size); err != nil {
			errs = append(errs, fmt.Errorf("invalid defaults.size: %w", err))
		}
	}

	for _, name := range c.Defaults.Sections {
		if _, err := skillset.CanonicalSection(name); err != nil {
			errs = append(errs, fmt.Errorf("invalid defaults.sections: %w", err))
		}
	}

	if c.Defaults.Format != "" {
		if _, err := compose.ParseFormat(c.Defaults.Format); err != nil {
			errs = append(errs, fmt.Errorf("invalid defaults.format: %w", err))
		}
	}

	for _, lang := range sortedKeys(c.Overrides) {
		oc := c.Overrides[lang]
		if _, err := override.ParseMode(oc.Mode); err != nil {
			errs = append(errs, fmt.Errorf("invalid overrides.%s.mode: %w", lang, err))
		}
		if oc.Content != "" && oc.File != "" {
			errs = append(errs, fmt.Errorf("overrides.%s: content and file are mutually exclusive", lang))
		}
	}

	return errors.Join(errs...)
}

// OverrideSet converts the configured overrides, reading file-backed content.
func (c *Config) OverrideSet() (override.Set, error) {
	set := make(override.Set, len(c.Overrides))
	for _, lang := range sortedKeys(c.Overrides) {
		oc := c.Overrides[lang]
		mode, err := override.ParseMode(oc.Mode)
		if err != nil {
			return nil, fmt.Errorf("override for %s: %w", lang, err)
		}

		content := oc.Content
		if content == "" && oc.File != "" {
			data, err := os.ReadFile(c.resolve(oc.File))
			if err != nil {
				return nil, fmt.Errorf("failed to read override file for %s: %w", lang, err)
			}
			content = string(data)
		}

		ov := &override.Override{
			Language: lang,
			Mode:     mode,
			Content:  content,
			Prepend:  oc.Prepend,
			Append:   oc.Append,
		}
		if err := ov.Validate(); err != nil {
			return nil, err
		}
		set.Add(ov)
	}
	return set, nil
}

// RegisterSkillsets loads the configured custom skillset files into store.
func (c *Config) RegisterSkillsets(store *skillset.Store) error {
	for _, p := range c.Skillsets {
		sk, err := skillset.LoadFile(c.resolve(p))
		if err != nil {
			return err
		}
		if err := store.Register(sk); err != nil {
			return fmt.Errorf("failed to register skillset %s: %w", p, err)
		}
	}
	return nil
}

// Inputs returns the resolved paths of the files the config refers to:
// custom skillsets and override content files.
func (c *Config) Inputs() []string {
	var paths []string
	for _, p := range c.Skillsets {
		paths = append(paths, c.resolve(p))
	}
	for _, lang := range sortedKeys(c.Overrides) {
		if f := c.Overrides[lang].File; f != "" {
			paths = append(paths, c.resolve(f))
		}
	}
	return paths
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
