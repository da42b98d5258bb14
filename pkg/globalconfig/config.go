package globalconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jaspreet-dot-casa/nattd/data"
	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
)

// Version is the current config schema version.
const Version = "1.0"

// Environment variable prefix for nattd configuration.
const envPrefix = "NATTD"

var (
	// ErrInvalidOutputMode is returned when output_mode is not quiet or verbose.
	ErrInvalidOutputMode = errors.New("invalid output mode")
	// ErrInvalidDefault is returned when a default input fails validation.
	ErrInvalidDefault = errors.New("invalid default")
)

// Config represents the user-level nattd configuration.
type Config struct {
	Version      string           `mapstructure:"version" yaml:"version"`
	Distro       string           `mapstructure:"distro" yaml:"distro"`
	OutputMode   string           `mapstructure:"output_mode" yaml:"output_mode"`
	CatalogPath  string           `mapstructure:"catalog_path" yaml:"catalog_path,omitempty"`   // Empty: embedded catalog
	TemplatePath string           `mapstructure:"template_path" yaml:"template_path,omitempty"` // Empty: embedded template
	OutputDir    string           `mapstructure:"output_dir" yaml:"output_dir"`
	Defaults     Defaults         `mapstructure:"defaults" yaml:"defaults"`
	Dependencies []DependencyRule `mapstructure:"dependencies" yaml:"dependencies,omitempty"` // Replaces the built-in rules when set
}

// Defaults holds fallback values for special inputs.
type Defaults struct {
	Hostname string `mapstructure:"hostname" yaml:"hostname"`
	SwapSize string `mapstructure:"swap_size" yaml:"swap_size"`
}

// DependencyRule forces entries on when any When entry is selected.
type DependencyRule struct {
	Name   string   `mapstructure:"name" yaml:"name"`
	When   []string `mapstructure:"when" yaml:"when"`
	Force  []string `mapstructure:"force" yaml:"force"`
	Notice string   `mapstructure:"notice" yaml:"notice,omitempty"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version:    Version,
		Distro:     data.DefaultDistro,
		OutputMode: string(compiler.Quiet),
		OutputDir:  ".",
		Defaults: Defaults{
			Hostname: compiler.DefaultHostname,
			SwapSize: compiler.DefaultSwapSize,
		},
	}
}

// Loader handles loading configuration from file and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	defaults := NewConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("distro", defaults.Distro)
	v.SetDefault("output_mode", defaults.OutputMode)
	v.SetDefault("catalog_path", "")
	v.SetDefault("template_path", "")
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("defaults.hostname", defaults.Defaults.Hostname)
	v.SetDefault("defaults.swap_size", defaults.Defaults.SwapSize)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names for the paths
	_ = v.BindEnv("catalog_path", "NATTD_CATALOG", "NATTD_CATALOG_PATH")
	_ = v.BindEnv("template_path", "NATTD_TEMPLATE", "NATTD_TEMPLATE_PATH")

	return &Loader{v: v}
}

// Load loads configuration from path, or the default location when path is
// empty. A missing file is not an error. Environment variables take
// precedence over file values.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expanded)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	return &cfg, nil
}

// Validate checks the output mode and default inputs.
func (c *Config) Validate() error {
	if _, err := compiler.ParseOutputMode(c.OutputMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutputMode, err)
	}
	if _, err := c.Specials(); err != nil {
		return err
	}
	for i, rule := range c.Dependencies {
		if len(rule.When) == 0 || len(rule.Force) == 0 {
			return fmt.Errorf("dependency rule %d (%s) needs both when and force", i+1, rule.Name)
		}
	}
	return nil
}

// Mode returns the parsed output mode.
func (c *Config) Mode() (compiler.OutputMode, error) {
	mode, err := compiler.ParseOutputMode(c.OutputMode)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutputMode, err)
	}
	return mode, nil
}

// Specials returns the special-entry table with the configured defaults.
func (c *Config) Specials() (compiler.Specials, error) {
	specials := compiler.DefaultSpecials()

	specials, err := specials.WithDefault(compiler.SpecialHostname, c.Defaults.Hostname)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefault, err)
	}
	specials, err = specials.WithDefault(compiler.SpecialSwapSize, c.Defaults.SwapSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefault, err)
	}
	return specials, nil
}

// Rules returns the configured dependency rules, or nil to use the
// built-in ones.
func (c *Config) Rules() []compiler.Rule {
	if len(c.Dependencies) == 0 {
		return nil
	}
	rules := make([]compiler.Rule, len(c.Dependencies))
	for i, d := range c.Dependencies {
		rules[i] = compiler.Rule{Name: d.Name, When: d.When, Force: d.Force, Notice: d.Notice}
	}
	return rules
}

// Save writes the config to path atomically.
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	content := append([]byte(fileHeader), body...)
	if err := atomic.WriteFile(expanded, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

const fileHeader = `# nattd configuration
#
# output_mode:   quiet (discard routine command output) or verbose
# catalog_path:  catalog file to use instead of the embedded one
# template_path: script template to use instead of the embedded one
# defaults:      fallbacks for invalid or missing hostname / swap size input
# dependencies:  replaces the built-in rules, e.g.
#   - name: rpmfusion-for-codecs
#     when: [system_config/multimedia_codecs/*]
#     force: [system_config/useful_repos/enable_rpmfusion]
`
