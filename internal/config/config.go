// Package config provides layered configuration for fluidspec using koanf.
// Values are applied in order: defaults, user config
// (~/.config/fluidspec/config.yml), project config (.fluidspec/config.yml or
// .fluidspec/config.json), FLUIDSPEC_* environment variables, then flag
// overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "FLUIDSPEC_"

// Configuration represents the fluidspec configuration.
type Configuration struct {
	// Source selects where templates come from: auto, path, package or embedded.
	Source string `koanf:"source" yaml:"source" json:"source" validate:"oneof=auto path package embedded"`
	// BasePath is the template package root used by the path source.
	BasePath string `koanf:"base_path" yaml:"base_path" json:"base_path"`
	// PackageName is the package.json name identifying the template package.
	PackageName string `koanf:"package_name" yaml:"package_name" json:"package_name" validate:"required"`
	// Force is the default for --force.
	Force bool `koanf:"force" yaml:"force" json:"force"`
	// Exclude lists doublestar patterns of template files never installed.
	Exclude  []string `koanf:"exclude" yaml:"exclude" json:"exclude" validate:"dive,required"`
	LogLevel string   `koanf:"log_level" yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectRoot is the directory holding .fluidspec/ (default: working directory)
	ProjectRoot string
	// ProjectConfigPath overrides the project config file
	ProjectConfigPath string
	// UserConfigPath overrides the user config file; "-" disables it
	UserConfigPath string
	// Overrides are applied last, keyed like the config file (e.g. "force")
	Overrides map[string]interface{}
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying override %s: %w", key, err)
		}
	}

	return finalizeConfig(k)
}

func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "-" {
		return nil
	}
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads .fluidspec/config.yml, falling back to
// .fluidspec/config.json. When both exist the YAML file wins.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	if opts.ProjectConfigPath != "" {
		if !fileExists(opts.ProjectConfigPath) {
			return fmt.Errorf("config file not found: %s", opts.ProjectConfigPath)
		}
		return loadByExtension(k, opts.ProjectConfigPath)
	}

	yamlPath := ProjectConfigPath(opts.ProjectRoot)
	jsonPath := ProjectJSONConfigPath(opts.ProjectRoot)
	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if jsonExists && !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: %s is ignored because %s exists\n", jsonPath, yamlPath)
		}
	case jsonExists:
		if err := loadJSONConfig(k, jsonPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	}
	return nil
}

func loadByExtension(k *koanf.Koanf, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSONConfig(k, path, "project")
	}
	return loadYAMLConfig(k, path, "project")
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return &ValidationError{FilePath: path, Message: fmt.Sprintf("invalid %s config: %v", configType, err)}
	}
	return nil
}

// loadEnvironmentConfig loads FLUIDSPEC_* overrides. FLUIDSPEC_EXCLUDE is a
// comma-separated list.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envTransform(key)
		if key == "exclude" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.BasePath = expandHomePath(cfg.BasePath)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: FLUIDSPEC_BASE_PATH -> base_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
