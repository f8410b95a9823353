package config

import (
	"os"
	"path/filepath"
)

// ProjectDirName is the per-project fluidspec directory.
const ProjectDirName = ".fluidspec"

// UserConfigPath returns the path to the user-level config file, following
// os.UserConfigDir (XDG_CONFIG_HOME is respected on Linux):
//   - Linux: ~/.config/fluidspec/config.yml
//   - macOS: ~/Library/Application Support/fluidspec/config.yml
//   - Windows: %APPDATA%\fluidspec\config.yml
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "fluidspec"), nil
}

// ProjectConfigPath returns the YAML project config of projectRoot.
func ProjectConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, ProjectDirName, "config.yml")
}

// ProjectJSONConfigPath returns the JSON project config of projectRoot.
func ProjectJSONConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, ProjectDirName, "config.json")
}
