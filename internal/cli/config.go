package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/geocap/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir  = "data_dir"
	cfgKeyDisabled = "disabled"
	cfgKeyVerbose  = "verbose"

	envPrefix = "GEOCAP"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# geocap configuration

# Data directory for the series store (optional; overridable by --data-dir)
# data_dir:

# Capabilities switched off at startup, e.g. [pandas]
disabled: []

# Report calls skipped for missing capabilities
verbose: true
`

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. GEOCAP_* environment variables
// override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyVerbose, true)
	v.SetDefault(cfgKeyDisabled, []string{})
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in configDir.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
