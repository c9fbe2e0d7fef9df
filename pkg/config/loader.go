package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
)

// Load reads a YAML configuration file into cfg, substituting ${VAR_NAME}
// references with environment variable values first.
func Load(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path is provided by the operator
	if err != nil {
		return errors.Wrapf(err, errors.ErrorTypeConfig, "failed to read config file %q", filePath)
	}

	content := os.Expand(string(data), func(name string) string {
		return os.Getenv(name)
	})

	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse config YAML")
	}
	return nil
}
