package config

import (
	"fmt"
	"os"

	extserrors "github.com/systmms/extsecrets/internal/errors"
	"github.com/systmms/extsecrets/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the extsecrets.yaml structure
type Definition struct {
	Version      int                          `yaml:"version"`
	SecretStores map[string]SecretStoreConfig `yaml:"secretStores"`
}

// SecretStoreConfig holds store-specific configuration. Settings beyond the
// store type (region, auth method, credentials, filters) are inlined and
// passed through to the provider untouched.
type SecretStoreConfig struct {
	Type     string                 `yaml:"type"`
	Settings map[string]interface{} `yaml:",inline"`
}

// Load reads and parses the extsecrets.yaml file
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return extserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Create an extsecrets.yaml declaring your secret stores",
			}
		}
		return extserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return extserrors.ConfigError{
			Field:      "path",
			Value:      c.Path,
			Message:    "invalid YAML: " + err.Error(),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if err := def.Validate(); err != nil {
		return err
	}

	c.Definition = &def
	return nil
}

// Validate checks structural requirements of the parsed definition
func (d *Definition) Validate() error {
	if d.Version != 1 {
		return extserrors.ConfigError{
			Field:      "version",
			Value:      d.Version,
			Message:    "unsupported configuration version",
			Suggestion: "Set version: 1",
		}
	}

	for name, store := range d.SecretStores {
		if store.Type == "" {
			return extserrors.ConfigError{
				Field:   fmt.Sprintf("secretStores.%s.type", name),
				Message: "store type is required",
			}
		}
	}

	return nil
}

// Store returns the configuration for a named secret store
func (c *Config) Store(name string) (SecretStoreConfig, error) {
	if c.Definition == nil {
		return SecretStoreConfig{}, extserrors.UserError{
			Message: "configuration not loaded",
		}
	}

	store, ok := c.Definition.SecretStores[name]
	if !ok {
		return SecretStoreConfig{}, extserrors.ConfigError{
			Field:      "secretStores",
			Value:      name,
			Message:    "no such secret store",
			Suggestion: "Run 'extsecrets stores' to list configured stores",
		}
	}
	return store, nil
}
