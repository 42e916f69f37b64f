package providers

import (
	"fmt"

	"github.com/systmms/extsecrets/internal/config"
	"github.com/systmms/extsecrets/internal/logging"
	"github.com/systmms/extsecrets/pkg/provider"
)

// Registry manages provider creation and registration
type Registry struct {
	logger    *logging.Logger
	factories map[string]ProviderFactory
}

// ProviderFactory creates an initialized provider instance from store settings
type ProviderFactory func(name string, logger *logging.Logger, settings map[string]interface{}) (provider.Provider, error)

// NewRegistry creates a new provider registry with built-in providers
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.New(false, true)
	}

	registry := &Registry{
		logger:    logger,
		factories: make(map[string]ProviderFactory),
	}

	// Register built-in providers
	registry.RegisterFactory("aws.secretsmanager", NewAWSSecretsManagerProviderFactory)
	registry.RegisterFactory("literal", NewLiteralProviderFactory)
	registry.RegisterFactory("mock", NewMockProviderFactory)

	return registry
}

// RegisterFactory registers a provider factory for a given type
func (r *Registry) RegisterFactory(providerType string, factory ProviderFactory) {
	r.factories[providerType] = factory
}

// CreateProvider creates an initialized provider from a store configuration.
// The provider is not yet connected; callers drive Connect and Update.
func (r *Registry) CreateProvider(name string, cfg config.SecretStoreConfig) (provider.Provider, error) {
	factory, exists := r.factories[cfg.Type]
	if !exists {
		return nil, fmt.Errorf("unknown secret store type: %s", cfg.Type)
	}

	return factory(name, r.logger, cfg.Settings)
}

// SupportedTypes returns a list of supported store types
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.factories))
	for providerType := range r.factories {
		types = append(types, providerType)
	}
	return types
}

// IsSupported checks if a store type is supported
func (r *Registry) IsSupported(providerType string) bool {
	_, exists := r.factories[providerType]
	return exists
}

// Factory functions for built-in providers

// NewAWSSecretsManagerProviderFactory creates an AWS Secrets Manager provider factory
func NewAWSSecretsManagerProviderFactory(name string, logger *logging.Logger, settings map[string]interface{}) (provider.Provider, error) {
	p := NewAWSSecretsManagerProvider(name, logger)
	if err := p.Init(settings); err != nil {
		return nil, err
	}
	return p, nil
}

// NewLiteralProviderFactory creates a literal provider factory
func NewLiteralProviderFactory(name string, logger *logging.Logger, settings map[string]interface{}) (provider.Provider, error) {
	p := NewLiteralProvider(name)
	if err := p.Init(settings); err != nil {
		return nil, err
	}
	return p, nil
}

// NewMockProviderFactory creates a mock provider factory
func NewMockProviderFactory(name string, logger *logging.Logger, settings map[string]interface{}) (provider.Provider, error) {
	p := provider.NewMockProvider(name)

	// Default test values so the pipeline has something to serve.
	p.SetValue("test-secret", "mock-value")
	p.SetValue("api-key", "mock-api-key-123")

	if values, ok := settings["values"].(map[string]interface{}); ok {
		for k, v := range values {
			if str, ok := v.(string); ok {
				p.SetValue(k, str)
			}
		}
	}

	return p, nil
}
