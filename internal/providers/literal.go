package providers

import (
	"context"
	"sync"

	"github.com/systmms/extsecrets/pkg/provider"
)

// LiteralProvider serves values straight from configuration. It exists so
// the host pipeline can be exercised end to end without any remote store,
// and it follows the same lifecycle as every other provider: values become
// visible only after Update publishes a snapshot.
type LiteralProvider struct {
	name string

	mu     sync.RWMutex
	values map[string]string
	state  provider.ConnectionState

	cache *SecretCache
}

// NewLiteralProvider creates a literal provider with no values configured.
func NewLiteralProvider(name string) *LiteralProvider {
	return &LiteralProvider{
		name:   name,
		values: make(map[string]string),
		state:  provider.StateUninitialized,
		cache:  NewSecretCache(),
	}
}

// Name returns the provider's name
func (l *LiteralProvider) Name() string {
	return l.name
}

// Init reads the configured "values" map. Non-string entries are skipped.
func (l *LiteralProvider) Init(settings map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.values = make(map[string]string)
	if configured, ok := settings["values"].(map[string]interface{}); ok {
		for k, v := range configured {
			if str, ok := v.(string); ok {
				l.values[k] = str
			}
		}
	}
	return nil
}

// Connect always succeeds; there is nothing remote to reach.
func (l *LiteralProvider) Connect(ctx context.Context) provider.ConnectionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = provider.StateConnected
	return l.state
}

// Update publishes the configured values as a fresh snapshot.
func (l *LiteralProvider) Update(ctx context.Context) error {
	l.mu.RLock()
	if l.state != provider.StateConnected {
		state := l.state
		l.mu.RUnlock()
		return &provider.NotConnectedError{Provider: l.name, State: state}
	}

	snapshot := make(map[string]string, len(l.values))
	for k, v := range l.values {
		snapshot[k] = v
	}
	l.mu.RUnlock()

	l.cache.Replace(snapshot)
	return nil
}

// GetSecret reads from the published snapshot.
func (l *LiteralProvider) GetSecret(name string) (string, error) {
	value, ok := l.cache.Get(name)
	if !ok {
		return "", &provider.NotFoundError{Provider: l.name, Key: name}
	}
	return value, nil
}

// SecretNames returns the identifiers in the published snapshot, sorted.
func (l *LiteralProvider) SecretNames() []string {
	return l.cache.Names()
}

// State returns the current connection state.
func (l *LiteralProvider) State() provider.ConnectionState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// LastError always returns nil; the literal provider cannot fail.
func (l *LiteralProvider) LastError() error {
	return nil
}

// SetValue sets a literal value (useful for testing). It does not become
// visible to GetSecret until the next Update.
func (l *LiteralProvider) SetValue(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[key] = value
}
