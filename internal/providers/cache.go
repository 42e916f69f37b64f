package providers

import (
	"sort"
	"sync"
)

// SecretCache is the authoritative in-memory mapping from secret identifier
// to value. The map handle is replaced wholesale on each successful refresh
// and never patched entry-by-entry, so a concurrent reader always observes
// either the fully-old or the fully-new generation.
//
// Values are never persisted to disk.
type SecretCache struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewSecretCache creates an empty cache. Lookups against it fail until the
// first Replace.
func NewSecretCache() *SecretCache {
	return &SecretCache{secrets: make(map[string]string)}
}

// Get retrieves a value by identifier. Returns the value and true if
// present, empty string and false otherwise.
func (c *SecretCache) Get(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.secrets[name]
	return value, ok
}

// Replace publishes a new generation, discarding the previous one entirely.
// The caller must not mutate secrets after handing it over.
func (c *SecretCache) Replace(secrets map[string]string) {
	if secrets == nil {
		secrets = make(map[string]string)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.secrets = secrets
}

// Names returns the identifiers in the current generation, sorted.
func (c *SecretCache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.secrets))
	for name := range c.secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of secrets in the current generation.
func (c *SecretCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.secrets)
}
