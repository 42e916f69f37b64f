package provider

import (
	"context"
	"sync"
)

// MockProvider is an in-memory Provider implementation for host-side tests.
//
// It honors the full lifecycle contract: GetSecret serves only what the last
// Update published, Connect can be made to fail, and Update can be made to
// abort without touching the published snapshot.
type MockProvider struct {
	name string

	mu         sync.RWMutex
	state      ConnectionState
	lastErr    error
	store      map[string]string // simulated remote store contents
	snapshot   map[string]string // what Update last published
	connectErr error
	updateErr  error
}

// NewMockProvider creates a mock provider with an empty simulated store.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		name:     name,
		state:    StateUninitialized,
		store:    make(map[string]string),
		snapshot: make(map[string]string),
	}
}

// Name returns the provider's name.
func (m *MockProvider) Name() string {
	return m.name
}

// Init accepts any settings.
func (m *MockProvider) Init(settings map[string]interface{}) error {
	return nil
}

// Connect transitions to connected, or to error if FailConnect was set.
func (m *MockProvider) Connect(ctx context.Context) ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateConnecting
	if m.connectErr != nil {
		m.lastErr = m.connectErr
		m.state = StateError
		return m.state
	}
	m.lastErr = nil
	m.state = StateConnected
	return m.state
}

// Update copies the simulated store into the published snapshot.
func (m *MockProvider) Update(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConnected {
		return &NotConnectedError{Provider: m.name, State: m.state}
	}
	if m.updateErr != nil {
		return m.updateErr
	}

	next := make(map[string]string, len(m.store))
	for k, v := range m.store {
		next[k] = v
	}
	m.snapshot = next
	return nil
}

// GetSecret reads from the published snapshot.
func (m *MockProvider) GetSecret(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.snapshot[name]
	if !ok {
		return "", &NotFoundError{Provider: m.name, Key: name}
	}
	return value, nil
}

// SecretNames returns the identifiers in the published snapshot.
func (m *MockProvider) SecretNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.snapshot))
	for name := range m.snapshot {
		names = append(names, name)
	}
	return names
}

// State returns the current connection state.
func (m *MockProvider) State() ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// LastError returns the retained Connect failure, or nil.
func (m *MockProvider) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// SetValue places a value in the simulated remote store. It becomes visible
// to GetSecret only after the next successful Update.
func (m *MockProvider) SetValue(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
}

// DeleteValue removes a value from the simulated remote store.
func (m *MockProvider) DeleteValue(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
}

// FailConnect makes subsequent Connect calls fail with err. Pass nil to
// restore normal behavior.
func (m *MockProvider) FailConnect(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectErr = err
}

// FailUpdate makes subsequent Update calls fail with err without touching
// the published snapshot. Pass nil to restore normal behavior.
func (m *MockProvider) FailUpdate(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateErr = err
}
