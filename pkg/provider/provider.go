package provider

import "context"

// ConnectionState describes the lifecycle state of a provider's connection
// to its backing secret store.
//
// Within a single Connect attempt the transitions are monotonic:
// uninitialized -> connecting -> connected or error. A later Connect call
// may re-enter connecting from any state.
type ConnectionState int

const (
	// StateUninitialized is the state before Connect has ever been called.
	StateUninitialized ConnectionState = iota

	// StateConnecting is the transient state while a client is being built
	// and the connectivity probe is in flight.
	StateConnecting

	// StateConnected means the last Connect attempt succeeded and Update
	// may be called.
	StateConnected

	// StateError means the last Connect attempt failed. The cause is
	// retained behind Provider.LastError.
	StateError
)

// String returns the lowercase name of the state.
func (s ConnectionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Provider is the uniform interface for external secret store backends.
//
// A provider is a read-only mirror of one remote store: Update refreshes an
// in-memory snapshot of every secret visible to the configured credentials,
// and GetSecret serves lookups from that snapshot without touching the
// network. Host applications decide when to call Update; the provider has no
// refresh loop of its own.
//
// Implementations must be safe for a concurrent GetSecret during an in-flight
// Update. Concurrent Update calls on one instance are serialized by the
// implementation.
type Provider interface {
	// Name returns the instance name this provider was registered under.
	Name() string

	// Init validates and stores the provider settings. It performs no
	// network I/O. Missing or invalid required fields (which fields are
	// required depends on the configured auth method) yield a *ConfigError.
	Init(settings map[string]interface{}) error

	// Connect builds an authenticated client and probes connectivity with a
	// minimal store call. It never returns an error: callers observe failure
	// through the returned state, and the triggering error is retained
	// behind LastError. Calling Connect again after a failure retries from
	// scratch.
	Connect(ctx context.Context) ConnectionState

	// Update refreshes the secret snapshot: it lists every visible secret
	// identifier, fetches current values in bulk, and atomically replaces
	// the cache. Any listing or fetch failure aborts the whole cycle and
	// leaves the previously published snapshot untouched. Returns
	// *NotConnectedError if the provider is not connected.
	Update(ctx context.Context) error

	// GetSecret returns the cached value for name. It never performs I/O
	// and never blocks on an in-flight Update. A name absent from the
	// current snapshot yields a *NotFoundError.
	GetSecret(name string) (string, error)

	// SecretNames returns the identifiers present in the current snapshot.
	SecretNames() []string

	// State returns the current connection state.
	State() ConnectionState

	// LastError returns the error retained by the most recent failed
	// Connect attempt, or nil.
	LastError() error
}

// ConfigError indicates that provider settings are missing or invalid.
type ConfigError struct {
	// Provider is the name of the provider whose settings are invalid.
	Provider string

	// Field is the offending settings field, when known.
	Field string

	// Message describes what is wrong with the settings.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return "invalid settings for " + e.Provider + ": field '" + e.Field + "': " + e.Message
	}
	return "invalid settings for " + e.Provider + ": " + e.Message
}

// NotConnectedError indicates that Update was called before the provider
// reached the connected state. This is a programmer error in the host.
type NotConnectedError struct {
	// Provider is the name of the provider that was not connected.
	Provider string

	// State is the state the provider was in at the time of the call.
	State ConnectionState
}

// Error implements the error interface.
func (e *NotConnectedError) Error() string {
	return "provider " + e.Provider + " is not connected (state: " + e.State.String() + ")"
}

// NotFoundError indicates that a requested secret is absent from the
// provider's current snapshot. Lookups never fall back to a default value.
type NotFoundError struct {
	// Provider is the name of the provider where the secret was not found.
	Provider string

	// Key is the secret identifier that could not be found.
	Key string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return "secret not found: " + e.Key + " in " + e.Provider
}

// AuthError indicates that authentication or connectivity to the backing
// store failed, during either the Connect probe or an Update cycle.
type AuthError struct {
	// Provider is the name of the provider that failed authentication.
	Provider string

	// Message provides details about the failure.
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return "authentication failed for " + e.Provider + ": " + e.Message
}
