// Package provider defines the uniform interface for external secret store
// backends in extsecrets.
//
// A backend mirrors one remote secret store into memory. The lifecycle is
// Init (store settings, no I/O) -> Connect (build client, probe) -> Update
// (list identifiers, bulk-fetch values, swap the snapshot). GetSecret is a
// synchronous read of the last successfully published snapshot and never
// triggers network I/O.
//
// The snapshot visible to GetSecret at any instant is either empty or the
// complete result of exactly one past successful Update. Partial listings or
// partial batch fetches are never published.
//
// Implementations live under internal/providers and are created through the
// registry there; this package only carries the contract, its state machine,
// and the error types hosts dispatch on.
package provider
