package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Buffer holds credential material in a memguard enclave so it is encrypted
// at rest in process memory and protected from swapping via mlock.
//
// memguard.Enclave has no direct destroy; Destroy here marks the buffer
// unusable and drops the reference. For full cleanup of all memguard data,
// call memguard.Purge() at application exit.
type Buffer struct {
	mu        sync.RWMutex
	enclave   *memguard.Enclave
	destroyed bool
}

// NewBuffer copies data into a protected memory region. The caller should
// zero the original slice once the buffer is created.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// NewBufferFromString copies s into a protected memory region.
func NewBufferFromString(s string) *Buffer {
	return NewBuffer([]byte(s))
}

// Open decrypts the enclave into a locked buffer. The caller MUST call
// Destroy() on the returned LockedBuffer to wipe the plaintext.
//
//	locked, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer locked.Destroy()
//	use(locked.String())
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed || b.enclave == nil {
		return memguard.NewBufferFromBytes([]byte{}), nil
	}
	return b.enclave.Open()
}

// Destroy marks the buffer as unusable. Idempotent; after Destroy, Open
// returns an empty locked buffer.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.enclave = nil
	b.destroyed = true
}
