package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRoundTrip(t *testing.T) {
	buf := NewBufferFromString("wJalrXUtnFEMI/K7MDENG/bPxRfiCY")

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()

	assert.Equal(t, "wJalrXUtnFEMI/K7MDENG/bPxRfiCY", locked.String())
}

func TestBufferOpenMultipleTimes(t *testing.T) {
	buf := NewBufferFromString("session-token")

	for i := 0; i < 3; i++ {
		locked, err := buf.Open()
		require.NoError(t, err)
		assert.Equal(t, "session-token", locked.String())
		locked.Destroy()
	}
}

func TestBufferDestroy(t *testing.T) {
	buf := NewBufferFromString("secret-key")
	buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()
	assert.Empty(t, locked.Bytes())

	// Destroy is idempotent.
	buf.Destroy()
}
