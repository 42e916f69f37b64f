package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/extsecrets/pkg/provider"
)

func TestLiteralProviderLifecycle(t *testing.T) {
	t.Parallel()

	l := NewLiteralProvider("local")
	require.NoError(t, l.Init(map[string]interface{}{
		"values": map[string]interface{}{
			"db-password": "hunter2",
			"api-key":     "abc123",
			"skipped":     42, // non-string, dropped
		},
	}))

	// Nothing visible before the first Update.
	err := l.Update(context.Background())
	var notConnected *provider.NotConnectedError
	require.ErrorAs(t, err, &notConnected)

	assert.Equal(t, provider.StateConnected, l.Connect(context.Background()))
	require.NoError(t, l.Update(context.Background()))

	value, err := l.GetSecret("db-password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	assert.Equal(t, []string{"api-key", "db-password"}, l.SecretNames())

	_, err = l.GetSecret("skipped")
	var notFound *provider.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLiteralProviderSetValueVisibleAfterUpdate(t *testing.T) {
	t.Parallel()

	l := NewLiteralProvider("local")
	require.NoError(t, l.Init(nil))
	l.Connect(context.Background())
	require.NoError(t, l.Update(context.Background()))

	l.SetValue("fresh", "value")
	_, err := l.GetSecret("fresh")
	require.Error(t, err)

	require.NoError(t, l.Update(context.Background()))
	value, err := l.GetSecret("fresh")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}
