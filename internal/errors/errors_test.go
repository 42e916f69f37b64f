package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	t.Parallel()

	inner := errors.New("dial tcp: connection refused")
	err := UserError{
		Message:    "Failed to reach the secret store",
		Details:    inner.Error(),
		Suggestion: "Check your network",
		Err:        inner,
	}

	assert.Contains(t, err.Error(), "Failed to reach the secret store")
	assert.Contains(t, err.Error(), "Details: dial tcp: connection refused")
	assert.Contains(t, err.Error(), "Try: Check your network")
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestUserErrorFallsBackToWrapped(t *testing.T) {
	t.Parallel()

	inner := errors.New("root cause")
	err := UserError{Err: inner}
	assert.Contains(t, err.Error(), "root cause")
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := ConfigError{
		Field:      "region",
		Value:      "",
		Message:    "region is required",
		Suggestion: "Set region to e.g. us-east-1",
	}
	assert.Contains(t, err.Error(), "field 'region'")
	assert.Contains(t, err.Error(), "region is required")
}

func TestStoreErrorSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		suggestion string
	}{
		{
			name:       "access denied",
			err:        errors.New("AccessDeniedException: not authorized"),
			suggestion: "secretsmanager:BatchGetSecretValue",
		},
		{
			name:       "bad credentials",
			err:        errors.New("failed to retrieve credentials"),
			suggestion: "aws configure",
		},
		{
			name:       "throttled",
			err:        errors.New("ThrottlingException: rate exceeded"),
			suggestion: "rate limit",
		},
		{
			name:       "unknown host",
			err:        errors.New("dial tcp: no such host"),
			suggestion: "Unable to connect",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := StoreError("aws.secretsmanager", "update", tt.err)
			assert.Contains(t, wrapped.Error(), "aws.secretsmanager store error during update")
			assert.Contains(t, wrapped.Error(), tt.suggestion)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(errors.New("ThrottlingException: slow down")))
	assert.True(t, IsRetryable(fmt.Errorf("request failed: %w", errors.New("i/o timeout"))))
	assert.True(t, IsRetryable(errors.New("connection reset by peer")))
	assert.False(t, IsRetryable(errors.New("ResourceNotFoundException")))
}
