package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// StoreError enhances secret-store errors with context and a suggestion
func StoreError(store string, operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("%s store error during %s", store, operation),
		Suggestion: getStoreSuggestion(err),
		Err:        err,
	}
}

// getStoreSuggestion returns helpful suggestions based on the error text
func getStoreSuggestion(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "credentials") || strings.Contains(errStr, "authorization") {
		return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
	}
	if strings.Contains(errStr, "AccessDenied") {
		return "Check IAM permissions for secretsmanager:ListSecrets and secretsmanager:BatchGetSecretValue"
	}
	if strings.Contains(errStr, "ResourceNotFoundException") {
		return "Verify the secret name and region. List secrets with: 'aws secretsmanager list-secrets'"
	}
	if strings.Contains(errStr, "ThrottlingException") {
		return "AWS rate limit exceeded. Wait a moment and try again"
	}
	if strings.Contains(errStr, "timeout") {
		return "The operation timed out. Check your network connection and try again"
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
		return "Unable to connect. Check your network and store configuration"
	}

	return ""
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	retryablePatterns := []string{
		"timeout",
		"temporary failure",
		"connection reset",
		"broken pipe",
		"rate limit",
		"throttling",
		"too many requests",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(strings.ToLower(errStr), pattern) {
			return true
		}
	}

	return false
}
