package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvironmentVariable_String verifies the KEY=VALUE rendering passed
// to `heroku config:set`, including values that contain "=".
func TestEnvironmentVariable_String(t *testing.T) {
	tests := []struct {
		name string
		v    EnvironmentVariable
		want string
	}{
		{"plain", EnvironmentVariable{Key: "SHOPIFY_API_KEY", Value: "abc"}, "SHOPIFY_API_KEY=abc"},
		{"embedded equals", EnvironmentVariable{Key: "SHOPIFY_API_SECRET", Value: "a=b=c"}, "SHOPIFY_API_SECRET=a=b=c"},
		{"empty value", EnvironmentVariable{Key: "EMPTY", Value: ""}, "EMPTY="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

// TestCommandResult_Lines checks that blank lines are dropped and CRLF
// output from Windows builds of the CLIs is normalized.
func TestCommandResult_Lines(t *testing.T) {
	r := CommandResult{Stdout: "\nFOO=1\r\n  \nSHOPIFY_API_KEY=abc\n\n"}
	assert.Equal(t, []string{"FOO=1", "SHOPIFY_API_KEY=abc"}, r.Lines())

	assert.Nil(t, CommandResult{}.Lines())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "no matching keys")
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Equal(t, "no matching keys", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.Empty(t, err.Hint)
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("exit status 1")
		err := WrapCLIError(ExitGeneralError, "deployment failed", inner)
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Equal(t, "deployment failed: exit status 1", err.Error())
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("hint", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "deployment failed").WithHint("commit your changes")
		assert.Equal(t, "commit your changes", err.Hint)
		// The hint is presentation only and stays out of Error().
		assert.Equal(t, "deployment failed", err.Error())
	})

	t.Run("errors.As through fmt wrapping", func(t *testing.T) {
		inner := errors.New("connection refused")
		wrapped := fmt.Errorf("outer: %w", WrapCLIError(ExitGeneralError, "fetch failed", inner))

		var cliErr *CLIError
		require.True(t, errors.As(wrapped, &cliErr))
		assert.Equal(t, ExitGeneralError, cliErr.Code)
		assert.True(t, errors.Is(wrapped, inner))
	})
}
