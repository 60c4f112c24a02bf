package coinvoice

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_UnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{"prod", Prod},
		{"PRODUCTION", Prod},
		{" sandbox ", Sandbox},
		{"test", Sandbox},
	}
	for _, tt := range tests {
		var e Environment
		require.NoError(t, e.UnmarshalText([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, e, tt.in)
	}
}

func TestEnvironment_UnmarshalTextInvalid(t *testing.T) {
	var e Environment
	err := e.UnmarshalText([]byte("staging"))

	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, err.Error(), "staging")
}

func TestEnvironment_BaseURL(t *testing.T) {
	assert.Equal(t, ProductionURL, Prod.BaseURL())
	assert.Equal(t, SandboxURL, Sandbox.BaseURL())
	assert.True(t, Sandbox.IsSandbox())
	assert.False(t, Prod.IsSandbox())

	text, err := Sandbox.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sandbox", string(text))

	bad := Environment(7)
	assert.Empty(t, bad.BaseURL())
	assert.Equal(t, "Environment(7)", bad.String())
}
