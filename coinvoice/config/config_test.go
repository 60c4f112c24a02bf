package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformal/coinvoice-plugins/coinvoice"
	"github.com/conformal/coinvoice-plugins/coinvoice/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"COINVOICE_API_KEY", "COINVOICE_ENV", "COINVOICE_HOST", "COINVOICE_SANDBOX_HOST", "COINVOICE_USER_AGENT", "COINVOICE_WEBHOOK_SECRET"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api_key: from-file
environment: sandbox
timeout: 15s
transport: resty
checkout:
  notification_url: http://shop.example/?wc-api=wc_coinvoice
  transaction_speed: "3"
webhook:
  secret: s3cret
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, coinvoice.Sandbox, cfg.Environment)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, config.TransportResty, cfg.Transport)
	assert.Equal(t, "s3cret", cfg.Webhook.Secret)
	assert.Equal(t, "/coinvoice", cfg.Webhook.Path, "defaults survive partial files")
	assert.Equal(t, coinvoice.DefaultUserAgent, cfg.UserAgent)

	opts := cfg.CheckoutOptions()
	assert.True(t, opts.Sandbox)
	assert.Equal(t, "3", opts.TransactionSpeed)
	assert.Equal(t, coinvoice.SandboxURL, cfg.PaymentHost())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api_key: from-file\n")
	t.Setenv("COINVOICE_API_KEY", "from-env")
	t.Setenv("COINVOICE_ENV", "test")
	t.Setenv("COINVOICE_HOST", "http://localhost:8000")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, coinvoice.Sandbox, cfg.Environment)
	assert.Equal(t, "http://localhost:8000", cfg.NewClient().GetHostName())
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{{{invalid yaml`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(writeConfig(t, "environment: staging\n"))
	var cerr *coinvoice.ConfigurationError
	assert.True(t, errors.As(err, &cerr), "got %v", err)

	_, err = config.Load(writeConfig(t, "transport: carrier-pigeon\n"))
	assert.True(t, errors.As(err, &cerr), "got %v", err)

	t.Setenv("COINVOICE_ENV", "staging")
	_, err = config.Load(writeConfig(t, ""))
	assert.True(t, errors.As(err, &cerr), "got %v", err)
}

func TestConfig_BaseURL(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, coinvoice.ProductionURL, cfg.BaseURL(coinvoice.Prod))
	assert.Equal(t, coinvoice.SandboxURL, cfg.BaseURL(coinvoice.Sandbox))
	assert.Equal(t, coinvoice.ProductionURL, cfg.PaymentHost())

	cfg.Host = "http://localhost:8000"
	cfg.SandboxHost = "http://localhost:8001"
	assert.Equal(t, "http://localhost:8000", cfg.PaymentHost())
	cfg.Environment = coinvoice.Sandbox
	assert.Equal(t, "http://localhost:8001", cfg.PaymentHost())

	client := cfg.NewClient()
	assert.Equal(t, "http://localhost:8000", client.GetHostName())
	assert.Equal(t, "http://localhost:8001", client.GetSandboxHostName())
}
