package config

import (
	"net/http"
	"os"
	"time"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"github.com/conformal/coinvoice-plugins/coinvoice"
	"github.com/conformal/coinvoice-plugins/coinvoice/api"
	"github.com/conformal/coinvoice-plugins/coinvoice/checkout"
)

// FileName is read from the working directory when no path is given.
const FileName = "coinvoice.yaml"

const (
	TransportHTTP  = "http"
	TransportResty = "resty"
)

type Config struct {
	APIKey      string                `yaml:"api_key"`
	Environment coinvoice.Environment `yaml:"environment"`
	// Host and SandboxHost override the service URLs for development.
	Host        string        `yaml:"host"`
	SandboxHost string        `yaml:"sandbox_host"`
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	Transport   string        `yaml:"transport"`

	Checkout Checkout `yaml:"checkout"`
	Webhook  Webhook  `yaml:"webhook"`
}

type Checkout struct {
	NotificationURL    string `yaml:"notification_url"`
	ReturnURL          string `yaml:"return_url"`
	AlternateKeySecret string `yaml:"alternate_key_secret"`
	TransactionSpeed   string `yaml:"transaction_speed"`
}

type Webhook struct {
	Listen string `yaml:"listen"`
	Path   string `yaml:"path"`
	Secret string `yaml:"secret"`
}

func Default() Config {
	return Config{
		Environment: coinvoice.Prod,
		UserAgent:   coinvoice.DefaultUserAgent,
		Timeout:     30 * time.Second,
		Transport:   TransportHTTP,
		Webhook: Webhook{
			Listen: ":8080",
			Path:   "/coinvoice",
		},
	}
}

// Load reads the YAML file at path, FileName when path is empty, and overlays
// the COINVOICE_* environment variables. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = FileName
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parsing %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	for name, dst := range map[string]*string{
		"COINVOICE_API_KEY":        &c.APIKey,
		"COINVOICE_HOST":           &c.Host,
		"COINVOICE_SANDBOX_HOST":   &c.SandboxHost,
		"COINVOICE_USER_AGENT":     &c.UserAgent,
		"COINVOICE_WEBHOOK_SECRET": &c.Webhook.Secret,
	} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("COINVOICE_ENV"); ok && v != "" {
		if err := c.Environment.UnmarshalText([]byte(v)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Transport != TransportHTTP && c.Transport != TransportResty {
		return &coinvoice.ConfigurationError{Reason: "transport must be http or resty, got " + c.Transport}
	}
	if c.Timeout < 0 {
		return &coinvoice.ConfigurationError{Reason: "timeout must not be negative"}
	}
	if c.Environment != coinvoice.Prod && c.Environment != coinvoice.Sandbox {
		return &coinvoice.ConfigurationError{Reason: "unknown environment"}
	}
	return nil
}

// NewClient builds a client for the configured service and transport.
func (c *Config) NewClient() *coinvoice.Client {
	hc := &http.Client{Timeout: c.Timeout}

	opts := []coinvoice.Option{
		coinvoice.WithAPIKey(c.APIKey),
		coinvoice.WithUserAgent(c.UserAgent),
		coinvoice.WithHTTPClient(hc),
		coinvoice.WithHost(c.BaseURL(coinvoice.Prod)),
		coinvoice.WithSandboxHost(c.BaseURL(coinvoice.Sandbox)),
	}
	if c.Transport == TransportResty {
		opts = append(opts, coinvoice.WithPoster(api.NewRestyPoster(hc, c.UserAgent)))
	}
	return coinvoice.NewClient(opts...)
}

// BaseURL is the service host for env: the configured override or the
// environment default.
func (c *Config) BaseURL(env coinvoice.Environment) string {
	host := c.Host
	if env.IsSandbox() {
		host = c.SandboxHost
	}
	if host == "" {
		return env.BaseURL()
	}
	return host
}

// PaymentHost is the host serving payment pages for the configured environment.
func (c *Config) PaymentHost() string {
	return c.BaseURL(c.Environment)
}

// CheckoutOptions returns the merchant settings for checkout.BuildInvoiceRequest.
func (c *Config) CheckoutOptions() checkout.Options {
	return checkout.Options{
		NotificationURL:    c.Checkout.NotificationURL,
		AlternateKeySecret: c.Checkout.AlternateKeySecret,
		TransactionSpeed:   c.Checkout.TransactionSpeed,
		Sandbox:            c.Environment.IsSandbox(),
	}
}
