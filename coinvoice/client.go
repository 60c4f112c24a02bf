package coinvoice

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

// Client is the context for communication with the service. Configure it once,
// before the first call; after that it is safe for concurrent use.
type Client struct {
	apiKey     string
	userAgent  string
	host       string
	sandbox    string
	httpClient *http.Client
	poster     Poster
}

type Option func(*Client)

func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHost overrides the production host. Debugging only.
func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

// WithSandboxHost overrides the sandbox host. Debugging only.
func WithSandboxHost(host string) Option {
	return func(c *Client) { c.sandbox = host }
}

// WithHTTPClient sets the client used by the default Poster.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPoster replaces the default Poster.
func WithPoster(p Poster) Option {
	return func(c *Client) { c.poster = p }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		userAgent: DefaultUserAgent,
		host:      Prod.BaseURL(),
		sandbox:   Sandbox.BaseURL(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetVersion returns the API version spoken by the client.
func (c *Client) GetVersion() string {
	return Version
}

// GetHostName returns the production host.
func (c *Client) GetHostName() string {
	return c.host
}

// GetSandboxHostName returns the sandbox host.
func (c *Client) GetSandboxHostName() string {
	return c.sandbox
}

// SetAPIKey sets the key sent as basic authorization.
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

// SetHost overrides the production host. This is a debug option.
func (c *Client) SetHost(host string) {
	c.host = host
}

// SetSandboxHost overrides the sandbox host. This is a debug option.
func (c *Client) SetSandboxHost(host string) {
	c.sandbox = host
}

func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// SetPostFunction installs p in place of the default Poster; nil restores the
// default.
func (c *Client) SetPostFunction(p Poster) {
	c.poster = p
}

// Endpoint returns the URL payload is POSTed to for op.
func (c *Client) Endpoint(op Operation, payload []byte) (string, error) {
	base, err := SelectBaseURL(payload, c.host, c.sandbox)
	if err != nil {
		return "", err
	}
	return base + op.Path(), nil
}

// Post sends a create_invoice payload and returns the raw reply.
func (c *Client) Post(ctx context.Context, payload []byte) ([]byte, error) {
	return c.PostOperation(ctx, OpCreateInvoice, payload)
}

// PostOperation sends payload to the endpoint of op. One attempt is made; a
// failed call is never retried.
func (c *Client) PostOperation(ctx context.Context, op Operation, payload []byte) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &ConfigurationError{Reason: "API key is not set"}
	}

	url, err := c.Endpoint(op, payload)
	if err != nil {
		return nil, err
	}
	header, err := BuildHeader(c.apiKey, url, payload)
	if err != nil {
		return nil, err
	}

	poster := c.poster
	if poster == nil {
		poster = NewHTTPPoster(c.httpClient, c.userAgent)
	}

	log := logger.WithFields(logrus.Fields{"operation": op, "url": url})
	log.Debugf("out: %s", payload)

	reply, err := poster.Post(ctx, url, header, payload)
	if err != nil {
		log.WithError(err).Debug("post failed")
		return reply, err
	}
	log.Debugf("in: %s", reply)
	return reply, nil
}

// CreateInvoice validates and submits r.
func (c *Client) CreateInvoice(ctx context.Context, r *model.InvoiceRequest) (*model.InvoiceReply, error) {
	payload, err := r.Marshal()
	if err != nil {
		return nil, err
	}
	return c.call(ctx, OpCreateInvoice, payload)
}

// QueryInvoice asks for the current state of an existing invoice.
func (c *Client) QueryInvoice(ctx context.Context, q *model.QueryRequest) (*model.InvoiceReply, error) {
	payload, err := q.Marshal()
	if err != nil {
		return nil, err
	}
	return c.call(ctx, OpQueryInvoice, payload)
}

// call posts payload and decodes the reply. Whenever the post or the decode
// fails the body is given a second chance as a model.Failure to get a better
// diagnostic.
func (c *Client) call(ctx context.Context, op Operation, payload []byte) (*model.InvoiceReply, error) {
	body, err := c.PostOperation(ctx, op, payload)
	if err != nil {
		var terr *TransportError
		if errors.As(err, &terr) && len(terr.Body) > 0 {
			body = terr.Body
		}
		return nil, withFailure(body, err)
	}

	reply, err := model.UnmarshalReply(body)
	if err != nil {
		return nil, withFailure(body, errors.Wrapf(err, "decode %s reply", op))
	}
	return reply, nil
}

func withFailure(body []byte, err error) error {
	if len(body) == 0 {
		return err
	}
	f, ferr := model.UnmarshalFailure(body)
	if ferr != nil {
		return err
	}
	return &APIError{Failure: f, Err: err}
}
