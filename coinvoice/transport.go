package coinvoice

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/jx"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

// Poster performs the HTTP POST of a JSON payload. The client builds url and
// header; implementations only move bytes. A non-200 reply must be reported as
// an error, preferably a *TransportError carrying the body.
type Poster interface {
	Post(ctx context.Context, url string, header http.Header, body []byte) ([]byte, error)
}

// PosterFunc adapts a plain function to Poster.
type PosterFunc func(ctx context.Context, url string, header http.Header, body []byte) ([]byte, error)

func (f PosterFunc) Post(ctx context.Context, url string, header http.Header, body []byte) ([]byte, error) {
	return f(ctx, url, header, body)
}

// IsTestInvoice reports whether payload carries a non-empty testInvoice field.
func IsTestInvoice(payload []byte) (bool, error) {
	if !jx.Valid(payload) {
		return false, &model.DecodeError{Reason: "payload is not valid json"}
	}
	d := jx.DecodeBytes(payload)
	if d.Next() != jx.Object {
		return false, &model.DecodeError{Reason: "payload is not a json object"}
	}

	test := false
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if model.CanonicalName(string(key)) != "TestInvoice" || d.Next() != jx.String {
			return d.Skip()
		}
		s, err := d.Str()
		test = s != ""
		return err
	})
	if err != nil {
		return false, &model.DecodeError{Reason: err.Error()}
	}
	return test, nil
}

// SelectBaseURL picks the sandbox host for test invoices and the production
// host for everything else.
func SelectBaseURL(payload []byte, production, sandbox string) (string, error) {
	test, err := IsTestInvoice(payload)
	if err != nil {
		return "", err
	}
	if test {
		return sandbox, nil
	}
	return production, nil
}

// BuildHeader returns the headers sent with every POST to rawURL.
func BuildHeader(apiKey, rawURL string, payload []byte) (http.Header, error) {
	host, err := hostHeader(rawURL)
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(apiKey)))
	h.Set("Host", host)
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(len(payload)))
	return h, nil
}

// hostHeader renders host[:port]; https defaults to port 443 and an explicit
// port in the URL always wins.
func hostHeader(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", &ConfigurationError{Reason: "could not parse url " + strconv.Quote(rawURL)}
	}
	port := u.Port()
	if port == "" && u.Scheme == "https" {
		port = "443"
	}
	if port == "" {
		return u.Hostname(), nil
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// HTTPPoster is the default Poster built on net/http.
type HTTPPoster struct {
	client    *http.Client
	userAgent string
}

// NewHTTPPoster wraps client. A nil client means http.DefaultClient.
func NewHTTPPoster(client *http.Client, userAgent string) *HTTPPoster {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPPoster{client: client, userAgent: userAgent}
}

func (p *HTTPPoster) Post(ctx context.Context, rawURL string, header http.Header, body []byte) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ConfigurationError{Reason: "could not parse url " + strconv.Quote(rawURL)}
	}
	if u.Scheme == "https" && SkipsTLSVerification(p.client) {
		return nil, &ConfigurationError{Reason: "http client must verify TLS certificates"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	for k, v := range header {
		switch k {
		case "Host":
			req.Host = header.Get(k)
		case "Content-Length":
			// net/http derives it from ContentLength.
		default:
			req.Header[k] = v
		}
	}
	req.ContentLength = int64(len(body))
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	logger.WithField("status", resp.StatusCode).Debugf("POST %s", rawURL)

	switch {
	case resp.StatusCode == 0:
		return nil, &TransportError{Body: reply, Err: ErrNoHTTPCode}
	case resp.StatusCode != http.StatusOK:
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: reply}
	}
	return reply, nil
}

// SkipsTLSVerification reports whether c is configured to accept any server certificate.
func SkipsTLSVerification(c *http.Client) bool {
	rt := c.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	t, ok := rt.(*http.Transport)
	return ok && t.TLSClientConfig != nil && t.TLSClientConfig.InsecureSkipVerify
}
