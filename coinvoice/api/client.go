package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/conformal/coinvoice-plugins/coinvoice"
	"github.com/conformal/coinvoice-plugins/coinvoice/util"
)

var logger = logrus.WithField("component", "coinvoice.api")

// RestyPoster is a coinvoice.Poster built on go-resty. Set COINVOICE_HTTP_TRACE=true
// to log connection timings of every request.
type RestyPoster struct {
	rest      *resty.Client
	userAgent string
	insecure  bool
}

// NewRestyPoster wraps hc; nil means a fresh http.Client.
func NewRestyPoster(hc *http.Client, userAgent string) *RestyPoster {
	if hc == nil {
		hc = &http.Client{}
	}
	restyClient := resty.NewWithClient(hc).
		SetRetryCount(0).
		SetPreRequestHook(func(_ *resty.Client, r *http.Request) error {
			if host := r.Header.Get("Host"); host != "" {
				r.Host = host
				r.Header.Del("Host")
			}
			return nil
		})
	return &RestyPoster{rest: restyClient, userAgent: userAgent, insecure: coinvoice.SkipsTLSVerification(hc)}
}

var _ coinvoice.Poster = (*RestyPoster)(nil)

func (p *RestyPoster) Post(ctx context.Context, url string, header http.Header, body []byte) ([]byte, error) {
	if p.insecure && isHTTPS(url) {
		return nil, &coinvoice.ConfigurationError{Reason: "http client must verify TLS certificates"}
	}

	r := p.rest.R().SetContext(ctx)
	if util.HttpTraceEnabled() {
		r.EnableTrace()
	}
	for k := range header {
		if k == "Content-Length" {
			continue
		}
		r.SetHeader(k, header.Get(k))
	}
	if p.userAgent != "" {
		r.SetHeader("User-Agent", p.userAgent)
	}

	resp, err := r.SetBody(body).Post(url)

	printTraceInfo(url, err, resp)
	return checkError(resp, err)
}

func isHTTPS(url string) bool {
	return strings.HasPrefix(strings.ToLower(url), "https://")
}

func printTraceInfo(url string, err error, resp *resty.Response) {

	if !util.HttpTraceEnabled() || resp == nil || resp.Request == nil {
		return
	}

	ti := resp.Request.TraceInfo()
	fields := logrus.Fields{
		"url":             url,
		"status":          resp.StatusCode(),
		"time":            resp.Time(),
		"dns_lookup":      ti.DNSLookup,
		"conn_time":       ti.ConnTime,
		"tcp_conn_time":   ti.TCPConnTime,
		"tls_handshake":   ti.TLSHandshake,
		"server_time":     ti.ServerTime,
		"response_time":   ti.ResponseTime,
		"total_time":      ti.TotalTime,
		"conn_reused":     ti.IsConnReused,
		"request_attempt": ti.RequestAttempt,
	}
	if ti.RemoteAddr != nil {
		fields["remote_addr"] = ti.RemoteAddr.String()
	}
	logger.WithFields(fields).WithError(err).Debug("request trace")
}
