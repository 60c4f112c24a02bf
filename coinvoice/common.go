package coinvoice

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

var logger = logrus.WithField("component", "coinvoice")

// Version of the API spoken by this client.
const Version = "v1"

// DefaultUserAgent is sent with every POST unless overridden.
const DefaultUserAgent = "Coinvoice/" + Version

// Operation is a remote procedure exposed by the service.
type Operation string

const (
	OpCreateInvoice Operation = "create_invoice"
	OpQueryInvoice  Operation = "query_invoice"
)

// Path returns the endpoint path of the operation.
func (o Operation) Path() string {
	return "/api/" + Version + "/" + string(o)
}

// ErrNoHTTPCode is the cause of a TransportError when the reply carried no status.
var ErrNoHTTPCode = errors.New("no HTTP code was returned")

// TransportError is returned when the POST itself failed: the connection broke,
// no status came back or the status was not 200. Body holds whatever the
// service replied, it may decode as a model.Failure.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("coinvoice transport: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("coinvoice returned http status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("coinvoice returned http status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a client set up that cannot be used, for example an
// unparsable host or an HTTP client that skips TLS verification.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "coinvoice configuration: " + e.Reason
}

// APIError wraps a failed call together with the Failure body the service sent
// along, when it could be decoded.
type APIError struct {
	Failure *model.Failure
	Err     error
}

func (e *APIError) Error() string {
	if e.Failure == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (error code %s: %s)", e.Err, e.Failure.ErrorCode, e.Failure.ErrorText)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Code returns the service error code, empty when no Failure was decoded.
func (e *APIError) Code() string {
	if e.Failure == nil {
		return ""
	}
	return e.Failure.ErrorCode
}
