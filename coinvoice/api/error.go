package api

import (
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/conformal/coinvoice-plugins/coinvoice"
)

// checkError maps a resty outcome onto the coinvoice.Poster contract: the body
// is returned only for a 200 reply, anything else is a *coinvoice.TransportError.
func checkError(resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		terr := &coinvoice.TransportError{Err: err}
		if resp != nil && resp.RawResponse != nil {
			terr.StatusCode = resp.StatusCode()
			terr.Body = resp.Body()
		}
		return nil, terr
	}

	switch {
	case resp.StatusCode() == 0:
		return nil, &coinvoice.TransportError{Body: resp.Body(), Err: coinvoice.ErrNoHTTPCode}
	case resp.StatusCode() != http.StatusOK:
		return nil, &coinvoice.TransportError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	return resp.Body(), nil
}
