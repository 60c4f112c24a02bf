package checkout

import (
	"encoding/base64"
	"strings"

	"github.com/go-faster/errors"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

// RequireNew fails unless reply describes a freshly created invoice.
func RequireNew(reply *model.InvoiceReply) error {
	if reply == nil {
		return errors.Wrap(ErrNotNew, "no reply")
	}
	if reply.Status != model.StatusNew {
		return errors.Wrapf(ErrNotNew, "status = %s", reply.Status)
	}
	return nil
}

// PaymentURL is the hosted payment page for reply. The payer is sent back to
// returnURL when done.
func PaymentURL(host string, reply *model.InvoiceReply, returnURL string) (string, error) {
	if host == "" {
		return "", errors.New("payment host is empty")
	}
	if reply == nil || reply.PaymentLinkID == "" {
		return "", errors.New("invoice reply has no payment link")
	}
	return strings.TrimRight(host, "/") + "/pay/" + reply.PaymentLinkID + "/" +
		base64.StdEncoding.EncodeToString([]byte(returnURL)), nil
}
