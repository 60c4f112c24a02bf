package qr

import (
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
	"github.com/conformal/coinvoice-plugins/png"
)

var logger = logrus.WithField("component", "coinvoice.qr")

// Label is shown by wallets next to the requested amount.
const Label = "Coinvoice"

// PaymentURI builds the bitcoin: link a local wallet opens to pay reply, in
// the form bitcoin:<address>?amount=<totalBtc>&label=Coinvoice.
func PaymentURI(reply *model.InvoiceReply) (string, error) {
	if reply == nil {
		return "", errors.New("invoice reply is nil")
	}
	if reply.BtcAddress == "" {
		return "", errors.Errorf("invoice %s has no bitcoin address", reply.ID)
	}
	amount, err := reply.TotalBtcAmount()
	if err != nil {
		return "", err
	}
	if !amount.IsPositive() {
		return "", errors.Errorf("invoice %s has no amount to pay", reply.ID)
	}

	return "bitcoin:" + reply.BtcAddress + "?amount=" + reply.TotalBtc + "&label=" + Label, nil
}

// PaymentPNG renders PaymentURI(reply) as a PNG QR code of size pixels.
func PaymentPNG(reply *model.InvoiceReply, size int) ([]byte, error) {
	uri, err := PaymentURI(reply)
	if err != nil {
		return nil, err
	}
	logger.Debugf("QR: %s", uri)
	return png.Qr(uri, size)
}
