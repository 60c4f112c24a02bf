package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
	"github.com/conformal/coinvoice-plugins/coinvoice/util"
)

const replyTemplate = `invoice:    {{.ID}}
status:     {{.Status}}
price:      {{default "-" .Price}} {{.PriceCurrency}}
total btc:  {{default "-" .TotalBtc}}
remaining:  {{default "-" .RemainingBTC}}
address:    {{default "-" .BtcAddress}}
quote rate: {{default "-" .BtcQuoteRate}}
pay link:   {{default "-" .PaymentLinkID}}
`

func render(w io.Writer, format string, data any) error {
	if format == "" {
		format = replyTemplate
	}
	out, err := util.MergeTemplate(format, data)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// printExpiry adds the payment deadline of reply when the service sent one.
func printExpiry(w io.Writer, reply *model.InvoiceReply) {
	exp, err := reply.Expiration()
	if err != nil {
		return
	}
	line := "expires:    " + exp.Format(time.RFC3339)
	if created, err := reply.Created(); err == nil {
		line += " (" + exp.Sub(created).String() + " after creation)"
	}
	fmt.Fprintln(w, line)
}
