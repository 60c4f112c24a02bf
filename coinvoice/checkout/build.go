package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

// totalTolerance is the largest rounding drift accepted between the order
// grand total and the sum of the invoice items as sent.
var totalTolerance = decimal.New(1, -2)

// Options are the merchant settings applied to every invoice.
type Options struct {
	NotificationURL string
	// AlternateKeySecret, when set, derives alternateInvoiceKey as an
	// HMAC-SHA256 of the order so duplicate submissions collide.
	AlternateKeySecret string
	TransactionSpeed   string
	Sandbox            bool
}

// BuildInvoiceRequest turns order into a validated create_invoice request.
func BuildInvoiceRequest(order *Order, opts Options) (*model.InvoiceRequest, error) {
	if order.Currency != model.CurrencyUSD {
		return nil, errors.Wrapf(ErrUnsupportedCurrency, "got %q", order.Currency)
	}
	if len(order.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	r := model.NewInvoiceRequest()
	r.PayerName = order.Payer.Name
	r.PayerAddress1 = order.Payer.Address1
	r.PayerAddress2 = order.Payer.Address2
	r.PayerCity = order.Payer.City
	r.PayerState = order.Payer.State
	r.PayerZip = order.Payer.Zip
	r.PayerCountry = order.Payer.Country
	r.PayerPhone = order.Payer.Phone
	r.PayerEmail = order.Payer.Email
	r.PayerCurrency = model.CurrencyBTC
	r.PriceCurrency = order.Currency

	for i, line := range order.Lines {
		if line.Quantity <= 0 {
			return nil, errors.Errorf("line %d: quantity must be positive, got %d", i, line.Quantity)
		}
		item := model.Item{
			ItemCode:     line.Code,
			ItemDesc:     line.Description,
			ItemQuantity: strconv.FormatInt(line.Quantity, 10),
			ItemPricePer: line.Total.Div(decimal.NewFromInt(line.Quantity)).StringFixed(2),
		}
		if err := r.ItemAdd(item); err != nil {
			return nil, errors.Wrapf(err, "line %d", i)
		}
	}

	if !order.Tax.IsZero() {
		tax := order.Tax.Round(2)
		if err := r.ItemAdd(model.Item{ItemDesc: "Sales tax", ItemQuantity: "1", ItemPricePer: tax.StringFixed(2)}); err != nil {
			return nil, errors.Wrap(err, "sales tax")
		}
	}
	if !order.Shipping.IsZero() {
		shipping := order.Shipping.Round(2)
		if err := r.ItemAdd(model.Item{ItemDesc: "Shipping and handling", ItemQuantity: "1", ItemPricePer: shipping.StringFixed(2)}); err != nil {
			return nil, errors.Wrap(err, "shipping")
		}
	}
	if !order.Discount.IsZero() {
		discount := order.Discount.Abs().Round(2)
		if err := r.ItemAdd(model.Item{ItemDesc: "Discounts", ItemQuantity: "1", ItemPricePer: discount.Neg().StringFixed(2)}); err != nil {
			return nil, errors.Wrap(err, "discount")
		}
	}

	total, err := r.Total()
	if err != nil {
		return nil, err
	}

	log := logger.WithField("order", order.ID)
	log.Debugf("total calculated: %s, wanted: %s", total.StringFixed(2), order.GrandTotal.StringFixed(2))

	if order.GrandTotal.Sub(total).Abs().GreaterThan(totalTolerance) {
		return nil, errors.Wrapf(ErrTotalMismatch, "got %s wanted %s", total.StringFixed(2), order.GrandTotal.StringFixed(2))
	}

	r.NotificationURL = opts.NotificationURL
	r.InternalInvoiceID = EncodeToken(order.ID, order.Key)
	if opts.AlternateKeySecret != "" {
		r.AlternateInvoiceKey = alternateKey(opts.AlternateKeySecret, order, r, total)
	}
	if opts.TransactionSpeed != "" {
		r.TransactionSpeed = opts.TransactionSpeed
	}
	if opts.Sandbox {
		log.Debug("SANDBOX")
		r.TestInvoice = "yes"
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func alternateKey(secret string, order *Order, r *model.InvoiceRequest, total decimal.Decimal) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(order.ID + r.PayerName + r.PayerEmail + total.StringFixed(2) + strconv.Itoa(len(order.Lines))))
	return hex.EncodeToString(mac.Sum(nil))
}

// Invoicer creates invoices; *coinvoice.Client satisfies it.
type Invoicer interface {
	CreateInvoice(ctx context.Context, r *model.InvoiceRequest) (*model.InvoiceReply, error)
}

// Submit builds the invoice for order, creates it and checks that the service
// accepted it as a new invoice.
func Submit(ctx context.Context, inv Invoicer, order *Order, opts Options) (*model.InvoiceReply, error) {
	r, err := BuildInvoiceRequest(order, opts)
	if err != nil {
		return nil, err
	}
	reply, err := inv.CreateInvoice(ctx, r)
	if err != nil {
		return nil, errors.Wrapf(err, "create invoice for order %s", order.ID)
	}
	if err := RequireNew(reply); err != nil {
		return nil, err
	}
	logger.WithField("order", order.ID).Infof("invoice %s created", reply.ID)
	return reply, nil
}
