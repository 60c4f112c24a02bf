package checkout

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("component", "coinvoice.checkout")

var (
	ErrUnsupportedCurrency = errors.New("currently only USD is supported for PriceCurrency")
	ErrTotalMismatch       = errors.New("order total does not match invoice items")
	ErrEmptyOrder          = errors.New("order has no lines")
	ErrInvalidToken        = errors.New("invalid rendezvous token")
	ErrNotNew              = errors.New("invoice is not in status new")
)

// Payer is the billing party of an order.
type Payer struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
	Phone    string
	Email    string
}

// Line is one product of an order. Total is the line subtotal, quantity
// included, in the order currency.
type Line struct {
	Code        string
	Description string
	Quantity    int64
	Total       decimal.Decimal
}

// Order is the shop side view of a purchase that is about to be invoiced.
type Order struct {
	ID       string
	Key      string
	Currency string
	Payer    Payer
	Lines    []Line

	Shipping   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}
