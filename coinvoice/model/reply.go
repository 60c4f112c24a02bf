package model

import (
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// InvoiceReply is returned by the service once an invoice has been created or
// queried.
type InvoiceReply struct {
	ID             string
	BtcAddress     string // address to pay to
	BtcQuoteRate   string // quoted exchange rate
	Status         Status
	Price          string // total price of the invoice
	PriceCurrency  string
	PriceRemaining string // remaining balance in PriceCurrency
	PaymentLinkID  string // token used to redirect to the payment gateway
	TotalBtc       string // bitcoin due before the quote expires
	RemainingBTC   string // unpaid bitcoin balance
	ExpirationTime string // unix time the quote expires
	CurrentTime    string // unix time the invoice was entered
}

var replyFields = fieldTable[InvoiceReply]{
	"Id":             func(r *InvoiceReply, v string) { r.ID = v },
	"BtcAddress":     func(r *InvoiceReply, v string) { r.BtcAddress = v },
	"BtcQuoteRate":   func(r *InvoiceReply, v string) { r.BtcQuoteRate = v },
	"Status":         func(r *InvoiceReply, v string) { r.Status = Status(v) },
	"Price":          func(r *InvoiceReply, v string) { r.Price = v },
	"PriceCurrency":  func(r *InvoiceReply, v string) { r.PriceCurrency = v },
	"PriceRemaining": func(r *InvoiceReply, v string) { r.PriceRemaining = v },
	"PaymentLinkId":  func(r *InvoiceReply, v string) { r.PaymentLinkID = v },
	"TotalBtc":       func(r *InvoiceReply, v string) { r.TotalBtc = v },
	"RemainingBTC":   func(r *InvoiceReply, v string) { r.RemainingBTC = v },
	"RemainingBtc":   func(r *InvoiceReply, v string) { r.RemainingBTC = v },
	"ExpirationTime": func(r *InvoiceReply, v string) { r.ExpirationTime = v },
	"CurrentTime":    func(r *InvoiceReply, v string) { r.CurrentTime = v },
}

// Unmarshal fills the reply from data. The reply must match the record exactly.
func (r *InvoiceReply) Unmarshal(data []byte) error {
	return decodeStrict(data, r, replyFields)
}

// UnmarshalReply decodes a create_invoice or query_invoice reply.
func UnmarshalReply(data []byte) (*InvoiceReply, error) {
	r := &InvoiceReply{}
	if err := r.Unmarshal(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Expiration returns the time the quoted exchange rate expires.
func (r *InvoiceReply) Expiration() (time.Time, error) {
	return unixTime("ExpirationTime", r.ExpirationTime)
}

// Created returns the time the invoice was entered into the service.
func (r *InvoiceReply) Created() (time.Time, error) {
	return unixTime("CurrentTime", r.CurrentTime)
}

// TotalBtcAmount parses TotalBtc.
func (r *InvoiceReply) TotalBtcAmount() (decimal.Decimal, error) {
	return amount("TotalBtc", r.TotalBtc)
}

// RemainingBtcAmount parses RemainingBTC.
func (r *InvoiceReply) RemainingBtcAmount() (decimal.Decimal, error) {
	return amount("RemainingBTC", r.RemainingBTC)
}

// PriceAmount parses Price.
func (r *InvoiceReply) PriceAmount() (decimal.Decimal, error) {
	return amount("Price", r.Price)
}

func amount(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse %s", field)
	}
	return d, nil
}

func unixTime(field, v string) (time.Time, error) {
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse %s", field)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// Failure is the body the service sends along with an error status. ErrorCode
// is numeric on the wire but kept as a string.
type Failure struct {
	ErrorCode string
	// ErrorText is a hint for developers, not a stable message.
	ErrorText string
}

var failureFields = fieldTable[Failure]{
	"ErrorCode": func(f *Failure, v string) { f.ErrorCode = v },
	"ErrorText": func(f *Failure, v string) { f.ErrorText = v },
}

func (f *Failure) Unmarshal(data []byte) error {
	return decodeStrict(data, f, failureFields)
}

func (f *Failure) Error() string {
	return "coinvoice error " + f.ErrorCode + ": " + f.ErrorText
}

// UnmarshalFailure decodes an error body.
func UnmarshalFailure(data []byte) (*Failure, error) {
	f := &Failure{}
	if err := f.Unmarshal(data); err != nil {
		return nil, err
	}
	return f, nil
}

// InvoiceNotification is POSTed by the service to the NotificationURL of an
// invoice whenever its status changes.
type InvoiceNotification struct {
	ID                  string
	Status              Status
	InternalInvoiceID   string
	AlternateInvoiceKey string
}

var notificationFields = fieldTable[InvoiceNotification]{
	"Id":                  func(n *InvoiceNotification, v string) { n.ID = v },
	"Status":              func(n *InvoiceNotification, v string) { n.Status = Status(v) },
	"InternalInvoiceId":   func(n *InvoiceNotification, v string) { n.InternalInvoiceID = v },
	"AlternateInvoiceKey": func(n *InvoiceNotification, v string) { n.AlternateInvoiceKey = v },
}

func (n *InvoiceNotification) Unmarshal(data []byte) error {
	return decodeStrict(data, n, notificationFields)
}

// UnmarshalNotification decodes a webhook body.
func UnmarshalNotification(data []byte) (*InvoiceNotification, error) {
	n := &InvoiceNotification{}
	if err := n.Unmarshal(data); err != nil {
		return nil, err
	}
	return n, nil
}
