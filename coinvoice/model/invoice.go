package model

import (
	"strconv"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

const (
	CurrencyUSD = "USD"
	CurrencyBTC = "BTC"

	// DefaultTransactionSpeed is the number of block confirmations requested
	// when the caller does not choose one.
	DefaultTransactionSpeed = "6"
)

// Item is a single invoice line. Price and quantity are decimal strings.
type Item struct {
	ItemCode     string // optional
	ItemDesc     string // optional
	ItemPricePer string
	ItemQuantity string
}

// Validate checks that the required numeric fields are present and numeric.
func (i *Item) Validate() error {
	if !isNumeric(i.ItemQuantity) {
		return invalid("ItemQuantity", "is required and must be a string and numeric")
	}
	if !isNumeric(i.ItemPricePer) {
		return invalid("ItemPricePer", "is required and must be a string and numeric")
	}
	return nil
}

// Total returns quantity * price per item.
func (i *Item) Total() (decimal.Decimal, error) {
	q, err := decimal.NewFromString(i.ItemQuantity)
	if err != nil {
		return decimal.Zero, invalid("ItemQuantity", "is not numeric")
	}
	p, err := decimal.NewFromString(i.ItemPricePer)
	if err != nil {
		return decimal.Zero, invalid("ItemPricePer", "is not numeric")
	}
	return q.Mul(p), nil
}

// Marshal validates the item and encodes it as a JSON object.
func (i *Item) Marshal() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	var e jx.Encoder
	i.encode(&e)
	return e.Bytes(), nil
}

// Unmarshal strictly decodes an item, see decodeStrict.
func (i *Item) Unmarshal(data []byte) error {
	return decodeStrict(data, i, itemFields)
}

func (i *Item) encode(e *jx.Encoder) {
	e.ObjStart()
	optional(e, "itemCode", i.ItemCode)
	optional(e, "itemDesc", i.ItemDesc)
	required(e, "itemPricePer", i.ItemPricePer)
	required(e, "itemQuantity", i.ItemQuantity)
	e.ObjEnd()
}

var itemFields = fieldTable[Item]{
	"ItemCode":     func(i *Item, v string) { i.ItemCode = v },
	"ItemDesc":     func(i *Item, v string) { i.ItemDesc = v },
	"ItemPricePer": func(i *Item, v string) { i.ItemPricePer = v },
	"ItemQuantity": func(i *Item, v string) { i.ItemQuantity = v },
}

// InvoiceRequest describes an invoice to be created by the service.
type InvoiceRequest struct {
	PriceCurrency string // USD or BTC, required
	PayerCurrency string // USD or BTC, required

	// InternalInvoiceID is the caller's own order reference. It is returned
	// untouched in notifications.
	InternalInvoiceID string

	// Items should be filled with ItemAdd so every line is validated.
	Items []Item

	// AlternateInvoiceKey must be unique per merchant; the service uses it to
	// reject double POSTs of the same order.
	AlternateInvoiceKey string

	// NotificationURL is where the service POSTs status changes. Optional but
	// recommended.
	NotificationURL string

	PayerName     string // required
	PayerAddress1 string // required
	PayerAddress2 string
	PayerCity     string // required
	PayerState    string
	PayerZip      string
	PayerCountry  string // required
	PayerEmail    string
	PayerPhone    string

	PurchaseOrderID string

	// TestInvoice routes the request to the sandbox when non-empty.
	TestInvoice string

	// TransactionSpeed is the number of required block confirmations.
	// Empty means DefaultTransactionSpeed.
	TransactionSpeed string
}

// NewInvoiceRequest returns a request with the default transaction speed set.
func NewInvoiceRequest() *InvoiceRequest {
	return &InvoiceRequest{TransactionSpeed: DefaultTransactionSpeed}
}

// ItemAdd validates item and appends it. A rejected item leaves Items untouched.
func (r *InvoiceRequest) ItemAdd(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.Items = append(r.Items, item)
	return nil
}

// ItemCount returns the number of line items.
func (r *InvoiceRequest) ItemCount() int {
	return len(r.Items)
}

// Total sums all line items.
func (r *InvoiceRequest) Total() (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.Items {
		t, err := r.Items[i].Total()
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(t)
	}
	return sum, nil
}

func (r *InvoiceRequest) transactionSpeed() string {
	if r.TransactionSpeed == "" {
		return DefaultTransactionSpeed
	}
	return r.TransactionSpeed
}

// Validate checks the request field by field and returns the first problem found.
func (r *InvoiceRequest) Validate() error {
	if !isCurrency(r.PayerCurrency) {
		return invalid("PayerCurrency", "is required and must be a string containing 'USD' or 'BTC'")
	}
	if !isCurrency(r.PriceCurrency) {
		return invalid("PriceCurrency", "is required and must be a string containing 'USD' or 'BTC'")
	}
	if r.ItemCount() == 0 {
		return invalid("Items", "is required and must be a non-empty list of items")
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}
	if r.PayerName == "" {
		return invalid("PayerName", "is required and must be a string")
	}
	if r.PayerAddress1 == "" {
		return invalid("PayerAddress1", "is required and must be a string")
	}
	if r.PayerCity == "" {
		return invalid("PayerCity", "is required and must be a string")
	}
	if r.PayerCountry == "" {
		return invalid("PayerCountry", "is required and must be a string")
	}
	if n, err := strconv.ParseUint(r.transactionSpeed(), 10, 32); err != nil || n == 0 {
		return invalid("TransactionSpeed", "is required and must be a positive integer string")
	}
	return nil
}

// Marshal validates the request and encodes it as the create_invoice body.
func (r *InvoiceRequest) Marshal() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var e jx.Encoder
	e.ObjStart()
	required(&e, "priceCurrency", r.PriceCurrency)
	required(&e, "payerCurrency", r.PayerCurrency)
	optional(&e, "internalInvoiceId", r.InternalInvoiceID)
	e.FieldStart("items")
	e.ArrStart()
	for i := range r.Items {
		r.Items[i].encode(&e)
	}
	e.ArrEnd()
	optional(&e, "alternateInvoiceKey", r.AlternateInvoiceKey)
	optional(&e, "notificationUrl", r.NotificationURL)
	required(&e, "payerName", r.PayerName)
	required(&e, "payerAddress1", r.PayerAddress1)
	optional(&e, "payerAddress2", r.PayerAddress2)
	required(&e, "payerCity", r.PayerCity)
	optional(&e, "payerState", r.PayerState)
	optional(&e, "payerZip", r.PayerZip)
	required(&e, "payerCountry", r.PayerCountry)
	optional(&e, "payerEmail", r.PayerEmail)
	optional(&e, "payerPhone", r.PayerPhone)
	optional(&e, "purchaseOrderId", r.PurchaseOrderID)
	optional(&e, "testInvoice", r.TestInvoice)
	required(&e, "transactionSpeed", r.transactionSpeed())
	e.ObjEnd()
	return e.Bytes(), nil
}

// QueryRequest asks the service for the current state of an invoice.
type QueryRequest struct {
	ID string

	// TestInvoice routes the query to the sandbox when non-empty.
	TestInvoice string
}

func (q *QueryRequest) Validate() error {
	if q.ID == "" {
		return invalid("Id", "is required and must be a string")
	}
	return nil
}

// Marshal validates the query and encodes it as the query_invoice body.
func (q *QueryRequest) Marshal() ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var e jx.Encoder
	e.ObjStart()
	required(&e, "id", q.ID)
	optional(&e, "testInvoice", q.TestInvoice)
	e.ObjEnd()
	return e.Bytes(), nil
}

func required(e *jx.Encoder, name, v string) {
	e.FieldStart(name)
	e.Str(v)
}

func optional(e *jx.Encoder, name, v string) {
	if v == "" {
		return
	}
	required(e, name, v)
}

func isCurrency(s string) bool {
	return s == CurrencyUSD || s == CurrencyBTC
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}
