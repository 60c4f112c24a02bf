package model

import (
	"encoding/json"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem() Item {
	return Item{
		ItemCode:     "item code",
		ItemDesc:     "item desc",
		ItemQuantity: "12",
		ItemPricePer: "12.22",
	}
}

func testRequest(t *testing.T) *InvoiceRequest {
	t.Helper()

	r := NewInvoiceRequest()
	r.PayerCurrency = CurrencyBTC
	r.PriceCurrency = CurrencyUSD
	r.PayerName = "Moo McMooer"
	r.PayerAddress1 = "Address line 1"
	r.PayerCity = "City"
	r.PayerCountry = "Country"

	require.NoError(t, r.ItemAdd(Item{ItemCode: "item code", ItemDesc: "item desc", ItemQuantity: "12", ItemPricePer: "12.12"}))
	require.NoError(t, r.ItemAdd(Item{ItemCode: "item2 code", ItemDesc: "item2 desc", ItemQuantity: "21", ItemPricePer: "21.21"}))
	return r
}

func TestItem_Marshal(t *testing.T) {
	item := testItem()
	data, err := item.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemCode":"item code","itemDesc":"item desc","itemPricePer":"12.22","itemQuantity":"12"}`, string(data))
}

func TestItem_RoundTrip(t *testing.T) {
	item := testItem()
	data, err := item.Marshal()
	require.NoError(t, err)

	var decoded Item
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, item, decoded)
}

func TestItem_ValidateNegative(t *testing.T) {
	tests := []struct {
		name  string
		item  Item
		field string
	}{
		{"word quantity", Item{ItemQuantity: "twelve", ItemPricePer: "1"}, "ItemQuantity"},
		{"missing quantity", Item{ItemPricePer: "1"}, "ItemQuantity"},
		{"missing price", Item{ItemCode: "item code", ItemQuantity: "12"}, "ItemPricePer"},
		{"word price", Item{ItemQuantity: "12", ItemPricePer: "12,22"}, "ItemPricePer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestItem_Total(t *testing.T) {
	item := testItem()
	total, err := item.Total()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("146.64").Equal(total), "got %s", total)
}

func TestInvoiceRequest_ItemAddIsAtomic(t *testing.T) {
	r := testRequest(t)
	require.Equal(t, 2, r.ItemCount())

	err := r.ItemAdd(Item{ItemQuantity: "twelve", ItemPricePer: "1.00"})
	assert.Error(t, err)
	assert.Equal(t, 2, r.ItemCount())
}

func TestInvoiceRequest_ItemCountEmpty(t *testing.T) {
	var r InvoiceRequest
	assert.Equal(t, 0, r.ItemCount())
}

func TestInvoiceRequest_Validate(t *testing.T) {
	require.NoError(t, testRequest(t).Validate())
}

func TestInvoiceRequest_ValidateNegative(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *InvoiceRequest)
		field  string
	}{
		{"payer currency", func(r *InvoiceRequest) { r.PayerCurrency = "notUSD" }, "PayerCurrency"},
		{"payer currency lower case", func(r *InvoiceRequest) { r.PayerCurrency = "usd" }, "PayerCurrency"},
		{"price currency", func(r *InvoiceRequest) { r.PriceCurrency = "" }, "PriceCurrency"},
		{"no items", func(r *InvoiceRequest) { r.Items = nil }, "Items"},
		{"bad item", func(r *InvoiceRequest) { r.Items[0].ItemPricePer = "x" }, "ItemPricePer"},
		{"payer name", func(r *InvoiceRequest) { r.PayerName = "" }, "PayerName"},
		{"payer address", func(r *InvoiceRequest) { r.PayerAddress1 = "" }, "PayerAddress1"},
		{"payer city", func(r *InvoiceRequest) { r.PayerCity = "" }, "PayerCity"},
		{"payer country", func(r *InvoiceRequest) { r.PayerCountry = "" }, "PayerCountry"},
		{"transaction speed", func(r *InvoiceRequest) { r.TransactionSpeed = "fast" }, "TransactionSpeed"},
		{"zero transaction speed", func(r *InvoiceRequest) { r.TransactionSpeed = "0" }, "TransactionSpeed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRequest(t)
			tt.mutate(r)

			err := r.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)

			data, err := r.Marshal()
			assert.Error(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestInvoiceRequest_FirstFailureWins(t *testing.T) {
	r := testRequest(t)
	r.PayerCurrency = "EUR"
	r.PayerName = ""

	var verr *ValidationError
	require.True(t, errors.As(r.Validate(), &verr))
	assert.Equal(t, "PayerCurrency", verr.Field)
}

func TestInvoiceRequest_Marshal(t *testing.T) {
	r := testRequest(t)
	r.TestInvoice = "yes"
	r.InternalInvoiceID = "token"

	data, err := r.Marshal()
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))

	for _, k := range []string{"priceCurrency", "payerCurrency", "items", "payerName",
		"payerAddress1", "payerCity", "payerCountry", "transactionSpeed"} {
		assert.Contains(t, generic, k)
	}
	assert.Equal(t, "6", generic["transactionSpeed"])
	assert.Equal(t, "yes", generic["testInvoice"])
	assert.Equal(t, "token", generic["internalInvoiceId"])
	assert.NotContains(t, generic, "payerAddress2")

	items, ok := generic["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "21.21", items[1].(map[string]any)["itemPricePer"])
}

func TestInvoiceRequest_ZeroValueUsesDefaultSpeed(t *testing.T) {
	r := testRequest(t)
	r.TransactionSpeed = ""

	data, err := r.Marshal()
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, DefaultTransactionSpeed, generic["transactionSpeed"])
}

func TestInvoiceRequest_Total(t *testing.T) {
	total, err := testRequest(t).Total()
	require.NoError(t, err)
	// 12 * 12.12 + 21 * 21.21
	assert.Equal(t, "590.85", total.StringFixed(2))
}

func TestQueryRequest_Marshal(t *testing.T) {
	q := QueryRequest{ID: "MQYMVGEG", TestInvoice: "yes"}
	data, err := q.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"MQYMVGEG","testInvoice":"yes"}`, string(data))

	_, err = (&QueryRequest{}).Marshal()
	assert.Error(t, err)
}
