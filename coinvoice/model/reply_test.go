package model

import (
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const replyBody = `{"id":"MQYMVGEG","status":"0","price":"2839.98","priceCurrency":"USD","PaymentLinkId":"TPJPOQHG","totalBtc":"4.53143948","remainingBTC":"4.53143948","ExpirationTime":"1392775997","CurrentTime":"1392775097","BtcQuoteRate":"626.72800000","BtcAddress":"nopechucktesta"}`

func requireDecodeError(t *testing.T, err error) *DecodeError {
	t.Helper()
	var derr *DecodeError
	require.True(t, errors.As(err, &derr), "expected DecodeError, got %v", err)
	return derr
}

func TestUnmarshalReply(t *testing.T) {
	r, err := UnmarshalReply([]byte(replyBody))
	require.NoError(t, err)

	assert.Equal(t, "MQYMVGEG", r.ID)
	assert.Equal(t, StatusNew, r.Status)
	assert.Equal(t, "TPJPOQHG", r.PaymentLinkID)
	assert.Equal(t, "4.53143948", r.RemainingBTC)
	assert.Equal(t, "nopechucktesta", r.BtcAddress)

	exp, err := r.Expiration()
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1392775997, 0).UTC(), exp)

	created, err := r.Created()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, exp.Sub(created))

	total, err := r.TotalBtcAmount()
	require.NoError(t, err)
	assert.Equal(t, "4.53143948", total.String())

	remaining, err := r.RemainingBtcAmount()
	require.NoError(t, err)
	assert.True(t, remaining.Equal(total))

	price, err := r.PriceAmount()
	require.NoError(t, err)
	assert.Equal(t, "2839.98", price.StringFixed(2))
}

func TestUnmarshalReply_RemainingBtcSpellings(t *testing.T) {
	for _, key := range []string{"remainingBTC", "RemainingBTC", "remainingBtc", "RemainingBtc"} {
		r, err := UnmarshalReply([]byte(`{"id":"MQYMVGEG","` + key + `":"0.5"}`))
		require.NoError(t, err, key)
		assert.Equal(t, "0.5", r.RemainingBTC, key)
	}

	_, err := UnmarshalReply([]byte(`{"remainingbtc":"0.5"}`))
	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
}

func TestInvoiceReply_BadAmounts(t *testing.T) {
	r := InvoiceReply{TotalBtc: "many", ExpirationTime: "soon"}
	_, err := r.TotalBtcAmount()
	assert.Error(t, err)
	_, err = r.Expiration()
	assert.Error(t, err)
}

func TestUnmarshalReply_NotJSON(t *testing.T) {
	_, err := UnmarshalReply([]byte("All your base are belong to us!"))
	requireDecodeError(t, err)
}

func TestUnmarshalReply_UnknownProperty(t *testing.T) {
	_, err := UnmarshalReply([]byte(`{"id":"MQYMVGEG","bogus":"1"}`))
	derr := requireDecodeError(t, err)
	assert.Equal(t, "Bogus", derr.Property)
	assert.Equal(t, "property 'Bogus' does not exist.", derr.Error())
}

func TestUnmarshalReply_NestedValue(t *testing.T) {
	_, err := UnmarshalReply([]byte(`{"id":{"nested":true}}`))
	derr := requireDecodeError(t, err)
	assert.Equal(t, "Id", derr.Property)
}

func TestUnmarshal_EmptyInputs(t *testing.T) {
	for _, body := range []string{"", "null", `""`, "   ", `"text"`, "[]", "12"} {
		t.Run(body, func(t *testing.T) {
			_, err := UnmarshalNotification([]byte(body))
			requireDecodeError(t, err)
		})
	}
}

func TestUnmarshalNotification(t *testing.T) {
	body := `{"id":"JKVUZXYH","status":"2","alternateInvoiceKey":"a:2:{i:0;i:222;i:1;s:22:\"wc_order_5303f7b69ad73\";}"}`

	n, err := UnmarshalNotification([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "JKVUZXYH", n.ID)
	assert.Equal(t, StatusPaid, n.Status)
	assert.Equal(t, `a:2:{i:0;i:222;i:1;s:22:"wc_order_5303f7b69ad73";}`, n.AlternateInvoiceKey)
	assert.Empty(t, n.InternalInvoiceID)
}

func TestUnmarshalNotification_NotJSON(t *testing.T) {
	_, err := UnmarshalNotification([]byte("yep, not json"))
	requireDecodeError(t, err)
}

func TestUnmarshalNotification_NullField(t *testing.T) {
	n, err := UnmarshalNotification([]byte(`{"id":"JKVUZXYH","status":"3","internalInvoiceId":null}`))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, n.Status)
	assert.Empty(t, n.InternalInvoiceID)
}

func TestUnmarshalFailure(t *testing.T) {
	f, err := UnmarshalFailure([]byte(`{"errorCode":4262,"errorText":"Our wallet is currently unavailable. Please try again laterError 4262: Please contact support\n"}`))
	require.NoError(t, err)
	assert.Equal(t, "4262", f.ErrorCode)
	assert.Contains(t, f.ErrorText, "wallet is currently unavailable")

	f, err = UnmarshalFailure([]byte(`{"errorCode":0,"errorText":"You have entered an invalid price. You have entered an invalid price."}`))
	require.NoError(t, err)
	assert.Equal(t, "0", f.ErrorCode)

	_, err = UnmarshalFailure([]byte("not json"))
	requireDecodeError(t, err)
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "RemainingBTC", CanonicalName("remainingBTC"))
	assert.Equal(t, "Id", CanonicalName("id"))
	assert.Equal(t, "Id", CanonicalName("Id"))
	assert.Equal(t, "", CanonicalName(""))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "paid", StatusPaid.String())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("7").Valid())
	assert.True(t, StatusComplete.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.Equal(t, "unknown(9)", Status("9").String())
}
