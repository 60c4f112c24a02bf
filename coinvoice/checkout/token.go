package checkout

import (
	"encoding/base64"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// EncodeToken packs the order identity into the opaque internalInvoiceId that
// the service echoes back in every notification.
func EncodeToken(orderID, orderKey string) string {
	var e jx.Encoder
	e.ArrStart()
	e.Str(orderID)
	e.Str(orderKey)
	e.ArrEnd()
	return base64.StdEncoding.EncodeToString(e.Bytes())
}

// DecodeToken reverses EncodeToken.
func DecodeToken(token string) (orderID, orderKey string, err error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(token)
	if err != nil {
		return "", "", errors.Wrap(ErrInvalidToken, "base64")
	}
	if !jx.Valid(raw) {
		return "", "", errors.Wrap(ErrInvalidToken, "not json")
	}

	d := jx.DecodeBytes(raw)
	if d.Next() != jx.Array {
		return "", "", errors.Wrap(ErrInvalidToken, "not an array")
	}
	var parts []string
	if err := d.Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.String {
			return ErrInvalidToken
		}
		s, err := d.Str()
		parts = append(parts, s)
		return err
	}); err != nil {
		return "", "", errors.Wrap(ErrInvalidToken, "element")
	}
	if len(parts) != 2 || parts[0] == "" {
		return "", "", errors.Wrapf(ErrInvalidToken, "want [id, key], got %d elements", len(parts))
	}
	return parts[0], parts[1], nil
}
