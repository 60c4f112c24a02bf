package png

import (
	"github.com/go-faster/errors"
	"github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels used when size is not positive.
const DefaultSize = 300

// Qr renders content as a PNG QR code with medium error correction.
func Qr(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	data, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr")
	}
	return data, nil
}
