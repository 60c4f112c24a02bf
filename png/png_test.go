package png

import (
	"bytes"
	stdpng "image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQr(t *testing.T) {
	data, err := Qr("bitcoin:nopechucktesta?amount=4.53143948&label=Coinvoice", 0)
	require.NoError(t, err)

	img, err := stdpng.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}

func TestQr_Size(t *testing.T) {
	data, err := Qr("ala ma kota", 128)
	require.NoError(t, err)

	img, err := stdpng.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestQr_Empty(t *testing.T) {
	_, err := Qr("", 0)
	assert.Error(t, err)
}
