package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPNG is the 8-byte PNG signature padded with zeros, enough for
// http.DetectContentType to identify it.
var minimalPNG = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 24)...)

func TestSniffMIMEPNG(t *testing.T) {
	mime, ok := SniffMIME(minimalPNG)
	require.True(t, ok)
	assert.Equal(t, "image/png", mime)
}

func TestSniffMIMEWebP(t *testing.T) {
	data := append([]byte("RIFF\x00\x00\x00\x00WEBP"), make([]byte, 8)...)
	mime, ok := SniffMIME(data)
	require.True(t, ok)
	assert.Equal(t, "image/webp", mime)
}

func TestSniffMIMERejectsNonImage(t *testing.T) {
	_, ok := SniffMIME([]byte("hello world, definitely not an image"))
	assert.False(t, ok)
}

func TestDataURLRoundTrip(t *testing.T) {
	u := EncodeDataURL("image/png", minimalPNG)
	assert.True(t, len(u) > len("data:image/png;base64,"))

	mime, data, err := DecodeDataURL(u)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, minimalPNG, data)
}

func TestDecodeDataURLRejectsMalformed(t *testing.T) {
	for _, u := range []string{
		"http://example.com/a.png",
		"data:image/png;base64",
		"data:image/png,plainpayload",
		"data:image/png;base64,!!!not-base64!!!",
	} {
		_, _, err := DecodeDataURL(u)
		assert.Error(t, err, "input %q", u)
	}
}
