// Package share builds the shareable artifacts for a tote: the canonical
// URL carrying its locator and a scannable QR rendering of that URL, usable
// for printing or writing to an NFC tag as a URL record.
package share

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the pixel width used when no explicit size is requested.
const DefaultQRSize = 256

// URL returns the canonical shareable pointer for a tote id. Dereferencing
// it is equivalent to calling Ensure on the id.
func URL(baseURL, id string) string {
	return fmt.Sprintf("%s/?tote=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(id))
}

// QRPNG renders the share URL for id as a PNG-encoded QR code, size pixels
// on a side.
func QRPNG(baseURL, id string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(URL(baseURL, id), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
