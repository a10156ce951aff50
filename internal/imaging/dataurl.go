// Package imaging handles the inline image representation: MIME sniffing of
// uploaded bytes and conversion to and from self-contained data: URLs.
package imaging

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// allowedImageTypes is the set of MIME types accepted for uploaded images.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// SniffMIME returns the detected MIME type and true if data is an accepted
// image format, or ("", false) otherwise.
func SniffMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// EncodeDataURL returns a data: URL embedding the full image bytes, so the
// record carrying it needs no external file reference.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data: URL back into its MIME type and raw bytes.
func DecodeDataURL(u string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data url: no payload")
	}
	mimeType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", nil, fmt.Errorf("malformed data url: expected base64 encoding")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data url payload: %w", err)
	}
	return mimeType, data, nil
}
