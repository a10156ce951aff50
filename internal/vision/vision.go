package vision

import (
	"context"
	"io"
)

// TitlePrompt is the shared prompt used by all captioning backends.
const TitlePrompt = `Suggest a short label (five words or fewer) for a storage
tote containing the items in this photo. Respond with the label only, no
punctuation or commentary.`

// Captioner produces a short human-readable title for an image. Backends
// are selected by configuration; a nil Captioner means the feature is off.
type Captioner interface {
	Caption(ctx context.Context, r io.Reader, mimeType string) (string, error)
}

// NormalizeMIME maps browser MIME types to the values vision APIs accept:
// jpeg, png, gif, and webp. Unknown types are coerced to jpeg as the most
// universally supported lossy fallback.
func NormalizeMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}
