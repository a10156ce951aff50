package store

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	toteIDLen      = 8
	toteIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// NewToteID returns a short random identifier used as the storage key and
// URL locator of a new tote. No uniqueness check is made against existing
// records; collisions are accepted as rare for a single-user board.
func NewToteID() (string, error) {
	var buf [toteIDLen]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to generate tote id: %w", err)
	}
	for i, b := range buf {
		buf[i] = toteIDAlphabet[int(b)%len(toteIDAlphabet)]
	}
	return string(buf[:]), nil
}

// NewImageID returns a ULID for a newly uploaded image. ULIDs sort by
// creation time, which keeps image ids aligned with insertion order.
func NewImageID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
