package store

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToteID(t *testing.T) {
	id, err := NewToteID()
	require.NoError(t, err)
	assert.Len(t, id, toteIDLen)
	for _, c := range id {
		assert.True(t, strings.ContainsRune(toteIDAlphabet, c), "unexpected character %q", c)
	}
}

func TestNewToteIDVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewToteID()
		require.NoError(t, err)
		seen[id] = true
	}
	// 100 draws from 36^8 should never collide in practice.
	assert.Len(t, seen, 100)
}

func TestNewImageID(t *testing.T) {
	id := NewImageID()
	_, err := ulid.ParseStrict(id)
	assert.NoError(t, err)
}
