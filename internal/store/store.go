package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vbonduro/taptote/internal/domain"
)

// Storage layout: one entry per tote under totePrefix plus a single global
// settings entry. Values hold the full JSON-serialized record; every write
// replaces the whole value.
const (
	totePrefix  = "tote:"
	settingsKey = "taptote:settings"
)

// Patch is a partial set of Tote field changes. Nil fields are left
// untouched; a non-nil Images pointer replaces the whole image list.
type Patch struct {
	Title  *string
	Notes  *string
	Images *[]domain.Image
}

// kv is the raw key-value layer a backend provides. get reports absence via
// the bool rather than an error.
type kv interface {
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string) error
	keys(ctx context.Context, prefix string) ([]string, error)
}

// RecordStore persists Tote records keyed by identifier with lazy creation
// and whole-record replacement semantics. It is backed by a pluggable
// key-value layer; see NewSQLite and NewRedis.
type RecordStore struct {
	kv kv
}

func toteKey(id string) string { return totePrefix + id }

// Get looks up the record for id. A missing key and a malformed stored value
// are both reported as (nil, nil); only backend read failures are errors.
func (s *RecordStore) Get(ctx context.Context, id string) (*domain.Tote, error) {
	raw, ok, err := s.kv.get(ctx, toteKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read tote %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	var t domain.Tote
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		// A malformed stored value is indistinguishable from an absent key.
		return nil, nil
	}
	if t.Images == nil {
		t.Images = []domain.Image{}
	}
	return &t, nil
}

// Ensure returns the existing record for id, or synthesizes a new one with a
// placeholder title, empty notes, and an empty image list. A write happens
// only on the creation path.
func (s *RecordStore) Ensure(ctx context.Context, id string) (*domain.Tote, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}

	t = &domain.Tote{
		ID:        id,
		Title:     "Tote " + id,
		Notes:     "",
		Images:    []domain.Image{},
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Upsert merges patch into the current record (creating it first if absent),
// re-stamps UpdatedAt, and writes the full record back.
func (s *RecordStore) Upsert(ctx context.Context, id string, patch Patch) (*domain.Tote, error) {
	t, err := s.Ensure(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.Images != nil {
		t.Images = *patch.Images
	}
	if t.Images == nil {
		t.Images = []domain.Image{}
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all stored totes, most recently updated first. Entries that
// no longer parse are skipped, matching Get's treatment of malformed values.
func (s *RecordStore) List(ctx context.Context) ([]*domain.Tote, error) {
	keys, err := s.kv.keys(ctx, totePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list totes: %w", err)
	}

	totes := make([]*domain.Tote, 0, len(keys))
	for _, key := range keys {
		t, err := s.Get(ctx, strings.TrimPrefix(key, totePrefix))
		if err != nil {
			return nil, err
		}
		if t == nil {
			continue
		}
		totes = append(totes, t)
	}

	sort.Slice(totes, func(i, j int) bool {
		return totes[i].UpdatedAt.After(totes[j].UpdatedAt)
	})
	return totes, nil
}

// LoadSettings returns the global settings entry, or the zero value when the
// entry is absent or malformed.
func (s *RecordStore) LoadSettings(ctx context.Context) (domain.Settings, error) {
	raw, ok, err := s.kv.get(ctx, settingsKey)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return domain.Settings{}, nil
	}
	var settings domain.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return domain.Settings{}, nil
	}
	return settings, nil
}

// SaveSettings overwrites the global settings entry.
func (s *RecordStore) SaveSettings(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := s.kv.set(ctx, settingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func (s *RecordStore) put(ctx context.Context, t *domain.Tote) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to serialize tote %s: %w", t.ID, err)
	}
	if err := s.kv.set(ctx, toteKey(t.ID), string(data)); err != nil {
		return fmt.Errorf("failed to write tote %s: %w", t.ID, err)
	}
	return nil
}
