package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/taptote/internal/domain"
	"github.com/vbonduro/taptote/internal/imaging"
	"github.com/vbonduro/taptote/internal/store"
	"github.com/vbonduro/taptote/internal/vision"
)

// ErrNoCaptioner is returned by SuggestTitle when no vision backend is
// configured. Callers treat it as a missing capability, not a failure.
var ErrNoCaptioner = errors.New("no captioner configured")

// ErrUnsupportedImage is returned when uploaded bytes are not a recognized
// image format.
var ErrUnsupportedImage = errors.New("unsupported image format")

// recordStore is the subset of store.RecordStore that ToteService requires.
type recordStore interface {
	Get(ctx context.Context, id string) (*domain.Tote, error)
	Ensure(ctx context.Context, id string) (*domain.Tote, error)
	Upsert(ctx context.Context, id string, patch store.Patch) (*domain.Tote, error)
	List(ctx context.Context) ([]*domain.Tote, error)
	LoadSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

type ToteService struct {
	records   recordStore
	captioner vision.Captioner // nil when captioning is disabled
	logger    *slog.Logger
}

func NewToteService(records recordStore, captioner vision.Captioner, logger *slog.Logger) *ToteService {
	return &ToteService{
		records:   records,
		captioner: captioner,
		logger:    logger,
	}
}

func (s *ToteService) Get(ctx context.Context, id string) (*domain.Tote, error) {
	return s.records.Get(ctx, id)
}

// Ensure dereferences a locator: it returns the record for id, creating it
// lazily on first use.
func (s *ToteService) Ensure(ctx context.Context, id string) (*domain.Tote, error) {
	return s.records.Ensure(ctx, id)
}

func (s *ToteService) List(ctx context.Context) ([]*domain.Tote, error) {
	return s.records.List(ctx)
}

// UpdateFields applies a title and/or notes edit. Nil fields are left
// untouched; the record's UpdatedAt is re-stamped either way.
func (s *ToteService) UpdateFields(ctx context.Context, id string, title, notes *string) (*domain.Tote, error) {
	return s.records.Upsert(ctx, id, store.Patch{Title: title, Notes: notes})
}

// AddImage sniffs the uploaded bytes, encodes them as an inline data URL,
// and appends the image to the record. lastModified should come from the
// source file; the zero value falls back to the capture time.
func (s *ToteService) AddImage(ctx context.Context, id, name string, data []byte, lastModified time.Time) (*domain.Tote, error) {
	mimeType, ok := imaging.SniffMIME(data)
	if !ok {
		return nil, ErrUnsupportedImage
	}

	t, err := s.records.Ensure(ctx, id)
	if err != nil {
		return nil, err
	}

	if lastModified.IsZero() {
		lastModified = time.Now().UTC()
	}

	img := domain.Image{
		ID:           store.NewImageID(),
		Name:         name,
		URL:          imaging.EncodeDataURL(mimeType, data),
		LastModified: lastModified,
	}

	images := append(append([]domain.Image{}, t.Images...), img)
	s.logger.Info("image added", "tote_id", id, "image_id", img.ID, "mime_type", mimeType, "bytes", len(data))
	return s.records.Upsert(ctx, id, store.Patch{Images: &images})
}

// RemoveImage drops the image with imageID from the record, leaving the
// order and content of the remaining images unchanged. Removing an unknown
// id is a no-op.
func (s *ToteService) RemoveImage(ctx context.Context, id, imageID string) (*domain.Tote, error) {
	t, err := s.records.Ensure(ctx, id)
	if err != nil {
		return nil, err
	}

	images := make([]domain.Image, 0, len(t.Images))
	removed := false
	for _, img := range t.Images {
		if img.ID == imageID {
			removed = true
			continue
		}
		images = append(images, img)
	}
	if !removed {
		return t, nil
	}

	s.logger.Info("image removed", "tote_id", id, "image_id", imageID)
	return s.records.Upsert(ctx, id, store.Patch{Images: &images})
}

// GetImage returns the decoded bytes and MIME type of one image, or
// ("", nil, nil) when the tote or image does not exist.
func (s *ToteService) GetImage(ctx context.Context, id, imageID string) (string, []byte, error) {
	t, err := s.records.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if t == nil {
		return "", nil, nil
	}

	for _, img := range t.Images {
		if img.ID != imageID {
			continue
		}
		mimeType, data, err := imaging.DecodeDataURL(img.URL)
		if err != nil {
			return "", nil, fmt.Errorf("failed to decode image %s: %w", imageID, err)
		}
		return mimeType, data, nil
	}
	return "", nil, nil
}

// SuggestTitle asks the configured captioner to title the tote from its
// first image and persists the result.
func (s *ToteService) SuggestTitle(ctx context.Context, id string) (*domain.Tote, error) {
	if s.captioner == nil {
		return nil, ErrNoCaptioner
	}

	t, err := s.records.Ensure(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(t.Images) == 0 {
		return nil, fmt.Errorf("tote %s has no images to caption", id)
	}

	mimeType, data, err := imaging.DecodeDataURL(t.Images[0].URL)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image for captioning: %w", err)
	}

	s.logger.Info("caption started", "tote_id", id, "image_id", t.Images[0].ID)
	title, err := s.captioner.Caption(ctx, bytes.NewReader(data), mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to caption image: %w", err)
	}
	s.logger.Info("caption complete", "tote_id", id, "title", title)

	return s.records.Upsert(ctx, id, store.Patch{Title: &title})
}

func (s *ToteService) Settings(ctx context.Context) (domain.Settings, error) {
	return s.records.LoadSettings(ctx)
}

func (s *ToteService) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	return s.records.SaveSettings(ctx, settings)
}
