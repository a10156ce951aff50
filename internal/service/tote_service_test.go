package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/taptote/internal/db"
	"github.com/vbonduro/taptote/internal/imaging"
	"github.com/vbonduro/taptote/internal/store"
)

// minimalPNG is the PNG signature padded with zeros, enough for MIME sniffing.
var minimalPNG = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 24)...)

// stubCaptioner is a minimal vision.Captioner for tests.
type stubCaptioner struct {
	title string
	err   error
}

func (s *stubCaptioner) Caption(_ context.Context, _ io.Reader, _ string) (string, error) {
	return s.title, s.err
}

func newTestService(t *testing.T, captioner *stubCaptioner) *ToteService {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	if captioner == nil {
		return NewToteService(store.NewSQLite(d), nil, slog.Default())
	}
	return NewToteService(store.NewSQLite(d), captioner, slog.Default())
}

func TestEnsureCreatesLazily(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	tote, err := svc.Ensure(ctx, "ab12cd34")
	require.NoError(t, err)
	assert.Equal(t, "Tote ab12cd34", tote.Title)
	assert.Empty(t, tote.Images)
}

func TestUpdateFields(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	title := "Holiday Lights"
	tote, err := svc.UpdateFields(ctx, "t1", &title, nil)
	require.NoError(t, err)
	assert.Equal(t, "Holiday Lights", tote.Title)

	notes := "garage, top shelf"
	tote, err = svc.UpdateFields(ctx, "t1", nil, &notes)
	require.NoError(t, err)
	assert.Equal(t, "Holiday Lights", tote.Title)
	assert.Equal(t, "garage, top shelf", tote.Notes)
}

func TestAddImage(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	lastModified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tote, err := svc.AddImage(ctx, "t1", "lights.png", minimalPNG, lastModified)
	require.NoError(t, err)
	require.Len(t, tote.Images, 1)

	img := tote.Images[0]
	assert.NotEmpty(t, img.ID)
	assert.Equal(t, "lights.png", img.Name)
	assert.Equal(t, lastModified, img.LastModified)

	mimeType, data, err := imaging.DecodeDataURL(img.URL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, minimalPNG, data)
}

func TestAddImageZeroLastModifiedFallsBack(t *testing.T) {
	svc := newTestService(t, nil)

	tote, err := svc.AddImage(context.Background(), "t1", "a.png", minimalPNG, time.Time{})
	require.NoError(t, err)
	require.Len(t, tote.Images, 1)
	assert.False(t, tote.Images[0].LastModified.IsZero())
}

func TestAddImageRejectsNonImage(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.AddImage(context.Background(), "t1", "doc.txt", []byte("plain text"), time.Time{})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestRemoveImagePreservesOrder(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		_, err := svc.AddImage(ctx, "t1", name, minimalPNG, time.Time{})
		require.NoError(t, err)
	}
	tote, err := svc.Get(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, tote.Images, 3)

	removed := tote.Images[1]
	tote, err = svc.RemoveImage(ctx, "t1", removed.ID)
	require.NoError(t, err)
	require.Len(t, tote.Images, 2)
	assert.Equal(t, "a.png", tote.Images[0].Name)
	assert.Equal(t, "c.png", tote.Images[1].Name)
}

func TestRemoveImageUnknownIDIsNoOp(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.AddImage(ctx, "t1", "a.png", minimalPNG, time.Time{})
	require.NoError(t, err)
	before, err := svc.Get(ctx, "t1")
	require.NoError(t, err)

	after, err := svc.RemoveImage(ctx, "t1", "nosuchimage")
	require.NoError(t, err)
	assert.Equal(t, before.Images, after.Images)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestGetImage(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	tote, err := svc.AddImage(ctx, "t1", "a.png", minimalPNG, time.Time{})
	require.NoError(t, err)

	mimeType, data, err := svc.GetImage(ctx, "t1", tote.Images[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, minimalPNG, data)
}

func TestGetImageAbsent(t *testing.T) {
	svc := newTestService(t, nil)

	mimeType, data, err := svc.GetImage(context.Background(), "nosuchtote", "nosuchimage")
	require.NoError(t, err)
	assert.Empty(t, mimeType)
	assert.Nil(t, data)
}

func TestSuggestTitle(t *testing.T) {
	svc := newTestService(t, &stubCaptioner{title: "Winter Gear"})
	ctx := context.Background()

	_, err := svc.AddImage(ctx, "t1", "a.png", minimalPNG, time.Time{})
	require.NoError(t, err)

	tote, err := svc.SuggestTitle(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Winter Gear", tote.Title)
}

func TestSuggestTitleNoCaptioner(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.SuggestTitle(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrNoCaptioner)
}

func TestSuggestTitleNoImages(t *testing.T) {
	svc := newTestService(t, &stubCaptioner{title: "Winter Gear"})

	_, err := svc.SuggestTitle(context.Background(), "t1")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoCaptioner))
}

func TestSuggestTitleCaptionerFailure(t *testing.T) {
	svc := newTestService(t, &stubCaptioner{err: errors.New("model offline")})
	ctx := context.Background()

	_, err := svc.AddImage(ctx, "t1", "a.png", minimalPNG, time.Time{})
	require.NoError(t, err)

	_, err = svc.SuggestTitle(ctx, "t1")
	assert.Error(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	settings, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.CloudSync)

	settings.CloudSync = true
	require.NoError(t, svc.UpdateSettings(ctx, settings))

	settings, err = svc.Settings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.CloudSync)
}
