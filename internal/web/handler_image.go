package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vbonduro/taptote/internal/service"
)

// maxImageSize bounds a single upload. Images are stored inline in the
// record, so the cap keeps individual records at a manageable size.
const maxImageSize = 10 * 1024 * 1024 // 10 MB

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseToteID(r)
	if err != nil {
		http.Error(w, "invalid tote id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file required", http.StatusBadRequest)
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		s.logger.Error("read upload failed", "tote_id", id, "error", err)
		return
	}

	// Browsers send File.lastModified as unix milliseconds; absent or
	// unparsable values fall back to the capture time in the service.
	var lastModified time.Time
	if ms, err := strconv.ParseInt(r.FormValue("last_modified"), 10, 64); err == nil && ms > 0 {
		lastModified = time.UnixMilli(ms).UTC()
	}

	tote, err := s.service.AddImage(r.Context(), id, header.Filename, imageData, lastModified)
	if errors.Is(err, service.ErrUnsupportedImage) {
		http.Error(w, "unsupported image format", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to store image", http.StatusInternalServerError)
		s.logger.Error("upload image failed", "tote_id", id, "error", err)
		return
	}

	if err := s.renderPartial(w, "partials/image_grid.html", tote); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseToteID(r)
	if err != nil {
		http.Error(w, "invalid tote id", http.StatusBadRequest)
		return
	}
	imageID := r.PathValue("imageID")

	tote, err := s.service.RemoveImage(r.Context(), id, imageID)
	if err != nil {
		http.Error(w, "failed to remove image", http.StatusInternalServerError)
		s.logger.Error("remove image failed", "tote_id", id, "image_id", imageID, "error", err)
		return
	}

	if err := s.renderPartial(w, "partials/image_grid.html", tote); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseToteID(r)
	if err != nil {
		http.Error(w, "invalid tote id", http.StatusBadRequest)
		return
	}
	imageID := r.PathValue("imageID")

	mimeType, data, err := s.service.GetImage(r.Context(), id, imageID)
	if err != nil {
		http.Error(w, "failed to load image", http.StatusInternalServerError)
		s.logger.Error("get image failed", "tote_id", id, "image_id", imageID, "error", err)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write image failed", "tote_id", id, "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
