package web

import (
	"net/http"
	"strconv"

	"github.com/vbonduro/taptote/internal/share"
)

// handleQR serves the tote's share URL as a scannable PNG QR code, for
// printing or writing to an NFC tag.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseToteID(r)
	if err != nil {
		http.Error(w, "invalid tote id", http.StatusBadRequest)
		return
	}

	size := share.DefaultQRSize
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 && v <= 1024 {
		size = v
	}

	png, err := share.QRPNG(s.baseURL, id, size)
	if err != nil {
		http.Error(w, "failed to render qr code", http.StatusInternalServerError)
		s.logger.Error("qr render failed", "tote_id", id, "error", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		s.logger.Error("write qr failed", "tote_id", id, "error", err)
	}
}
