package web

import (
	"net/http"

	"github.com/vbonduro/taptote/internal/domain"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.service.Settings(r.Context())
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		s.logger.Error("load settings failed", "error", err)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"Settings": settings, "ActiveNav": "settings"},
		"base.html", "pages/settings.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	settings := domain.Settings{
		CloudSync: r.PostForm.Get("cloud_sync") == "on",
	}

	if err := s.service.UpdateSettings(r.Context(), settings); err != nil {
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		s.logger.Error("save settings failed", "error", err)
		return
	}

	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
