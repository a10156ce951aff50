package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/taptote/internal/service"
	"github.com/vbonduro/taptote/internal/share"
	"github.com/vbonduro/taptote/internal/store"
)

const maxTitleLen = 200

// handleLocator dereferences the identifier carried in the page URL. A bare
// "/" mints a fresh id and redirects so the address bar always holds the
// shareable locator.
func (s *Server) handleLocator(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("tote"))
	if id == "" {
		id, err := store.NewToteID()
		if err != nil {
			http.Error(w, "failed to create tote", http.StatusInternalServerError)
			s.logger.Error("generate tote id failed", "error", err)
			return
		}
		http.Redirect(w, r, "/?tote="+id, http.StatusSeeOther)
		return
	}

	tote, err := s.service.Ensure(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load tote", http.StatusInternalServerError)
		s.logger.Error("ensure tote failed", "tote_id", id, "error", err)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"Tote": tote, "ShareURL": share.URL(s.baseURL, tote.ID), "ActiveNav": "tote"},
		"base.html", "pages/tote.html", "partials/image_grid.html", "partials/tote_meta.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleListTotes(w http.ResponseWriter, r *http.Request) {
	totes, err := s.service.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list totes", http.StatusInternalServerError)
		s.logger.Error("list totes failed", "error", err)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"Totes": totes, "ActiveNav": "totes"},
		"base.html", "pages/totes.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// handleUpdateTote applies a title and/or notes edit. Only fields present in
// the form are patched, so a title edit does not clobber concurrent notes.
func (s *Server) handleUpdateTote(w http.ResponseWriter, r *http.Request) {
	id, err := parseToteID(r)
	if err != nil {
		http.Error(w, "invalid tote id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	var title, notes *string
	if vals, ok := r.PostForm["title"]; ok && len(vals) > 0 {
		v := strings.TrimSpace(vals[0])
		if len(v) > maxTitleLen {
			http.Error(w, "title too long", http.StatusBadRequest)
			return
		}
		title = &v
	}
	if vals, ok := r.PostForm["notes"]; ok && len(vals) > 0 {
		notes = &vals[0]
	}

	tote, err := s.service.UpdateFields(r.Context(), id, title, notes)
	if err != nil {
		http.Error(w, "failed to update tote", http.StatusInternalServerError)
		s.logger.Error("update tote failed", "tote_id", id, "error", err)
		return
	}

	if err := s.renderPartial(w, "partials/tote_meta.html", tote); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleSuggestTitle(w http.ResponseWriter, r *http.Request) {
	id, err := parseToteID(r)
	if err != nil {
		http.Error(w, "invalid tote id", http.StatusBadRequest)
		return
	}

	tote, err := s.service.SuggestTitle(r.Context(), id)
	if errors.Is(err, service.ErrNoCaptioner) {
		http.Error(w, "title suggestion not configured", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, "failed to suggest title", http.StatusInternalServerError)
		s.logger.Error("suggest title failed", "tote_id", id, "error", err)
		return
	}

	if err := s.renderPartial(w, "partials/tote_meta.html", tote); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

// parseToteID extracts the {id} path variable.
func parseToteID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		return "", errors.New("empty tote id")
	}
	return id, nil
}
