package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/vbonduro/taptote/internal/service"
)

type Server struct {
	service   *service.ToteService
	templates embed.FS
	baseURL   string
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(svc *service.ToteService, tmpl embed.FS, baseURL string, logger *slog.Logger) *Server {
	s := &Server{
		service:   svc,
		templates: tmpl,
		baseURL:   strings.TrimRight(baseURL, "/"),
		mux:       http.NewServeMux(),
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"markdown":   renderMarkdown,
			"formatTime": formatTime,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleLocator)
	s.mux.HandleFunc("GET /totes", s.handleListTotes)
	s.mux.HandleFunc("POST /totes/{id}", s.handleUpdateTote)
	s.mux.HandleFunc("POST /totes/{id}/images", s.handleUploadImage)
	s.mux.HandleFunc("DELETE /totes/{id}/images/{imageID}", s.handleDeleteImage)
	s.mux.HandleFunc("GET /totes/{id}/images/{imageID}", s.handleGetImage)
	s.mux.HandleFunc("GET /totes/{id}/qr.png", s.handleQR)
	s.mux.HandleFunc("POST /totes/{id}/suggest-title", s.handleSuggestTitle)
	s.mux.HandleFunc("GET /settings", s.handleGetSettings)
	s.mux.HandleFunc("POST /settings", s.handleUpdateSettings)
}

// securityHeaders adds defensive HTTP response headers to every response.
// img-src allows data: because stored images are inline data URLs.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses and executes a single named partial template.
// The file must contain exactly one {{define "name"}}...{{end}} block.
func (s *Server) renderPartial(w http.ResponseWriter, file string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// ParseFS registers both the file-basename template and any {{define}}
	// blocks; the {{define}} template is the one whose name is neither ""
	// nor the file basename.
	basename := file
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		basename = file[idx+1:]
	}
	for _, t := range tmpl.Templates() {
		if n := t.Name(); n != "" && n != basename {
			return t.Execute(w, data)
		}
	}
	return tmpl.ExecuteTemplate(w, basename, data)
}

// renderMarkdown converts notes markdown to HTML for the read view. On
// conversion failure the raw text is shown escaped.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
