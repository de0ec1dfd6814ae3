// Package server exposes the label workflow over HTTP: spreadsheet
// upload, dry-run validation, and configuration management.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"labelpress/internal/config"
	"labelpress/internal/render"
	"labelpress/internal/storage"
)

type Server struct {
	db      *storage.DB
	cfg     config.Config
	fetcher render.ImageFetcher
	codes   render.CodeRenderer
	logger  *slog.Logger
}

func New(db *storage.DB, cfg config.Config, fetcher render.ImageFetcher, codes render.CodeRenderer, logger *slog.Logger) *Server {
	return &Server{
		db:      db,
		cfg:     cfg,
		fetcher: fetcher,
		codes:   codes,
		logger:  logger,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/api/validate", s.handleValidate)
	r.Get("/api/settings", s.handleSettingsGet)
	r.Post("/api/settings", s.handleSettingsPost)
	r.Get("/api/settings/export", s.handleSettingsExport)
	r.Post("/api/settings/import", s.handleSettingsImport)
	r.Get("/api/runs", s.handleRuns)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain sentinels onto HTTP codes. Anything not a
// client-side input problem is a 500.
func statusFor(err error) int {
	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
