// Package api provides the HTTP handlers for the terminal site API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kev1nl1u/lkev.in/internal/config"
	"github.com/kev1nl1u/lkev.in/internal/shell"
	"github.com/kev1nl1u/lkev.in/internal/store"
)

// MotdReader reads the current MOTD lines.
type MotdReader interface {
	Lines() ([]string, error)
}

// Handler serves the terminal site API.
type Handler struct {
	repo  store.Repository
	motd  MotdReader
	site  *config.Site
	auth  shell.Authorizer
	stats shell.StatsSource
}

// NewHandler creates a Handler with its dependencies.
func NewHandler(repo store.Repository, motd MotdReader, site *config.Site, auth shell.Authorizer, stats shell.StatsSource) *Handler {
	return &Handler{
		repo:  repo,
		motd:  motd,
		site:  site,
		auth:  auth,
		stats: stats,
	}
}

// RegisterRoutes mounts the API endpoints and the per-link redirect
// routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/config", h.GetConfig)
	r.Get("/api/motd", h.GetMotd)
	r.Post("/api/sudo", h.PostSudo)
	r.Post("/api/save-login", h.PostSaveLogin)
	r.Get("/api/last-login", h.GetLastLogin)
	r.Get("/api/sysinfo/cpu", h.GetSysInfo)

	// One redirect route per link flagged as server-redirecting.
	for key, link := range h.site.Links {
		if !link.Redirect {
			continue
		}
		url := link.URL
		r.Get("/"+key, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, url, http.StatusFound)
		})
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
