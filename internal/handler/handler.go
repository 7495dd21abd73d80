package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/assistant"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/auth"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/content"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/middleware"
)

type Handler struct {
	repo         *content.Repository
	bridge       *assistant.Bridge
	gate         *auth.Gate
	log          *zap.Logger
	cookieDomain string
}

func New(repo *content.Repository, bridge *assistant.Bridge, gate *auth.Gate, log *zap.Logger, cookieDomain string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		repo:         repo,
		bridge:       bridge,
		gate:         gate,
		log:          log,
		cookieDomain: cookieDomain,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.CleanPath)
	r.Use(middleware.Auth(h.gate))

	// Public content API
	r.Route("/api", func(r chi.Router) {
		r.Get("/bootstrap", h.handleBootstrap)
		r.Get("/projects", h.handleListProjects)
		r.Get("/projects/{slug}", h.handleGetProject)
		r.Get("/certificates", h.handleListCertificates)
		r.Get("/experience", h.handleListExperience)
		r.Get("/site-config", h.handleGetSiteConfig)
		r.Get("/blogs", h.handleListBlogs)
		r.Get("/blogs/{slug}", h.handleGetBlog)
		r.Post("/chat", h.handleChat)
		r.Post("/events", h.handleTrackEvent)

		// Admin area
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Post("/projects", h.handleSaveProject)
			r.Delete("/projects/{id}", h.handleDeleteProject)
			r.Post("/certificates", h.handleSaveCertificate)
			r.Delete("/certificates/{id}", h.handleDeleteCertificate)
			r.Post("/experience", h.handleSaveExperience)
			r.Delete("/experience/{id}", h.handleDeleteExperience)
			r.Put("/site-config", h.handleSaveSiteConfig)
			r.Post("/seed", h.handleSeed)
			r.Get("/audit-logs", h.handleAuditLogs)
			r.Get("/analytics", h.handleAnalytics)
		})
	})

	// Auth
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/magic-link", h.handleMagicLink)
	r.Post("/auth/logout", h.handleLogout)
	r.Get("/auth/session", h.handleSession)

	return r
}

// requireAdmin guards the admin area. Anonymous requests get 401 so the
// client can redirect to the login surface; authenticated but
// unprivileged sessions get 403.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			h.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !identity.Admin {
			h.writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("response encode failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
