package handler

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/assistant"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/middleware"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/models"
)

type bootstrapResponse struct {
	Projects     []models.Project     `json:"projects"`
	Certificates []models.Certificate `json:"certificates"`
	Experience   []models.Experience  `json:"experience"`
	SiteConfig   *models.SiteConfig   `json:"siteConfig"`
}

// handleBootstrap loads the four hydration collections in parallel and
// joins them before responding. The collections populate disjoint state,
// so no ordering between the reads is needed.
func (h *Handler) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	var resp bootstrapResponse
	admin := h.isAdmin(r)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		resp.Projects = visibleProjects(h.repo.Projects(ctx), admin)
		return nil
	})
	g.Go(func() error {
		resp.Certificates = h.repo.Certificates(ctx)
		return nil
	})
	g.Go(func() error {
		resp.Experience = h.repo.Experience(ctx)
		return nil
	})
	g.Go(func() error {
		resp.SiteConfig = h.repo.SiteConfig(ctx)
		return nil
	})
	_ = g.Wait()

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects := visibleProjects(h.repo.Projects(r.Context()), h.isAdmin(r))
	h.writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	admin := h.isAdmin(r)

	for _, p := range h.repo.Projects(r.Context()) {
		if p.Slug != slug {
			continue
		}
		if p.Status != models.StatusPublished && !admin {
			break
		}
		h.writeJSON(w, http.StatusOK, p)
		return
	}
	h.writeError(w, http.StatusNotFound, "project not found")
}

func (h *Handler) handleListCertificates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.repo.Certificates(r.Context()))
}

func (h *Handler) handleListExperience(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.repo.Experience(r.Context()))
}

func (h *Handler) handleGetSiteConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.repo.SiteConfig(r.Context()))
}

func (h *Handler) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs := h.repo.Blogs()
	out := make([]models.Blog, 0, len(blogs))
	for _, b := range blogs {
		if b.Status == models.StatusPublished {
			b.Content = "" // list view carries excerpts only
			out = append(out, b)
		}
	}
	h.writeJSON(w, http.StatusOK, out)
}

type blogDetailResponse struct {
	models.Blog
	ContentHTML string `json:"contentHtml"`
}

func (h *Handler) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	for _, b := range h.repo.Blogs() {
		if b.Slug != slug || b.Status != models.StatusPublished {
			continue
		}

		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(b.Content), &buf); err != nil {
			h.log.Warn("blog render failed", zap.Error(err))
			h.writeJSON(w, http.StatusOK, blogDetailResponse{Blog: b})
			return
		}
		h.writeJSON(w, http.StatusOK, blogDetailResponse{Blog: b, ContentHTML: buf.String()})
		return
	}
	h.writeError(w, http.StatusNotFound, "post not found")
}

type chatRequest struct {
	Message string           `json:"message"`
	History []assistant.Turn `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleChat always answers 200 with a reply string; degraded modes are
// baked into the bridge, so the chat UI only tracks its loading state.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if req.Message == "" {
		h.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	// The assistant sees exactly what the requester may see; drafts and
	// their hidden context stay out of anonymous prompts.
	ctx := r.Context()
	projects := visibleProjects(h.repo.Projects(ctx), h.isAdmin(r))
	reply := h.bridge.Respond(ctx, req.Message, req.History, projects, h.repo.Blogs())

	h.repo.TrackEvent(ctx, "chat_message", map[string]any{"length": len(req.Message)})
	h.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

type eventRequest struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

func (h *Handler) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		h.writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	h.repo.TrackEvent(r.Context(), req.Type, req.Payload)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) isAdmin(r *http.Request) bool {
	identity := middleware.IdentityFromContext(r.Context())
	return identity != nil && identity.Admin
}

// visibleProjects filters drafts for public visitors.
func visibleProjects(projects []models.Project, admin bool) []models.Project {
	if admin {
		return projects
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status == models.StatusPublished {
			out = append(out, p)
		}
	}
	return out
}
