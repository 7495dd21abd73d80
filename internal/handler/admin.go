package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/models"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/store"
)

// Mutation failures are always surfaced to the caller; the admin UI owes
// the user a visible error for every failed action.

func (h *Handler) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if !h.readJSON(w, r, &p) {
		return
	}
	if p.Slug == "" || p.Title == "" {
		h.writeError(w, http.StatusBadRequest, "slug and title are required")
		return
	}

	saved, err := h.repo.SaveProject(r.Context(), p)
	if err != nil {
		h.writeMutationError(w, "save project", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMutationError(w, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveCertificate(w http.ResponseWriter, r *http.Request) {
	var c models.Certificate
	if !h.readJSON(w, r, &c) {
		return
	}
	if c.Title == "" {
		h.writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	saved, err := h.repo.SaveCertificate(r.Context(), c)
	if err != nil {
		h.writeMutationError(w, "save certificate", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleDeleteCertificate(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteCertificate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMutationError(w, "delete certificate", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveExperience(w http.ResponseWriter, r *http.Request) {
	var e models.Experience
	if !h.readJSON(w, r, &e) {
		return
	}
	if e.Title == "" || e.Company == "" {
		h.writeError(w, http.StatusBadRequest, "title and company are required")
		return
	}

	saved, err := h.repo.SaveExperience(r.Context(), e)
	if err != nil {
		h.writeMutationError(w, "save experience", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteExperience(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMutationError(w, "delete experience", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveSiteConfig(w http.ResponseWriter, r *http.Request) {
	var c models.SiteConfig
	if !h.readJSON(w, r, &c) {
		return
	}

	saved, err := h.repo.SaveSiteConfig(r.Context(), c)
	if err != nil {
		h.writeMutationError(w, "save site config", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Seed(r.Context()); err != nil {
		h.writeMutationError(w, "seed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

func (h *Handler) handleAuditLogs(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.repo.AuditLogs(r.Context()))
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.repo.Analytics(r.Context()))
}

func (h *Handler) writeMutationError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrOffline) {
		h.writeError(w, http.StatusServiceUnavailable, "store offline: configure a backend to edit content")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "no such record")
		return
	}
	h.log.Error(op+" failed", zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, op+" failed")
}
