package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/auth"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.readJSON(w, r, &req) {
		return
	}

	session, err := h.gate.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "identity service unavailable")
		return
	}

	h.setSessionCookie(w, r, session.AccessToken, session.ExpiresIn)
	h.writeJSON(w, http.StatusOK, session.User)
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleMagicLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		h.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.gate.SendMagicLink(r.Context(), req.Email); err != nil {
		h.log.Error("magic link failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "could not send login link")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// handleLogout revokes the provider session, clears the cookie and
// redirects with 303 so the browser performs a full navigation back to
// the public root. A client-side state reset alone could leave
// privileged data in memory.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r); token != "" {
		if err := h.gate.SignOut(r.Context(), token); err != nil {
			h.log.Warn("provider sign-out failed", zap.Error(err))
		}
	}

	h.setSessionCookie(w, r, "", -1)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Admin         bool       `json:"admin"`
	User          *auth.User `json:"user,omitempty"`
}

// handleSession is the route guard's check. Protected views block
// rendering until this resolves and redirect to login on a negative
// result.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.writeJSON(w, http.StatusOK, sessionResponse{})
		return
	}
	h.writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Admin:         identity.Admin,
		User:          &identity.User,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
	cookie := &http.Cookie{
		Name:     "session",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookieDomain != "" {
		cookie.Domain = h.cookieDomain
	}
	http.SetCookie(w, cookie)
}
