package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/assistant"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/auth"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/content"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/models"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/store"
)

type fakeGenerator struct {
	reply  string
	err    error
	system string
}

func (f *fakeGenerator) Generate(_ context.Context, system string, _ []assistant.Turn) (string, error) {
	f.system = system
	return f.reply, f.err
}

func adminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "role": "authenticated"})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func newIdentityServer(t *testing.T, validToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/user":
			if r.Header.Get("Authorization") != "Bearer "+validToken {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(auth.User{ID: "u1", Email: "owner@example.com", Role: "authenticated"})
		case "/auth/v1/token":
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["password"] != "hunter2" {
				http.Error(w, "invalid grant", http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode(auth.Session{AccessToken: validToken, ExpiresIn: 3600, User: auth.User{ID: "u1"}})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type fixture struct {
	handler http.Handler
	repo    *content.Repository
	token   string
}

// newFixture wires a handler over the given store. When withIdentity is
// true an httptest identity provider backs the gate and fixture.token is
// a valid admin session.
func newFixture(t *testing.T, st store.Store, gen assistant.Generator, withIdentity bool) *fixture {
	t.Helper()

	repo := content.NewRepository(st, content.Bundled{}, nil)
	bridge := assistant.NewBridge(gen, nil)

	var gate *auth.Gate
	token := ""
	if withIdentity {
		token = adminToken(t)
		srv := newIdentityServer(t, token)
		gate = auth.NewGate(auth.NewClient(srv.URL, "public-key"))
	} else {
		gate = auth.NewGate(nil)
	}

	h := New(repo, bridge, gate, nil, "")
	return &fixture{handler: h.Router(), repo: repo, token: token}
}

func newSQLite(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func (f *fixture) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestPublicReadsWithStoreUnconfigured(t *testing.T) {
	f := newFixture(t, nil, nil, false)

	t.Run("projects serve the bundled list", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/projects", nil, false)
		require.Equal(t, http.StatusOK, rec.Code)
		projects := decodeBody[[]models.Project](t, rec)
		assert.Equal(t, len(content.Bundled{}.Projects()), len(projects))
		assert.Equal(t, "moneo-ai", projects[0].ID)
	})

	t.Run("bootstrap joins all four collections", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/bootstrap", nil, false)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Projects     []models.Project     `json:"projects"`
			Certificates []models.Certificate `json:"certificates"`
			Experience   []models.Experience  `json:"experience"`
			SiteConfig   *models.SiteConfig   `json:"siteConfig"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Projects)
		assert.Empty(t, resp.Certificates)
		assert.Empty(t, resp.Experience)
		assert.Nil(t, resp.SiteConfig)
	})

	t.Run("project detail by slug", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/projects/moneo-ai", nil, false)
		require.Equal(t, http.StatusOK, rec.Code)
		p := decodeBody[models.Project](t, rec)
		assert.Equal(t, "Moneo AI", p.Title)
	})

	t.Run("unknown slug 404s", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/projects/nope", nil, false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDraftsHiddenFromPublic(t *testing.T) {
	st := newSQLite(t)
	f := newFixture(t, st, nil, true)
	ctx := context.Background()

	_, err := f.repo.SaveProject(ctx, models.Project{ID: "pub", Slug: "pub", Title: "Pub", Status: models.StatusPublished})
	require.NoError(t, err)
	_, err = f.repo.SaveProject(ctx, models.Project{ID: "wip", Slug: "wip", Title: "WIP", Status: models.StatusDraft})
	require.NoError(t, err)

	rec := f.request(t, http.MethodGet, "/api/projects", nil, false)
	projects := decodeBody[[]models.Project](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, "pub", projects[0].ID)

	rec = f.request(t, http.MethodGet, "/api/projects/wip", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/projects", nil, true)
	assert.Len(t, decodeBody[[]models.Project](t, rec), 2, "admin sees drafts")
}

func TestBlogEndpoints(t *testing.T) {
	f := newFixture(t, nil, nil, false)

	rec := f.request(t, http.MethodGet, "/api/blogs", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	blogs := decodeBody[[]models.Blog](t, rec)
	require.NotEmpty(t, blogs)
	assert.Empty(t, blogs[0].Content, "list view strips content")

	rec = f.request(t, http.MethodGet, "/api/blogs/shipping-moneo", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		ContentHTML string `json:"contentHtml"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Contains(t, detail.ContentHTML, "<h2")
}

func TestChatAlwaysAnswers(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		f := newFixture(t, nil, &fakeGenerator{reply: "He built Moneo AI."}, false)
		rec := f.request(t, http.MethodPost, "/api/chat", map[string]any{"message": "What projects has he worked on?"}, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "He built Moneo AI.", decodeBody[map[string]string](t, rec)["reply"])
	})

	t.Run("provider timeout still answers 200", func(t *testing.T) {
		f := newFixture(t, nil, &fakeGenerator{err: errors.New("context deadline exceeded")}, false)
		rec := f.request(t, http.MethodPost, "/api/chat", map[string]any{"message": "hi"}, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, assistant.DegradedMessage, decodeBody[map[string]string](t, rec)["reply"])
	})

	t.Run("no generator configured", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)
		rec := f.request(t, http.MethodPost, "/api/chat", map[string]any{"message": "hi"}, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, assistant.OfflineMessage, decodeBody[map[string]string](t, rec)["reply"])
	})

	t.Run("empty message rejected", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)
		rec := f.request(t, http.MethodPost, "/api/chat", map[string]any{}, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChatPromptExcludesDrafts(t *testing.T) {
	st := newSQLite(t)
	gen := &fakeGenerator{reply: "ok"}
	f := newFixture(t, st, gen, true)
	ctx := context.Background()

	_, err := f.repo.SaveProject(ctx, models.Project{ID: "live", Slug: "live", Title: "LiveProject", Status: models.StatusPublished})
	require.NoError(t, err)
	_, err = f.repo.SaveProject(ctx, models.Project{ID: "wip", Slug: "wip", Title: "Unannounced", Status: models.StatusDraft, AIContext: "client work under NDA"})
	require.NoError(t, err)

	rec := f.request(t, http.MethodPost, "/api/chat", map[string]any{"message": "what is he building?"}, false)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, gen.system, "LiveProject")
	assert.NotContains(t, gen.system, "Unannounced", "drafts stay out of anonymous prompts")
	assert.NotContains(t, gen.system, "client work under NDA")
}

func TestAdminGuard(t *testing.T) {
	f := newFixture(t, nil, nil, false)

	rec := f.request(t, http.MethodPost, "/api/admin/seed", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/admin/audit-logs", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminMutationsOfflineStore(t *testing.T) {
	f := newFixture(t, nil, nil, true)

	rec := f.request(t, http.MethodPost, "/api/admin/projects",
		models.Project{Slug: "x", Title: "X"}, true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = f.request(t, http.MethodDelete, "/api/admin/projects/x", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminCRUDOverSQLite(t *testing.T) {
	st := newSQLite(t)
	f := newFixture(t, st, nil, true)

	p := models.Project{ID: "p1", Slug: "p1", Title: "P1", Status: models.StatusPublished}
	rec := f.request(t, http.MethodPost, "/api/admin/projects", p, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/projects/p1", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/admin/audit-logs", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decodeBody[[]models.AuditLog](t, rec)
	require.NotEmpty(t, logs)
	assert.Equal(t, content.ActionProjectSync, logs[0].Action)

	rec = f.request(t, http.MethodDelete, "/api/admin/projects/p1", nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/projects/p1", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.request(t, http.MethodDelete, "/api/admin/projects/p1", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code, "deleting an already-deleted row is reported, not swallowed")
}

func TestSaveAssignsIDAndEchoesIt(t *testing.T) {
	st := newSQLite(t)
	f := newFixture(t, st, nil, true)

	rec := f.request(t, http.MethodPost, "/api/admin/projects", models.Project{Slug: "fresh", Title: "Fresh"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	saved := decodeBody[models.Project](t, rec)
	require.NotEmpty(t, saved.ID, "response must carry the assigned id")

	// Resaving the echoed entity updates the same row.
	saved.Title = "Fresh v2"
	rec = f.request(t, http.MethodPost, "/api/admin/projects", saved, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/projects", nil, true)
	projects := decodeBody[[]models.Project](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, "Fresh v2", projects[0].Title)
}

func TestSeedEndpointIdempotent(t *testing.T) {
	st := newSQLite(t)
	f := newFixture(t, st, nil, true)

	require.Equal(t, http.StatusOK, f.request(t, http.MethodPost, "/api/admin/seed", nil, true).Code)
	require.Equal(t, http.StatusOK, f.request(t, http.MethodPost, "/api/admin/seed", nil, true).Code)

	rec := f.request(t, http.MethodGet, "/api/site-config", nil, false)
	cfg := decodeBody[models.SiteConfig](t, rec)
	assert.Equal(t, content.SiteConfigID, cfg.ID)
}

func TestAuthFlow(t *testing.T) {
	f := newFixture(t, nil, nil, true)

	t.Run("session check anonymous", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/auth/session", nil, false)
		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Authenticated)
	})

	t.Run("session check authenticated", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/auth/session", nil, true)
		var resp struct {
			Authenticated bool `json:"authenticated"`
			Admin         bool `json:"admin"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Authenticated)
		assert.True(t, resp.Admin)
	})

	t.Run("login sets the session cookie", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/auth/login", map[string]string{"email": "owner@example.com", "password": "hunter2"}, false)
		require.Equal(t, http.StatusOK, rec.Code)

		var sessionCookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "session" {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		assert.Equal(t, f.token, sessionCookie.Value)
		assert.True(t, sessionCookie.HttpOnly)
	})

	t.Run("bad credentials surface a user-facing error", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/auth/login", map[string]string{"email": "owner@example.com", "password": "wrong"}, false)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotEmpty(t, decodeBody[map[string]string](t, rec)["error"])
	})

	t.Run("logout clears the cookie and forces navigation", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/auth/logout", nil, true)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		var sessionCookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "session" {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		assert.Empty(t, sessionCookie.Value)
		assert.Negative(t, sessionCookie.MaxAge)
	})
}

func TestTrackEventAccepted(t *testing.T) {
	f := newFixture(t, nil, nil, false)
	rec := f.request(t, http.MethodPost, "/api/events", map[string]any{"type": "page_view", "payload": map[string]any{"path": "/"}}, false)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
