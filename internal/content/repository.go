package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/models"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/store"
)

// Audit actions recorded by mutation operations.
const (
	ActionProjectSync       = "PROJECT_SYNC"
	ActionProjectDelete     = "PROJECT_DELETE"
	ActionCertificateSync   = "CERTIFICATE_SYNC"
	ActionCertificateDelete = "CERTIFICATE_DELETE"
	ActionExperienceSync    = "EXPERIENCE_SYNC"
	ActionExperienceDelete  = "EXPERIENCE_DELETE"
	ActionSiteConfigSync    = "SITE_CONFIG_SYNC"
	ActionDatabaseSeed      = "DATABASE_SEED"
)

const (
	analyticsLimit = 100
	auditLimit     = 50
)

// Repository is the content facade: reads degrade to the fallback source
// when the store is nil, a query fails or a collection is empty; writes
// require a live store and fail fast with store.ErrOffline otherwise.
// The store handle is injected once at construction, never re-bound.
type Repository struct {
	store    store.Store
	fallback FallbackSource
	log      *zap.Logger
	now      func() time.Time
}

func NewRepository(st store.Store, fb FallbackSource, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	if fb == nil {
		fb = Bundled{}
	}
	return &Repository{
		store:    st,
		fallback: fb,
		log:      log,
		now:      time.Now,
	}
}

func (r *Repository) offline() bool { return r.store == nil }

// Projects returns published and draft projects, newest first. The
// caller filters drafts for public surfaces.
func (r *Repository) Projects(ctx context.Context) []models.Project {
	if r.offline() {
		return r.fallback.Projects()
	}
	rows, err := r.store.Select(ctx, store.Projects, store.Query{OrderBy: "created_at", Desc: true})
	if err != nil {
		r.log.Warn("projects read failed, serving fallback", zap.Error(err))
		return r.fallback.Projects()
	}
	if len(rows) == 0 {
		return r.fallback.Projects()
	}

	out := make([]models.Project, 0, len(rows))
	for _, raw := range rows {
		var row projectRow
		if err := json.Unmarshal(raw, &row); err != nil {
			r.log.Warn("projects row malformed, serving fallback", zap.Error(err))
			return r.fallback.Projects()
		}
		out = append(out, projectFromRow(row))
	}
	return out
}

func (r *Repository) Certificates(ctx context.Context) []models.Certificate {
	if r.offline() {
		return r.fallback.Certificates()
	}
	rows, err := r.store.Select(ctx, store.Certificates, store.Query{})
	if err != nil {
		r.log.Warn("certificates read failed, serving fallback", zap.Error(err))
		return r.fallback.Certificates()
	}
	if len(rows) == 0 {
		return r.fallback.Certificates()
	}

	out := make([]models.Certificate, 0, len(rows))
	for _, raw := range rows {
		var row certificateRow
		if err := json.Unmarshal(raw, &row); err != nil {
			r.log.Warn("certificates row malformed, serving fallback", zap.Error(err))
			return r.fallback.Certificates()
		}
		out = append(out, certificateFromRow(row))
	}
	return out
}

// Experience returns positions in ascending explicit order.
func (r *Repository) Experience(ctx context.Context) []models.Experience {
	if r.offline() {
		return r.fallback.Experience()
	}
	rows, err := r.store.Select(ctx, store.Experience, store.Query{OrderBy: "order_index"})
	if err != nil {
		r.log.Warn("experience read failed, serving fallback", zap.Error(err))
		return r.fallback.Experience()
	}
	if len(rows) == 0 {
		return r.fallback.Experience()
	}

	out := make([]models.Experience, 0, len(rows))
	for _, raw := range rows {
		var row experienceRow
		if err := json.Unmarshal(raw, &row); err != nil {
			r.log.Warn("experience row malformed, serving fallback", zap.Error(err))
			return r.fallback.Experience()
		}
		out = append(out, experienceFromRow(row))
	}
	return out
}

// SiteConfig returns the singleton config, or nil when none exists yet.
func (r *Repository) SiteConfig(ctx context.Context) *models.SiteConfig {
	if r.offline() {
		return r.fallback.SiteConfig()
	}
	rows, err := r.store.Select(ctx, store.SiteConfig, store.Query{Limit: 1})
	if err != nil {
		r.log.Warn("site config read failed, serving fallback", zap.Error(err))
		return r.fallback.SiteConfig()
	}
	if len(rows) == 0 {
		return r.fallback.SiteConfig()
	}

	var row siteConfigRow
	if err := json.Unmarshal(rows[0], &row); err != nil {
		r.log.Warn("site config row malformed, serving fallback", zap.Error(err))
		return r.fallback.SiteConfig()
	}
	cfg := siteConfigFromRow(row)
	return &cfg
}

// Blogs come from bundled content only; there is no remote collection.
func (r *Repository) Blogs() []models.Blog {
	return r.fallback.Blogs()
}

// Save operations return the stored entity: ids assigned here must reach
// the caller, or its next save of the same entity creates a duplicate
// row instead of updating.
func (r *Repository) SaveProject(ctx context.Context, p models.Project) (models.Project, error) {
	if r.offline() {
		return models.Project{}, store.ErrOffline
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := r.store.Upsert(ctx, store.Projects, projectToRow(p, r.now())); err != nil {
		return models.Project{}, fmt.Errorf("save project %s: %w", p.ID, err)
	}
	r.LogAudit(ctx, ActionProjectSync, p.ID)
	return p, nil
}

func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	if r.offline() {
		return store.ErrOffline
	}
	if err := r.store.Delete(ctx, store.Projects, id); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	r.LogAudit(ctx, ActionProjectDelete, id)
	return nil
}

func (r *Repository) SaveCertificate(ctx context.Context, c models.Certificate) (models.Certificate, error) {
	if r.offline() {
		return models.Certificate{}, store.ErrOffline
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := r.store.Upsert(ctx, store.Certificates, certificateToRow(c)); err != nil {
		return models.Certificate{}, fmt.Errorf("save certificate %s: %w", c.ID, err)
	}
	r.LogAudit(ctx, ActionCertificateSync, c.ID)
	return c, nil
}

func (r *Repository) DeleteCertificate(ctx context.Context, id string) error {
	if r.offline() {
		return store.ErrOffline
	}
	if err := r.store.Delete(ctx, store.Certificates, id); err != nil {
		return fmt.Errorf("delete certificate %s: %w", id, err)
	}
	r.LogAudit(ctx, ActionCertificateDelete, id)
	return nil
}

func (r *Repository) SaveExperience(ctx context.Context, e models.Experience) (models.Experience, error) {
	if r.offline() {
		return models.Experience{}, store.ErrOffline
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := r.store.Upsert(ctx, store.Experience, experienceToRow(e)); err != nil {
		return models.Experience{}, fmt.Errorf("save experience %s: %w", e.ID, err)
	}
	r.LogAudit(ctx, ActionExperienceSync, e.ID)
	return e, nil
}

func (r *Repository) DeleteExperience(ctx context.Context, id string) error {
	if r.offline() {
		return store.ErrOffline
	}
	if err := r.store.Delete(ctx, store.Experience, id); err != nil {
		return fmt.Errorf("delete experience %s: %w", id, err)
	}
	r.LogAudit(ctx, ActionExperienceDelete, id)
	return nil
}

// SaveSiteConfig always writes under the fixed singleton id so there can
// never be a second config row.
func (r *Repository) SaveSiteConfig(ctx context.Context, c models.SiteConfig) (models.SiteConfig, error) {
	if r.offline() {
		return models.SiteConfig{}, store.ErrOffline
	}
	c.ID = SiteConfigID
	if err := r.store.Upsert(ctx, store.SiteConfig, siteConfigToRow(c, r.now())); err != nil {
		return models.SiteConfig{}, fmt.Errorf("save site config: %w", err)
	}
	r.LogAudit(ctx, ActionSiteConfigSync, c.ID)
	return c, nil
}

// Seed bulk-upserts the bundled projects and creates the default site
// config if none exists. Safe to run repeatedly: projects upsert by id
// and the config lives under a fixed singleton key.
func (r *Repository) Seed(ctx context.Context) error {
	if r.offline() {
		return store.ErrOffline
	}

	for _, p := range r.fallback.Projects() {
		if err := r.store.Upsert(ctx, store.Projects, projectToRow(p, r.now())); err != nil {
			return fmt.Errorf("seed project %s: %w", p.ID, err)
		}
	}

	if r.SiteConfig(ctx) == nil {
		if err := r.store.Upsert(ctx, store.SiteConfig, siteConfigToRow(DefaultSiteConfig(), r.now())); err != nil {
			return fmt.Errorf("seed site config: %w", err)
		}
	}

	r.LogAudit(ctx, ActionDatabaseSeed, fmt.Sprintf("%d projects", len(r.fallback.Projects())))
	return nil
}

// LogAudit appends an audit record. Best effort: failures are logged and
// never returned, so no admin flow is ever blocked by the audit trail.
func (r *Repository) LogAudit(ctx context.Context, action, details string) {
	if r.offline() {
		return
	}
	row := auditLogRow{
		ID:        uuid.NewString(),
		Action:    action,
		Actor:     "admin",
		Details:   details,
		CreatedAt: r.now().UTC(),
	}
	if err := r.store.Insert(ctx, store.AuditLogs, row); err != nil {
		r.log.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}

// TrackEvent records an analytics event. Best effort, same contract as
// LogAudit.
func (r *Repository) TrackEvent(ctx context.Context, eventType string, payload map[string]any) {
	if r.offline() {
		return
	}
	row := analyticsEventRow{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: r.now().UTC(),
	}
	if err := r.store.Insert(ctx, store.Analytics, row); err != nil {
		r.log.Warn("analytics write failed", zap.String("type", eventType), zap.Error(err))
	}
}

// Analytics returns the most recent events, newest first, capped at 100.
func (r *Repository) Analytics(ctx context.Context) []models.AnalyticsEvent {
	if r.offline() {
		return []models.AnalyticsEvent{}
	}
	rows, err := r.store.Select(ctx, store.Analytics, store.Query{OrderBy: "created_at", Desc: true, Limit: analyticsLimit})
	if err != nil {
		r.log.Warn("analytics read failed", zap.Error(err))
		return []models.AnalyticsEvent{}
	}

	out := make([]models.AnalyticsEvent, 0, len(rows))
	for _, raw := range rows {
		var row analyticsEventRow
		if err := json.Unmarshal(raw, &row); err != nil {
			continue
		}
		out = append(out, models.AnalyticsEvent(row))
	}
	return out
}

// AuditLogs returns the most recent audit entries, newest first, capped
// at 50.
func (r *Repository) AuditLogs(ctx context.Context) []models.AuditLog {
	if r.offline() {
		return []models.AuditLog{}
	}
	rows, err := r.store.Select(ctx, store.AuditLogs, store.Query{OrderBy: "created_at", Desc: true, Limit: auditLimit})
	if err != nil {
		r.log.Warn("audit log read failed", zap.Error(err))
		return []models.AuditLog{}
	}

	out := make([]models.AuditLog, 0, len(rows))
	for _, raw := range rows {
		var row auditLogRow
		if err := json.Unmarshal(raw, &row); err != nil {
			continue
		}
		out = append(out, models.AuditLog(row))
	}
	return out
}
