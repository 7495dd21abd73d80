package content

import (
	"time"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/models"
)

// Wire row shapes mirror the backing store's columns: snake_case names,
// nullable fields, backend-chosen defaults. The mappers below are the
// only place where wire and domain shapes meet; everything above them
// works with the typed domain model.

type metricRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type featureRow struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

type deploymentRow struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	OrderIndex int    `json:"order_index"`
}

type projectRow struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	LongDescription *string         `json:"long_description"`
	Category        *string         `json:"category"`
	Thumbnail       *string         `json:"thumbnail"`
	Images          []string        `json:"images"`
	TechStack       []string        `json:"tech_stack"`
	Metrics         []metricRow     `json:"metrics"`
	Features        []featureRow    `json:"features"`
	Deployment      []deploymentRow `json:"deployment"`
	Featured        *bool           `json:"featured"`
	Status          *string         `json:"status"`
	AIContext       *string         `json:"ai_context"`
	CreatedAt       *time.Time      `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at"`
}

// projectFromRow supplies a UI-ready default for every nullable column.
// A missing long description falls back to the short one, missing
// arrays become empty lists, missing status means published.
func projectFromRow(r projectRow) models.Project {
	p := models.Project{
		ID:              r.ID,
		Slug:            r.Slug,
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.Description,
		Category:        models.CategoryWeb,
		Images:          []string{},
		TechStack:       []string{},
		Metrics:         []models.Metric{},
		Features:        []models.Feature{},
		Deployment:      []models.DeploymentSpec{},
		Status:          models.StatusPublished,
	}
	if r.LongDescription != nil && *r.LongDescription != "" {
		p.LongDescription = *r.LongDescription
	}
	if r.Category != nil && *r.Category != "" {
		p.Category = *r.Category
	}
	if r.Thumbnail != nil {
		p.Thumbnail = *r.Thumbnail
	}
	if r.Images != nil {
		p.Images = r.Images
	}
	if r.TechStack != nil {
		p.TechStack = r.TechStack
	}
	for _, m := range r.Metrics {
		p.Metrics = append(p.Metrics, models.Metric{Label: m.Label, Value: m.Value})
	}
	for _, f := range r.Features {
		p.Features = append(p.Features, models.Feature{Title: f.Title, Description: f.Description, OrderIndex: f.OrderIndex})
	}
	for _, d := range r.Deployment {
		p.Deployment = append(p.Deployment, models.DeploymentSpec{Category: d.Category, Label: d.Label, Value: d.Value, OrderIndex: d.OrderIndex})
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
	if r.Status != nil && *r.Status != "" {
		p.Status = *r.Status
	}
	if r.AIContext != nil {
		p.AIContext = *r.AIContext
	}
	if r.CreatedAt != nil {
		p.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		p.LastSyncedAt = *r.UpdatedAt
	}
	return p
}

// projectToRow is the inverse projection used before a write. It always
// stamps a fresh updated_at; LastSyncedAt is derived on read and has no
// wire counterpart.
func projectToRow(p models.Project, now time.Time) projectRow {
	r := projectRow{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: &p.LongDescription,
		Category:        &p.Category,
		Thumbnail:       &p.Thumbnail,
		Images:          p.Images,
		TechStack:       p.TechStack,
		Metrics:         []metricRow{},
		Features:        []featureRow{},
		Deployment:      []deploymentRow{},
		Featured:        &p.Featured,
		Status:          &p.Status,
		AIContext:       &p.AIContext,
		UpdatedAt:       &now,
	}
	if p.Images == nil {
		r.Images = []string{}
	}
	if p.TechStack == nil {
		r.TechStack = []string{}
	}
	for _, m := range p.Metrics {
		r.Metrics = append(r.Metrics, metricRow{Label: m.Label, Value: m.Value})
	}
	for _, f := range p.Features {
		r.Features = append(r.Features, featureRow{Title: f.Title, Description: f.Description, OrderIndex: f.OrderIndex})
	}
	for _, d := range p.Deployment {
		r.Deployment = append(r.Deployment, deploymentRow{Category: d.Category, Label: d.Label, Value: d.Value, OrderIndex: d.OrderIndex})
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		r.CreatedAt = &created
	}
	return r
}

type certificateRow struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Issuer          string  `json:"issuer"`
	Date            string  `json:"date"`
	Category        string  `json:"category"`
	Status          string  `json:"status"`
	VerificationURL *string `json:"verification_url"`
}

func certificateFromRow(r certificateRow) models.Certificate {
	c := models.Certificate{
		ID:       r.ID,
		Title:    r.Title,
		Issuer:   r.Issuer,
		Date:     r.Date,
		Category: r.Category,
		Status:   r.Status,
	}
	if c.Status == "" {
		c.Status = models.StatusPublished
	}
	if r.VerificationURL != nil {
		c.VerificationURL = *r.VerificationURL
	}
	return c
}

func certificateToRow(c models.Certificate) certificateRow {
	return certificateRow{
		ID:              c.ID,
		Title:           c.Title,
		Issuer:          c.Issuer,
		Date:            c.Date,
		Category:        c.Category,
		Status:          c.Status,
		VerificationURL: &c.VerificationURL,
	}
}

type experienceRow struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	StartDate      string   `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	IsCurrent      bool     `json:"is_current"`
	Achievements   []string `json:"achievements"`
	OrderIndex     int      `json:"order_index"`
}

func experienceFromRow(r experienceRow) models.Experience {
	e := models.Experience{
		ID:             r.ID,
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		StartDate:      r.StartDate,
		IsCurrent:      r.IsCurrent,
		Achievements:   []string{},
		OrderIndex:     r.OrderIndex,
	}
	if r.EndDate != nil {
		e.EndDate = *r.EndDate
	}
	// No end date means the position is current, whatever the flag says.
	if e.EndDate == "" {
		e.IsCurrent = true
	}
	if r.Achievements != nil {
		e.Achievements = r.Achievements
	}
	return e
}

func experienceToRow(e models.Experience) experienceRow {
	r := experienceRow{
		ID:             e.ID,
		Title:          e.Title,
		Company:        e.Company,
		Location:       e.Location,
		EmploymentType: e.EmploymentType,
		StartDate:      e.StartDate,
		EndDate:        &e.EndDate,
		IsCurrent:      e.IsCurrent,
		Achievements:   e.Achievements,
		OrderIndex:     e.OrderIndex,
	}
	if e.Achievements == nil {
		r.Achievements = []string{}
	}
	return r
}

type socialLinksRow struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Email    string `json:"email"`
}

type siteConfigRow struct {
	ID        string         `json:"id"`
	SiteName  string         `json:"site_name"`
	Tagline   string         `json:"tagline"`
	Bio       string         `json:"bio"`
	Location  string         `json:"location"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Social    socialLinksRow `json:"social_links"`
	UpdatedAt *time.Time     `json:"updated_at"`
}

func siteConfigFromRow(r siteConfigRow) models.SiteConfig {
	c := models.SiteConfig{
		ID:       r.ID,
		SiteName: r.SiteName,
		Tagline:  r.Tagline,
		Bio:      r.Bio,
		Location: r.Location,
		Email:    r.Email,
		Phone:    r.Phone,
		Social: models.SocialLinks{
			GitHub:   r.Social.GitHub,
			LinkedIn: r.Social.LinkedIn,
			Twitter:  r.Social.Twitter,
			Email:    r.Social.Email,
		},
	}
	if r.UpdatedAt != nil {
		c.UpdatedAt = *r.UpdatedAt
	}
	return c
}

func siteConfigToRow(c models.SiteConfig, now time.Time) siteConfigRow {
	return siteConfigRow{
		ID:       c.ID,
		SiteName: c.SiteName,
		Tagline:  c.Tagline,
		Bio:      c.Bio,
		Location: c.Location,
		Email:    c.Email,
		Phone:    c.Phone,
		Social: socialLinksRow{
			GitHub:   c.Social.GitHub,
			LinkedIn: c.Social.LinkedIn,
			Twitter:  c.Social.Twitter,
			Email:    c.Social.Email,
		},
		UpdatedAt: &now,
	}
}

type auditLogRow struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

type analyticsEventRow struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
